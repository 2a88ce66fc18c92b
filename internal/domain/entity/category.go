package entity

import "time"

// Category agrupa productos. El nombre es único.
type Category struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
