package entity

import "time"

// Kinds de movimiento de stock (enumeración cerrada). "entrada" aumenta el
// stock, "salida" lo disminuye; la dirección la lleva el kind, nunca el signo.
const (
	MovementIn  = "entrada"
	MovementOut = "salida"
)

// ValidMovementKind indica si s pertenece a la enumeración cerrada.
func ValidMovementKind(s string) bool {
	return s == MovementIn || s == MovementOut
}

// StockMovement registro inmutable de un cambio de stock. Una vez creado
// nunca se actualiza ni se borra desde este núcleo.
type StockMovement struct {
	ID          int64
	Kind        string // entrada | salida
	Quantity    int64  // siempre > 0
	ProductID   int64
	ProductName string // solo en lecturas con join
	UserID      int64
	UserName    string // solo en lecturas con join
	Note        string
	OccurredAt  time.Time
}
