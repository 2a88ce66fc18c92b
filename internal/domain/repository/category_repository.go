package repository

import (
	"context"

	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para Category.
type CategoryRepository interface {
	Insert(ctx context.Context, name string) (int64, error)
	// FindByID devuelve nil (sin error) cuando la fila no existe.
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	// UpdateName devuelve false cuando el UPDATE no afectó filas.
	UpdateName(ctx context.Context, id int64, name string) (bool, error)
	// Remove devuelve false cuando la fila no existía.
	Remove(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, params ListParams) ([]entity.Category, error)
	Count(ctx context.Context) (int64, error)
}
