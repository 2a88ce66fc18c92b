package repository

import (
	"context"

	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
)

// MovementRepository puerto de persistencia para StockMovement. El ledger es
// append-only desde el núcleo: no hay update ni delete.
type MovementRepository interface {
	// Insert persiste el movimiento y devuelve el id asignado por el store.
	Insert(ctx context.Context, m *entity.StockMovement) (int64, error)
	// ListWithRelations lista el historial con nombre de usuario y producto.
	ListWithRelations(ctx context.Context, params ListParams) ([]entity.StockMovement, error)
	Count(ctx context.Context) (int64, error)
	// ListForExport devuelve todo el historial con joins, sin paginar.
	ListForExport(ctx context.Context) ([]entity.StockMovement, error)
}
