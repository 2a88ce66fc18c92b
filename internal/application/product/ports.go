package product

import (
	"context"

	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad entre la mutación del
// producto y su movimiento de stock: Commit si fn devuelve nil, Rollback en
// caso contrario, con liberación de la conexión en todo camino de salida.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.MovementRepository,
	) error) error
}

// CatalogPDFGenerator genera la representación PDF del catálogo de productos.
type CatalogPDFGenerator interface {
	GenerateCatalog(ctx context.Context, products []entity.Product) ([]byte, error)
}
