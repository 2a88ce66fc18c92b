package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
)

// ListParams paginación y ordenamiento de listados. OrderBy pasa por la
// allow-list de columnas del repositorio; valores desconocidos caen al
// default documentado y OrderDir se normaliza a ASC/DESC (default DESC).
type ListParams struct {
	Limit    int
	Offset   int
	OrderBy  string
	OrderDir string
}

// ProductTotalValue producto junto a su valor total (precio × stock).
type ProductTotalValue struct {
	Product    entity.Product
	TotalValue decimal.Decimal
}

// ProductRepository puerto de persistencia para Product (DIP). Las
// implementaciones se construyen sobre pool o tx; dentro de una transacción
// del orquestador todos los métodos participan del mismo scope.
type ProductRepository interface {
	// Insert persiste el draft y devuelve el id asignado por el store.
	Insert(ctx context.Context, draft entity.ProductDraft) (int64, error)
	// FindByID devuelve nil (sin error) cuando la fila no existe.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	// UpdatePartial aplica solo los campos presentes en changes.
	// Devuelve false cuando el UPDATE no afectó filas.
	UpdatePartial(ctx context.Context, id int64, changes entity.ProductChanges) (bool, error)
	// Remove devuelve false cuando la fila no existía.
	Remove(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, params ListParams) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	TopByPrice(ctx context.Context, limit int) ([]entity.Product, error)
	TopByTotalValue(ctx context.Context, limit int) ([]ProductTotalValue, error)
	// ListForExport devuelve todas las filas con nombre de categoría, sin paginar.
	ListForExport(ctx context.Context) ([]entity.Product, error)
}
