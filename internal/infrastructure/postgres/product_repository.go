package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// Columnas permitidas en ORDER BY de productos (claves en el idioma del API).
var productOrderColumns = map[string]string{
	"id":         "p.id",
	"nombre":     "p.name",
	"precio":     "p.price_cents",
	"stock":      "p.stock",
	"categoria":  "c.name",
	"created_at": "p.created_at",
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Insert persiste un producto nuevo y devuelve el id asignado.
func (r *ProductRepo) Insert(ctx context.Context, draft entity.ProductDraft) (int64, error) {
	query := `
		INSERT INTO products (name, price_cents, stock, category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query, draft.Name, draft.PriceCents, draft.Stock, draft.CategoryID).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrProductDuplicate
		}
		if isForeignKeyViolation(err) {
			return 0, domain.ErrCategoryNotFound
		}
		return 0, fmt.Errorf("insert product: %w", err)
	}
	return id, nil
}

// FindByID obtiene un producto por ID con el nombre de su categoría. Devuelve nil si no existe.
func (r *ProductRepo) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.price_cents, p.stock, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.CategoryID, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// UpdatePartial aplica solo los campos presentes en changes. Devuelve false si el UPDATE no afectó filas.
func (r *ProductRepo) UpdatePartial(ctx context.Context, id int64, changes entity.ProductChanges) (bool, error) {
	sets := make([]string, 0, 4)
	args := []any{id}
	pos := 2
	if changes.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", pos))
		args = append(args, *changes.Name)
		pos++
	}
	if changes.PriceCents != nil {
		sets = append(sets, fmt.Sprintf("price_cents = $%d", pos))
		args = append(args, *changes.PriceCents)
		pos++
	}
	if changes.Stock != nil {
		sets = append(sets, fmt.Sprintf("stock = $%d", pos))
		args = append(args, *changes.Stock)
		pos++
	}
	if changes.CategoryID != nil {
		sets = append(sets, fmt.Sprintf("category_id = $%d", pos))
		args = append(args, *changes.CategoryID)
		pos++
	}
	if len(sets) == 0 {
		return false, nil
	}
	query := "UPDATE products SET " + strings.Join(sets, ", ") + ", updated_at = now() WHERE id = $1"
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrProductDuplicate
		}
		if isForeignKeyViolation(err) {
			return false, domain.ErrCategoryNotFound
		}
		return false, fmt.Errorf("update product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Remove elimina un producto por ID. Devuelve false si la fila no existía.
func (r *ProductRepo) Remove(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrProductInUse
		}
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista productos con paginación y ordenamiento.
func (r *ProductRepo) List(ctx context.Context, params repository.ListParams) ([]entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.price_cents, p.stock, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY ` + orderClause(productOrderColumns, params.OrderBy, "created_at", params.OrderDir) + `
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// Count devuelve el total de productos.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM products`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// TopByPrice devuelve los productos más caros.
func (r *ProductRepo) TopByPrice(ctx context.Context, limit int) ([]entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.price_cents, p.stock, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.price_cents DESC, p.id ASC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products by price: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// TopByTotalValue devuelve los productos con mayor valor total (precio × stock), en unidades monetarias.
func (r *ProductRepo) TopByTotalValue(ctx context.Context, limit int) ([]repository.ProductTotalValue, error) {
	query := `
		SELECT p.id, p.name, p.price_cents, p.stock, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at,
		       (p.price_cents::numeric * p.stock) / 100 AS total_value
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY total_value DESC, p.id ASC
		LIMIT $1`
	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("top products by total value: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductTotalValue
	for rows.Next() {
		var item repository.ProductTotalValue
		p := &item.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.CategoryID, &p.CategoryName,
			&p.CreatedAt, &p.UpdatedAt, &item.TotalValue); err != nil {
			return nil, fmt.Errorf("scan product value: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// ListForExport devuelve todos los productos con nombre de categoría, sin paginar.
func (r *ProductRepo) ListForExport(ctx context.Context) ([]entity.Product, error) {
	query := `
		SELECT p.id, p.name, p.price_cents, p.stock, p.category_id, COALESCE(c.name, ''), p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		ORDER BY p.id ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("export products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]entity.Product, error) {
	var list []entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceCents, &p.Stock, &p.CategoryID, &p.CategoryName,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
