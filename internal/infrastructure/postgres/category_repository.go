package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestioncom-api/internal/domain"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

var categoryOrderColumns = map[string]string{
	"id":         "id",
	"nombre":     "name",
	"created_at": "created_at",
}

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Insert persiste una categoría nueva y devuelve el id asignado.
func (r *CategoryRepo) Insert(ctx context.Context, name string) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (name, created_at, updated_at) VALUES ($1, now(), now()) RETURNING id`,
		name,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrCategoryDuplicate
		}
		return 0, fmt.Errorf("insert category: %w", err)
	}
	return id, nil
}

// FindByID obtiene una categoría por ID. Devuelve nil si no existe.
func (r *CategoryRepo) FindByID(ctx context.Context, id int64) (*entity.Category, error) {
	var c entity.Category
	err := r.q.QueryRow(ctx,
		`SELECT id, name, created_at, updated_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// UpdateName renombra una categoría. Devuelve false si el UPDATE no afectó filas.
func (r *CategoryRepo) UpdateName(ctx context.Context, id int64, name string) (bool, error) {
	cmd, err := r.q.Exec(ctx,
		`UPDATE categories SET name = $2, updated_at = now() WHERE id = $1`, id, name,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrCategoryDuplicate
		}
		return false, fmt.Errorf("update category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// Remove elimina una categoría por ID. Devuelve false si la fila no existía.
func (r *CategoryRepo) Remove(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return false, domain.ErrCategoryInUse
		}
		return false, fmt.Errorf("delete category: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista categorías con paginación y ordenamiento.
func (r *CategoryRepo) List(ctx context.Context, params repository.ListParams) ([]entity.Category, error) {
	query := `
		SELECT id, name, created_at, updated_at FROM categories
		ORDER BY ` + orderClause(categoryOrderColumns, params.OrderBy, "created_at", params.OrderDir) + `
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Count devuelve el total de categorías.
func (r *CategoryRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM categories`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return total, nil
}
