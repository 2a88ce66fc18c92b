package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/gestioncom-api/internal/domain/entity"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// Columnas permitidas en ORDER BY del historial de movimientos.
var movementOrderColumns = map[string]string{
	"id":       "m.id",
	"tipo":     "m.kind",
	"cantidad": "m.quantity",
	"producto": "p.name",
	"usuario":  "u.name",
	"fecha":    "m.occurred_at",
}

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL (usable con pool o tx).
// El ledger es append-only: solo inserta y lee.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Insert persiste un movimiento de stock y devuelve el id asignado.
func (r *MovementRepo) Insert(ctx context.Context, m *entity.StockMovement) (int64, error) {
	query := `
		INSERT INTO stock_movements (kind, quantity, product_id, user_id, note, occurred_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id`
	var id int64
	err := r.q.QueryRow(ctx, query, m.Kind, m.Quantity, m.ProductID, m.UserID, m.Note).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert stock movement: %w", err)
	}
	return id, nil
}

// ListWithRelations lista el historial con los nombres de producto y usuario.
func (r *MovementRepo) ListWithRelations(ctx context.Context, params repository.ListParams) ([]entity.StockMovement, error) {
	query := `
		SELECT m.id, m.kind, m.quantity, m.product_id, COALESCE(p.name, ''), m.user_id, COALESCE(u.name, ''), m.note, m.occurred_at
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.user_id
		ORDER BY ` + orderClause(movementOrderColumns, params.OrderBy, "fecha", params.OrderDir) + `
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// Count devuelve el total de movimientos.
func (r *MovementRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stock_movements`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// ListForExport devuelve todo el historial con joins, sin paginar.
func (r *MovementRepo) ListForExport(ctx context.Context) ([]entity.StockMovement, error) {
	query := `
		SELECT m.id, m.kind, m.quantity, m.product_id, COALESCE(p.name, ''), m.user_id, COALESCE(u.name, ''), m.note, m.occurred_at
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		LEFT JOIN users u ON u.id = m.user_id
		ORDER BY m.occurred_at DESC, m.id DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("export movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]entity.StockMovement, error) {
	var list []entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(&m.ID, &m.Kind, &m.Quantity, &m.ProductID, &m.ProductName,
			&m.UserID, &m.UserName, &m.Note, &m.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
