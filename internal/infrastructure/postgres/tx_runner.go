package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/gestioncom-api/internal/application/product"
	"github.com/jhoicas/gestioncom-api/internal/domain/repository"
	"github.com/jhoicas/gestioncom-api/pkg/logger"
)

// Ensure TxRunner implements product.TxRunner.
var _ product.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un fallo del Rollback se registra pero no se propaga: el error relevante es el de fn.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			r.log.Error().Err(rbErr).Msg("rollback falló")
		}
	}()

	productRepo := NewProductRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(productRepo, movRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
