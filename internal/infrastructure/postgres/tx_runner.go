package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cotizapp/cotiz-api/internal/application/approval"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

// Ensure TxRunner implements approval.TxRunner and usecase.QuoteTxRunner.
var _ approval.TxRunner = (*TxRunner)(nil)
var _ usecase.QuoteTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunApproval inicia una transacción con los repos del flujo de aprobación
// atados a la tx: la transición de estado y el registro de auditoría se
// confirman juntos o se revierten juntos.
func (r *TxRunner) RunApproval(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
	decisionRepo repository.ApprovalDecisionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	quoteRepo := NewQuoteRepository(tx)
	decisionRepo := NewApprovalDecisionRepository(tx)

	if err := fn(quoteRepo, decisionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunQuote inicia una transacción con el repo de cotizaciones (cabecera + líneas).
func (r *TxRunner) RunQuote(ctx context.Context, fn func(
	quoteRepo repository.QuoteRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewQuoteRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
