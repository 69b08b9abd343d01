package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

var _ repository.QuoteRepository = (*QuoteRepo)(nil)

// QuoteRepo implementación del puerto QuoteRepository sobre PostgreSQL (usable con pool o tx).
type QuoteRepo struct {
	q Querier
}

// NewQuoteRepository construye el adaptador de persistencia para cotizaciones. Pasar pool o tx (Querier).
func NewQuoteRepository(q Querier) *QuoteRepo {
	return &QuoteRepo{q: q}
}

const quoteColumns = `id, client_id, supplier_id, cost_center_id, requester_id, title, description, total, status, approval_level_id, approval_cycle, created_at, updated_at`

// Create persiste una nueva cotización.
func (r *QuoteRepo) Create(quote *entity.Quote) error {
	query := `
		INSERT INTO quotes (` + quoteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		quote.ID, quote.ClientID, nullIfEmpty(quote.SupplierID), nullIfEmpty(quote.CostCenterID),
		quote.RequesterID, quote.Title, quote.Description, quote.Total, quote.Status,
		nullIfEmpty(quote.ApprovalLevelID), quote.ApprovalCycle, quote.CreatedAt, quote.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quote: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de cotización.
func (r *QuoteRepo) CreateItem(item *entity.QuoteItem) error {
	query := `
		INSERT INTO quote_items (id, quote_id, description, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuoteID, item.Description, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert quote item: %w", err)
	}
	return nil
}

// GetByID obtiene una cotización por ID.
func (r *QuoteRepo) GetByID(id string) (*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE id = $1`
	q, err := scanQuote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quote: %w", err)
	}
	return q, nil
}

// GetItemsByQuoteID obtiene las líneas de una cotización.
func (r *QuoteRepo) GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error) {
	query := `
		SELECT id, quote_id, description, quantity, unit_price, subtotal
		FROM quote_items WHERE quote_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list quote items: %w", err)
	}
	defer rows.Close()

	var items []*entity.QuoteItem
	for rows.Next() {
		var it entity.QuoteItem
		if err := rows.Scan(&it.ID, &it.QuoteID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan quote item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByClient lista cotizaciones del cliente; status vacío = todos los estados.
func (r *QuoteRepo) ListByClient(clientID, status string, limit, offset int) ([]*entity.Quote, error) {
	query := `SELECT ` + quoteColumns + ` FROM quotes WHERE client_id = $1`
	args := []any{clientID}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*entity.Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

// SetApprovalPending congela el nivel resuelto y pasa la cotización a pending_approval.
// El WHERE sobre status garantiza que una sola resolución avance: si el estado ya
// cambió, el UPDATE no afecta filas y se devuelve false.
func (r *QuoteRepo) SetApprovalPending(id, levelID string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $2, approval_level_id = $3, updated_at = $4
		WHERE id = $1 AND status = $5`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.QuoteStatusPendingApproval, levelID, updatedAt, entity.QuoteStatusDraft,
	)
	if err != nil {
		return false, fmt.Errorf("set approval pending: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// TransitionStatus cambia el estado solo si el almacenado sigue siendo fromStatus.
// Entre decisiones concurrentes, exactamente una gana: la otra ve RowsAffected = 0.
func (r *QuoteRepo) TransitionStatus(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(context.Background(), query, id, fromStatus, toStatus, updatedAt)
	if err != nil {
		return false, fmt.Errorf("transition quote status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReopenForResubmission reabre una cotización rechazada: vuelve a draft, limpia
// el nivel congelado e incrementa el ciclo de aprobación.
func (r *QuoteRepo) ReopenForResubmission(id string, updatedAt time.Time) (bool, error) {
	query := `
		UPDATE quotes
		SET status = $2, approval_level_id = NULL, approval_cycle = approval_cycle + 1, updated_at = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.QuoteStatusDraft, updatedAt, entity.QuoteStatusRejected,
	)
	if err != nil {
		return false, fmt.Errorf("reopen quote: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanQuote(row pgx.Row) (*entity.Quote, error) {
	var q entity.Quote
	var supplierID, costCenterID, levelID *string
	err := row.Scan(
		&q.ID, &q.ClientID, &supplierID, &costCenterID, &q.RequesterID,
		&q.Title, &q.Description, &q.Total, &q.Status, &levelID, &q.ApprovalCycle,
		&q.CreatedAt, &q.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	q.SupplierID = derefStr(supplierID)
	q.CostCenterID = derefStr(costCenterID)
	q.ApprovalLevelID = derefStr(levelID)
	return &q, nil
}
