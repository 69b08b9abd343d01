package postgres

import (
	"context"
	"fmt"

	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

var _ repository.ApprovalDecisionRepository = (*ApprovalDecisionRepo)(nil)

// ApprovalDecisionRepo adaptador PostgreSQL del registro de auditoría de decisiones.
// Solo inserta y lee: ninguna operación actualiza ni borra filas.
type ApprovalDecisionRepo struct {
	q Querier
}

// NewApprovalDecisionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewApprovalDecisionRepository(q Querier) *ApprovalDecisionRepo {
	return &ApprovalDecisionRepo{q: q}
}

// Append agrega un registro inmutable de decisión.
func (r *ApprovalDecisionRepo) Append(decision *entity.ApprovalDecision) error {
	query := `
		INSERT INTO approval_decisions (id, quote_id, level_id, approver_id, decision, comment, cycle, amount_at_decision, decided_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		decision.ID, decision.QuoteID, nullIfEmpty(decision.LevelID), decision.ApproverID,
		decision.Decision, decision.Comment, decision.Cycle, decision.AmountAtDecision, decision.DecidedAt,
	)
	if err != nil {
		return fmt.Errorf("insert approval decision: %w", err)
	}
	return nil
}

// ListByQuoteID lista las decisiones de una cotización en orden cronológico.
func (r *ApprovalDecisionRepo) ListByQuoteID(quoteID string) ([]*entity.ApprovalDecision, error) {
	query := `
		SELECT id, quote_id, level_id, approver_id, decision, comment, cycle, amount_at_decision, decided_at
		FROM approval_decisions
		WHERE quote_id = $1
		ORDER BY decided_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, quoteID)
	if err != nil {
		return nil, fmt.Errorf("list approval decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*entity.ApprovalDecision
	for rows.Next() {
		var d entity.ApprovalDecision
		var levelID *string
		if err := rows.Scan(
			&d.ID, &d.QuoteID, &levelID, &d.ApproverID, &d.Decision, &d.Comment,
			&d.Cycle, &d.AmountAtDecision, &d.DecidedAt,
		); err != nil {
			return nil, fmt.Errorf("scan approval decision: %w", err)
		}
		d.LevelID = derefStr(levelID)
		decisions = append(decisions, &d)
	}
	return decisions, rows.Err()
}
