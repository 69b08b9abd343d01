package repository

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// ApprovalDecisionRepository puerto append-only para el registro de auditoría.
// Las decisiones nunca se actualizan ni se borran.
type ApprovalDecisionRepository interface {
	Append(decision *entity.ApprovalDecision) error
	ListByQuoteID(quoteID string) ([]*entity.ApprovalDecision, error)
}
