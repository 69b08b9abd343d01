package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateApprovalLevelRequest alta de un nivel de aprobación.
type CreateApprovalLevelRequest struct {
	Name            string          `json:"name"`
	OrderLevel      int             `json:"order_level"`
	AmountThreshold decimal.Decimal `json:"amount_threshold"`
	Approvers       []string        `json:"approvers"`
}

// UpdateApprovalLevelRequest edición de un nivel existente.
type UpdateApprovalLevelRequest struct {
	Name            string          `json:"name"`
	OrderLevel      int             `json:"order_level"`
	AmountThreshold decimal.Decimal `json:"amount_threshold"`
	Approvers       []string        `json:"approvers"`
}

// ApprovalLevelResponse representación de un nivel en respuestas.
type ApprovalLevelResponse struct {
	ID              string          `json:"id"`
	ClientID        string          `json:"client_id"`
	Name            string          `json:"name"`
	OrderLevel      int             `json:"order_level"`
	AmountThreshold decimal.Decimal `json:"amount_threshold"`
	Approvers       []string        `json:"approvers"`
	Active          bool            `json:"active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ApprovalLevelListResponse listado de niveles.
type ApprovalLevelListResponse struct {
	Items []ApprovalLevelResponse `json:"items"`
}

// DecideRequest decisión de un aprobador sobre una cotización pendiente.
type DecideRequest struct {
	Decision string `json:"decision"` // approved | rejected
	Comment  string `json:"comment"`
}

// DecisionResponse registro de auditoría de una decisión.
type DecisionResponse struct {
	ID               string          `json:"id"`
	QuoteID          string          `json:"quote_id"`
	LevelID          string          `json:"level_id,omitempty"`
	ApproverID       string          `json:"approver_id"`
	Decision         string          `json:"decision"`
	Comment          string          `json:"comment,omitempty"`
	Cycle            int             `json:"cycle"`
	AmountAtDecision decimal.Decimal `json:"amount_at_decision"`
	DecidedAt        time.Time       `json:"decided_at"`
}

// DecisionListResponse historial de decisiones de una cotización.
type DecisionListResponse struct {
	Items []DecisionResponse `json:"items"`
}
