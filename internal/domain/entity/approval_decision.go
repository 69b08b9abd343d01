package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados posibles de una decisión.
const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// SystemApproverID identifica las decisiones automáticas (monto por debajo de
// todos los umbrales configurados). Garantiza que toda cotización aprobada o
// rechazada tenga al menos un registro de auditoría, incluso sin intervención humana.
const SystemApproverID = "system"

// ApprovalDecision es el registro inmutable de auditoría de una decisión.
// Nunca se actualiza ni se borra; un nuevo ciclo de aprobación genera registros nuevos.
type ApprovalDecision struct {
	ID               string
	QuoteID          string
	LevelID          string // vacío en aprobaciones automáticas (ningún nivel aplicó)
	ApproverID       string // SystemApproverID en aprobaciones automáticas
	Decision         string // approved, rejected
	Comment          string
	Cycle            int             // ciclo de aprobación al que pertenece la decisión
	AmountAtDecision decimal.Decimal // total de la cotización al momento de decidir
	DecidedAt        time.Time
}
