package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalLevel define un nivel de aprobación por monto mínimo para un cliente.
// Una cotización cuyo total alcanza AmountThreshold requiere la aprobación de
// uno de los Approvers. Se desactiva con Active=false (soft delete): las
// cotizaciones históricas siguen referenciando el nivel que les aplicó.
type ApprovalLevel struct {
	ID              string
	ClientID        string
	Name            string
	OrderLevel      int             // orden informativo de presentación entre niveles
	AmountThreshold decimal.Decimal // monto mínimo (inclusive) al que aplica el nivel
	Approvers       []string        // IDs de usuarios autorizados; nunca vacío por invariante
	Active          bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// HasApprover indica si el usuario está autorizado a decidir en este nivel.
func (l *ApprovalLevel) HasApprover(userID string) bool {
	if l == nil || userID == "" {
		return false
	}
	for _, a := range l.Approvers {
		if a == userID {
			return true
		}
	}
	return false
}
