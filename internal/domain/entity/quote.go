package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cotización.
const (
	QuoteStatusDraft           = "draft"            // Editable; aún no entra al flujo de aprobación
	QuoteStatusSent            = "sent"             // Enviada a proveedores, esperando propuestas
	QuoteStatusPendingApproval = "pending_approval" // Esperando decisión del nivel resuelto
	QuoteStatusApproved        = "approved"         // Aprobada (por un aprobador o automáticamente)
	QuoteStatusRejected        = "rejected"         // Rechazada; puede reabrirse como draft (nuevo ciclo)
)

// Quote representa una cotización de un cliente.
// ApprovalLevelID queda congelado al solicitar aprobación: cambios posteriores
// en la configuración de niveles no alteran el nivel asignado.
type Quote struct {
	ID              string
	ClientID        string
	SupplierID      string // proveedor seleccionado (vacío mientras no haya propuesta elegida)
	CostCenterID    string // centro de costo imputado (opcional)
	RequesterID     string // usuario que creó la cotización
	Title           string
	Description     string
	Total           decimal.Decimal
	Status          string
	ApprovalLevelID string // nivel resuelto al solicitar aprobación; vacío = sin resolver
	ApprovalCycle   int    // se incrementa en cada reenvío tras un rechazo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// QuoteItem línea de una cotización.
type QuoteItem struct {
	ID          string
	QuoteID     string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
