package repository

import (
	"time"

	"github.com/cotizapp/cotiz-api/internal/domain/entity"
)

// QuoteRepository define el puerto de persistencia para cotizaciones.
type QuoteRepository interface {
	Create(quote *entity.Quote) error
	CreateItem(item *entity.QuoteItem) error
	GetByID(id string) (*entity.Quote, error)
	GetItemsByQuoteID(quoteID string) ([]*entity.QuoteItem, error)
	// ListByClient lista cotizaciones del cliente; status vacío = todos los estados.
	ListByClient(clientID, status string, limit, offset int) ([]*entity.Quote, error)

	// SetApprovalPending congela el nivel resuelto y pasa la cotización a
	// pending_approval, condicionado a que siga en draft. Devuelve false si
	// el estado ya cambió (nadie debe pisar una resolución en curso).
	SetApprovalPending(id, levelID string, updatedAt time.Time) (bool, error)

	// TransitionStatus cambia el estado solo si el estado almacenado sigue
	// siendo fromStatus (update condicional, guarda contra decisiones
	// concurrentes). Devuelve false cuando otro llamador ganó la carrera.
	TransitionStatus(id, fromStatus, toStatus string, updatedAt time.Time) (bool, error)

	// ReopenForResubmission reabre una cotización rechazada como draft:
	// limpia el nivel congelado e inicia un nuevo ciclo de aprobación.
	ReopenForResubmission(id string, updatedAt time.Time) (bool, error)
}
