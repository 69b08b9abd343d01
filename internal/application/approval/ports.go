package approval

import (
	"context"

	"github.com/cotizapp/cotiz-api/internal/domain/repository"
	"github.com/cotizapp/cotiz-api/internal/events"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del
// flujo de aprobación atados a la misma tx. La transición de estado y el
// registro de auditoría deben confirmarse juntos o no confirmarse.
type TxRunner interface {
	RunApproval(ctx context.Context, fn func(
		quoteRepo repository.QuoteRepository,
		decisionRepo repository.ApprovalDecisionRepository,
	) error) error
}

// EventPublisher publica eventos de decisión (fire-and-forget). El núcleo no
// espera ni depende de la entrega: el notificador externo consume a su ritmo.
type EventPublisher interface {
	Publish(evt events.ApprovalEvent)
}
