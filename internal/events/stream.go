// Package events implementa el fan-out en proceso de eventos de aprobación.
// El núcleo publica sin esperar confirmación (fire-and-forget); los
// suscriptores (SSE, notificadores) consumen por canal.
package events

import (
	"context"
	"sync"
	"time"
)

// ApprovalEvent describe el resultado de una decisión sobre una cotización.
type ApprovalEvent struct {
	QuoteID    string    `json:"quote_id"`
	ClientID   string    `json:"client_id"`
	LevelID    string    `json:"level_id,omitempty"`
	ApproverID string    `json:"approver_id"`
	Decision   string    `json:"decision"` // approved, rejected
	Cycle      int       `json:"cycle"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Stream distribuye eventos a todos los suscriptores activos.
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan ApprovalEvent
	next int
}

// NewStream inicializa un stream sin suscriptores.
func NewStream() *Stream {
	return &Stream{subs: make(map[int]chan ApprovalEvent)}
}

// Subscribe registra un suscriptor y devuelve el canal por el que recibirá
// eventos. El canal se cierra cuando el contexto termina.
func (s *Stream) Subscribe(ctx context.Context) <-chan ApprovalEvent {
	ch := make(chan ApprovalEvent, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish envía el evento a todos los suscriptores sin bloquear.
func (s *Stream) Publish(evt ApprovalEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- evt:
		default:
			// Suscriptor lento: se descarta el evento para no bloquear al publicador.
		}
	}
}
