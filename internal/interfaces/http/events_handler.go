package http

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/cotizapp/cotiz-api/internal/events"
)

// EventsHandler expone el stream de decisiones de aprobación por SSE.
type EventsHandler struct {
	stream *events.Stream
}

// NewEventsHandler construye el handler de eventos.
func NewEventsHandler(stream *events.Stream) *EventsHandler {
	return &EventsHandler{stream: stream}
}

// Subscribe godoc
// @Summary      Stream SSE de decisiones de aprobación del cliente
// @Description  Emite un evento approval_decision por cada decisión (humana o
// @Description  automática) sobre cotizaciones del cliente autenticado.
// @Tags         events
// @Produce      text/event-stream
// @Security     BearerAuth
// @Router       /api/events/approvals [get]
func (h *EventsHandler) Subscribe(c *fiber.Ctx) error {
	clientID := GetClientID(c)

	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	// El stream vive más allá del handler: no usar c.UserContext() (se libera al retornar).
	ctx, cancel := context.WithCancel(context.Background())
	ch := h.stream.Subscribe(ctx)

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		for evt := range ch {
			if evt.ClientID != clientID {
				continue
			}
			payload, err := json.Marshal(evt)
			if err != nil {
				continue
			}
			if _, err := fmt.Fprintf(w, "event: approval_decision\ndata: %s\n\n", payload); err != nil {
				return
			}
			if err := w.Flush(); err != nil {
				// Cliente desconectado
				return
			}
		}
	}))
	return nil
}
