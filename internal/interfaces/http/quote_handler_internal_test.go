package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizapp/cotiz-api/internal/domain"
)

// Mapeo de errores del flujo de aprobación a códigos HTTP: el frontend decide
// reintentar (409), corregir (400/422) o mostrar acceso denegado (403) según el código.
func TestQuoteError_MapeaErroresDeDominio(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no encontrada", domain.ErrNotFound, http.StatusNotFound},
		{"decision inválida", domain.ErrInvalidInput, http.StatusBadRequest},
		{"estado inválido", domain.ErrInvalidQuoteState, http.StatusConflict},
		{"no es aprobador", domain.ErrUnauthorizedApprover, http.StatusForbidden},
		{"sin niveles", domain.ErrNoLevelsConfigured, http.StatusUnprocessableEntity},
		{"error interno", errors.New("falla de DB"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/x", func(c *fiber.Ctx) error {
				return quoteError(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}
}
