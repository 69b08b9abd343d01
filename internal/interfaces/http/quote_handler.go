package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizapp/cotiz-api/internal/application/approval"
	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	"github.com/cotizapp/cotiz-api/internal/domain"
)

// QuoteHandler maneja cotizaciones y su flujo de aprobación.
type QuoteHandler struct {
	quotes   *usecase.QuoteUseCase
	approval *approval.UseCase
}

// NewQuoteHandler construye el handler de cotizaciones.
func NewQuoteHandler(quotes *usecase.QuoteUseCase, approvalUC *approval.UseCase) *QuoteHandler {
	return &QuoteHandler{quotes: quotes, approval: approvalUC}
}

// Create godoc
// @Summary      Crear cotización (draft)
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "title, items"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.quotes.Create(c.UserContext(), GetClientID(c), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "título y al menos una línea válida son requeridos"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor o centro de costo inexistente"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cotización con líneas
// @Tags         quotes
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.quotes.GetByID(GetClientID(c), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cotizaciones del cliente
// @Tags         quotes
// @Produce      json
// @Param        status  query  string  false  "filtrar por estado"
// @Param        limit   query  int     false  "tamaño de página"
// @Param        offset  query  int     false  "desplazamiento"
// @Success      200  {object}  dto.QuoteListResponse
// @Security     BearerAuth
// @Router       /api/quotes [get]
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.quotes.List(GetClientID(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RequestApproval godoc
// @Summary      Solicitar aprobación de una cotización en draft
// @Description  Resuelve el nivel de aprobación por monto y congela el nivel en la
// @Description  cotización. Si el total queda por debajo de todos los umbrales, se
// @Description  aprueba automáticamente con registro de auditoría del sistema.
// @Tags         quotes
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/quotes/{id}/request-approval [post]
func (h *QuoteHandler) RequestApproval(c *fiber.Ctx) error {
	out, err := h.approval.RequestApproval(c.UserContext(), GetClientID(c), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(out)
}

// Decide godoc
// @Summary      Aprobar o rechazar una cotización pendiente
// @Description  Solo un miembro del nivel congelado puede decidir. Ante decisiones
// @Description  concurrentes gana exactamente una; la otra recibe 409.
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cotización"
// @Param        body  body  dto.DecideRequest  true  "decision: approved | rejected"
// @Success      200   {object}  dto.QuoteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/quotes/{id}/decision [post]
func (h *QuoteHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.approval.Decide(c.UserContext(), GetClientID(c), c.Params("id"), GetUserID(c), in.Decision, in.Comment)
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(out)
}

// Resubmit godoc
// @Summary      Reabrir una cotización rechazada como draft
// @Description  Limpia el nivel congelado e inicia un nuevo ciclo de aprobación.
// @Tags         quotes
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/quotes/{id}/resubmit [post]
func (h *QuoteHandler) Resubmit(c *fiber.Ctx) error {
	out, err := h.approval.Resubmit(c.UserContext(), GetClientID(c), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(out)
}

// ListDecisions godoc
// @Summary      Historial de decisiones de una cotización
// @Tags         quotes
// @Produce      json
// @Param        id  path  string  true  "ID de la cotización"
// @Success      200  {object}  dto.DecisionListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/quotes/{id}/decisions [get]
func (h *QuoteHandler) ListDecisions(c *fiber.Ctx) error {
	out, err := h.approval.ListDecisions(GetClientID(c), c.Params("id"))
	if err != nil {
		return quoteError(c, err)
	}
	return c.JSON(out)
}

// quoteError mapea errores del flujo de aprobación a códigos HTTP.
func quoteError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cotización no encontrada"})
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "decision debe ser approved o rejected"})
	case domain.ErrInvalidQuoteState:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "la cotización no está en un estado válido para esta operación"})
	case domain.ErrUnauthorizedApprover:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "NOT_AN_APPROVER", Message: "el usuario no es aprobador del nivel asignado"})
	case domain.ErrNoLevelsConfigured:
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "NO_LEVELS", Message: "el cliente no tiene niveles de aprobación configurados"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
