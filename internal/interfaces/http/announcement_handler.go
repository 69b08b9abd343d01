package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	"github.com/cotizapp/cotiz-api/internal/domain"
)

// AnnouncementHandler maneja comunicados a los usuarios del cliente.
type AnnouncementHandler struct {
	uc *usecase.AnnouncementUseCase
}

// NewAnnouncementHandler construye el handler de comunicados.
func NewAnnouncementHandler(uc *usecase.AnnouncementUseCase) *AnnouncementHandler {
	return &AnnouncementHandler{uc: uc}
}

// Create godoc
// @Summary      Publicar comunicado
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAnnouncementRequest  true  "title, body"
// @Success      201   {object}  dto.AnnouncementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAnnouncementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetClientID(c), GetUserID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y body son requeridos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar comunicados activos del cliente
// @Tags         announcements
// @Produce      json
// @Param        limit   query  int  false  "tamaño de página"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {object}  dto.AnnouncementListResponse
// @Security     BearerAuth
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de paginación inválidos"})
	}
	page.DefaultPage()
	out, err := h.uc.List(GetClientID(c), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
