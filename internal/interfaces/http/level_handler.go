package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	"github.com/cotizapp/cotiz-api/internal/domain"
)

// LevelHandler maneja la configuración de niveles de aprobación.
type LevelHandler struct {
	uc *usecase.LevelUseCase
}

// NewLevelHandler construye el handler de niveles.
func NewLevelHandler(uc *usecase.LevelUseCase) *LevelHandler {
	return &LevelHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nivel de aprobación
// @Tags         levels
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateApprovalLevelRequest  true  "name, amount_threshold, approvers"
// @Success      201   {object}  dto.ApprovalLevelResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/approval-levels [post]
func (h *LevelHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApprovalLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetClientID(c), in)
	if err != nil {
		return levelError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar nivel de aprobación
// @Tags         levels
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del nivel"
// @Param        body  body  dto.UpdateApprovalLevelRequest  true  "campos a editar"
// @Success      200   {object}  dto.ApprovalLevelResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/approval-levels/{id} [put]
func (h *LevelHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateApprovalLevelRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetClientID(c), c.Params("id"), in)
	if err != nil {
		return levelError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar niveles de aprobación del cliente
// @Tags         levels
// @Produce      json
// @Param        include_inactive  query  bool  false  "incluir niveles desactivados"
// @Success      200  {object}  dto.ApprovalLevelListResponse
// @Security     BearerAuth
// @Router       /api/approval-levels [get]
func (h *LevelHandler) List(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive", false)
	out, err := h.uc.List(GetClientID(c), includeInactive)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar nivel (soft delete)
// @Tags         levels
// @Produce      json
// @Param        id  path  string  true  "ID del nivel"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/approval-levels/{id} [delete]
func (h *LevelHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetClientID(c), c.Params("id")); err != nil {
		return levelError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func levelError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "nombre, umbral no negativo y al menos un aprobador son requeridos"})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "THRESHOLD_EXISTS", Message: "ya existe un nivel activo con ese umbral"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "nivel no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
