package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	"github.com/cotizapp/cotiz-api/internal/domain"
)

// CostCenterHandler maneja centros de costo.
type CostCenterHandler struct {
	uc *usecase.CostCenterUseCase
}

// NewCostCenterHandler construye el handler de centros de costo.
func NewCostCenterHandler(uc *usecase.CostCenterUseCase) *CostCenterHandler {
	return &CostCenterHandler{uc: uc}
}

// Create godoc
// @Summary      Crear centro de costo
// @Tags         cost-centers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCostCenterRequest  true  "code, name"
// @Success      201   {object}  dto.CostCenterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/cost-centers [post]
func (h *CostCenterHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCostCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetClientID(c), in)
	if err != nil {
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "code y name son requeridos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CODE_EXISTS", Message: "ya existe un centro de costo con ese código"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar centros de costo activos
// @Tags         cost-centers
// @Produce      json
// @Success      200  {object}  dto.CostCenterListResponse
// @Security     BearerAuth
// @Router       /api/cost-centers [get]
func (h *CostCenterHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetClientID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar centro de costo (soft delete)
// @Tags         cost-centers
// @Produce      json
// @Param        id  path  string  true  "ID del centro de costo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/cost-centers/{id} [delete]
func (h *CostCenterHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(GetClientID(c), c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "centro de costo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
