package repository

import (
	"github.com/shopspring/decimal"

	"github.com/cotizapp/cotiz-api/internal/domain/entity"
)

// ApprovalLevelRepository define el puerto de persistencia para niveles de aprobación.
type ApprovalLevelRepository interface {
	Create(level *entity.ApprovalLevel) error
	// GetByID devuelve el nivel aunque esté inactivo: las cotizaciones históricas
	// siguen referenciando niveles desactivados.
	GetByID(id string) (*entity.ApprovalLevel, error)
	// ListActiveByClient devuelve los niveles activos del cliente (orden ascendente por umbral).
	ListActiveByClient(clientID string) ([]*entity.ApprovalLevel, error)
	ListByClient(clientID string) ([]*entity.ApprovalLevel, error)
	Update(level *entity.ApprovalLevel) error
	// Deactivate marca el nivel como inactivo (soft delete). Nunca se borra la fila.
	Deactivate(id, clientID string) (bool, error)
	// ExistsActiveThreshold indica si otro nivel activo del cliente ya usa el umbral
	// (chequeo de unicidad en escritura; excludeID permite excluir el nivel que se edita).
	ExistsActiveThreshold(clientID string, threshold decimal.Decimal, excludeID string) (bool, error)
}
