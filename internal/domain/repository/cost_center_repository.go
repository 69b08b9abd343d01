package repository

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// CostCenterRepository define el puerto de persistencia para centros de costo.
type CostCenterRepository interface {
	Create(cc *entity.CostCenter) error
	ListByClient(clientID string) ([]*entity.CostCenter, error)
	GetByCodeAndClient(code, clientID string) (*entity.CostCenter, error)
	Deactivate(id, clientID string) (bool, error)
}
