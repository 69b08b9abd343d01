package repository

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	ListByClient(clientID string, limit, offset int) ([]*entity.Supplier, error)
}
