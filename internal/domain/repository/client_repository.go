package repository

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// ClientRepository define el puerto de persistencia para clientes (tenants).
type ClientRepository interface {
	Create(client *entity.Client) error
	GetByID(id string) (*entity.Client, error)
	GetByTaxID(taxID string) (*entity.Client, error)
	List(limit, offset int) ([]*entity.Client, error)
}
