package dto

import "time"

// CreateClientRequest alta de cliente (tenant).
type CreateClientRequest struct {
	Name             string `json:"name"`
	TaxID            string `json:"tax_id"`
	Type             string `json:"type"` // empresa | condominio
	AdministradoraID string `json:"administradora_id"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
}

// ClientResponse representación de un cliente.
type ClientResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	TaxID            string    `json:"tax_id"`
	Type             string    `json:"type"`
	AdministradoraID string    `json:"administradora_id,omitempty"`
	Address          string    `json:"address,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Email            string    `json:"email,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
