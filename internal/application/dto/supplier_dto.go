package dto

import "time"

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name     string `json:"name"`
	TaxID    string `json:"tax_id"`
	Category string `json:"category"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// SupplierResponse representación de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Name      string    `json:"name"`
	TaxID     string    `json:"tax_id,omitempty"`
	Category  string    `json:"category,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierListResponse listado de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
