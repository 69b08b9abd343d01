package dto

import "time"

// CreateCostCenterRequest alta de centro de costo.
type CreateCostCenterRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// CostCenterResponse representación de un centro de costo.
type CostCenterResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CostCenterListResponse listado de centros de costo.
type CostCenterListResponse struct {
	Items []CostCenterResponse `json:"items"`
}
