package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteItemRequest línea de una cotización nueva.
type QuoteItemRequest struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest alta de cotización. El total se calcula en el servidor
// a partir de las líneas; nunca se acepta del cliente.
type CreateQuoteRequest struct {
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	SupplierID   string             `json:"supplier_id"`
	CostCenterID string             `json:"cost_center_id"`
	Items        []QuoteItemRequest `json:"items"`
}

// QuoteItemResponse línea en respuestas.
type QuoteItemResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// QuoteResponse representación de una cotización.
type QuoteResponse struct {
	ID              string              `json:"id"`
	ClientID        string              `json:"client_id"`
	SupplierID      string              `json:"supplier_id,omitempty"`
	CostCenterID    string              `json:"cost_center_id,omitempty"`
	RequesterID     string              `json:"requester_id"`
	Title           string              `json:"title"`
	Description     string              `json:"description,omitempty"`
	Total           decimal.Decimal     `json:"total"`
	Status          string              `json:"status"`
	ApprovalLevelID string              `json:"approval_level_id,omitempty"`
	ApprovalCycle   int                 `json:"approval_cycle"`
	Items           []QuoteItemResponse `json:"items,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// QuoteListResponse listado paginado de cotizaciones.
type QuoteListResponse struct {
	Items []QuoteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
