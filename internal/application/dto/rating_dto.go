package dto

import "time"

// CreateRatingRequest calificación de un proveedor por un trabajo cotizado.
type CreateRatingRequest struct {
	QuoteID string `json:"quote_id"`
	Score   int    `json:"score"` // 1..5
	Comment string `json:"comment"`
}

// RatingResponse representación de una calificación.
type RatingResponse struct {
	ID         string    `json:"id"`
	SupplierID string    `json:"supplier_id"`
	QuoteID    string    `json:"quote_id"`
	UserID     string    `json:"user_id"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// RatingListResponse listado de calificaciones con promedio del proveedor.
type RatingListResponse struct {
	Items   []RatingResponse `json:"items"`
	Average float64          `json:"average"`
	Count   int              `json:"count"`
}
