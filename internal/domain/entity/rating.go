package entity

import "time"

// Rating calificación de un proveedor por un trabajo cotizado (1 a 5).
type Rating struct {
	ID         string
	ClientID   string
	SupplierID string
	QuoteID    string
	UserID     string
	Score      int // 1..5
	Comment    string
	CreatedAt  time.Time
}
