package entity

import "time"

// CostCenter centro de costo al que se imputan cotizaciones aprobadas.
type CostCenter struct {
	ID        string
	ClientID  string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
