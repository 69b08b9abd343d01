package entity

import "time"

// Supplier representa un proveedor que recibe solicitudes de cotización.
type Supplier struct {
	ID        string
	ClientID  string
	Name      string
	TaxID     string
	Category  string // rubro: mantenimiento, limpieza, construcción, etc.
	Email     string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
