package entity

import "time"

// Tipos de cliente (tenant).
const (
	ClientTypeEmpresa    = "empresa"
	ClientTypeCondominio = "condominio"
)

// Client representa un tenant: empresa o condominio que solicita cotizaciones.
// Puede estar agrupado bajo una administradora (AdministradoraID opcional).
type Client struct {
	ID               string
	Name             string
	TaxID            string // CNPJ/NIT según el país
	Type             string // empresa, condominio
	AdministradoraID string // vacío si el cliente no pertenece a una administradora
	Address          string
	Phone            string
	Email            string
	Status           string // active, inactive, suspended
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
