package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleGestor      = "gestor"
	RoleAprobador   = "aprobador"
	RoleSolicitante = "solicitante"
)

// User representa un usuario del sistema (pertenece a un Client).
type User struct {
	ID           string
	ClientID     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, gestor, aprobador, solicitante
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
