package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores del flujo de aprobación.
	// ErrNoLevelsConfigured: el cliente no tiene ningún nivel activo cuando se requiere uno.
	ErrNoLevelsConfigured = errors.New("el cliente no tiene niveles de aprobación configurados")
	// ErrInvalidQuoteState: la cotización no está en el estado requerido para la operación
	// (por ejemplo, decidir sobre una cotización ya decidida). Seguro de reintentar tras releer.
	ErrInvalidQuoteState = errors.New("la cotización no está en un estado válido para esta operación")
	// ErrUnauthorizedApprover: el actor no es miembro del nivel resuelto. No se reintenta.
	ErrUnauthorizedApprover = errors.New("el usuario no es aprobador del nivel asignado")
)
