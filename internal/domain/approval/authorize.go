package approval

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// IsAuthorizedApprover indica si el actor puede decidir en el nivel dado.
// La autorización es por nivel, no por cotización: un aprobador del nivel X
// decide sobre cualquier cotización resuelta a X para ese cliente.
// Retorna false (nunca error) ante nivel nil, actor vacío o lista de
// aprobadores vacía: la ausencia de autorización es el resultado negativo
// esperado, no una condición excepcional.
func IsAuthorizedApprover(level *entity.ApprovalLevel, actorID string) bool {
	return level.HasApprover(actorID)
}
