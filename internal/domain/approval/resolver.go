// Package approval contiene el núcleo puro del flujo de aprobación:
// resolución de nivel por monto y verificación de aprobadores.
// No tiene efectos secundarios; la persistencia vive en la capa de aplicación.
package approval

import (
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cotizapp/cotiz-api/internal/domain/entity"
)

// Resolver selecciona el nivel de aprobación aplicable a un monto.
type Resolver struct {
	log zerolog.Logger
}

// NewResolver construye el resolver. El logger solo se usa para la advertencia
// de umbrales duplicados (estado que la capa de escritura debería impedir).
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve devuelve el nivel activo con el mayor umbral que no excede amount
// ("cota inferior más ajustada"): una cotización de 6.000 con niveles en
// 1.000 y 5.000 resuelve al de 5.000.
//
// Retorna (nil, false) cuando el monto está por debajo de todos los umbrales:
// por política, esas cotizaciones no requieren aprobación (auto-aprobación).
// Los niveles inactivos se excluyen. Si dos niveles activos comparten umbral,
// se prefiere determinísticamente el de creación más reciente y se registra
// una advertencia de consistencia.
func (r *Resolver) Resolve(levels []*entity.ApprovalLevel, amount decimal.Decimal) (*entity.ApprovalLevel, bool) {
	active := make([]*entity.ApprovalLevel, 0, len(levels))
	for _, l := range levels {
		if l != nil && l.Active {
			active = append(active, l)
		}
	}
	if len(active) == 0 {
		return nil, false
	}

	// Orden ascendente por umbral; a igual umbral, el más reciente primero
	// para que al barrer de menor a mayor gane el más nuevo.
	sort.SliceStable(active, func(i, j int) bool {
		cmp := active[i].AmountThreshold.Cmp(active[j].AmountThreshold)
		if cmp != 0 {
			return cmp < 0
		}
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})

	var match *entity.ApprovalLevel
	for _, l := range active {
		if l.AmountThreshold.Cmp(amount) > 0 {
			break
		}
		if match != nil && match.AmountThreshold.Equal(l.AmountThreshold) {
			r.log.Warn().
				Str("client_id", l.ClientID).
				Str("threshold", l.AmountThreshold.String()).
				Str("level_kept", l.ID).
				Str("level_shadowed", match.ID).
				Msg("niveles activos con umbral duplicado; se usa el más reciente")
		}
		match = l
	}
	if match == nil {
		// Monto por debajo del umbral mínimo configurado: sin aprobación requerida.
		return nil, false
	}
	return match, true
}
