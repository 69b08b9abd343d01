package approval_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizapp/cotiz-api/internal/domain/approval"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
)

func level(id string, threshold int64, active bool, createdAt time.Time) *entity.ApprovalLevel {
	return &entity.ApprovalLevel{
		ID:              id,
		ClientID:        "client-1",
		Name:            "Nivel " + id,
		AmountThreshold: decimal.NewFromInt(threshold),
		Approvers:       []string{"u1"},
		Active:          active,
		CreatedAt:       createdAt,
	}
}

func newResolver() *approval.Resolver {
	return approval.NewResolver(zerolog.Nop())
}

// Selección monótona: con umbrales t1 < t2 < ... < tn el resolver devuelve
// el mayor ti <= monto.
func TestResolver_SeleccionaCotaInferiorMasAjustada(t *testing.T) {
	now := time.Now()
	levels := []*entity.ApprovalLevel{
		level("l1", 1000, true, now),
		level("l2", 5000, true, now),
		level("l3", 20000, true, now),
	}

	cases := []struct {
		name   string
		amount int64
		wantID string
	}{
		{"justo en el umbral mínimo", 1000, "l1"},
		{"entre primer y segundo nivel", 4000, "l1"},
		{"justo en el segundo umbral", 5000, "l2"},
		{"entre segundo y tercero", 19999, "l2"},
		{"por encima de todos", 1_000_000, "l3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := newResolver().Resolve(levels, decimal.NewFromInt(tc.amount))
			require.True(t, ok, "debe resolver un nivel")
			assert.Equal(t, tc.wantID, got.ID)
		})
	}
}

// Monto por debajo de todos los umbrales: no hay nivel aplicable (auto-aprobación).
// Es una rama normal del flujo, no un error.
func TestResolver_MontoBajoTodosLosUmbrales(t *testing.T) {
	levels := []*entity.ApprovalLevel{level("l1", 1000, true, time.Now())}

	got, ok := newResolver().Resolve(levels, decimal.NewFromInt(500))
	assert.False(t, ok, "no debe aplicar ningún nivel")
	assert.Nil(t, got)
}

func TestResolver_SinNiveles(t *testing.T) {
	got, ok := newResolver().Resolve(nil, decimal.NewFromInt(500))
	assert.False(t, ok)
	assert.Nil(t, got)
}

// Los niveles inactivos (soft delete) se excluyen de la resolución.
func TestResolver_IgnoraNivelesInactivos(t *testing.T) {
	now := time.Now()
	levels := []*entity.ApprovalLevel{
		level("l1", 1000, true, now),
		level("l2", 5000, false, now), // desactivado
	}

	got, ok := newResolver().Resolve(levels, decimal.NewFromInt(9000))
	require.True(t, ok)
	assert.Equal(t, "l1", got.ID, "el nivel inactivo no debe resolverse aunque su umbral calce mejor")
}

func TestResolver_TodosInactivos(t *testing.T) {
	levels := []*entity.ApprovalLevel{level("l1", 1000, false, time.Now())}

	_, ok := newResolver().Resolve(levels, decimal.NewFromInt(2000))
	assert.False(t, ok)
}

// Umbrales duplicados (estado que la escritura debería impedir): gana
// determinísticamente el nivel creado más recientemente.
func TestResolver_UmbralDuplicadoPrefiereMasReciente(t *testing.T) {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	levels := []*entity.ApprovalLevel{
		level("viejo", 1000, true, base),
		level("nuevo", 1000, true, base.Add(time.Hour)),
	}

	got, ok := newResolver().Resolve(levels, decimal.NewFromInt(1500))
	require.True(t, ok)
	assert.Equal(t, "nuevo", got.ID)

	// Mismo resultado con el slice en otro orden.
	got2, ok := newResolver().Resolve([]*entity.ApprovalLevel{levels[1], levels[0]}, decimal.NewFromInt(1500))
	require.True(t, ok)
	assert.Equal(t, "nuevo", got2.ID)
}

// Montos con decimales: el umbral es inclusivo.
func TestResolver_UmbralInclusivoConDecimales(t *testing.T) {
	now := time.Now()
	levels := []*entity.ApprovalLevel{level("l1", 1000, true, now)}

	justBelow := decimal.RequireFromString("999.99")
	_, ok := newResolver().Resolve(levels, justBelow)
	assert.False(t, ok)

	exact := decimal.RequireFromString("1000.00")
	got, ok := newResolver().Resolve(levels, exact)
	require.True(t, ok)
	assert.Equal(t, "l1", got.ID)
}
