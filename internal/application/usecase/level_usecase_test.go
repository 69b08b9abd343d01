package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
)

// memLevelRepo fake en memoria del puerto ApprovalLevelRepository.
type memLevelRepo struct {
	levels map[string]*entity.ApprovalLevel
}

func newMemLevelRepo() *memLevelRepo {
	return &memLevelRepo{levels: make(map[string]*entity.ApprovalLevel)}
}

func (r *memLevelRepo) Create(l *entity.ApprovalLevel) error {
	cp := *l
	r.levels[l.ID] = &cp
	return nil
}

func (r *memLevelRepo) GetByID(id string) (*entity.ApprovalLevel, error) {
	l, ok := r.levels[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLevelRepo) ListActiveByClient(clientID string) ([]*entity.ApprovalLevel, error) {
	var out []*entity.ApprovalLevel
	for _, l := range r.levels {
		if l.ClientID == clientID && l.Active {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLevelRepo) ListByClient(clientID string) ([]*entity.ApprovalLevel, error) {
	var out []*entity.ApprovalLevel
	for _, l := range r.levels {
		if l.ClientID == clientID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memLevelRepo) Update(l *entity.ApprovalLevel) error { return r.Create(l) }

func (r *memLevelRepo) Deactivate(id, clientID string) (bool, error) {
	l, ok := r.levels[id]
	if !ok || l.ClientID != clientID {
		return false, nil
	}
	l.Active = false
	return true, nil
}

func (r *memLevelRepo) ExistsActiveThreshold(clientID string, threshold decimal.Decimal, excludeID string) (bool, error) {
	for _, l := range r.levels {
		if l.ClientID == clientID && l.Active && l.ID != excludeID && l.AmountThreshold.Equal(threshold) {
			return true, nil
		}
	}
	return false, nil
}

func TestLevelCreate_RechazaAprobadoresVacios(t *testing.T) {
	uc := usecase.NewLevelUseCase(newMemLevelRepo())

	_, err := uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       nil,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un nivel sin aprobadores nunca podría resolver una decisión")

	// Entradas vacías tampoco cuentan como aprobadores.
	_, err = uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       []string{"", ""},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLevelCreate_RechazaUmbralNegativo(t *testing.T) {
	uc := usecase.NewLevelUseCase(newMemLevelRepo())

	_, err := uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(-1),
		Approvers:       []string{"u1"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLevelCreate_RechazaUmbralDuplicado(t *testing.T) {
	uc := usecase.NewLevelUseCase(newMemLevelRepo())

	_, err := uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       []string{"u1"},
	})
	require.NoError(t, err)

	_, err = uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Directorio",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       []string{"u2"},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate,
		"dos niveles activos no pueden compartir umbral")
}

func TestLevelCreate_DeduplicaAprobadores(t *testing.T) {
	uc := usecase.NewLevelUseCase(newMemLevelRepo())

	out, err := uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       []string{"u1", "u1", "u2", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, out.Approvers)
	assert.True(t, out.Active)
}

func TestLevelDeactivate_SoftDelete(t *testing.T) {
	repo := newMemLevelRepo()
	uc := usecase.NewLevelUseCase(repo)

	created, err := uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       []string{"u1"},
	})
	require.NoError(t, err)

	require.NoError(t, uc.Deactivate("c1", created.ID))

	// El nivel sigue existiendo (las cotizaciones históricas lo referencian)
	// pero ya no aparece entre los activos.
	stored, _ := repo.GetByID(created.ID)
	require.NotNil(t, stored)
	assert.False(t, stored.Active)

	active, err := uc.List("c1", false)
	require.NoError(t, err)
	assert.Empty(t, active.Items)

	all, err := uc.List("c1", true)
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)

	// Liberado el umbral, se puede crear un nivel nuevo con el mismo monto.
	_, err = uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia v2",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       []string{"u2"},
	})
	assert.NoError(t, err)
}

func TestLevelUpdate_ValidaPertenencia(t *testing.T) {
	uc := usecase.NewLevelUseCase(newMemLevelRepo())

	created, err := uc.Create("c1", dto.CreateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(1000),
		Approvers:       []string{"u1"},
	})
	require.NoError(t, err)

	_, err = uc.Update("otro-cliente", created.ID, dto.UpdateApprovalLevelRequest{
		Name:            "Gerencia",
		AmountThreshold: decimal.NewFromInt(2000),
		Approvers:       []string{"u1"},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "un cliente no puede editar niveles ajenos")
}
