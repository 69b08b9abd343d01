package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

// LevelUseCase administra la configuración de niveles de aprobación de un cliente.
// Hace cumplir en escritura los invariantes que el resolver asume en lectura:
// aprobadores no vacíos y umbral único entre niveles activos.
type LevelUseCase struct {
	repo repository.ApprovalLevelRepository
}

// NewLevelUseCase construye el caso de uso con el puerto de persistencia.
func NewLevelUseCase(repo repository.ApprovalLevelRepository) *LevelUseCase {
	return &LevelUseCase{repo: repo}
}

// Create crea un nivel de aprobación. Rechaza aprobadores vacíos (un nivel sin
// aprobadores nunca podría resolver una decisión) y umbrales duplicados.
func (uc *LevelUseCase) Create(clientID string, in dto.CreateApprovalLevelRequest) (*dto.ApprovalLevelResponse, error) {
	if err := validateLevelInput(in.Name, in.AmountThreshold, in.Approvers); err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsActiveThreshold(clientID, in.AmountThreshold, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	level := &entity.ApprovalLevel{
		ID:              uuid.New().String(),
		ClientID:        clientID,
		Name:            in.Name,
		OrderLevel:      in.OrderLevel,
		AmountThreshold: in.AmountThreshold,
		Approvers:       dedupeApprovers(in.Approvers),
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(level); err != nil {
		return nil, err
	}
	return toLevelResponse(level), nil
}

// Update edita un nivel existente del cliente con las mismas validaciones del alta.
func (uc *LevelUseCase) Update(clientID, id string, in dto.UpdateApprovalLevelRequest) (*dto.ApprovalLevelResponse, error) {
	level, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if level == nil || level.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	if err := validateLevelInput(in.Name, in.AmountThreshold, in.Approvers); err != nil {
		return nil, err
	}
	exists, err := uc.repo.ExistsActiveThreshold(clientID, in.AmountThreshold, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	level.Name = in.Name
	level.OrderLevel = in.OrderLevel
	level.AmountThreshold = in.AmountThreshold
	level.Approvers = dedupeApprovers(in.Approvers)
	level.UpdatedAt = time.Now()
	if err := uc.repo.Update(level); err != nil {
		return nil, err
	}
	return toLevelResponse(level), nil
}

// List lista los niveles del cliente. Con includeInactive se incluyen los
// desactivados (para que el panel muestre el histórico).
func (uc *LevelUseCase) List(clientID string, includeInactive bool) (*dto.ApprovalLevelListResponse, error) {
	var (
		list []*entity.ApprovalLevel
		err  error
	)
	if includeInactive {
		list, err = uc.repo.ListByClient(clientID)
	} else {
		list, err = uc.repo.ListActiveByClient(clientID)
	}
	if err != nil {
		return nil, err
	}
	items := make([]dto.ApprovalLevelResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLevelResponse(l))
	}
	return &dto.ApprovalLevelListResponse{Items: items}, nil
}

// Deactivate desactiva el nivel (soft delete): las cotizaciones históricas
// siguen mostrando el nivel que les aplicó.
func (uc *LevelUseCase) Deactivate(clientID, id string) error {
	ok, err := uc.repo.Deactivate(id, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func validateLevelInput(name string, threshold decimal.Decimal, approvers []string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	if threshold.IsNegative() {
		return domain.ErrInvalidInput
	}
	if len(dedupeApprovers(approvers)) == 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

// dedupeApprovers elimina duplicados y entradas vacías preservando el orden.
func dedupeApprovers(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out
}

func toLevelResponse(l *entity.ApprovalLevel) *dto.ApprovalLevelResponse {
	if l == nil {
		return nil
	}
	return &dto.ApprovalLevelResponse{
		ID:              l.ID,
		ClientID:        l.ClientID,
		Name:            l.Name,
		OrderLevel:      l.OrderLevel,
		AmountThreshold: l.AmountThreshold,
		Approvers:       l.Approvers,
		Active:          l.Active,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
