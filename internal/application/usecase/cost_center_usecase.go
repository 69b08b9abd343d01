package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

// CostCenterUseCase administra centros de costo del cliente.
type CostCenterUseCase struct {
	repo repository.CostCenterRepository
}

// NewCostCenterUseCase construye el caso de uso con el puerto de persistencia.
func NewCostCenterUseCase(repo repository.CostCenterRepository) *CostCenterUseCase {
	return &CostCenterUseCase{repo: repo}
}

// Create crea un centro de costo. Devuelve ErrDuplicate si el código ya existe en el cliente.
func (uc *CostCenterUseCase) Create(clientID string, in dto.CreateCostCenterRequest) (*dto.CostCenterResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCodeAndClient(in.Code, clientID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cc := &entity.CostCenter{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Code:      in.Code,
		Name:      in.Name,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cc); err != nil {
		return nil, err
	}
	return toCostCenterResponse(cc), nil
}

// List lista los centros de costo del cliente.
func (uc *CostCenterUseCase) List(clientID string) (*dto.CostCenterListResponse, error) {
	list, err := uc.repo.ListByClient(clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CostCenterResponse, 0, len(list))
	for _, cc := range list {
		items = append(items, *toCostCenterResponse(cc))
	}
	return &dto.CostCenterListResponse{Items: items}, nil
}

// Deactivate desactiva el centro de costo (soft delete).
func (uc *CostCenterUseCase) Deactivate(clientID, id string) error {
	ok, err := uc.repo.Deactivate(id, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func toCostCenterResponse(cc *entity.CostCenter) *dto.CostCenterResponse {
	if cc == nil {
		return nil
	}
	return &dto.CostCenterResponse{
		ID:        cc.ID,
		ClientID:  cc.ClientID,
		Code:      cc.Code,
		Name:      cc.Name,
		Active:    cc.Active,
		CreatedAt: cc.CreatedAt,
	}
}
