package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

// ClientUseCase aplica reglas de negocio para clientes (tenants).
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso con el puerto de persistencia.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create crea un nuevo cliente. Devuelve domain.ErrDuplicate si el tax_id ya existe.
func (uc *ClientUseCase) Create(in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	clientType := in.Type
	if clientType == "" {
		clientType = entity.ClientTypeEmpresa
	}
	if clientType != entity.ClientTypeEmpresa && clientType != entity.ClientTypeCondominio {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByTaxID(in.TaxID)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:               uuid.New().String(),
		Name:             in.Name,
		TaxID:            in.TaxID,
		Type:             clientType,
		AdministradoraID: in.AdministradoraID,
		Address:          in.Address,
		Phone:            in.Phone,
		Email:            in.Email,
		Status:           "active",
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente por ID. Devuelve domain.ErrNotFound si no existe.
func (uc *ClientUseCase) GetByID(id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes con paginación.
func (uc *ClientUseCase) List(limit, offset int) (*dto.ClientListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:               c.ID,
		Name:             c.Name,
		TaxID:            c.TaxID,
		Type:             c.Type,
		AdministradoraID: c.AdministradoraID,
		Address:          c.Address,
		Phone:            c.Phone,
		Email:            c.Email,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}
