package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
	"github.com/cotizapp/cotiz-api/pkg/normalize"
)

// SupplierUseCase alta, listado y búsqueda de proveedores del cliente.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso con el puerto de persistencia.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor del cliente.
func (uc *SupplierUseCase) Create(clientID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Category:  in.Category,
		Email:     in.Email,
		Phone:     in.Phone,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor validando pertenencia al cliente.
// Devuelve domain.ErrNotFound si no existe o pertenece a otro cliente.
func (uc *SupplierUseCase) GetByID(clientID, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores del cliente con paginación.
func (uc *SupplierUseCase) List(clientID string, limit, offset int) (*dto.SupplierListResponse, error) {
	list, err := uc.repo.ListByClient(clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Search busca proveedores por nombre o rubro, insensible a acentos y
// mayúsculas ("construcao" encuentra "Construções São Pedro").
func (uc *SupplierUseCase) Search(clientID, query string) (*dto.SupplierListResponse, error) {
	// La normalización es en memoria: el catálogo de proveedores por cliente
	// es chico y evita depender de extensiones de la DB (unaccent).
	list, err := uc.repo.ListByClient(clientID, 500, 0)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0)
	for _, s := range list {
		if normalize.Contains(s.Name, query) || normalize.Contains(s.Category, query) {
			items = append(items, *toSupplierResponse(s))
		}
	}
	return &dto.SupplierListResponse{Items: items}, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:        s.ID,
		ClientID:  s.ClientID,
		Name:      s.Name,
		TaxID:     s.TaxID,
		Category:  s.Category,
		Email:     s.Email,
		Phone:     s.Phone,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
