package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

// RatingUseCase calificaciones de proveedores por trabajos cotizados.
type RatingUseCase struct {
	ratingRepo   repository.RatingRepository
	supplierRepo repository.SupplierRepository
	quoteRepo    repository.QuoteRepository
}

// NewRatingUseCase construye el caso de uso.
func NewRatingUseCase(
	ratingRepo repository.RatingRepository,
	supplierRepo repository.SupplierRepository,
	quoteRepo repository.QuoteRepository,
) *RatingUseCase {
	return &RatingUseCase{ratingRepo: ratingRepo, supplierRepo: supplierRepo, quoteRepo: quoteRepo}
}

// Create califica a un proveedor por una cotización aprobada del cliente.
func (uc *RatingUseCase) Create(clientID, userID, supplierID string, in dto.CreateRatingRequest) (*dto.RatingResponse, error) {
	if in.Score < 1 || in.Score > 5 {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	quote, err := uc.quoteRepo.GetByID(in.QuoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil || quote.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	// Solo se califica trabajo efectivamente contratado.
	if quote.Status != entity.QuoteStatusApproved {
		return nil, domain.ErrConflict
	}
	rating := &entity.Rating{
		ID:         uuid.New().String(),
		ClientID:   clientID,
		SupplierID: supplierID,
		QuoteID:    in.QuoteID,
		UserID:     userID,
		Score:      in.Score,
		Comment:    in.Comment,
		CreatedAt:  time.Now(),
	}
	if err := uc.ratingRepo.Create(rating); err != nil {
		return nil, err
	}
	return toRatingResponse(rating), nil
}

// ListBySupplier lista las calificaciones del proveedor con su promedio.
func (uc *RatingUseCase) ListBySupplier(clientID, supplierID string, limit, offset int) (*dto.RatingListResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(supplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || supplier.ClientID != clientID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.ratingRepo.ListBySupplier(supplierID, limit, offset)
	if err != nil {
		return nil, err
	}
	avg, count, err := uc.ratingRepo.AverageBySupplier(supplierID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RatingResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toRatingResponse(r))
	}
	return &dto.RatingListResponse{Items: items, Average: avg, Count: count}, nil
}

func toRatingResponse(r *entity.Rating) *dto.RatingResponse {
	if r == nil {
		return nil
	}
	return &dto.RatingResponse{
		ID:         r.ID,
		SupplierID: r.SupplierID,
		QuoteID:    r.QuoteID,
		UserID:     r.UserID,
		Score:      r.Score,
		Comment:    r.Comment,
		CreatedAt:  r.CreatedAt,
	}
}
