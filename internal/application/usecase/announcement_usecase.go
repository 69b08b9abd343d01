package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cotizapp/cotiz-api/internal/application/dto"
	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

// AnnouncementUseCase comunicados de administradores a usuarios del cliente.
type AnnouncementUseCase struct {
	repo repository.AnnouncementRepository
}

// NewAnnouncementUseCase construye el caso de uso con el puerto de persistencia.
func NewAnnouncementUseCase(repo repository.AnnouncementRepository) *AnnouncementUseCase {
	return &AnnouncementUseCase{repo: repo}
}

// Create publica un comunicado para los usuarios del cliente.
func (uc *AnnouncementUseCase) Create(clientID, authorID string, in dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if in.Title == "" || in.Body == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	a := &entity.Announcement{
		ID:        uuid.New().String(),
		ClientID:  clientID,
		AuthorID:  authorID,
		Title:     in.Title,
		Body:      in.Body,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(a); err != nil {
		return nil, err
	}
	return toAnnouncementResponse(a), nil
}

// List lista comunicados activos del cliente.
func (uc *AnnouncementUseCase) List(clientID string, limit, offset int) (*dto.AnnouncementListResponse, error) {
	list, err := uc.repo.ListActiveByClient(clientID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AnnouncementResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAnnouncementResponse(a))
	}
	return &dto.AnnouncementListResponse{Items: items}, nil
}

func toAnnouncementResponse(a *entity.Announcement) *dto.AnnouncementResponse {
	if a == nil {
		return nil
	}
	return &dto.AnnouncementResponse{
		ID:        a.ID,
		ClientID:  a.ClientID,
		AuthorID:  a.AuthorID,
		Title:     a.Title,
		Body:      a.Body,
		CreatedAt: a.CreatedAt,
	}
}
