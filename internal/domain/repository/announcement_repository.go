package repository

import "github.com/cotizapp/cotiz-api/internal/domain/entity"

// AnnouncementRepository define el puerto de persistencia para comunicados.
type AnnouncementRepository interface {
	Create(a *entity.Announcement) error
	ListActiveByClient(clientID string, limit, offset int) ([]*entity.Announcement, error)
}
