package postgres

import (
	"context"
	"fmt"

	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

var _ repository.AnnouncementRepository = (*AnnouncementRepo)(nil)

// AnnouncementRepo implementación del puerto AnnouncementRepository sobre PostgreSQL (usable con pool o tx).
type AnnouncementRepo struct {
	q Querier
}

// NewAnnouncementRepository construye el adaptador de persistencia para comunicados. Pasar pool o tx (Querier).
func NewAnnouncementRepository(q Querier) *AnnouncementRepo {
	return &AnnouncementRepo{q: q}
}

// Create persiste un comunicado.
func (r *AnnouncementRepo) Create(a *entity.Announcement) error {
	query := `
		INSERT INTO announcements (id, client_id, author_id, title, body, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.ClientID, a.AuthorID, a.Title, a.Body, a.Active, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

// ListActiveByClient lista comunicados activos del cliente, más recientes primero.
func (r *AnnouncementRepo) ListActiveByClient(clientID string, limit, offset int) ([]*entity.Announcement, error) {
	query := `
		SELECT id, client_id, author_id, title, body, active, created_at, updated_at
		FROM announcements WHERE client_id = $1 AND active = TRUE
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, clientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Announcement
	for rows.Next() {
		var a entity.Announcement
		if err := rows.Scan(&a.ID, &a.ClientID, &a.AuthorID, &a.Title, &a.Body, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
