package postgres

import (
	"context"
	"fmt"

	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

var _ repository.RatingRepository = (*RatingRepo)(nil)

// RatingRepo implementación del puerto RatingRepository sobre PostgreSQL (usable con pool o tx).
type RatingRepo struct {
	q Querier
}

// NewRatingRepository construye el adaptador de persistencia para calificaciones. Pasar pool o tx (Querier).
func NewRatingRepository(q Querier) *RatingRepo {
	return &RatingRepo{q: q}
}

// Create persiste una calificación. El índice único (quote_id, user_id) evita
// calificar dos veces el mismo trabajo.
func (r *RatingRepo) Create(rating *entity.Rating) error {
	query := `
		INSERT INTO supplier_ratings (id, client_id, supplier_id, quote_id, user_id, score, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		rating.ID, rating.ClientID, rating.SupplierID, rating.QuoteID,
		rating.UserID, rating.Score, rating.Comment, rating.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rating: %w", err)
	}
	return nil
}

// ListBySupplier lista calificaciones de un proveedor, más recientes primero.
func (r *RatingRepo) ListBySupplier(supplierID string, limit, offset int) ([]*entity.Rating, error) {
	query := `
		SELECT id, client_id, supplier_id, quote_id, user_id, score, comment, created_at
		FROM supplier_ratings WHERE supplier_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, supplierID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		var rt entity.Rating
		if err := rows.Scan(
			&rt.ID, &rt.ClientID, &rt.SupplierID, &rt.QuoteID,
			&rt.UserID, &rt.Score, &rt.Comment, &rt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings = append(ratings, &rt)
	}
	return ratings, rows.Err()
}

// AverageBySupplier devuelve el promedio de score y la cantidad de calificaciones.
func (r *RatingRepo) AverageBySupplier(supplierID string) (float64, int, error) {
	query := `
		SELECT COALESCE(AVG(score), 0), COUNT(*)
		FROM supplier_ratings WHERE supplier_id = $1`
	var avg float64
	var count int
	err := r.q.QueryRow(context.Background(), query, supplierID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("average rating: %w", err)
	}
	return avg, count, nil
}
