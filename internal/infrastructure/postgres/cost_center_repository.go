package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo implementación del puerto CostCenterRepository sobre PostgreSQL (usable con pool o tx).
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository construye el adaptador de persistencia para centros de costo. Pasar pool o tx (Querier).
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// Create persiste un nuevo centro de costo.
func (r *CostCenterRepo) Create(cc *entity.CostCenter) error {
	query := `
		INSERT INTO cost_centers (id, client_id, code, name, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		cc.ID, cc.ClientID, cc.Code, cc.Name, cc.Active, cc.CreatedAt, cc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cost center: %w", err)
	}
	return nil
}

// ListByClient lista los centros de costo activos del cliente.
func (r *CostCenterRepo) ListByClient(clientID string) ([]*entity.CostCenter, error) {
	query := `
		SELECT id, client_id, code, name, active, created_at, updated_at
		FROM cost_centers WHERE client_id = $1 AND active = TRUE
		ORDER BY code ASC`
	rows, err := r.q.Query(context.Background(), query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()

	var centers []*entity.CostCenter
	for rows.Next() {
		var cc entity.CostCenter
		if err := rows.Scan(&cc.ID, &cc.ClientID, &cc.Code, &cc.Name, &cc.Active, &cc.CreatedAt, &cc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		centers = append(centers, &cc)
	}
	return centers, rows.Err()
}

// GetByCodeAndClient obtiene un centro de costo por código dentro del cliente.
func (r *CostCenterRepo) GetByCodeAndClient(code, clientID string) (*entity.CostCenter, error) {
	query := `
		SELECT id, client_id, code, name, active, created_at, updated_at
		FROM cost_centers WHERE code = $1 AND client_id = $2`
	var cc entity.CostCenter
	err := r.q.QueryRow(context.Background(), query, code, clientID).Scan(
		&cc.ID, &cc.ClientID, &cc.Code, &cc.Name, &cc.Active, &cc.CreatedAt, &cc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	return &cc, nil
}

// Deactivate marca el centro de costo como inactivo (soft delete).
func (r *CostCenterRepo) Deactivate(id, clientID string) (bool, error) {
	query := `
		UPDATE cost_centers
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND client_id = $2 AND active = TRUE`
	tag, err := r.q.Exec(context.Background(), query, id, clientID)
	if err != nil {
		return false, fmt.Errorf("deactivate cost center: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
