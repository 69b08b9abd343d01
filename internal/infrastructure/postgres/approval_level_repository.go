package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/cotizapp/cotiz-api/internal/domain"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/domain/repository"
)

var _ repository.ApprovalLevelRepository = (*ApprovalLevelRepo)(nil)

// ApprovalLevelRepo implementación del puerto ApprovalLevelRepository sobre PostgreSQL (usable con pool o tx).
type ApprovalLevelRepo struct {
	q Querier
}

// NewApprovalLevelRepository construye el adaptador de persistencia para niveles. Pasar pool o tx (Querier).
func NewApprovalLevelRepository(q Querier) *ApprovalLevelRepo {
	return &ApprovalLevelRepo{q: q}
}

const levelColumns = `id, client_id, name, order_level, amount_threshold, approvers, active, created_at, updated_at`

// Create persiste un nuevo nivel de aprobación. Approvers se guarda como text[].
func (r *ApprovalLevelRepo) Create(level *entity.ApprovalLevel) error {
	query := `
		INSERT INTO approval_levels (` + levelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		level.ID, level.ClientID, level.Name, level.OrderLevel, level.AmountThreshold,
		level.Approvers, level.Active, level.CreatedAt, level.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert approval level: %w", err)
	}
	return nil
}

// GetByID obtiene un nivel por ID, incluso inactivo (las cotizaciones históricas
// siguen referenciando niveles desactivados).
func (r *ApprovalLevelRepo) GetByID(id string) (*entity.ApprovalLevel, error) {
	query := `SELECT ` + levelColumns + ` FROM approval_levels WHERE id = $1`
	l, err := scanLevel(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get approval level: %w", err)
	}
	return l, nil
}

// ListActiveByClient lista los niveles activos del cliente, ascendente por umbral.
// El desempate por created_at deja el nivel más nuevo al final (gana ante umbrales duplicados).
func (r *ApprovalLevelRepo) ListActiveByClient(clientID string) ([]*entity.ApprovalLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM approval_levels
		WHERE client_id = $1 AND active = TRUE
		ORDER BY amount_threshold ASC, created_at ASC`
	return r.queryLevels(query, clientID)
}

// ListByClient lista todos los niveles del cliente, incluidos los inactivos.
func (r *ApprovalLevelRepo) ListByClient(clientID string) ([]*entity.ApprovalLevel, error) {
	query := `
		SELECT ` + levelColumns + `
		FROM approval_levels
		WHERE client_id = $1
		ORDER BY amount_threshold ASC, created_at ASC`
	return r.queryLevels(query, clientID)
}

// Update modifica nombre, orden, umbral y aprobadores del nivel.
func (r *ApprovalLevelRepo) Update(level *entity.ApprovalLevel) error {
	query := `
		UPDATE approval_levels
		SET name = $2, order_level = $3, amount_threshold = $4, approvers = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		level.ID, level.Name, level.OrderLevel, level.AmountThreshold, level.Approvers, level.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update approval level: %w", err)
	}
	return nil
}

// Deactivate marca el nivel como inactivo (soft delete). Nunca se borra la fila.
func (r *ApprovalLevelRepo) Deactivate(id, clientID string) (bool, error) {
	query := `
		UPDATE approval_levels
		SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND client_id = $2 AND active = TRUE`
	tag, err := r.q.Exec(context.Background(), query, id, clientID)
	if err != nil {
		return false, fmt.Errorf("deactivate approval level: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ExistsActiveThreshold indica si otro nivel activo del cliente ya usa el umbral.
func (r *ApprovalLevelRepo) ExistsActiveThreshold(clientID string, threshold decimal.Decimal, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM approval_levels
			WHERE client_id = $1 AND active = TRUE AND amount_threshold = $2 AND id <> $3
		)`
	var exists bool
	err := r.q.QueryRow(context.Background(), query, clientID, threshold, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check threshold exists: %w", err)
	}
	return exists, nil
}

func (r *ApprovalLevelRepo) queryLevels(query string, args ...any) ([]*entity.ApprovalLevel, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approval levels: %w", err)
	}
	defer rows.Close()

	var levels []*entity.ApprovalLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval level: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func scanLevel(row pgx.Row) (*entity.ApprovalLevel, error) {
	var l entity.ApprovalLevel
	err := row.Scan(
		&l.ID, &l.ClientID, &l.Name, &l.OrderLevel, &l.AmountThreshold,
		&l.Approvers, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
