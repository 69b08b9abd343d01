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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `id, name, tax_id, type, administradora_id, address, phone, email, status, created_at, updated_at`

// Create persiste un nuevo cliente (tenant).
func (r *ClientRepo) Create(client *entity.Client) error {
	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		client.ID, client.Name, client.TaxID, client.Type, nullIfEmpty(client.AdministradoraID),
		client.Address, client.Phone, client.Email, client.Status, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	return r.getOne(query, id)
}

// GetByTaxID obtiene un cliente por identificación tributaria.
func (r *ClientRepo) GetByTaxID(taxID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE tax_id = $1`
	return r.getOne(query, taxID)
}

// List lista clientes con paginación.
func (r *ClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *ClientRepo) getOne(query string, arg any) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var administradoraID *string
	err := row.Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Type, &administradoraID,
		&c.Address, &c.Phone, &c.Email, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.AdministradoraID = derefStr(administradoraID)
	return &c, nil
}
