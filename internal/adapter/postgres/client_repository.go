package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulse-ads/internal/core/domain"
)

// ClientRepository implements port.ClientDirectory over PostgreSQL. Clients
// are read-only for the ad engine.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a new repository instance.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

// GetByID returns a client by id.
func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	var c domain.Client
	err := r.pool.QueryRow(ctx,
		`SELECT id, login, age, location, gender FROM clients WHERE id = $1`, id).
		Scan(&c.ID, &c.Login, &c.Age, &c.Location, &c.Gender)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrClientNotFound
	}
	if err != nil {
		return nil, domain.NewRepositoryError("get client", err)
	}
	return &c, nil
}
