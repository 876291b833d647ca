package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulse-ads/internal/core/domain"
)

// ScoreRepository implements port.ScoreLookup over the ml_scores table.
type ScoreRepository struct {
	pool *pgxpool.Pool
}

// NewScoreRepository returns a new repository instance.
func NewScoreRepository(pool *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{pool: pool}
}

// GetScore returns the affinity score for the pair, or zero when no score
// has been uploaded.
func (r *ScoreRepository) GetScore(ctx context.Context, clientID, advertiserID uuid.UUID) (int, error) {
	var score int
	err := r.pool.QueryRow(ctx,
		`SELECT score FROM ml_scores WHERE client_id = $1 AND advertiser_id = $2`,
		clientID, advertiserID).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, domain.NewRepositoryError("get ml score", err)
	}
	return score, nil
}
