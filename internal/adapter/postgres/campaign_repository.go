package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
)

// CampaignRepository implements port.CampaignDirectory, port.ClientDirectory
// and port.AdvertiserDirectory over PostgreSQL.
type CampaignRepository struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

const campaignColumns = `
	c.id, c.advertiser_id, c.impressions_limit, c.clicks_limit,
	c.cost_per_impression, c.cost_per_click, c.ad_title, c.ad_text,
	c.start_date, c.end_date, c.gender, c.age_from, c.age_to,
	c.location, c.image_url`

func scanCampaign(row pgx.Row) (domain.Campaign, error) {
	var (
		c      domain.Campaign
		gender *string
	)
	err := row.Scan(
		&c.ID,
		&c.AdvertiserID,
		&c.ImpressionsLimit,
		&c.ClicksLimit,
		&c.CostPerImpression,
		&c.CostPerClick,
		&c.AdTitle,
		&c.AdText,
		&c.StartDate,
		&c.EndDate,
		&gender,
		&c.Targeting.AgeFrom,
		&c.Targeting.AgeTo,
		&c.Targeting.Location,
		&c.ImageURL,
	)
	if err != nil {
		return c, err
	}
	if gender != nil {
		g := domain.TargetingGender(*gender)
		c.Targeting.Gender = &g
	}
	return c, nil
}

// GetByID returns a campaign by id.
func (r *CampaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+campaignColumns+` FROM campaigns c WHERE c.id = $1`, id)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCampaignNotFound
	}
	if err != nil {
		return nil, domain.NewRepositoryError("get campaign", err)
	}
	return &c, nil
}

// GetTargetedCampaigns returns campaigns eligible for the client on the
// given simulated day. SQL narrows to date-active campaigns still under
// both quotas; the demographic match runs in Go on the loaded rows. The
// counts are an unlocked snapshot, so a concurrent writer may invalidate
// them; the ledger's guarded writes resolve that race.
func (r *CampaignRepository) GetTargetedCampaigns(ctx context.Context, client domain.Client, day int) ([]port.Candidate, error) {
	query := `
		SELECT` + campaignColumns + `,
			COALESCE(e.impressions, 0),
			COALESCE(e.clicks, 0)
		FROM campaigns c
		LEFT JOIN (
			SELECT campaign_id,
				COUNT(*) FILTER (WHERE event_type = $2) AS impressions,
				COUNT(*) FILTER (WHERE event_type = $3) AS clicks
			FROM events
			GROUP BY campaign_id
		) e ON e.campaign_id = c.id
		WHERE c.start_date <= $1 AND c.end_date >= $1
		  AND COALESCE(e.impressions, 0) < c.impressions_limit
		  AND COALESCE(e.clicks, 0) < c.clicks_limit
		ORDER BY c.created_at, c.id`

	rows, err := r.pool.Query(ctx, query, day, domain.EventImpression, domain.EventClick)
	if err != nil {
		return nil, domain.NewRepositoryError("get targeted campaigns", err)
	}
	raw, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.Candidate, error) {
		var (
			cand   port.Candidate
			gender *string
		)
		err := row.Scan(
			&cand.Campaign.ID,
			&cand.Campaign.AdvertiserID,
			&cand.Campaign.ImpressionsLimit,
			&cand.Campaign.ClicksLimit,
			&cand.Campaign.CostPerImpression,
			&cand.Campaign.CostPerClick,
			&cand.Campaign.AdTitle,
			&cand.Campaign.AdText,
			&cand.Campaign.StartDate,
			&cand.Campaign.EndDate,
			&gender,
			&cand.Campaign.Targeting.AgeFrom,
			&cand.Campaign.Targeting.AgeTo,
			&cand.Campaign.Targeting.Location,
			&cand.Campaign.ImageURL,
			&cand.Impressions,
			&cand.Clicks,
		)
		if gender != nil {
			g := domain.TargetingGender(*gender)
			cand.Campaign.Targeting.Gender = &g
		}
		return cand, err
	})
	if err != nil {
		return nil, domain.NewRepositoryError("get targeted campaigns", err)
	}

	candidates := make([]port.Candidate, 0, len(raw))
	for _, cand := range raw {
		if !cand.Campaign.Targeting.Matches(client) {
			continue
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// AdvertiserExists reports domain.ErrAdvertiserNotFound when no advertiser
// with the given id exists.
func (r *CampaignRepository) AdvertiserExists(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM advertisers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return domain.NewRepositoryError("advertiser exists", err)
	}
	if !exists {
		return domain.ErrAdvertiserNotFound
	}
	return nil
}
