package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
)

// StatsRepository implements port.StatsReader. It only ever reads committed
// snapshots; derived metrics are computed by the aggregator usecase.
type StatsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository returns a new repository instance.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepository {
	return &StatsRepository{pool: pool}
}

// CampaignEventCounts returns total unique impression/click counts for one
// campaign. A campaign with no events yields zeros.
func (r *StatsRepository) CampaignEventCounts(ctx context.Context, campaignID uuid.UUID) (domain.EventCounts, error) {
	var counts domain.EventCounts
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE event_type = $2),
			COUNT(*) FILTER (WHERE event_type = $3)
		FROM events
		WHERE campaign_id = $1`,
		campaignID, domain.EventImpression, domain.EventClick).
		Scan(&counts.Impressions, &counts.Clicks)
	if err != nil {
		return counts, domain.NewRepositoryError("campaign event counts", err)
	}
	return counts, nil
}

// CampaignDailyCounts returns one row per simulated day with events,
// ordered by day.
func (r *StatsRepository) CampaignDailyCounts(ctx context.Context, campaignID uuid.UUID) ([]port.DailyCounts, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			date,
			COUNT(*) FILTER (WHERE event_type = $2),
			COUNT(*) FILTER (WHERE event_type = $3)
		FROM events
		WHERE campaign_id = $1 AND event_type IN ($2, $3)
		GROUP BY date
		ORDER BY date`,
		campaignID, domain.EventImpression, domain.EventClick)
	if err != nil {
		return nil, domain.NewRepositoryError("campaign daily counts", err)
	}
	daily, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.DailyCounts, error) {
		var d port.DailyCounts
		err := row.Scan(&d.Date, &d.Impressions, &d.Clicks)
		return d, err
	})
	if err != nil {
		return nil, domain.NewRepositoryError("campaign daily counts", err)
	}
	return daily, nil
}

// AdvertiserCampaignCounts returns one row per campaign owned by the
// advertiser, zero-valued for campaigns without events.
func (r *StatsRepository) AdvertiserCampaignCounts(ctx context.Context, advertiserID uuid.UUID) ([]port.CampaignCounts, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			c.id, c.cost_per_impression, c.cost_per_click, c.start_date,
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
		WHERE c.advertiser_id = $1
		ORDER BY c.created_at, c.id`,
		advertiserID, domain.EventImpression, domain.EventClick)
	if err != nil {
		return nil, domain.NewRepositoryError("advertiser campaign counts", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.CampaignCounts, error) {
		var c port.CampaignCounts
		err := row.Scan(&c.CampaignID, &c.CostPerImpression, &c.CostPerClick,
			&c.StartDate, &c.Impressions, &c.Clicks)
		return c, err
	})
	if err != nil {
		return nil, domain.NewRepositoryError("advertiser campaign counts", err)
	}
	return counts, nil
}

// AdvertiserDailyCounts returns one row per (campaign, day) with events
// across the advertiser's campaigns, ordered by day.
func (r *StatsRepository) AdvertiserDailyCounts(ctx context.Context, advertiserID uuid.UUID) ([]port.CampaignDailyCounts, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			c.id, c.cost_per_impression, c.cost_per_click, c.start_date, e.date,
			COUNT(*) FILTER (WHERE e.event_type = $2),
			COUNT(*) FILTER (WHERE e.event_type = $3)
		FROM events e
		JOIN campaigns c ON c.id = e.campaign_id
		WHERE c.advertiser_id = $1 AND e.event_type IN ($2, $3)
		GROUP BY c.id, c.cost_per_impression, c.cost_per_click, c.start_date, e.date
		ORDER BY e.date, c.id`,
		advertiserID, domain.EventImpression, domain.EventClick)
	if err != nil {
		return nil, domain.NewRepositoryError("advertiser daily counts", err)
	}
	counts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (port.CampaignDailyCounts, error) {
		var c port.CampaignDailyCounts
		err := row.Scan(&c.CampaignID, &c.CostPerImpression, &c.CostPerClick,
			&c.StartDate, &c.Date, &c.Impressions, &c.Clicks)
		return c, err
	})
	if err != nil {
		return nil, domain.NewRepositoryError("advertiser daily counts", err)
	}
	return counts, nil
}

// clientDemographicsSQL buckets clients the same way domain.AgeBucket does;
// a test pins the CASE labels to the helper's output.
const clientDemographicsSQL = `
	SELECT
		gender,
		CASE
			WHEN age < 18 THEN '<18'
			WHEN age BETWEEN 18 AND 24 THEN '18-24'
			WHEN age BETWEEN 25 AND 34 THEN '25-34'
			WHEN age BETWEEN 35 AND 44 THEN '35-44'
			WHEN age BETWEEN 45 AND 54 THEN '45-54'
			ELSE '55+'
		END AS age_group,
		COUNT(*)
	FROM clients
	GROUP BY gender, age_group
	ORDER BY gender, age_group`

// ClientsStats computes the gender/age histogram, top locations and mean
// age over the full client directory.
func (r *StatsRepository) ClientsStats(ctx context.Context) (domain.ClientStats, error) {
	stats := domain.ClientStats{Demographics: make(map[string]map[string]int)}

	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(age), 0) FROM clients`).
		Scan(&stats.TotalClients, &stats.AverageAge)
	if err != nil {
		return stats, domain.NewRepositoryError("clients stats", err)
	}

	rows, err := r.pool.Query(ctx, clientDemographicsSQL)
	if err != nil {
		return stats, domain.NewRepositoryError("clients stats", err)
	}
	type demoRow struct {
		Gender   string
		AgeGroup string
		Count    int
	}
	demo, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (demoRow, error) {
		var d demoRow
		err := row.Scan(&d.Gender, &d.AgeGroup, &d.Count)
		return d, err
	})
	if err != nil {
		return stats, domain.NewRepositoryError("clients stats", err)
	}
	for _, d := range demo {
		if stats.Demographics[d.Gender] == nil {
			stats.Demographics[d.Gender] = make(map[string]int)
		}
		stats.Demographics[d.Gender][d.AgeGroup] = d.Count
	}

	rows, err = r.pool.Query(ctx, `
		SELECT location, COUNT(*) AS count
		FROM clients
		GROUP BY location
		ORDER BY count DESC
		LIMIT 10`)
	if err != nil {
		return stats, domain.NewRepositoryError("clients stats", err)
	}
	stats.TopLocations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LocationCount, error) {
		var l domain.LocationCount
		err := row.Scan(&l.Location, &l.Count)
		return l, err
	})
	if err != nil {
		return stats, domain.NewRepositoryError("clients stats", err)
	}
	return stats, nil
}

// CampaignFeedbacks returns the most recent feedback events for the
// campaign, newest first.
func (r *StatsRepository) CampaignFeedbacks(ctx context.Context, campaignID uuid.UUID, limit int) ([]domain.Feedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT client_id, campaign_id, rating, comment, created_at
		FROM events
		WHERE campaign_id = $1 AND event_type = $3
		ORDER BY created_at DESC
		LIMIT $2`, campaignID, limit, domain.EventFeedback)
	if err != nil {
		return nil, domain.NewRepositoryError("campaign feedbacks", err)
	}
	feedbacks, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Feedback, error) {
		var f domain.Feedback
		err := row.Scan(&f.ClientID, &f.CampaignID, &f.Rating, &f.Comment, &f.CreatedAt)
		return f, err
	})
	if err != nil {
		return nil, domain.NewRepositoryError("campaign feedbacks", err)
	}
	return feedbacks, nil
}
