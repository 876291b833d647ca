package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"pulse-ads/internal/core/domain"
)

// ledgerDB is the subset of pgxpool.Pool the ledger uses. Narrowed to an
// interface so tests can drive the transaction error paths.
type ledgerDB interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// LedgerRepository implements port.EventLedger using single conditional
// INSERT statements so existence, ordering and quota checks happen in the
// same atomic write as the insert itself. When a statement affects zero
// rows a diagnostic read inside the same transaction determines which
// predicate failed.
type LedgerRepository struct {
	db ledgerDB
}

// NewLedgerRepository returns a new repository instance.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: pool}
}

const insertImpressionSQL = `
	WITH campaign_stats AS (
		SELECT
			c.impressions_limit,
			COUNT(e.id) AS current_impressions,
			EXISTS (
				SELECT 1 FROM events
				WHERE campaign_id = $2 AND client_id = $1 AND event_type = $5
			) AS has_impression
		FROM campaigns c
		LEFT JOIN events e ON e.campaign_id = c.id AND e.event_type = $5
		WHERE c.id = $2
		GROUP BY c.id, c.impressions_limit
	)
	INSERT INTO events (id, campaign_id, client_id, event_type, date, created_at)
	SELECT $3, $2, $1, $5, $4, now()
	FROM campaign_stats
	WHERE NOT has_impression
	  AND current_impressions < impressions_limit
	RETURNING id`

const diagnoseImpressionSQL = `
	SELECT
		EXISTS (SELECT 1 FROM campaigns WHERE id = $2) AS campaign_exists,
		EXISTS (
			SELECT 1 FROM events
			WHERE campaign_id = $2 AND client_id = $1 AND event_type = $3
		) AS has_impression,
		COALESCE((SELECT impressions_limit FROM campaigns WHERE id = $2), 0) AS impressions_limit,
		(SELECT COUNT(*) FROM events WHERE campaign_id = $2 AND event_type = $3) AS current_impressions`

// RegisterImpression stores at most one impression per (campaign, client).
// A duplicate call is a silent no-op. Losing a quota race against the
// targeting filter's stale snapshot is also a no-op: the ad was already
// served, so registration bookkeeping must not fail the request.
func (r *LedgerRepository) RegisterImpression(ctx context.Context, clientID, campaignID uuid.UUID, day int) error {
	ev := domain.Event{
		ID:         uuid.New(),
		CampaignID: campaignID,
		ClientID:   clientID,
		Type:       domain.EventImpression,
		Date:       day,
	}
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.registerImpressionOnce(ctx, ev)
	})
	return wrapUnexpected("register impression", err)
}

// registerImpressionOnce uses a named return so the deferred commit error
// reaches the retry loop; serialization failures surface at COMMIT under
// serializable isolation.
func (r *LedgerRepository) registerImpressionOnce(ctx context.Context, ev domain.Event) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var eventID uuid.UUID
	err = tx.QueryRow(ctx, insertImpressionSQL,
		ev.ClientID, ev.CampaignID, ev.ID, ev.Date, ev.Type).Scan(&eventID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.diagnoseImpression(ctx, tx, ev)
	}
	return err
}

func (r *LedgerRepository) diagnoseImpression(ctx context.Context, tx pgx.Tx, ev domain.Event) error {
	var (
		campaignExists bool
		hasImpression  bool
		limit          int
		current        int
	)
	err := tx.QueryRow(ctx, diagnoseImpressionSQL, ev.ClientID, ev.CampaignID, domain.EventImpression).
		Scan(&campaignExists, &hasImpression, &limit, &current)
	if err != nil {
		return err
	}
	switch {
	case !campaignExists:
		return domain.ErrCampaignNotFound
	case hasImpression || current >= limit:
		// Duplicate registration or a lost quota race; both benign.
		return nil
	default:
		return errors.New("impression insert affected no rows for unknown reason")
	}
}

const insertClickSQL = `
	WITH campaign_stats AS (
		SELECT
			c.clicks_limit,
			COUNT(e.id) AS current_clicks,
			EXISTS (
				SELECT 1 FROM events
				WHERE campaign_id = $2 AND client_id = $1 AND event_type = $5
			) AS has_impression,
			EXISTS (
				SELECT 1 FROM events
				WHERE campaign_id = $2 AND client_id = $1 AND event_type = $6
			) AS has_click
		FROM campaigns c
		LEFT JOIN events e ON e.campaign_id = c.id AND e.event_type = $6
		WHERE c.id = $2
		GROUP BY c.id, c.clicks_limit
	)
	INSERT INTO events (id, campaign_id, client_id, event_type, date, created_at)
	SELECT $3, $2, $1, $6, $4, now()
	FROM campaign_stats
	WHERE has_impression
	  AND NOT has_click
	  AND current_clicks < clicks_limit
	RETURNING id`

const diagnoseClickSQL = `
	SELECT
		EXISTS (SELECT 1 FROM campaigns WHERE id = $2) AS campaign_exists,
		EXISTS (
			SELECT 1 FROM events
			WHERE campaign_id = $2 AND client_id = $1 AND event_type = $3
		) AS has_impression,
		EXISTS (
			SELECT 1 FROM events
			WHERE campaign_id = $2 AND client_id = $1 AND event_type = $4
		) AS has_click,
		COALESCE((SELECT clicks_limit FROM campaigns WHERE id = $2), 0) AS clicks_limit,
		(SELECT COUNT(*) FROM events WHERE campaign_id = $2 AND event_type = $4) AS current_clicks`

// RegisterClick stores at most one click per (campaign, client). The insert
// is guarded by all three predicates at once; on zero affected rows the
// diagnostic read raises the matching typed error.
func (r *LedgerRepository) RegisterClick(ctx context.Context, clientID, campaignID uuid.UUID, day int) error {
	ev := domain.Event{
		ID:         uuid.New(),
		CampaignID: campaignID,
		ClientID:   clientID,
		Type:       domain.EventClick,
		Date:       day,
	}
	err := withRetry(ctx, func(ctx context.Context) error {
		return r.registerClickOnce(ctx, ev)
	})
	return wrapUnexpected("register click", err)
}

// registerClickOnce uses a named return for the same commit-error reason as
// registerImpressionOnce.
func (r *LedgerRepository) registerClickOnce(ctx context.Context, ev domain.Event) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var eventID uuid.UUID
	err = tx.QueryRow(ctx, insertClickSQL,
		ev.ClientID, ev.CampaignID, ev.ID, ev.Date, domain.EventImpression, ev.Type).Scan(&eventID)
	if errors.Is(err, pgx.ErrNoRows) {
		err = r.diagnoseClick(ctx, tx, ev)
	}
	return err
}

func (r *LedgerRepository) diagnoseClick(ctx context.Context, tx pgx.Tx, ev domain.Event) error {
	var (
		campaignExists bool
		hasImpression  bool
		hasClick       bool
		limit          int
		current        int
	)
	err := tx.QueryRow(ctx, diagnoseClickSQL,
		ev.ClientID, ev.CampaignID, domain.EventImpression, domain.EventClick).
		Scan(&campaignExists, &hasImpression, &hasClick, &limit, &current)
	if err != nil {
		return err
	}
	switch {
	case !campaignExists:
		return domain.ErrCampaignNotFound
	case !hasImpression:
		return domain.ErrNoImpression
	case hasClick:
		return domain.ErrDuplicateClick
	case current >= limit:
		return domain.ErrClicksLimitReached
	default:
		return errors.New("click insert affected no rows for unknown reason")
	}
}

// RegisterFeedback inserts a feedback event. Feedback has no uniqueness, so
// a plain insert suffices; rating validation happens in the usecase.
func (r *LedgerRepository) RegisterFeedback(ctx context.Context, clientID, campaignID uuid.UUID, day int, rating int, comment *string) error {
	ev := domain.Event{
		ID:         uuid.New(),
		CampaignID: campaignID,
		ClientID:   clientID,
		Type:       domain.EventFeedback,
		Date:       day,
		Rating:     &rating,
		Comment:    comment,
	}
	err := withRetry(ctx, func(ctx context.Context) error {
		_, execErr := r.db.Exec(ctx, `
			INSERT INTO events (id, campaign_id, client_id, event_type, date, rating, comment, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
			ev.ID, ev.CampaignID, ev.ClientID, ev.Type, ev.Date, ev.Rating, ev.Comment)
		return execErr
	})
	return wrapUnexpected("register feedback", err)
}
