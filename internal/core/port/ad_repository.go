package port

import (
	"context"

	"github.com/google/uuid"

	"pulse-ads/internal/core/domain"
)

// ClientDirectory resolves clients by id. Returns domain.ErrClientNotFound
// when the client does not exist.
type ClientDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
}

// AdvertiserDirectory resolves advertisers by id. Returns
// domain.ErrAdvertiserNotFound when the advertiser does not exist.
type AdvertiserDirectory interface {
	AdvertiserExists(ctx context.Context, id uuid.UUID) error
}

// Candidate is a campaign that passed the targeting filter together with
// the event counts observed at filter time. The counts are a snapshot; a
// race against concurrent writers is resolved by the ledger's guarded
// writes, not here.
type Candidate struct {
	Campaign    domain.Campaign
	Impressions int
	Clicks      int
	Score       float64
}

// CampaignDirectory is the campaign store as seen by the ad engine.
type CampaignDirectory interface {
	// GetByID returns a campaign or domain.ErrCampaignNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	// GetTargetedCampaigns returns campaigns that are active on the given
	// day, demographically eligible for the client and still under both
	// delivery quotas, in stable creation order.
	GetTargetedCampaigns(ctx context.Context, client domain.Client, day int) ([]Candidate, error)
}

// ScoreLookup supplies the externally computed affinity score for a
// (client, advertiser) pair. Absent scores are reported as zero.
type ScoreLookup interface {
	GetScore(ctx context.Context, clientID, advertiserID uuid.UUID) (int, error)
}

// Clock exposes the simulated day counter. All date comparisons and event
// timestamps use this value, never wall-clock time.
type Clock interface {
	CurrentDay(ctx context.Context) (int, error)
	AdvanceDay(ctx context.Context, day int) (int, error)
}

// EventLedger is the system of record for impression, click and feedback
// events. Implementations must enforce uniqueness, ordering and quota
// ceilings with atomic conditional writes.
type EventLedger interface {
	// RegisterImpression stores at most one impression per
	// (campaign, client). A duplicate call and a lost quota race are both
	// silent no-ops; a missing campaign is domain.ErrCampaignNotFound.
	RegisterImpression(ctx context.Context, clientID, campaignID uuid.UUID, day int) error
	// RegisterClick stores at most one click per (campaign, client).
	// Returns domain.ErrNoImpression, domain.ErrDuplicateClick or
	// domain.ErrClicksLimitReached when the matching predicate fails.
	RegisterClick(ctx context.Context, clientID, campaignID uuid.UUID, day int) error
	// RegisterFeedback always inserts; feedback has no uniqueness.
	RegisterFeedback(ctx context.Context, clientID, campaignID uuid.UUID, day int, rating int, comment *string) error
}

// DailyCounts are event totals for one campaign on one simulated day.
type DailyCounts struct {
	Date        int
	Impressions int
	Clicks      int
}

// CampaignCounts are per-campaign event totals joined with the campaign
// attributes the aggregator needs to derive spend.
type CampaignCounts struct {
	CampaignID        uuid.UUID
	CostPerImpression float64
	CostPerClick      float64
	StartDate         int
	Impressions       int
	Clicks            int
}

// CampaignDailyCounts are CampaignCounts for a single day with events.
type CampaignDailyCounts struct {
	CampaignCounts
	Date int
}

// StatsReader supplies raw event counts for the statistics aggregator.
// Derived metrics are computed in the usecase, never stored.
type StatsReader interface {
	// CampaignEventCounts returns total unique impression/click counts for
	// one campaign.
	CampaignEventCounts(ctx context.Context, campaignID uuid.UUID) (domain.EventCounts, error)
	// CampaignDailyCounts returns one row per day that has events.
	CampaignDailyCounts(ctx context.Context, campaignID uuid.UUID) ([]DailyCounts, error)
	// AdvertiserCampaignCounts returns one row per campaign owned by the
	// advertiser, zero-valued when the campaign has no events.
	AdvertiserCampaignCounts(ctx context.Context, advertiserID uuid.UUID) ([]CampaignCounts, error)
	// AdvertiserDailyCounts returns one row per (campaign, day) that has
	// events across the advertiser's campaigns.
	AdvertiserDailyCounts(ctx context.Context, advertiserID uuid.UUID) ([]CampaignDailyCounts, error)
	// ClientsStats computes the demographic histogram over the full client
	// directory.
	ClientsStats(ctx context.Context) (domain.ClientStats, error)
	// CampaignFeedbacks returns the most recent feedback events for the
	// campaign, newest first, capped at limit.
	CampaignFeedbacks(ctx context.Context, campaignID uuid.UUID, limit int) ([]domain.Feedback, error)
}
