package port

import (
	"context"

	"github.com/google/uuid"

	"pulse-ads/internal/core/domain"
)

// AdUseCase matches clients to campaigns and records delivery events. This
// is the primary port into the application domain; mock implementations
// are generated from it for testing.
type AdUseCase interface {
	// ServeAd picks the best eligible campaign for the client, registers
	// the impression and returns the ad payload. Returns
	// domain.ErrClientNotFound or domain.ErrAdsNotFound when there is
	// nothing to serve.
	ServeAd(ctx context.Context, clientID uuid.UUID) (*AdResponse, error)

	// RegisterClick records a click-through for a previously shown ad.
	// Ordering, uniqueness and quota violations surface as the matching
	// domain errors.
	RegisterClick(ctx context.Context, adID, clientID uuid.UUID) error

	// SubmitFeedback stores a rating (1..5) with an optional comment.
	SubmitFeedback(ctx context.Context, adID, clientID uuid.UUID, rating int, comment *string) error
}

// AdResponse is the chosen-ad payload returned to the client. The ad id
// always equals the campaign id.
type AdResponse struct {
	AdID         uuid.UUID
	AdTitle      string
	AdText       string
	ImageURL     string
	AdvertiserID uuid.UUID
}

// StatsUseCase serves live spend and conversion statistics recomputed from
// the event ledger on every read.
type StatsUseCase interface {
	CampaignStats(ctx context.Context, campaignID uuid.UUID) (domain.Stats, error)
	AdvertiserStats(ctx context.Context, advertiserID uuid.UUID) (domain.Stats, error)
	CampaignDailyStats(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStats, error)
	AdvertiserDailyStats(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStats, error)
	ClientsStats(ctx context.Context) (domain.ClientStats, error)
	CampaignFeedbacks(ctx context.Context, campaignID uuid.UUID) (domain.FeedbackSummary, error)
}
