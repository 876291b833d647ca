package usecase

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
)

// AdUseCase matches clients to campaigns and records delivery events. It
// orchestrates the directories, the scoring pass and the event ledger to
// implement the port.AdUseCase interface.
//
// Two process-wide mutexes serialize impression and click registrations.
// The ledger's conditional writes are the actual correctness mechanism;
// the locks only remove interleavings between the guarded insert and its
// diagnostic read within one process.
type AdUseCase struct {
	clients   port.ClientDirectory
	campaigns port.CampaignDirectory
	scores    port.ScoreLookup
	ledger    port.EventLedger
	clock     port.Clock
	logger    *slog.Logger

	impressionMu sync.Mutex
	clickMu      sync.Mutex
}

// NewAdUseCase creates a new usecase with the provided collaborators.
func NewAdUseCase(
	clients port.ClientDirectory,
	campaigns port.CampaignDirectory,
	scores port.ScoreLookup,
	ledger port.EventLedger,
	clock port.Clock,
	logger *slog.Logger,
) *AdUseCase {
	return &AdUseCase{
		clients:   clients,
		campaigns: campaigns,
		scores:    scores,
		ledger:    ledger,
		clock:     clock,
		logger:    logger,
	}
}

// ServeAd picks the best eligible campaign for the client and registers the
// impression before returning the ad payload. The impression write may turn
// into a silent no-op when a concurrent writer exhausted the quota after
// the targeting snapshot; the served ad is returned regardless.
func (u *AdUseCase) ServeAd(ctx context.Context, clientID uuid.UUID) (*port.AdResponse, error) {
	day, err := u.clock.CurrentDay(ctx)
	if err != nil {
		return nil, err
	}
	client, err := u.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	candidates, err := u.campaigns.GetTargetedCampaigns(ctx, *client, day)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.ErrAdsNotFound
	}

	best, err := u.pickBest(ctx, *client, candidates)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, domain.ErrAdsNotFound
	}

	u.impressionMu.Lock()
	err = u.ledger.RegisterImpression(ctx, client.ID, best.Campaign.ID, day)
	u.impressionMu.Unlock()
	if err != nil {
		return nil, err
	}

	imageURL := ""
	if best.Campaign.ImageURL != nil {
		imageURL = *best.Campaign.ImageURL
	}
	return &port.AdResponse{
		AdID:         best.Campaign.ID,
		AdTitle:      best.Campaign.AdTitle,
		AdText:       best.Campaign.AdText,
		ImageURL:     imageURL,
		AdvertiserID: best.Campaign.AdvertiserID,
	}, nil
}

// RegisterClick records a click-through. Campaign and client existence are
// checked first so their not-found errors win over ledger conditions.
func (u *AdUseCase) RegisterClick(ctx context.Context, adID, clientID uuid.UUID) error {
	u.clickMu.Lock()
	defer u.clickMu.Unlock()

	if _, err := u.campaigns.GetByID(ctx, adID); err != nil {
		return err
	}
	if _, err := u.clients.GetByID(ctx, clientID); err != nil {
		return err
	}
	day, err := u.clock.CurrentDay(ctx)
	if err != nil {
		return err
	}
	return u.ledger.RegisterClick(ctx, clientID, adID, day)
}

// SubmitFeedback stores a rating with an optional comment. Feedback is not
// unique per pair; every valid submission is appended.
func (u *AdUseCase) SubmitFeedback(ctx context.Context, adID, clientID uuid.UUID, rating int, comment *string) error {
	if rating < 1 || rating > 5 {
		return domain.ErrInvalidRating
	}
	if _, err := u.clients.GetByID(ctx, clientID); err != nil {
		return err
	}
	if _, err := u.campaigns.GetByID(ctx, adID); err != nil {
		return err
	}
	day, err := u.clock.CurrentDay(ctx)
	if err != nil {
		return err
	}
	return u.ledger.RegisterFeedback(ctx, clientID, adID, day, rating, comment)
}
