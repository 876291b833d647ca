package usecase

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
)

// feedbackPageSize caps the feedback listing; the average rating is
// computed over this page only, not the full history.
const feedbackPageSize = 10

// StatsUseCase recomputes per-campaign, per-advertiser, daily and client
// statistics on demand from the event ledger and the client directory.
// Nothing is cached or stored.
type StatsUseCase struct {
	campaigns   port.CampaignDirectory
	advertisers port.AdvertiserDirectory
	reader      port.StatsReader
}

// NewStatsUseCase creates a new aggregator over the given reader.
func NewStatsUseCase(
	campaigns port.CampaignDirectory,
	advertisers port.AdvertiserDirectory,
	reader port.StatsReader,
) *StatsUseCase {
	return &StatsUseCase{
		campaigns:   campaigns,
		advertisers: advertisers,
		reader:      reader,
	}
}

// CampaignStats returns live counts, conversion and spend for one campaign.
func (u *StatsUseCase) CampaignStats(ctx context.Context, campaignID uuid.UUID) (domain.Stats, error) {
	campaign, err := u.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return domain.Stats{}, err
	}
	counts, err := u.reader.CampaignEventCounts(ctx, campaignID)
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.NewStats(counts.Impressions, counts.Clicks,
		campaign.CostPerImpression, campaign.CostPerClick), nil
}

// AdvertiserStats sums campaign stats over all campaigns the advertiser
// owns. Spend uses each campaign's own costs.
func (u *StatsUseCase) AdvertiserStats(ctx context.Context, advertiserID uuid.UUID) (domain.Stats, error) {
	if err := u.advertisers.AdvertiserExists(ctx, advertiserID); err != nil {
		return domain.Stats{}, err
	}
	rows, err := u.reader.AdvertiserCampaignCounts(ctx, advertiserID)
	if err != nil {
		return domain.Stats{}, err
	}
	var total domain.Stats
	for _, row := range rows {
		total = total.Add(domain.NewStats(row.Impressions, row.Clicks,
			row.CostPerImpression, row.CostPerClick))
	}
	return total, nil
}

// CampaignDailyStats groups the campaign's metrics by the simulated day
// stamped on each event. A campaign with no events yields a single
// zero-valued row dated at its start_date.
func (u *StatsUseCase) CampaignDailyStats(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStats, error) {
	campaign, err := u.campaigns.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	rows, err := u.reader.CampaignDailyCounts(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.DailyStats{{Date: campaign.StartDate}}, nil
	}
	daily := make([]domain.DailyStats, 0, len(rows))
	for _, row := range rows {
		daily = append(daily, domain.DailyStats{
			Stats: domain.NewStats(row.Impressions, row.Clicks,
				campaign.CostPerImpression, campaign.CostPerClick),
			Date: row.Date,
		})
	}
	return daily, nil
}

// AdvertiserDailyStats groups metrics per day across all the advertiser's
// campaigns, pricing each campaign's events at its own costs. With no
// events a single zero row dated at the earliest campaign start is
// returned; with no campaigns the result is empty.
func (u *StatsUseCase) AdvertiserDailyStats(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStats, error) {
	if err := u.advertisers.AdvertiserExists(ctx, advertiserID); err != nil {
		return nil, err
	}
	rows, err := u.reader.AdvertiserDailyCounts(ctx, advertiserID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		campaigns, err := u.reader.AdvertiserCampaignCounts(ctx, advertiserID)
		if err != nil {
			return nil, err
		}
		if len(campaigns) == 0 {
			return []domain.DailyStats{}, nil
		}
		earliest := campaigns[0].StartDate
		for _, c := range campaigns[1:] {
			if c.StartDate < earliest {
				earliest = c.StartDate
			}
		}
		return []domain.DailyStats{{Date: earliest}}, nil
	}

	byDate := make(map[int]domain.Stats)
	for _, row := range rows {
		byDate[row.Date] = byDate[row.Date].Add(domain.NewStats(
			row.Impressions, row.Clicks, row.CostPerImpression, row.CostPerClick))
	}
	dates := make([]int, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Ints(dates)

	daily := make([]domain.DailyStats, 0, len(dates))
	for _, date := range dates {
		daily = append(daily, domain.DailyStats{Stats: byDate[date], Date: date})
	}
	return daily, nil
}

// ClientsStats is independent of the ledger: a demographic histogram over
// the full client directory.
func (u *StatsUseCase) ClientsStats(ctx context.Context) (domain.ClientStats, error) {
	return u.reader.ClientsStats(ctx)
}

// CampaignFeedbacks returns the most recent feedback page with an average
// rating over the returned rows.
func (u *StatsUseCase) CampaignFeedbacks(ctx context.Context, campaignID uuid.UUID) (domain.FeedbackSummary, error) {
	if _, err := u.campaigns.GetByID(ctx, campaignID); err != nil {
		return domain.FeedbackSummary{}, err
	}
	feedbacks, err := u.reader.CampaignFeedbacks(ctx, campaignID, feedbackPageSize)
	if err != nil {
		return domain.FeedbackSummary{}, err
	}
	summary := domain.FeedbackSummary{
		TotalRatings: len(feedbacks),
		Feedbacks:    feedbacks,
	}
	if len(feedbacks) > 0 {
		sum := 0
		for _, f := range feedbacks {
			sum += f.Rating
		}
		summary.AverageRating = float64(sum) / float64(len(feedbacks))
	}
	return summary, nil
}
