// Package mocks provides testify/mock implementations of the port
// interfaces for use in tests.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
)

// ClientDirectory mocks port.ClientDirectory.
type ClientDirectory struct {
	mock.Mock
}

func (m *ClientDirectory) GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	args := m.Called(ctx, id)
	var c *domain.Client
	if v := args.Get(0); v != nil {
		c = v.(*domain.Client)
	}
	return c, args.Error(1)
}

// AdvertiserDirectory mocks port.AdvertiserDirectory.
type AdvertiserDirectory struct {
	mock.Mock
}

func (m *AdvertiserDirectory) AdvertiserExists(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// CampaignDirectory mocks port.CampaignDirectory.
type CampaignDirectory struct {
	mock.Mock
}

func (m *CampaignDirectory) GetByID(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	var c *domain.Campaign
	if v := args.Get(0); v != nil {
		c = v.(*domain.Campaign)
	}
	return c, args.Error(1)
}

func (m *CampaignDirectory) GetTargetedCampaigns(ctx context.Context, client domain.Client, day int) ([]port.Candidate, error) {
	args := m.Called(ctx, client, day)
	var cands []port.Candidate
	if v := args.Get(0); v != nil {
		cands = v.([]port.Candidate)
	}
	return cands, args.Error(1)
}

// ScoreLookup mocks port.ScoreLookup.
type ScoreLookup struct {
	mock.Mock
}

func (m *ScoreLookup) GetScore(ctx context.Context, clientID, advertiserID uuid.UUID) (int, error) {
	args := m.Called(ctx, clientID, advertiserID)
	return args.Int(0), args.Error(1)
}

// Clock mocks port.Clock.
type Clock struct {
	mock.Mock
}

func (m *Clock) CurrentDay(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *Clock) AdvanceDay(ctx context.Context, day int) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

// EventLedger mocks port.EventLedger.
type EventLedger struct {
	mock.Mock
}

func (m *EventLedger) RegisterImpression(ctx context.Context, clientID, campaignID uuid.UUID, day int) error {
	return m.Called(ctx, clientID, campaignID, day).Error(0)
}

func (m *EventLedger) RegisterClick(ctx context.Context, clientID, campaignID uuid.UUID, day int) error {
	return m.Called(ctx, clientID, campaignID, day).Error(0)
}

func (m *EventLedger) RegisterFeedback(ctx context.Context, clientID, campaignID uuid.UUID, day int, rating int, comment *string) error {
	return m.Called(ctx, clientID, campaignID, day, rating, comment).Error(0)
}

// StatsReader mocks port.StatsReader.
type StatsReader struct {
	mock.Mock
}

func (m *StatsReader) CampaignEventCounts(ctx context.Context, campaignID uuid.UUID) (domain.EventCounts, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(domain.EventCounts), args.Error(1)
}

func (m *StatsReader) CampaignDailyCounts(ctx context.Context, campaignID uuid.UUID) ([]port.DailyCounts, error) {
	args := m.Called(ctx, campaignID)
	var rows []port.DailyCounts
	if v := args.Get(0); v != nil {
		rows = v.([]port.DailyCounts)
	}
	return rows, args.Error(1)
}

func (m *StatsReader) AdvertiserCampaignCounts(ctx context.Context, advertiserID uuid.UUID) ([]port.CampaignCounts, error) {
	args := m.Called(ctx, advertiserID)
	var rows []port.CampaignCounts
	if v := args.Get(0); v != nil {
		rows = v.([]port.CampaignCounts)
	}
	return rows, args.Error(1)
}

func (m *StatsReader) AdvertiserDailyCounts(ctx context.Context, advertiserID uuid.UUID) ([]port.CampaignDailyCounts, error) {
	args := m.Called(ctx, advertiserID)
	var rows []port.CampaignDailyCounts
	if v := args.Get(0); v != nil {
		rows = v.([]port.CampaignDailyCounts)
	}
	return rows, args.Error(1)
}

func (m *StatsReader) ClientsStats(ctx context.Context) (domain.ClientStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ClientStats), args.Error(1)
}

func (m *StatsReader) CampaignFeedbacks(ctx context.Context, campaignID uuid.UUID, limit int) ([]domain.Feedback, error) {
	args := m.Called(ctx, campaignID, limit)
	var rows []domain.Feedback
	if v := args.Get(0); v != nil {
		rows = v.([]domain.Feedback)
	}
	return rows, args.Error(1)
}

// AdUseCase mocks port.AdUseCase.
type AdUseCase struct {
	mock.Mock
}

func (m *AdUseCase) ServeAd(ctx context.Context, clientID uuid.UUID) (*port.AdResponse, error) {
	args := m.Called(ctx, clientID)
	var resp *port.AdResponse
	if v := args.Get(0); v != nil {
		resp = v.(*port.AdResponse)
	}
	return resp, args.Error(1)
}

func (m *AdUseCase) RegisterClick(ctx context.Context, adID, clientID uuid.UUID) error {
	return m.Called(ctx, adID, clientID).Error(0)
}

func (m *AdUseCase) SubmitFeedback(ctx context.Context, adID, clientID uuid.UUID, rating int, comment *string) error {
	return m.Called(ctx, adID, clientID, rating, comment).Error(0)
}

// StatsUseCase mocks port.StatsUseCase.
type StatsUseCase struct {
	mock.Mock
}

func (m *StatsUseCase) CampaignStats(ctx context.Context, campaignID uuid.UUID) (domain.Stats, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(domain.Stats), args.Error(1)
}

func (m *StatsUseCase) AdvertiserStats(ctx context.Context, advertiserID uuid.UUID) (domain.Stats, error) {
	args := m.Called(ctx, advertiserID)
	return args.Get(0).(domain.Stats), args.Error(1)
}

func (m *StatsUseCase) CampaignDailyStats(ctx context.Context, campaignID uuid.UUID) ([]domain.DailyStats, error) {
	args := m.Called(ctx, campaignID)
	var rows []domain.DailyStats
	if v := args.Get(0); v != nil {
		rows = v.([]domain.DailyStats)
	}
	return rows, args.Error(1)
}

func (m *StatsUseCase) AdvertiserDailyStats(ctx context.Context, advertiserID uuid.UUID) ([]domain.DailyStats, error) {
	args := m.Called(ctx, advertiserID)
	var rows []domain.DailyStats
	if v := args.Get(0); v != nil {
		rows = v.([]domain.DailyStats)
	}
	return rows, args.Error(1)
}

func (m *StatsUseCase) ClientsStats(ctx context.Context) (domain.ClientStats, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ClientStats), args.Error(1)
}

func (m *StatsUseCase) CampaignFeedbacks(ctx context.Context, campaignID uuid.UUID) (domain.FeedbackSummary, error) {
	args := m.Called(ctx, campaignID)
	return args.Get(0).(domain.FeedbackSummary), args.Error(1)
}
