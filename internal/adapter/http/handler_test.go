package httpadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pulse-ads/internal/core/domain"
	"pulse-ads/internal/core/port"
	"pulse-ads/internal/core/port/mocks"
	"pulse-ads/internal/metrics"
)

type handlerFixture struct {
	ads   *mocks.AdUseCase
	stats *mocks.StatsUseCase
	clock *mocks.Clock
	srv   *httptest.Server
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		ads:   new(mocks.AdUseCase),
		stats: new(mocks.StatsUseCase),
		clock: new(mocks.Clock),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	h := NewHandler(f.ads, f.stats, f.clock, m, logger, 0, 0)
	f.srv = httptest.NewServer(h.Router())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *handlerFixture) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(f.srv.URL + path)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (f *handlerFixture) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(f.srv.URL+path, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestServeAdEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	clientID := uuid.New()
	ad := &port.AdResponse{
		AdID:         uuid.New(),
		AdTitle:      "summer sale",
		AdText:       "everything half off",
		ImageURL:     "https://cdn.example.com/sale.png",
		AdvertiserID: uuid.New(),
	}
	f.ads.On("ServeAd", mock.Anything, clientID).Return(ad, nil)

	resp := f.get(t, "/ads?client_id="+clientID.String())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[adResponse](t, resp)
	assert.Equal(t, ad.AdID, body.AdID)
	assert.Equal(t, "summer sale", body.AdTitle)
	assert.Equal(t, ad.AdvertiserID, body.AdvertiserID)
}

func TestServeAdEndpointInvalidClientID(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.get(t, "/ads?client_id=not-a-uuid")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	f.ads.AssertNotCalled(t, "ServeAd", mock.Anything, mock.Anything)
}

func TestServeAdEndpointNoAds(t *testing.T) {
	f := newHandlerFixture(t)
	clientID := uuid.New()
	f.ads.On("ServeAd", mock.Anything, clientID).Return(nil, domain.ErrAdsNotFound)

	resp := f.get(t, "/ads?client_id="+clientID.String())

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClickEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	adID, clientID := uuid.New(), uuid.New()
	f.ads.On("RegisterClick", mock.Anything, adID, clientID).Return(nil)

	resp := f.post(t, "/ads/"+adID.String()+"/click", clickRequest{ClientID: clientID})

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	f.ads.AssertExpectations(t)
}

func TestClickEndpointErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrCampaignNotFound, http.StatusNotFound},
		{domain.ErrNoImpression, http.StatusBadRequest},
		{domain.ErrDuplicateClick, http.StatusBadRequest},
		{domain.ErrClicksLimitReached, http.StatusBadRequest},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		f := newHandlerFixture(t)
		adID, clientID := uuid.New(), uuid.New()
		f.ads.On("RegisterClick", mock.Anything, adID, clientID).Return(tt.err)

		resp := f.post(t, "/ads/"+adID.String()+"/click", clickRequest{ClientID: clientID})

		assert.Equal(t, tt.want, resp.StatusCode, "error %v", tt.err)
	}
}

func TestFeedbackEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	adID, clientID := uuid.New(), uuid.New()
	comment := "nice"
	f.ads.On("SubmitFeedback", mock.Anything, adID, clientID, 4, &comment).Return(nil)

	resp := f.post(t, "/ads/feedback", feedbackRequest{
		AdID: adID, ClientID: clientID, Rating: 4, Comment: &comment,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[messageResponse](t, resp)
	assert.NotEmpty(t, body.Message)
}

func TestFeedbackEndpointInvalidRating(t *testing.T) {
	f := newHandlerFixture(t)
	adID, clientID := uuid.New(), uuid.New()
	f.ads.On("SubmitFeedback", mock.Anything, adID, clientID, 9, (*string)(nil)).
		Return(domain.ErrInvalidRating)

	resp := f.post(t, "/ads/feedback", feedbackRequest{
		AdID: adID, ClientID: clientID, Rating: 9,
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCampaignStatsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()
	f.stats.On("CampaignStats", mock.Anything, id).Return(domain.Stats{
		ImpressionsCount: 100,
		ClicksCount:      10,
		Conversion:       0.1,
		SpentImpressions: 10,
		SpentClicks:      5,
		SpentTotal:       15,
	}, nil)

	resp := f.get(t, "/stats/campaigns/"+id.String())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[statsResponse](t, resp)
	assert.Equal(t, 100, body.ImpressionsCount)
	assert.InDelta(t, 0.1, body.Conversion, 1e-9)
	assert.InDelta(t, 15.0, body.SpentTotal, 1e-9)
}

func TestCampaignStatsEndpointNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()
	f.stats.On("CampaignStats", mock.Anything, id).
		Return(domain.Stats{}, domain.ErrCampaignNotFound)

	resp := f.get(t, "/stats/campaigns/"+id.String())

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCampaignDailyStatsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()
	f.stats.On("CampaignDailyStats", mock.Anything, id).Return([]domain.DailyStats{
		{Date: 3},
	}, nil)

	resp := f.get(t, "/stats/campaigns/"+id.String()+"/daily")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[[]dailyStatsResponse](t, resp)
	require.Len(t, body, 1)
	assert.Equal(t, 3, body[0].Date)
	assert.Zero(t, body[0].ImpressionsCount)
}

func TestAdvertiserStatsEndpointNotFound(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()
	f.stats.On("AdvertiserStats", mock.Anything, id).
		Return(domain.Stats{}, domain.ErrAdvertiserNotFound)

	resp := f.get(t, "/stats/advertisers/"+id.String()+"/campaigns")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCampaignFeedbackEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	id := uuid.New()
	f.stats.On("CampaignFeedbacks", mock.Anything, id).Return(domain.FeedbackSummary{
		AverageRating: 4.5,
		TotalRatings:  2,
		Feedbacks: []domain.Feedback{
			{ClientID: uuid.New(), CampaignID: id, Rating: 5},
			{ClientID: uuid.New(), CampaignID: id, Rating: 4},
		},
	}, nil)

	resp := f.get(t, "/stats/campaigns/"+id.String()+"/feedback")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[feedbackSummaryResponse](t, resp)
	assert.InDelta(t, 4.5, body.AverageRating, 1e-9)
	assert.Equal(t, 2, body.TotalRatings)
	assert.Len(t, body.Feedbacks, 2)
}

func TestClientsStatsEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.stats.On("ClientsStats", mock.Anything).Return(domain.ClientStats{
		TotalClients: 50,
		Demographics: map[string]map[string]int{
			"MALE": {"25-34": 12},
		},
		TopLocations: []domain.LocationCount{{Location: "Moscow", Count: 20}},
		AverageAge:   31.4,
	}, nil)

	resp := f.get(t, "/stats/clients")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[clientStatsResponse](t, resp)
	assert.Equal(t, 50, body.TotalClients)
	assert.Equal(t, 12, body.Demographics["MALE"]["25-34"])
	require.Len(t, body.TopLocations, 1)
	assert.Equal(t, "Moscow", body.TopLocations[0].Location)
}

func TestAdvanceDayEndpoint(t *testing.T) {
	f := newHandlerFixture(t)
	f.clock.On("AdvanceDay", mock.Anything, 5).Return(5, nil)

	resp := f.post(t, "/time/advance", advanceDayRequest{CurrentDate: 5})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody[advanceDayResponse](t, resp)
	assert.Equal(t, 5, body.CurrentDate)
}

func TestAdvanceDayEndpointNegative(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.post(t, "/time/advance", advanceDayRequest{CurrentDate: -1})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	f.clock.AssertNotCalled(t, "AdvanceDay", mock.Anything, mock.Anything)
}

func TestHealthz(t *testing.T) {
	f := newHandlerFixture(t)

	resp := f.get(t, "/healthz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	ads := new(mocks.AdUseCase)
	stats := new(mocks.StatsUseCase)
	clock := new(mocks.Clock)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	h := NewHandler(ads, stats, clock, m, logger, 1, 1)
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	first, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	first.Body.Close()
	second, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	second.Body.Close()

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}
