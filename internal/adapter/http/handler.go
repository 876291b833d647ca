package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulse-ads/internal/core/port"
	"pulse-ads/internal/metrics"
)

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP. Routes are registered on a chi.Router for convenient method
// handling; Prometheus collectors are recorded by middleware and served
// on /metrics.
type Handler struct {
	ads     port.AdUseCase
	stats   port.StatsUseCase
	clock   port.Clock
	metrics *metrics.Metrics
	logger  *slog.Logger
	router  chi.Router
}

// NewHandler creates a handler with all routes configured. A requestsPerSec
// of zero disables the rate limiter.
func NewHandler(
	ads port.AdUseCase,
	stats port.StatsUseCase,
	clock port.Clock,
	m *metrics.Metrics,
	logger *slog.Logger,
	requestsPerSec float64,
	burst int,
) *Handler {
	h := &Handler{ads: ads, stats: stats, clock: clock, metrics: m, logger: logger}
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(h.metricsMiddleware)
	r.Use(rateLimitMiddleware(requestsPerSec, burst))

	r.Get("/ads", h.handleServeAd)
	r.Post("/ads/{adId}/click", h.handleClick)
	r.Post("/ads/feedback", h.handleFeedback)

	r.Route("/stats", func(r chi.Router) {
		r.Get("/campaigns/{campaignId}", h.handleCampaignStats)
		r.Get("/campaigns/{campaignId}/daily", h.handleCampaignDailyStats)
		r.Get("/campaigns/{campaignId}/feedback", h.handleCampaignFeedbacks)
		r.Get("/advertisers/{advertiserId}/campaigns", h.handleAdvertiserStats)
		r.Get("/advertisers/{advertiserId}/campaigns/daily", h.handleAdvertiserDailyStats)
		r.Get("/clients", h.handleClientsStats)
	})

	r.Post("/time/advance", h.handleAdvanceDay)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
