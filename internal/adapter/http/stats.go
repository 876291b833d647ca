package httpadapter

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"pulse-ads/internal/core/domain"
)

type statsResponse struct {
	ImpressionsCount int     `json:"impressions_count"`
	ClicksCount      int     `json:"clicks_count"`
	Conversion       float64 `json:"conversion"`
	SpentImpressions float64 `json:"spent_impressions"`
	SpentClicks      float64 `json:"spent_clicks"`
	SpentTotal       float64 `json:"spent_total"`
}

type dailyStatsResponse struct {
	statsResponse
	Date int `json:"date"`
}

func toStatsResponse(s domain.Stats) statsResponse {
	return statsResponse{
		ImpressionsCount: s.ImpressionsCount,
		ClicksCount:      s.ClicksCount,
		Conversion:       s.Conversion,
		SpentImpressions: s.SpentImpressions,
		SpentClicks:      s.SpentClicks,
		SpentTotal:       s.SpentTotal,
	}
}

func toDailyStatsResponse(daily []domain.DailyStats) []dailyStatsResponse {
	out := make([]dailyStatsResponse, 0, len(daily))
	for _, d := range daily {
		out = append(out, dailyStatsResponse{
			statsResponse: toStatsResponse(d.Stats),
			Date:          d.Date,
		})
	}
	return out
}

func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	return id, err == nil
}

func (h *Handler) handleCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "campaignId")
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	stats, err := h.stats.CampaignStats(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

func (h *Handler) handleAdvertiserStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "advertiserId")
	if !ok {
		http.Error(w, "invalid advertiser id", http.StatusBadRequest)
		return
	}
	stats, err := h.stats.AdvertiserStats(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toStatsResponse(stats))
}

func (h *Handler) handleCampaignDailyStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "campaignId")
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	daily, err := h.stats.CampaignDailyStats(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDailyStatsResponse(daily))
}

func (h *Handler) handleAdvertiserDailyStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "advertiserId")
	if !ok {
		http.Error(w, "invalid advertiser id", http.StatusBadRequest)
		return
	}
	daily, err := h.stats.AdvertiserDailyStats(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toDailyStatsResponse(daily))
}

type locationCountResponse struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type clientStatsResponse struct {
	TotalClients int                       `json:"total_clients"`
	Demographics map[string]map[string]int `json:"demographics_distribution"`
	TopLocations []locationCountResponse   `json:"top_locations"`
	AverageAge   float64                   `json:"average_age"`
}

func (h *Handler) handleClientsStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.ClientsStats(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	locations := make([]locationCountResponse, 0, len(stats.TopLocations))
	for _, l := range stats.TopLocations {
		locations = append(locations, locationCountResponse{Location: l.Location, Count: l.Count})
	}
	h.writeJSON(w, http.StatusOK, clientStatsResponse{
		TotalClients: stats.TotalClients,
		Demographics: stats.Demographics,
		TopLocations: locations,
		AverageAge:   stats.AverageAge,
	})
}

type feedbackItemResponse struct {
	ClientID  uuid.UUID `json:"client_id"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type feedbackSummaryResponse struct {
	AverageRating float64                `json:"average_rating"`
	TotalRatings  int                    `json:"total_ratings"`
	Feedbacks     []feedbackItemResponse `json:"feedbacks"`
}

func (h *Handler) handleCampaignFeedbacks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "campaignId")
	if !ok {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}
	summary, err := h.stats.CampaignFeedbacks(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	items := make([]feedbackItemResponse, 0, len(summary.Feedbacks))
	for _, f := range summary.Feedbacks {
		items = append(items, feedbackItemResponse{
			ClientID:  f.ClientID,
			Rating:    f.Rating,
			Comment:   f.Comment,
			CreatedAt: f.CreatedAt,
		})
	}
	h.writeJSON(w, http.StatusOK, feedbackSummaryResponse{
		AverageRating: summary.AverageRating,
		TotalRatings:  summary.TotalRatings,
		Feedbacks:     items,
	})
}
