package httpadapter

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type adResponse struct {
	AdID         uuid.UUID `json:"ad_id"`
	AdTitle      string    `json:"ad_title"`
	AdText       string    `json:"ad_text"`
	ImageURL     string    `json:"image_url"`
	AdvertiserID uuid.UUID `json:"advertiser_id"`
}

// handleServeAd matches the client to one campaign and returns the chosen
// ad. The impression is registered as part of the match; 404 covers both
// an unknown client and the absence of any eligible ad.
func (h *Handler) handleServeAd(w http.ResponseWriter, r *http.Request) {
	clientID, err := uuid.Parse(r.URL.Query().Get("client_id"))
	if err != nil {
		http.Error(w, "invalid client_id", http.StatusBadRequest)
		return
	}
	ad, err := h.ads.ServeAd(r.Context(), clientID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.metrics.AdsServedTotal.Inc()
	h.writeJSON(w, http.StatusOK, adResponse{
		AdID:         ad.AdID,
		AdTitle:      ad.AdTitle,
		AdText:       ad.AdText,
		ImageURL:     ad.ImageURL,
		AdvertiserID: ad.AdvertiserID,
	})
}

type clickRequest struct {
	ClientID uuid.UUID `json:"client_id"`
}

// handleClick records a click-through for a previously shown ad. Ordering,
// uniqueness and quota violations come back as 400 with a typed message.
func (h *Handler) handleClick(w http.ResponseWriter, r *http.Request) {
	adID, err := uuid.Parse(chi.URLParam(r, "adId"))
	if err != nil {
		http.Error(w, "invalid ad id", http.StatusBadRequest)
		return
	}
	var req clickRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil || req.ClientID == uuid.Nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err = h.ads.RegisterClick(r.Context(), adID, req.ClientID); err != nil {
		h.metrics.EventsRegisteredTotal.WithLabelValues("click", "rejected").Inc()
		h.writeError(w, err)
		return
	}
	h.metrics.EventsRegisteredTotal.WithLabelValues("click", "ok").Inc()
	w.WriteHeader(http.StatusNoContent)
}

type feedbackRequest struct {
	AdID     uuid.UUID `json:"ad_id"`
	ClientID uuid.UUID `json:"client_id"`
	Rating   int       `json:"rating"`
	Comment  *string   `json:"comment"`
}

// handleFeedback stores a rating with an optional comment for a campaign.
func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.AdID == uuid.Nil || req.ClientID == uuid.Nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	err := h.ads.SubmitFeedback(r.Context(), req.AdID, req.ClientID, req.Rating, req.Comment)
	if err != nil {
		h.metrics.EventsRegisteredTotal.WithLabelValues("feedback", "rejected").Inc()
		h.writeError(w, err)
		return
	}
	h.metrics.EventsRegisteredTotal.WithLabelValues("feedback", "ok").Inc()
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "feedback accepted"})
}
