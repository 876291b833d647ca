package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"pulse-ads/internal/core/domain"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// encoding should rarely fail; the status line is already sent
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps domain errors onto one HTTP status per error kind:
// 404 for missing resources, 400 for conflict/validation conditions and
// 500 for everything else. Unexpected errors are logged, never swallowed.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrCampaignNotFound),
		errors.Is(err, domain.ErrAdvertiserNotFound),
		errors.Is(err, domain.ErrAdsNotFound):
		h.writeJSON(w, http.StatusNotFound, messageResponse{Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateClick),
		errors.Is(err, domain.ErrNoImpression),
		errors.Is(err, domain.ErrClicksLimitReached),
		errors.Is(err, domain.ErrInvalidRating):
		h.writeJSON(w, http.StatusBadRequest, messageResponse{Message: err.Error()})
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.writeJSON(w, http.StatusInternalServerError, messageResponse{Message: "internal error"})
	}
}
