package httpadapter

import (
	"encoding/json"
	"net/http"
)

type advanceDayRequest struct {
	CurrentDate int `json:"current_date"`
}

type advanceDayResponse struct {
	CurrentDate int `json:"current_date"`
}

// handleAdvanceDay sets the simulated day counter. All date comparisons and
// event timestamps use this value instead of wall-clock time.
func (h *Handler) handleAdvanceDay(w http.ResponseWriter, r *http.Request) {
	var req advanceDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentDate < 0 {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	day, err := h.clock.AdvanceDay(r.Context(), req.CurrentDate)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, advanceDayResponse{CurrentDate: day})
}
