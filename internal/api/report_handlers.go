package api

import (
	"net/http"

	"github.com/pennywiseapp/pennywise/internal/middleware"
)

// GetSummary returns the caller's spending report. Supports ?from= and
// ?to= (Unix seconds) query filters; zero bounds are open-ended.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	summary, err := h.reports.Summarize(r.Context(), middleware.GetUserID(r.Context()),
		parseUnix(q.Get("from")), parseUnix(q.Get("to")))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
