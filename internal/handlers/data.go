package handlers

import (
	"net/http"
)

// GetData handles GET /api/data: every food and exercise of the caller.
func (h *Handler) GetData(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	data, err := h.summary.All(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// Summary handles GET /api/summary?date=YYYY-MM-DD (today when omitted).
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	summary, err := h.summary.Daily(r.Context(), identity.ID, r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
