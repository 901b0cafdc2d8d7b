package handlers

import (
	"net/http"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/rs/zerolog/log"
)

// Register handles POST /api/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.users.Register(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	log.Ctx(r.Context()).Info().Str("user_id", resp.ID).Str("username", resp.Username).Msg("user registered")
	writeJSON(w, http.StatusOK, resp)
}

// Login handles POST /api/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Profile handles GET /api/profile
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}
	profile, err := h.users.Profile(r.Context(), identity.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
