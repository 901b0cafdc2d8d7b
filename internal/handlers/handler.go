package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AnshRaj112/calsum-backend/internal/middleware"
	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/AnshRaj112/calsum-backend/internal/services"
	"github.com/rs/zerolog/log"
)

// Handler holds the services the HTTP endpoints call into.
type Handler struct {
	users     *services.UserService
	foods     *services.FoodService
	exercises *services.ExerciseService
	summary   *services.SummaryService
	audit     services.AuditLog
}

func New(users *services.UserService, foods *services.FoodService, exercises *services.ExerciseService, summary *services.SummaryService, audit services.AuditLog) *Handler {
	if audit == nil {
		audit = services.NopAuditLog{}
	}
	return &Handler{users: users, foods: foods, exercises: exercises, summary: summary, audit: audit}
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps a service failure to its status code. Anything that
// is not a *services.Error is a 500 carrying the error text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var serr *services.Error
	if !errors.As(err, &serr) {
		log.Ctx(r.Context()).Error().Err(err).Msg("unhandled error")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := serr.Status()
	if status >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(serr.Unwrap()).Msg(serr.Message)
	}
	writeError(w, status, serr.Message)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// caller returns the identity placed on the request by middleware.Authenticate.
func caller(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
	}
	return identity, ok
}
