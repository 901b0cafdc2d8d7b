package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/AnshRaj112/calsum-backend/pkg/clientip"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type auditResponse struct {
	Events []models.AuditEvent `json:"events"`
}

// queryInt parses an integer query parameter; missing or malformed values yield 0.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

// ListUsers handles GET /api/admin/users?page=&limit=&search=
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, err := h.users.ListUsers(r.Context(), queryInt(r, "page"), queryInt(r, "limit"), r.URL.Query().Get("search"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// GetUser handles GET /api/admin/users/{id}
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	detail, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// DeleteUser handles DELETE /api/admin/users/{id}. The deletion is recorded
// in the audit log once committed.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin, ok := caller(w, r)
	if !ok {
		return
	}
	deleted, err := h.users.DeleteUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	log.Ctx(r.Context()).Info().
		Int64("admin_id", admin.ID).
		Int64("target_id", deleted.User.ID).
		Int64("foods_removed", deleted.FoodsRemoved).
		Int64("exercises_removed", deleted.ExercisesRemoved).
		Msg("user deleted")

	h.audit.Record(r.Context(), models.AuditEvent{
		Action:           models.AuditActionUserDeleted,
		ActorID:          strconv.FormatInt(admin.ID, 10),
		ActorUsername:    admin.Username,
		TargetID:         strconv.FormatInt(deleted.User.ID, 10),
		TargetUsername:   deleted.User.Username,
		FoodsRemoved:     deleted.FoodsRemoved,
		ExercisesRemoved: deleted.ExercisesRemoved,
		IPAddress:        clientip.FromRequest(r),
		Timestamp:        time.Now().UTC(),
	})

	writeJSON(w, http.StatusOK, messageResponse{Message: "User and all related data deleted successfully"})
}

// ListAudit handles GET /api/admin/audit?limit=
func (h *Handler) ListAudit(w http.ResponseWriter, r *http.Request) {
	events, err := h.audit.Recent(r.Context(), int64(queryInt(r, "limit")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, auditResponse{Events: events})
}
