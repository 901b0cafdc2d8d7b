package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/AnshRaj112/calsum-backend/internal/models"
	"github.com/rs/zerolog/log"
)

type ctxIdentityKey struct{}

// TokenVerifier checks a bearer token and returns the identity it carries.
type TokenVerifier interface {
	Verify(token string) (models.Identity, error)
}

// RoleChecker reports whether a user holds the admin role.
type RoleChecker interface {
	IsAdmin(ctx context.Context, id int64) (bool, error)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[7:])
}

// Authenticate requires "Authorization: Bearer <token>". A missing token is
// 401, a token that fails verification is 403.
func Authenticate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			identity, err := tokens.Verify(token)
			if err != nil {
				writeError(w, http.StatusForbidden, "Invalid token.")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// RequireAdmin must run after Authenticate. The role is read from the store
// on every request, so revoking it takes effect immediately.
func RequireAdmin(roles RoleChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "Access denied. No token provided.")
				return
			}
			isAdmin, err := roles.IsAdmin(r.Context(), identity.ID)
			if err != nil {
				log.Ctx(r.Context()).Error().Err(err).Int64("user_id", identity.ID).Msg("admin role lookup failed")
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			if !isAdmin {
				writeError(w, http.StatusForbidden, "Access denied. Admin only.")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, ctxIdentityKey{}, identity)
}

// IdentityFromContext returns the caller set by Authenticate.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(ctxIdentityKey{}).(models.Identity)
	return identity, ok
}
