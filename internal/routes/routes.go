package routes

import (
	"net/http"

	"github.com/AnshRaj112/calsum-backend/internal/handlers"
	"github.com/AnshRaj112/calsum-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes registers the API under /api, /health, and the client bundle
// from staticDir for every other GET.
func SetupRoutes(r chi.Router, h *handlers.Handler, tokens middleware.TokenVerifier, roles middleware.RoleChecker, staticDir string) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.NotFound(handlers.APINotFound)

		// Auth routes
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens))

			r.Get("/profile", h.Profile)

			// Food routes
			r.Get("/foods", h.ListFoods)
			r.Post("/foods", h.CreateFood)
			r.Put("/foods/{id}", h.UpdateFood)
			r.Delete("/foods/{id}", h.DeleteFood)

			// Exercise routes
			r.Get("/exercises", h.ListExercises)
			r.Post("/exercises", h.CreateExercise)
			r.Put("/exercises/{id}", h.UpdateExercise)
			r.Delete("/exercises/{id}", h.DeleteExercise)

			r.Get("/data", h.GetData)
			r.Get("/summary", h.Summary)

			// Admin routes
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(roles))
				r.Get("/users", h.ListUsers)
				r.Get("/users/{id}", h.GetUser)
				r.Delete("/users/{id}", h.DeleteUser)
				r.Get("/audit", h.ListAudit)
			})
		})
	})

	r.Get("/*", handlers.SPA(staticDir))
}
