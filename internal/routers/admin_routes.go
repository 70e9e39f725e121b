package routers

import (
	"github.com/go-chi/chi/v5"

	"github.com/Akhil21232123/hirematrix/internal/handlers"
	"github.com/Akhil21232123/hirematrix/internal/middleware"
)

// AdminRoutes mounts the recruiter monitor behind the admin secret.
func AdminRoutes(router *chi.Mux, adminSecret string, adminHandler *handlers.AdminHandler) {
	router.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(adminSecret))

		r.Get("/candidates", adminHandler.ListCandidatesHandler)
		r.Get("/live", adminHandler.LiveFeedHandler)
	})
}
