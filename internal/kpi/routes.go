package kpi

import (
	"net/http"

	"github.com/TradeForce/TF-Backend/internal/auth"
	"github.com/TradeForce/TF-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.Fetcher()

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Get("/targets", ListTargets)
		r.Get("/summary", SummaryHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(auth.RoleAdmin, auth.RoleSupervisor))
			r.Post("/targets", CreateTarget)
			r.Put("/targets/{target_id}", UpdateTarget)
			r.Delete("/targets/{target_id}", DeleteTarget)
		})
	})

	return r
}
