package surveys

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

		r.Get("/", ListSurveys)
		r.Get("/{survey_id}", GetSurvey)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(auth.RoleAdmin, auth.RoleSupervisor))
			r.Post("/", CreateSurvey)
			r.Put("/{survey_id}", UpdateSurvey)
			r.Post("/{survey_id}/submit", SubmitSurvey)
		})

		// Approval is admin-only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(auth.RoleAdmin))
			r.Post("/{survey_id}/approve", ApproveSurvey)
			r.Post("/{survey_id}/reject", RejectSurvey)
		})
	})

	return r
}
