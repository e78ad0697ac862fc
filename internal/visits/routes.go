package visits

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

		r.Post("/", CreateVisit)
		r.Get("/", ListVisits)
		r.Get("/{visit_id}", GetVisit)

		// Lifecycle
		r.Post("/{visit_id}/checkin", CheckinHandler)
		r.Post("/{visit_id}/checkout", CheckoutHandler)
		r.Post("/{visit_id}/cancel", CancelHandler)

		// Assessment
		r.Get("/{visit_id}/assessment", GetAssessmentHandler)
		r.Post("/{visit_id}/assessment", SaveStageHandler)
		r.Put("/{visit_id}/assessment", CompleteAssessmentHandler)

		// Evidence
		r.Get("/{visit_id}/evidence", ListEvidenceHandler)
		r.Post("/{visit_id}/evidence", AddEvidenceHandler)
		r.Delete("/{visit_id}/evidence/{evidence_id}", DeleteEvidenceHandler)
	})

	return r
}
