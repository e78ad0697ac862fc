package auth

import (
	"net/http"

	"github.com/TradeForce/TF-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := Fetcher()

	r.Group(func(r chi.Router) {
		r.Use(middleware.LoginRateLimiter())
		r.Post("/login", LoginHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))
		r.Post("/logout", LogoutHandler)
		r.Get("/me", MeHandler)
		r.Post("/password", UpdatePasswordHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(RoleAdmin))
			r.Post("/register", RegisterHandler)
		})
	})

	return r
}
