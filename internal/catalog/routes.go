package catalog

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

		// Reads are open to every authenticated role
		r.Get("/brands", ListBrands)
		r.Get("/zones", ListZones)
		r.Get("/clients", ListClients)
		r.Get("/clients/{client_id}", GetClient)
		r.Get("/products", ListProducts)
		r.Get("/competitors", ListCompetitors)
		r.Get("/pop-materials", ListPopMaterials)

		// Configuration writes are for managers
		r.Group(func(r chi.Router) {
			r.Use(middleware.RoleMiddleware(auth.RoleAdmin, auth.RoleSupervisor))

			r.Post("/brands", CreateBrand)
			r.Put("/brands/{brand_id}", UpdateBrand)
			r.Post("/zones", CreateZone)
			r.Post("/clients", CreateClient)
			r.Put("/clients/{client_id}", UpdateClient)
			r.Delete("/clients/{client_id}", DeleteClient)
			r.Post("/products", CreateProduct)
			r.Post("/competitors", CreateCompetitor)
			r.Post("/pop-materials", CreatePopMaterial)
		})
	})

	return r
}
