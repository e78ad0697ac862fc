package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/TradeForce/TF-Backend/internal/auth"
	"github.com/TradeForce/TF-Backend/internal/catalog"
	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/kpi"
	"github.com/TradeForce/TF-Backend/internal/middleware"
	"github.com/TradeForce/TF-Backend/internal/surveys"
	"github.com/TradeForce/TF-Backend/internal/visits"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	auth.Init()
	catalog.Init()
	visits.Init()
	kpi.Init()
	surveys.Init()

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/catalog", catalog.SetupRoutes())
	r.Mount("/visits", visits.SetupRoutes())
	r.Mount("/kpi", kpi.SetupRoutes())
	r.Mount("/surveys", surveys.SetupRoutes())

	fmt.Println("Server listening on port :" + port + "...")

	http.ListenAndServe("0.0.0.0:"+port, r)
}
