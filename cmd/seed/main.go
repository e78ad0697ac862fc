package main

import (
	"flag"
	"log"

	"github.com/TradeForce/TF-Backend/internal/auth"
	"github.com/TradeForce/TF-Backend/internal/catalog"
	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/seeds"
	"github.com/joho/godotenv"
)

func main() {
	fixture := flag.String("fixture", "seeds/fixtures.yaml", "path to YAML seed fixture")
	flag.Parse()

	_ = godotenv.Load(".env.local")
	db.Connect()

	auth.Init()
	catalog.Init()

	if err := seeds.SeedAll(*fixture); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
