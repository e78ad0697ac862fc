package visits

import (
	"log"

	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/geocoding"
)

// geocoder is nil when GOOGLE_MAPS_API_KEY is unset; check-in skips the
// reverse lookup in that case.
var geocoder *geocoding.Client

func Init() {
	if err := db.EnsureSchema(db.DB, "visits"); err != nil {
		log.Fatal("Failed to ensure schema visits: ", err)
	}

	if err := db.DB.AutoMigrate(
		&Visit{},
		&StageAssessment{},
		&BrandProductAssessment{},
		&CompetitorAssessment{},
		&PopMaterialCheck{},
		&ExhibitionCheck{},
		&Evidence{},
	); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	client, err := geocoding.NewClient()
	if err != nil {
		log.Fatal("Failed to create geocoding client: ", err)
	}
	geocoder = client
	if geocoder != nil {
		log.Println("[visits] reverse geocoding enabled")
	}
}
