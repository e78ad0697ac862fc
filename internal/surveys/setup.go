package surveys

import (
	"log"

	"github.com/TradeForce/TF-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "surveys"); err != nil {
		log.Fatal("Failed to ensure schema surveys: ", err)
	}

	if err := db.DB.AutoMigrate(&Survey{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
