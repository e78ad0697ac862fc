package kpi

import (
	"log"

	"github.com/TradeForce/TF-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "kpi"); err != nil {
		log.Fatal("Failed to ensure schema kpi: ", err)
	}

	if err := db.DB.AutoMigrate(&Target{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
