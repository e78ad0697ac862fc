package catalog

import (
	"log"

	"github.com/TradeForce/TF-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "catalog"); err != nil {
		log.Fatal("Failed to ensure schema catalog: ", err)
	}

	if err := db.DB.AutoMigrate(&Brand{}, &Zone{}, &ClientStore{}, &Product{}, &Competitor{}, &PopMaterialType{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}
}
