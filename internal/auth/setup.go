package auth

import (
	"log"

	"github.com/TradeForce/TF-Backend/internal/cache"
	"github.com/TradeForce/TF-Backend/internal/db"
)

// sessionCache is nil when REDIS_URL is unset; every call site tolerates that.
var sessionCache *cache.Sessions

func Init() {
	if err := db.EnsureSchema(db.DB, "field_auth"); err != nil {
		log.Fatal("Failed to ensure schema field_auth: ", err)
	}

	if err := db.DB.AutoMigrate(&User{}, &Session{}); err != nil {
		log.Fatal("Failed to auto-migrate tables", err)
	}

	sessions, err := cache.NewSessions()
	if err != nil {
		log.Fatal("Failed to configure session cache: ", err)
	}
	sessionCache = sessions
	if sessionCache != nil {
		log.Println("[auth] session cache enabled")
	}
}

// Fetcher returns the session fetcher wired to the optional cache.
func Fetcher() SessionInfo {
	return SessionInfo{Cache: sessionCache}
}
