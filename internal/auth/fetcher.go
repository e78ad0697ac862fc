package auth

import (
	"context"

	"github.com/TradeForce/TF-Backend/internal/cache"
	"github.com/TradeForce/TF-Backend/internal/db"
	"github.com/TradeForce/TF-Backend/internal/utils"
)

// SessionInfo resolves sessions for the middleware, consulting the optional
// Redis cache before falling back to Postgres.
type SessionInfo struct {
	Cache *cache.Sessions
}

func (si SessionInfo) FindSessionByID(id string) (utils.SessionData, error) {
	ctx := context.Background()

	if data, ok := si.Cache.Get(ctx, id); ok {
		return data, nil
	}

	var session Session
	if err := db.DB.First(&session, "session_id = ?", id).Error; err != nil {
		return utils.SessionData{}, err
	}

	var user User
	if err := db.DB.First(&user, "user_id = ?", session.UserID).Error; err != nil {
		return utils.SessionData{}, err
	}

	data := utils.SessionData{
		UserID:    session.UserID,
		TenantID:  user.TenantID,
		Role:      user.Role,
		ExpiresAt: session.ExpiresAt,
	}
	si.Cache.Set(ctx, id, data)

	return data, nil
}
