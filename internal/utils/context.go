package utils

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionData is the minimal session projection the middleware needs.
type SessionData struct {
	UserID    string
	TenantID  string
	Role      string
	ExpiresAt time.Time
}

// AuthContext carries the resolved caller identity through a single request.
// It is rebuilt per request by SessionMiddleware; handlers must never cache it.
type AuthContext struct {
	UserID   string
	TenantID string
	Role     string
}

type contextKey string

const ContextAuthKey contextKey = "authContext"

func GetAuthContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(ContextAuthKey).(AuthContext)
	return ac, ok
}

func WithAuthContext(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, ContextAuthKey, ac)
}

func GenerateUUID() string {
	return uuid.NewString()
}
