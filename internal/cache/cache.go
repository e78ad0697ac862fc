package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/TradeForce/TF-Backend/internal/utils"
	"github.com/redis/go-redis/v9"
)

// Sessions is an optional Redis-backed session cache sitting in front of the
// Postgres sessions table. Nil when REDIS_URL is unset (graceful degradation).
type Sessions struct {
	client *redis.Client
}

// NewSessions connects to Redis using REDIS_URL. Returns nil, nil when the
// variable is not set so callers can skip caching entirely.
func NewSessions() (*Sessions, error) {
	rawURL := os.Getenv("REDIS_URL")
	if rawURL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		// Treat an unreachable Redis as "no cache" rather than a fatal error.
		log.Printf("[cache] redis unreachable, continuing without session cache: %v", err)
		return nil, nil
	}

	return &Sessions{client: client}, nil
}

func sessionKey(id string) string { return "session:" + id }

// Get returns the cached session, or ok=false on miss or any Redis error.
func (s *Sessions) Get(ctx context.Context, sessionID string) (utils.SessionData, bool) {
	if s == nil {
		return utils.SessionData{}, false
	}

	raw, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		return utils.SessionData{}, false
	}

	var data utils.SessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return utils.SessionData{}, false
	}
	return data, true
}

// Set caches the session until it expires. Errors are logged, never returned;
// the Postgres row stays authoritative.
func (s *Sessions) Set(ctx context.Context, sessionID string, data utils.SessionData) {
	if s == nil {
		return
	}

	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, sessionKey(sessionID), raw, ttl).Err(); err != nil {
		log.Printf("[cache] failed to cache session: %v", err)
	}
}

// Invalidate drops a cached session (logout, password change).
func (s *Sessions) Invalidate(ctx context.Context, sessionID string) {
	if s == nil {
		return
	}
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		log.Printf("[cache] failed to invalidate session: %v", err)
	}
}
