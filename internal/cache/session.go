package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

const (
	// sessionKeyPrefix is the Redis key prefix for session records.
	sessionKeyPrefix = "session:"
)

// ErrSessionNotFound indicates no session exists for the given key.
var ErrSessionNotFound = errors.New("session not found")

// storedSession is the session record stored in Redis.
type storedSession struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	TokenPrefix string `json:"token_prefix"`
	IssuedAt    int64  `json:"issued_at"` // Unix seconds
}

// GetSession retrieves a session by cache key (derived from the token).
// Returns ErrSessionNotFound on miss; Redis is the single source of truth
// for session liveness, so a miss means unauthenticated.
func (c *Cache) GetSession(ctx context.Context, cacheKey string) (*model.SessionContext, error) {
	key := sessionKeyPrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, ErrSessionNotFound
	}

	var stored storedSession
	if err := json.Unmarshal(data, &stored); err != nil {
		// Corrupted entry - treat as unauthenticated
		return nil, ErrSessionNotFound
	}

	return &model.SessionContext{
		UserID:      stored.UserID,
		Email:       stored.Email,
		FirstName:   stored.FirstName,
		LastName:    stored.LastName,
		TokenPrefix: stored.TokenPrefix,
		IssuedAt:    time.Unix(stored.IssuedAt, 0).UTC(),
	}, nil
}

// SetSession stores a session with the given TTL.
func (c *Cache) SetSession(ctx context.Context, cacheKey string, session *model.SessionContext, ttl time.Duration) error {
	key := sessionKeyPrefix + cacheKey

	stored := storedSession{
		UserID:      session.UserID,
		Email:       session.Email,
		FirstName:   session.FirstName,
		LastName:    session.LastName,
		TokenPrefix: session.TokenPrefix,
		IssuedAt:    session.IssuedAt.Unix(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// DeleteSession removes a session. Used on logout.
func (c *Cache) DeleteSession(ctx context.Context, cacheKey string) error {
	key := sessionKeyPrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
