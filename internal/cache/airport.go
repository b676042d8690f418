package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flightboard/flightboard/internal/model"
)

// Cache key prefixes and TTLs.
const (
	airportKeyPrefix  = "airport:"
	negCacheKeySuffix = ":neg"

	// DefaultAirportTTL is the TTL for cached airport data. Reference
	// data changes rarely, so a long TTL is fine.
	DefaultAirportTTL = 24 * time.Hour

	// NegativeCacheTTL is the TTL for negative cache entries (unknown codes).
	NegativeCacheTTL = 5 * time.Minute
)

// Common cache errors.
var (
	ErrCacheMiss = errors.New("cache miss")
)

// GetAirport retrieves an airport from cache by IATA code.
// Returns ErrCacheMiss if not found.
func (c *Cache) GetAirport(ctx context.Context, code string) (*model.CachedAirport, error) {
	key := airportKeyPrefix + code

	result, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis hgetall failed: %w", err)
	}

	if len(result) == 0 {
		return nil, ErrCacheMiss
	}

	cached := &model.CachedAirport{
		Name:      result["name"],
		Latitude:  result["latitude"],
		Longitude: result["longitude"],
	}

	return cached, nil
}

// SetAirport caches an airport record.
func (c *Cache) SetAirport(ctx context.Context, code string, cached *model.CachedAirport) error {
	key := airportKeyPrefix + code

	if err := c.client.HSet(ctx, key,
		"name", cached.Name,
		"latitude", cached.Latitude,
		"longitude", cached.Longitude,
	).Err(); err != nil {
		return fmt.Errorf("redis hset failed: %w", err)
	}

	return c.client.Expire(ctx, key, DefaultAirportTTL).Err()
}

// SetAirportNegative marks a code as unknown so repeated bad lookups
// don't hammer the database.
func (c *Cache) SetAirportNegative(ctx context.Context, code string) error {
	key := airportKeyPrefix + code + negCacheKeySuffix
	return c.client.Set(ctx, key, "1", NegativeCacheTTL).Err()
}

// IsAirportNegative reports whether the code was recently found missing.
func (c *Cache) IsAirportNegative(ctx context.Context, code string) (bool, error) {
	key := airportKeyPrefix + code + negCacheKeySuffix

	exists, err := c.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists failed: %w", err)
	}

	return exists > 0, nil
}

// DeleteAirport removes a cached airport. Used when reference data is reloaded.
func (c *Cache) DeleteAirport(ctx context.Context, code string) error {
	key := airportKeyPrefix + code
	return c.client.Del(ctx, key).Err()
}
