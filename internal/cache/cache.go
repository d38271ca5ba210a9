package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/neexbeast/yearcal/internal/holiday"
)

// Cache wraps a Redis client and stores one JSON document per holiday.Key.
// It satisfies holiday.Cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache constructs a Cache. A zero ttl keeps entries until Redis evicts
// them itself.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// key returns the Redis key for the given holiday key.
func key(k holiday.Key) string {
	return "holidays:" + strconv.Itoa(k.Year) + ":" + k.CountryCode
}

// Get retrieves one year of holidays from Redis.
func (c *Cache) Get(ctx context.Context, k holiday.Key) ([]holiday.PublicHoliday, bool, error) {
	val, err := c.client.Get(ctx, key(k)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get for %s: %w", k, err)
	}

	var hs []holiday.PublicHoliday
	if err := json.Unmarshal(val, &hs); err != nil {
		return nil, false, fmt.Errorf("unmarshaling cached holidays for %s: %w", k, err)
	}

	return hs, true, nil
}

// Set stores one year of holidays with the configured TTL.
func (c *Cache) Set(ctx context.Context, k holiday.Key, hs []holiday.PublicHoliday) error {
	if hs == nil {
		hs = []holiday.PublicHoliday{}
	}

	b, err := json.Marshal(hs)
	if err != nil {
		return fmt.Errorf("marshaling holidays for %s: %w", k, err)
	}

	if err := c.client.Set(ctx, key(k), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set for %s: %w", k, err)
	}

	return nil
}
