package holiday

import (
	"context"
	"log/slog"
	"sync"
)

// Cache stores fetched holidays per Key.
// A miss is reported as (nil, false, nil), never as an error.
type Cache interface {
	Get(ctx context.Context, key Key) ([]PublicHoliday, bool, error)
	Set(ctx context.Context, key Key, holidays []PublicHoliday) error
}

// MemoryCache is a process-local Cache. Entries are never evicted.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[Key][]PublicHoliday
}

// NewMemoryCache constructs an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[Key][]PublicHoliday)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, key Key) ([]PublicHoliday, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	hs, ok := c.entries[key]
	return hs, ok, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, key Key, holidays []PublicHoliday) error {
	if holidays == nil {
		holidays = []PublicHoliday{}
	}

	c.mu.Lock()
	c.entries[key] = holidays
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached keys.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Tiered chains caches from fastest to slowest. A hit in a slower tier is
// copied into every faster tier; Set writes all tiers.
// Tier failures are logged and treated as misses.
type Tiered struct {
	tiers []Cache
	names []string
	log   *slog.Logger
}

// NewTiered constructs an empty Tiered cache. Add tiers with Add.
func NewTiered(log *slog.Logger) *Tiered {
	if log == nil {
		log = slog.Default()
	}
	return &Tiered{log: log}
}

// Add appends a slower tier and returns t.
func (t *Tiered) Add(name string, c Cache) *Tiered {
	t.tiers = append(t.tiers, c)
	t.names = append(t.names, name)
	return t
}

// Get implements Cache.
func (t *Tiered) Get(ctx context.Context, key Key) ([]PublicHoliday, bool, error) {
	for i, c := range t.tiers {
		hs, ok, err := c.Get(ctx, key)
		if err != nil {
			t.log.Warn("holiday cache tier get failed", "tier", t.names[i], "key", key.String(), "err", err)
			continue
		}
		if !ok {
			continue
		}

		for j := 0; j < i; j++ {
			if err := t.tiers[j].Set(ctx, key, hs); err != nil {
				t.log.Warn("holiday cache tier backfill failed", "tier", t.names[j], "key", key.String(), "err", err)
			}
		}
		return hs, true, nil
	}
	return nil, false, nil
}

// Set implements Cache.
func (t *Tiered) Set(ctx context.Context, key Key, holidays []PublicHoliday) error {
	for i, c := range t.tiers {
		if err := c.Set(ctx, key, holidays); err != nil {
			t.log.Warn("holiday cache tier set failed", "tier", t.names[i], "key", key.String(), "err", err)
		}
	}
	return nil
}
