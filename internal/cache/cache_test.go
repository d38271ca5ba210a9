package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/yearcal/internal/cache"
	"github.com/neexbeast/yearcal/internal/holiday"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return cache.NewCache(client, ttl), mr
}

func sampleHolidays() []holiday.PublicHoliday {
	return []holiday.PublicHoliday{
		{Date: "2024-07-14", LocalName: "Fête nationale", Name: "Bastille Day", CountryCode: "FR", Global: true, Type: "Public"},
		{Date: "2024-12-26", LocalName: "Saint-Étienne", CountryCode: "FR", Counties: []string{"FR-57"}},
	}
}

func TestCache_SetAndGet(t *testing.T) {
	c, mr := newTestCache(t, 0)
	ctx := context.Background()
	key := holiday.NewKey(2024, "fr")

	require.NoError(t, c.Set(ctx, key, sampleHolidays()))
	assert.True(t, mr.Exists("holidays:2024:FR"))

	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.Equal(t, "Fête nationale", got[0].LocalName)
	assert.Nil(t, got[0].Counties, "nationwide holidays must keep a nil county list")
	assert.Equal(t, []string{"FR-57"}, got[1].Counties)
}

func TestCache_Get_Miss(t *testing.T) {
	c, _ := newTestCache(t, 0)

	got, ok, err := c.Get(context.Background(), holiday.NewKey(1999, "FR"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestCache_Set_NilIsEmptyYear(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()
	key := holiday.NewKey(2024, "GB")

	require.NoError(t, c.Set(ctx, key, nil))
	got, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestCache_NoTTLPersists(t *testing.T) {
	c, mr := newTestCache(t, 0)
	ctx := context.Background()
	key := holiday.NewKey(2024, "FR")

	require.NoError(t, c.Set(ctx, key, sampleHolidays()))
	mr.FastForward(30 * 24 * time.Hour)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCache_TTL(t *testing.T) {
	c, mr := newTestCache(t, time.Hour)
	ctx := context.Background()
	key := holiday.NewKey(2024, "FR")

	require.NoError(t, c.Set(ctx, key, sampleHolidays()))
	mr.FastForward(2 * time.Hour)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "entry should be expired after TTL")
}

func TestCache_CorruptValue(t *testing.T) {
	c, mr := newTestCache(t, 0)
	require.NoError(t, mr.Set("holidays:2024:FR", "not-json"))

	_, _, err := c.Get(context.Background(), holiday.NewKey(2024, "FR"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshaling")
}

func TestCache_ServerDown(t *testing.T) {
	c, mr := newTestCache(t, 0)
	mr.Close()

	_, _, err := c.Get(context.Background(), holiday.NewKey(2024, "FR"))
	require.Error(t, err)
}

func TestCache_AsFetcherTier(t *testing.T) {
	c, _ := newTestCache(t, 0)
	ctx := context.Background()
	mem := holiday.NewMemoryCache()
	tiered := holiday.NewTiered(nil).Add("memory", mem).Add("redis", c)

	require.NoError(t, c.Set(ctx, holiday.NewKey(2024, "FR"), sampleHolidays()))

	_, ok, err := tiered.Get(ctx, holiday.NewKey(2024, "FR"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, mem.Len())
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := cache.Connect(context.Background(), "not-a-url")
	require.Error(t, err)
}

func TestConnect_UnreachableServer(t *testing.T) {
	_, err := cache.Connect(context.Background(), "redis://localhost:19999")
	require.Error(t, err)
}

func TestConnect_OK(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := cache.Connect(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
