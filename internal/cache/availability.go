// Package cache holds the optional Redis layer in front of the
// availability pipeline. The pipeline itself is cheap; the cache
// exists so polling clients hitting the same barber/date pair do not
// refetch schedule rows on every tick.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"navalha/internal/metrics"
)

// AvailabilityCache is a read/write-through JSON cache for day grids.
// A nil client disables it entirely.
type AvailabilityCache struct {
	redis *redis.Client
	ttl   time.Duration
}

// New creates a cache over the given client. Pass nil to disable.
func New(client *redis.Client, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{redis: client, ttl: ttl}
}

// Enabled reports whether lookups will ever hit Redis.
func (c *AvailabilityCache) Enabled() bool {
	return c != nil && c.redis != nil && c.ttl > 0
}

// Get unmarshals a cached grid into out. Returns false on miss or
// any cache error; a broken cache never fails a request.
func (c *AvailabilityCache) Get(ctx context.Context, key string, out any) bool {
	if !c.Enabled() {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		metrics.IncCacheMiss()
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		metrics.IncCacheMiss()
		return false
	}
	metrics.IncCacheHit()
	return true
}

// Set stores a grid under key. Errors are dropped for the same
// reason Get drops them.
func (c *AvailabilityCache) Set(ctx context.Context, key string, val any) {
	if !c.Enabled() {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	_ = c.redis.Set(ctx, key, data, c.ttl).Err()
}

// InvalidateDay drops the cached grids a change on that date can
// stale. Called after bookings, cancellations and exception edits.
func (c *AvailabilityCache) InvalidateDay(ctx context.Context, barberID int64, date time.Time) {
	if !c.Enabled() {
		return
	}
	for _, pattern := range dayPatterns(barberID, date) {
		c.deleteMatching(ctx, pattern)
	}
}

// InvalidateAll drops every cached grid. A weekly-rule edit affects
// unbounded future dates, so nothing cached can be trusted.
func (c *AvailabilityCache) InvalidateAll(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	c.deleteMatching(ctx, "availability:*")
}

func (c *AvailabilityCache) deleteMatching(ctx context.Context, pattern string) {
	iter := c.redis.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = c.redis.Del(ctx, iter.Val()).Err()
	}
}

// dayPatterns builds the SCAN patterns covering every grid cached
// for a date. A change for one barber stales their filtered grids
// and the unfiltered ones; barberID zero means the whole day,
// filtered grids for every barber included.
func dayPatterns(barberID int64, date time.Time) []string {
	day := date.Format("2006-01-02")
	if barberID == 0 {
		return []string{fmt.Sprintf("availability:*:%s:*", day)}
	}
	return []string{
		fmt.Sprintf("availability:%d:%s:*", barberID, day),
		fmt.Sprintf("availability:0:%s:*", day),
	}
}

// Key builds the cache key for one grid request.
func Key(barberID int64, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("availability:%d:%s:%d", barberID, date.Format("2006-01-02"), durationMinutes)
}
