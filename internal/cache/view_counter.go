package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Redis holds live page-view counters between rollups. One key per
// (day, path), incremented on every ingest. The rollup worker drains
// them into Postgres.
//
// Key format: views:{YYYY-MM-DD}:{path}
const viewKeyPrefix = "views:"

// Counter keys outlive at most two rollup cycles; the TTL is a backstop so
// stale keys do not accumulate if the rollup worker is down.
const viewKeyTTL = 48 * time.Hour

// ViewBucket is one drained (day, path) counter.
type ViewBucket struct {
	Day   time.Time
	Path  string
	Views int64
}

// ViewCounter provides page-view counting operations on Redis.
type ViewCounter struct {
	redis *RedisClient
}

// NewViewCounter creates a new ViewCounter.
func NewViewCounter(redis *RedisClient) *ViewCounter {
	return &ViewCounter{redis: redis}
}

func (c *ViewCounter) key(day time.Time, path string) string {
	return fmt.Sprintf("%s%s:%s", viewKeyPrefix, day.UTC().Format("2006-01-02"), path)
}

// Record increments the counter for the given path at the given time.
func (c *ViewCounter) Record(ctx context.Context, path string, at time.Time) error {
	key := c.key(at, path)
	n, err := c.redis.Incr(ctx, key)
	if err != nil {
		return fmt.Errorf("incr view counter: %w", err)
	}
	if n == 1 {
		// Fresh key, set the backstop TTL.
		if err := c.redis.Expire(ctx, key, viewKeyTTL); err != nil {
			return fmt.Errorf("expire view counter: %w", err)
		}
	}
	return nil
}

// Drain atomically reads and removes all pending counters and returns them
// as buckets ready for the daily rollup upsert. Keys that fail to parse are
// skipped and deleted.
func (c *ViewCounter) Drain(ctx context.Context) ([]ViewBucket, error) {
	keys, err := c.redis.ScanKeys(ctx, viewKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("scan view counters: %w", err)
	}

	buckets := make([]ViewBucket, 0, len(keys))
	for _, key := range keys {
		raw, err := c.redis.GetDel(ctx, key)
		if err != nil {
			// Key may have expired between scan and read.
			continue
		}

		day, path, ok := parseViewKey(key)
		if !ok {
			continue
		}
		views, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || views <= 0 {
			continue
		}
		buckets = append(buckets, ViewBucket{Day: day, Path: path, Views: views})
	}
	return buckets, nil
}

func parseViewKey(key string) (time.Time, string, bool) {
	rest, ok := strings.CutPrefix(key, viewKeyPrefix)
	if !ok {
		return time.Time{}, "", false
	}
	datePart, path, ok := strings.Cut(rest, ":")
	if !ok || path == "" {
		return time.Time{}, "", false
	}
	day, err := time.Parse("2006-01-02", datePart)
	if err != nil {
		return time.Time{}, "", false
	}
	return day, path, true
}
