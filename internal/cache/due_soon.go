// Package cache keeps short-lived copies of the due-soon views in Redis.
// Every lifecycle mutation invalidates them so a paid or cancelled charge
// disappears from badges on the next read.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"projectdesk/internal/models"
)

const (
	keyPrefix = "due_soon:"
	// indexKey tracks every due-soon key written so Invalidate can drop them in one call.
	indexKey = "due_soon:keys"
	// generationKey is bumped by every Invalidate.
	generationKey = "due_soon:generation"
)

// DueSoonCache stores due-soon candidate lists keyed by window and day.
//
// Readers take the Generation before querying the store and hand it to Set.
// Set drops the write when an Invalidate happened in between, so a list read
// before a mutation committed is never cached after it.
type DueSoonCache interface {
	Get(ctx context.Context, windowDays int, day string) ([]models.RecurringCharge, bool, error)
	Generation(ctx context.Context) (int64, error)
	Set(ctx context.Context, windowDays int, day string, generation int64, charges []models.RecurringCharge) error
	Invalidate(ctx context.Context) error
}

// NewDueSoonCache returns a Redis-backed cache, or a no-op cache when client is nil.
func NewDueSoonCache(client *redis.Client, ttl time.Duration) DueSoonCache {
	if client == nil {
		return Nop{}
	}
	return &redisDueSoonCache{client: client, ttl: ttl}
}

type redisDueSoonCache struct {
	client *redis.Client
	ttl    time.Duration
}

func key(windowDays int, day string) string {
	return fmt.Sprintf("%s%d:%s", keyPrefix, windowDays, day)
}

func (c *redisDueSoonCache) Get(ctx context.Context, windowDays int, day string) ([]models.RecurringCharge, bool, error) {
	raw, err := c.client.Get(ctx, key(windowDays, day)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var charges []models.RecurringCharge
	if err := json.Unmarshal(raw, &charges); err != nil {
		return nil, false, err
	}
	return charges, true, nil
}

func (c *redisDueSoonCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Set caches charges unless the generation moved past generation. A skipped
// write is not an error.
func (c *redisDueSoonCache) Set(ctx context.Context, windowDays int, day string, generation int64, charges []models.RecurringCharge) error {
	data, err := json.Marshal(charges)
	if err != nil {
		return err
	}

	k := key(windowDays, day)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, data, c.ttl)
			pipe.SAdd(ctx, indexKey, k)
			return nil
		})
		return err
	}, generationKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *redisDueSoonCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, generationKey).Err(); err != nil {
		return err
	}
	keys, err := c.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return err
	}
	keys = append(keys, indexKey)
	return c.client.Del(ctx, keys...).Err()
}

// Nop is used when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, int, string) ([]models.RecurringCharge, bool, error) {
	return nil, false, nil
}

func (Nop) Generation(context.Context) (int64, error) { return 0, nil }

func (Nop) Set(context.Context, int, string, int64, []models.RecurringCharge) error { return nil }

func (Nop) Invalidate(context.Context) error { return nil }
