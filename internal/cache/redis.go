package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"projectdesk/internal/logger"
)

// Connect opens a Redis client from a URL such as redis://host:6379/0.
// A bare host:port is accepted as well.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// ConnectOptional connects when url is set. An empty url or an unreachable
// server yields a nil client, and callers run without caching or locking.
func ConnectOptional(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}
	client, err := Connect(ctx, url)
	if err != nil {
		logger.Named("cache").Warnw("redis unavailable, continuing without cache and pass lock", "error", err)
		return nil
	}
	return client
}
