package database

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis returns nil when no address is configured; callers treat a nil
// client as "rate limiting falls back to the in-memory limiter".
func NewRedis(addr, password string) *redis.Client {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
