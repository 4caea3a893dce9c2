package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Client is a thin Redis wrapper that degrades to a no-op cache when Redis is
// unreachable. Reads behave like misses and writes are dropped, so callers
// never handle connectivity errors.
type Client struct {
	rdb *redis.Client
}

// New builds a client for the given Redis address. The connection is lazy; a
// dead Redis surfaces only as cache misses.
func New(addr, password string, db int) *Client {
	return &Client{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// Get returns the value for key, or nil when the key is absent or Redis is
// unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		// connectivity error, treat as a miss
		return nil, nil
	}
	return data, nil
}

// Set stores value under key with the given TTL, dropping the write on error.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	_ = c.rdb.Set(ctx, key, value, ttl).Err()
	return nil
}

// Delete removes key, ignoring errors.
func (c *Client) Delete(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	_ = c.rdb.Del(ctx, key).Err()
	return nil
}
