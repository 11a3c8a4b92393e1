// Package redis wraps the go-redis client with pool settings from config.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"brickgate/internal/platform/config"
)

// Client wraps a redis connection pool.
type Client struct {
	rdb *redis.Client
}

// New connects to redis using the given configuration and verifies the
// connection with a ping.
func New(ctx context.Context, cfg config.Redis) (*Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// Raw exposes the underlying client for feature stores.
func (c *Client) Raw() *redis.Client {
	return c.rdb
}

// Health reports whether redis responds to ping.
func (c *Client) Health(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
