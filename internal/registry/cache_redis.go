package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// RedisSnapshotCache keeps registry snapshots in Redis with a TTL. Admin
// writes invalidate the affected wallet so guards never run on a stale view
// longer than one in-flight read.
type RedisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client, ttl: ttl}
}

func snapshotKey(wallet id.Address) string {
	return "registry:snapshot:" + wallet.String()
}

func (c *RedisSnapshotCache) Get(ctx context.Context, wallet id.Address) (domain.RegistrySnapshot, bool, error) {
	raw, err := c.client.Get(ctx, snapshotKey(wallet)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.RegistrySnapshot{}, false, nil
		}
		return domain.RegistrySnapshot{}, false, fmt.Errorf("get snapshot: %w", err)
	}
	var snap domain.RegistrySnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// Treat a corrupt entry as a miss; the next Set overwrites it.
		return domain.RegistrySnapshot{}, false, nil
	}
	return snap, true, nil
}

func (c *RedisSnapshotCache) Set(ctx context.Context, wallet id.Address, snap domain.RegistrySnapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey(wallet), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context, wallet id.Address) error {
	if err := c.client.Del(ctx, snapshotKey(wallet)).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}
