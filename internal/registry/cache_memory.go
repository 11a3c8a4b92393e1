package registry

import (
	"context"
	"sync"
	"time"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// MemorySnapshotCache is the in-process SnapshotCache used when Redis is not
// configured. It favors clarity over performance.
type MemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[id.Address]cachedSnapshot
	ttl     time.Duration
}

type cachedSnapshot struct {
	snap     domain.RegistrySnapshot
	storedAt time.Time
}

func NewMemorySnapshotCache(ttl time.Duration) *MemorySnapshotCache {
	return &MemorySnapshotCache{entries: make(map[id.Address]cachedSnapshot), ttl: ttl}
}

func (c *MemorySnapshotCache) Get(_ context.Context, wallet id.Address) (domain.RegistrySnapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if cached, ok := c.entries[wallet]; ok {
		if time.Since(cached.storedAt) < c.ttl {
			return cached.snap, true, nil
		}
	}
	return domain.RegistrySnapshot{}, false, nil
}

func (c *MemorySnapshotCache) Set(_ context.Context, wallet id.Address, snap domain.RegistrySnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[wallet] = cachedSnapshot{snap: snap, storedAt: time.Now()}
	return nil
}

func (c *MemorySnapshotCache) Invalidate(_ context.Context, wallet id.Address) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, wallet)
	return nil
}
