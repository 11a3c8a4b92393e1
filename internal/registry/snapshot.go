package registry

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"brickgate/internal/domain"
	"brickgate/internal/registry/metrics"
	id "brickgate/pkg/domain"
)

// SnapshotCache stores resolved registry snapshots between reads. Misses are
// reported as (zero, false, nil); only infrastructure failures return errors.
type SnapshotCache interface {
	Get(ctx context.Context, wallet id.Address) (domain.RegistrySnapshot, bool, error)
	Set(ctx context.Context, wallet id.Address, snap domain.RegistrySnapshot) error
	Invalidate(ctx context.Context, wallet id.Address) error
}

// Snapshotter joins the two registry contracts into one per-wallet view. The
// request record and the whitelist flag live in independent contracts, so the
// two reads are issued concurrently and joined.
type Snapshotter struct {
	client  Client
	cache   SnapshotCache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// SnapshotterOption configures the Snapshotter.
type SnapshotterOption func(*Snapshotter)

// WithSnapshotCache enables read-through caching.
func WithSnapshotCache(cache SnapshotCache) SnapshotterOption {
	return func(s *Snapshotter) { s.cache = cache }
}

// WithSnapshotLogger sets a logger for cache degradation warnings.
func WithSnapshotLogger(logger *slog.Logger) SnapshotterOption {
	return func(s *Snapshotter) { s.logger = logger }
}

// WithSnapshotMetrics records fetch latency and cache outcomes.
func WithSnapshotMetrics(m *metrics.Metrics) SnapshotterOption {
	return func(s *Snapshotter) { s.metrics = m }
}

func NewSnapshotter(client Client, opts ...SnapshotterOption) *Snapshotter {
	s := &Snapshotter{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the current registry snapshot for a wallet. A cache failure
// degrades to a direct node read; it never fails the caller.
func (s *Snapshotter) Fetch(ctx context.Context, wallet id.Address) (domain.RegistrySnapshot, error) {
	if s.cache != nil {
		snap, ok, err := s.cache.Get(ctx, wallet)
		if err != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "snapshot cache read failed, falling through to node",
					"wallet", wallet.Short(), "error", err)
			}
		} else if ok {
			s.metrics.IncrementCache("hit")
			return snap, nil
		} else {
			s.metrics.IncrementCache("miss")
		}
	}

	start := time.Now()
	var (
		req      Request
		verified bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		req, err = s.client.GetRequest(gctx, wallet)
		return err
	})
	g.Go(func() error {
		var err error
		verified, err = s.client.IsVerified(gctx, wallet)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.RegistrySnapshot{}, err
	}
	s.metrics.ObserveFetchLatency(time.Since(start))

	snap := domain.RegistrySnapshot{
		Commitment:    req.Commitment,
		RequestExists: req.Exists,
		Approved:      req.Approved,
		Rejected:      req.Rejected,
		Verified:      verified,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, wallet, snap); err != nil && s.logger != nil {
			s.logger.WarnContext(ctx, "snapshot cache write failed",
				"wallet", wallet.Short(), "error", err)
		}
	}
	return snap, nil
}

// Invalidate drops the cached snapshot after a write touching the wallet.
func (s *Snapshotter) Invalidate(ctx context.Context, wallet id.Address) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, wallet); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "snapshot cache invalidate failed",
			"wallet", wallet.Short(), "error", err)
	}
}
