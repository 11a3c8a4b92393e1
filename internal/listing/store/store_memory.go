package store

import (
	"context"
	"sort"
	"sync"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// MemoryStore is an in-process ListingStore for tests and single-node runs.
type MemoryStore struct {
	mu       sync.RWMutex
	listings map[id.Address]domain.Listing
}

func NewMemory() *MemoryStore {
	return &MemoryStore{listings: make(map[id.Address]domain.Listing)}
}

func (s *MemoryStore) Upsert(_ context.Context, record domain.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[record.Token] = record
	return nil
}

func (s *MemoryStore) Find(_ context.Context, token id.Address) (domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.listings[token]
	if !ok {
		return domain.Listing{}, ErrNotFound
	}
	return record, nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Listing, 0, len(s.listings))
	for _, record := range s.listings {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Token < out[j].Token
	})
	return out, nil
}

func (s *MemoryStore) SetPublished(_ context.Context, token id.Address, published bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.listings[token]
	if !ok {
		return ErrNotFound
	}
	record.Published = published
	s.listings[token] = record
	return nil
}
