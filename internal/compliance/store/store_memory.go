package store

import (
	"context"
	"sort"
	"sync"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// MemoryStore is an in-process SubmissionStore for tests and single-node
// runs without postgres.
type MemoryStore struct {
	mu          sync.RWMutex
	submissions map[id.Address]domain.Submission
}

func NewMemory() *MemoryStore {
	return &MemoryStore{submissions: make(map[id.Address]domain.Submission)}
}

func (s *MemoryStore) Save(_ context.Context, submission domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions[submission.Wallet] = submission
	return nil
}

func (s *MemoryStore) Find(_ context.Context, wallet id.Address) (domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	submission, ok := s.submissions[wallet]
	if !ok {
		return domain.Submission{}, ErrNotFound
	}
	return submission, nil
}

func (s *MemoryStore) List(_ context.Context) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Submission, 0, len(s.submissions))
	for _, submission := range s.submissions {
		out = append(out, submission)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}
