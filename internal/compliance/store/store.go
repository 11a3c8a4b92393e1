// Package store persists compliance submissions keyed by wallet address.
package store

import (
	"context"
	"errors"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// ErrNotFound is returned when no submission exists for a wallet.
var ErrNotFound = errors.New("submission not found")

// SubmissionStore keeps the latest local submission per wallet. Saving again
// overwrites the prior record; registry history is untouched.
type SubmissionStore interface {
	Save(ctx context.Context, submission domain.Submission) error
	Find(ctx context.Context, wallet id.Address) (domain.Submission, error)
	List(ctx context.Context) ([]domain.Submission, error)
}
