// Package store persists property listings keyed by token address.
package store

import (
	"context"
	"errors"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// ErrNotFound is returned when no listing exists for a token.
var ErrNotFound = errors.New("listing not found")

// ListingStore keeps one listing record per token address.
type ListingStore interface {
	Upsert(ctx context.Context, record domain.Listing) error
	Find(ctx context.Context, token id.Address) (domain.Listing, error)
	List(ctx context.Context) ([]domain.Listing, error)
	SetPublished(ctx context.Context, token id.Address, published bool) error
}
