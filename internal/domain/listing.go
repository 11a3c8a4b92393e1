package domain

import (
	"time"

	id "brickgate/pkg/domain"
)

// Listing is the off-chain metadata for one property token, keyed by the
// lower-cased token address. Fields are locked while Published is true; an
// administrator must unpublish before editing.
type Listing struct {
	Token         id.Address `json:"token"`
	Title         string     `json:"title"`
	City          string     `json:"city"`
	Description   string     `json:"description"`
	SurfaceM2     int        `json:"surfaceM2"`
	Rooms         int        `json:"rooms"`
	PropertyPrice string     `json:"propertyPrice"`
	ExpectedYield string     `json:"expectedYield"`
	SPVName       string     `json:"spvName"`
	SPVRegistryID string     `json:"spvRegistryId"`
	Published     bool       `json:"published"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
