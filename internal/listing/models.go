// Package listing manages property listing metadata and the public market
// catalog joining listings with live token and sale state.
package listing

import (
	"brickgate/internal/domain"
)

// PropertyView joins a published listing with its live on-chain state for the
// market surfaces.
type PropertyView struct {
	Listing         domain.Listing
	Token           domain.TokenInfo
	FundingProgress int
	Sale            domain.SaleSnapshot
}
