package domain

import (
	"math/big"

	id "brickgate/pkg/domain"
)

// SaleSnapshot is the per-property sale contract view. A zero SaleContract
// means no sale is configured for the token. ReadFailed marks a linked sale
// whose state could not be fetched; the purchase flow treats that as its own
// precondition failure rather than as "inactive".
type SaleSnapshot struct {
	SaleContract       id.Address
	PriceUnitsPerToken *big.Int
	SaleActive         bool
	ReadFailed         bool
}

// Configured reports whether the token has a linked sale contract.
func (s SaleSnapshot) Configured() bool {
	return !s.SaleContract.IsZero()
}

// TokenInfo is the house-token view used by the market catalog.
type TokenInfo struct {
	Address      id.Address
	Name         string
	Symbol       string
	TotalSupply  *big.Int
	MaxSupply    *big.Int
	SaleContract id.Address
}

// FundingProgress returns totalSupply*100/maxSupply in integer percent,
// zero when max supply is unset.
func (t TokenInfo) FundingProgress() int {
	if t.MaxSupply == nil || t.MaxSupply.Sign() <= 0 || t.TotalSupply == nil {
		return 0
	}
	pct := new(big.Int).Mul(t.TotalSupply, big.NewInt(100))
	pct.Quo(pct, t.MaxSupply)
	return int(pct.Int64())
}

// PurchaseOrder is the fully validated result of the purchase precondition
// chain: the exact payment the buy transaction must carry.
type PurchaseOrder struct {
	Wallet               id.Address
	Token                id.Address
	SaleContract         id.Address
	PartsRequested       uint64
	RequiredPaymentUnits *big.Int
}
