// Package registry is the read/write boundary to the chain node: the KYC
// request registry, the identity registry, the per-property sale contracts,
// and the house-token factory. Implementations are injected so services stay
// testable without a node.
package registry

//go:generate mockgen -source=client.go -destination=mocks/mocks.go -package=mocks Client

import (
	"context"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// TxReceipt acknowledges an accepted write. Once submitted a write runs to
// completion or failure on the node; the caller cannot retract it.
type TxReceipt struct {
	TxHash string
}

// Request is the stored KYC request record for one wallet.
type Request struct {
	Commitment domain.Commitment
	Exists     bool
	Approved   bool
	Rejected   bool
}

// Client is the fixed call contract required by this core. Reads never mutate
// node state; writes are independent transactions with no rollback.
type Client interface {
	// KYC request registry.
	SubmitRequest(ctx context.Context, wallet id.Address, commitment domain.Commitment) (TxReceipt, error)
	GetRequest(ctx context.Context, wallet id.Address) (Request, error)
	ApproveRequest(ctx context.Context, wallet id.Address) (TxReceipt, error)
	RejectRequest(ctx context.Context, wallet id.Address) (TxReceipt, error)

	// Identity registry (whitelist).
	IsVerified(ctx context.Context, wallet id.Address) (bool, error)
	VerifyInvestor(ctx context.Context, wallet id.Address) (TxReceipt, error)
	RevokeInvestor(ctx context.Context, wallet id.Address) (TxReceipt, error)
	Owner(ctx context.Context) (id.Address, error)

	// Sale contracts, addressed per property.
	PriceUnitsPerToken(ctx context.Context, sale id.Address) (string, error)
	SaleActive(ctx context.Context, sale id.Address) (bool, error)
	BuyTokens(ctx context.Context, sale id.Address, wallet id.Address, paymentUnits string) (TxReceipt, error)

	// House-token factory and tokens, read-only for the catalog.
	TokenCount(ctx context.Context) (int, error)
	TokenAt(ctx context.Context, index int) (id.Address, error)
	TokenInfo(ctx context.Context, token id.Address) (domain.TokenInfo, error)
}
