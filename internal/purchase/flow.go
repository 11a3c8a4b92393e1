// Package purchase implements the gated token purchase: a strict precondition
// chain over the resolved authorization state and the sale snapshot, exact
// integer payment arithmetic, and the buy transaction itself.
package purchase

import (
	"math/big"

	"brickgate/internal/authorization"
	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// FailureCode names the failed precondition. Exactly one is reported per
// attempt; the chain evaluates in a fixed order and the first failure wins.
type FailureCode string

const (
	WalletNotConnected FailureCode = "WalletNotConnected"
	KycNotSubmitted    FailureCode = "KycNotSubmitted"
	KycRejected        FailureCode = "KycRejected"
	KycPending         FailureCode = "KycPending"
	PurchaseFrozen     FailureCode = "PurchaseFrozen"
	SaleNotConfigured  FailureCode = "SaleNotConfigured"
	SaleUnreadable     FailureCode = "SaleUnreadable"
	SaleInactive       FailureCode = "SaleInactive"
	InvalidPartsCount  FailureCode = "InvalidPartsCount"
	InvalidPrice       FailureCode = "InvalidPrice"
)

// Error is a failed purchase precondition. It is resolved locally, before any
// buy transaction is attempted.
type Error struct {
	Code FailureCode
}

func (e *Error) Error() string {
	switch e.Code {
	case WalletNotConnected:
		return "no wallet connected"
	case KycNotSubmitted:
		return "KYC has not been submitted"
	case KycRejected:
		return "KYC was rejected"
	case KycPending:
		return "KYC is pending review"
	case PurchaseFrozen:
		return "purchasing is frozen for this wallet"
	case SaleNotConfigured:
		return "no sale is configured for this token"
	case SaleUnreadable:
		return "sale state could not be read"
	case SaleInactive:
		return "sale is not active"
	case InvalidPartsCount:
		return "parts requested must be a positive integer"
	case InvalidPrice:
		return "sale price must be greater than zero"
	}
	return "purchase precondition failed"
}

func failure(code FailureCode) *Error {
	return &Error{Code: code}
}

// Attempt runs the ten preconditions in order and, when all pass, builds the
// order carrying requiredPaymentUnits = partsRequested × priceUnitsPerToken.
// The arithmetic is exact integer math; no floating point touches the payment
// value.
func Attempt(wallet, token id.Address, partsRequested uint64, state authorization.State, sale domain.SaleSnapshot) (domain.PurchaseOrder, *Error) {
	var none domain.PurchaseOrder

	if wallet.IsZero() {
		return none, failure(WalletNotConnected)
	}
	if state == authorization.NoRequest {
		return none, failure(KycNotSubmitted)
	}
	if state == authorization.Rejected {
		return none, failure(KycRejected)
	}
	if state == authorization.Pending {
		return none, failure(KycPending)
	}
	if state == authorization.ApprovedFrozen {
		return none, failure(PurchaseFrozen)
	}
	if !sale.Configured() {
		return none, failure(SaleNotConfigured)
	}
	if sale.ReadFailed {
		return none, failure(SaleUnreadable)
	}
	if !sale.SaleActive {
		return none, failure(SaleInactive)
	}
	if partsRequested == 0 {
		return none, failure(InvalidPartsCount)
	}
	if sale.PriceUnitsPerToken == nil || sale.PriceUnitsPerToken.Sign() <= 0 {
		return none, failure(InvalidPrice)
	}

	payment := new(big.Int).Mul(
		new(big.Int).SetUint64(partsRequested),
		sale.PriceUnitsPerToken,
	)
	return domain.PurchaseOrder{
		Wallet:               wallet,
		Token:                token,
		SaleContract:         sale.SaleContract,
		PartsRequested:       partsRequested,
		RequiredPaymentUnits: payment,
	}, nil
}
