package purchase

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"brickgate/internal/authorization"
	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

const (
	flowWallet = id.Address("0x00000000000000000000000000000000000000aa")
	flowToken  = id.Address("0x0000000000000000000000000000000000000010")
	flowSale   = id.Address("0x0000000000000000000000000000000000000011")
)

func openSale() domain.SaleSnapshot {
	return domain.SaleSnapshot{
		SaleContract:       flowSale,
		PriceUnitsPerToken: big.NewInt(1_000_000),
		SaleActive:         true,
	}
}

func TestAttemptHappyPath(t *testing.T) {
	order, pErr := Attempt(flowWallet, flowToken, 7, authorization.ApprovedVerified, openSale())
	require.Nil(t, pErr)
	require.Equal(t, flowWallet, order.Wallet)
	require.Equal(t, flowSale, order.SaleContract)
	require.Equal(t, uint64(7), order.PartsRequested)
	require.Equal(t, big.NewInt(7_000_000), order.RequiredPaymentUnits)
}

func TestAttemptPaymentIsExactIntegerMath(t *testing.T) {
	// wei-scale price: 0.05 ether per part, far beyond float precision
	price, _ := new(big.Int).SetString("50000000000000000", 10)
	sale := openSale()
	sale.PriceUnitsPerToken = price

	order, pErr := Attempt(flowWallet, flowToken, 123456789, authorization.ApprovedVerified, sale)
	require.Nil(t, pErr)

	expected, _ := new(big.Int).SetString("6172839450000000000000000", 10)
	require.Equal(t, expected, order.RequiredPaymentUnits)
}

// TestAttemptFirstFailureWins walks the chain with every precondition broken
// at once and removes them front to back: the reported code must always be
// the earliest broken one.
func TestAttemptFirstFailureWins(t *testing.T) {
	type attempt struct {
		wallet id.Address
		parts  uint64
		state  authorization.State
		sale   domain.SaleSnapshot
	}

	// fully broken attempt
	broken := attempt{
		wallet: id.ZeroAddress,
		parts:  0,
		state:  authorization.NoRequest,
		sale:   domain.SaleSnapshot{},
	}

	steps := []struct {
		expect FailureCode
		fix    func(a *attempt)
	}{
		{WalletNotConnected, func(a *attempt) { a.wallet = flowWallet }},
		{KycNotSubmitted, func(a *attempt) { a.state = authorization.Rejected }},
		{KycRejected, func(a *attempt) { a.state = authorization.Pending }},
		{KycPending, func(a *attempt) { a.state = authorization.ApprovedFrozen }},
		{PurchaseFrozen, func(a *attempt) { a.state = authorization.ApprovedVerified }},
		{SaleNotConfigured, func(a *attempt) {
			a.sale.SaleContract = flowSale
			a.sale.ReadFailed = true
		}},
		{SaleUnreadable, func(a *attempt) { a.sale.ReadFailed = false }},
		{SaleInactive, func(a *attempt) { a.sale.SaleActive = true }},
		{InvalidPartsCount, func(a *attempt) { a.parts = 3 }},
		{InvalidPrice, func(a *attempt) { a.sale.PriceUnitsPerToken = big.NewInt(2) }},
	}

	current := broken
	for _, step := range steps {
		_, pErr := Attempt(current.wallet, flowToken, current.parts, current.state, current.sale)
		require.NotNil(t, pErr, "expected failure %s", step.expect)
		require.Equal(t, step.expect, pErr.Code)
		step.fix(&current)
	}

	order, pErr := Attempt(current.wallet, flowToken, current.parts, current.state, current.sale)
	require.Nil(t, pErr)
	require.Equal(t, big.NewInt(6), order.RequiredPaymentUnits)
}

func TestAttemptRejectsZeroAndNegativePrice(t *testing.T) {
	sale := openSale()
	sale.PriceUnitsPerToken = big.NewInt(0)
	_, pErr := Attempt(flowWallet, flowToken, 1, authorization.ApprovedVerified, sale)
	require.NotNil(t, pErr)
	require.Equal(t, InvalidPrice, pErr.Code)

	sale.PriceUnitsPerToken = nil
	_, pErr = Attempt(flowWallet, flowToken, 1, authorization.ApprovedVerified, sale)
	require.NotNil(t, pErr)
	require.Equal(t, InvalidPrice, pErr.Code)
}
