package registry

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// MemoryClient is a stateful in-process chain fake. It backs local development
// without a node and the service-level tests; behavior mirrors the contracts
// (submit upserts the request and clears prior decision flags, approve/reject
// are owner decisions, verify/revoke toggle the whitelist).
type MemoryClient struct {
	mu       sync.RWMutex
	owner    id.Address
	requests map[id.Address]Request
	verified map[id.Address]bool
	sales    map[id.Address]saleState
	tokens   []id.Address
	infos    map[id.Address]domain.TokenInfo
	txSeq    int

	// failOn injects one error per method name, consumed on first use.
	failOn map[string]error
}

type saleState struct {
	price  *big.Int
	active bool
}

func NewMemoryClient(owner id.Address) *MemoryClient {
	return &MemoryClient{
		owner:    owner,
		requests: make(map[id.Address]Request),
		verified: make(map[id.Address]bool),
		sales:    make(map[id.Address]saleState),
		infos:    make(map[id.Address]domain.TokenInfo),
		failOn:   make(map[string]error),
	}
}

// FailOnce arms a single injected failure for the named method
// ("VerifyInvestor", "RejectRequest", ...). Test hook.
func (c *MemoryClient) FailOnce(method string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failOn[method] = err
}

// AddSale registers a sale contract with price and activity.
func (c *MemoryClient) AddSale(sale id.Address, price *big.Int, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sales[sale] = saleState{price: new(big.Int).Set(price), active: active}
}

// AddToken registers a house token for the catalog.
func (c *MemoryClient) AddToken(info domain.TokenInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = append(c.tokens, info.Address)
	c.infos[info.Address] = info
}

func (c *MemoryClient) injected(method string) error {
	if err, ok := c.failOn[method]; ok {
		delete(c.failOn, method)
		return err
	}
	return nil
}

func (c *MemoryClient) receipt() TxReceipt {
	c.txSeq++
	return TxReceipt{TxHash: fmt.Sprintf("0x%064x", c.txSeq)}
}

func (c *MemoryClient) SubmitRequest(_ context.Context, wallet id.Address, commitment domain.Commitment) (TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("SubmitRequest"); err != nil {
		return TxReceipt{}, err
	}
	// Resubmission resets the decision flags, as the contract does.
	c.requests[wallet] = Request{Commitment: commitment, Exists: true}
	return c.receipt(), nil
}

func (c *MemoryClient) GetRequest(_ context.Context, wallet id.Address) (Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("GetRequest"); err != nil {
		return Request{}, err
	}
	return c.requests[wallet], nil
}

func (c *MemoryClient) ApproveRequest(_ context.Context, wallet id.Address) (TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("ApproveRequest"); err != nil {
		return TxReceipt{}, err
	}
	req := c.requests[wallet]
	if !req.Exists {
		return TxReceipt{}, dErrors.New(dErrors.CodeRemoteCall, "execution reverted: no request")
	}
	req.Approved, req.Rejected = true, false
	c.requests[wallet] = req
	return c.receipt(), nil
}

func (c *MemoryClient) RejectRequest(_ context.Context, wallet id.Address) (TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("RejectRequest"); err != nil {
		return TxReceipt{}, err
	}
	req := c.requests[wallet]
	if !req.Exists {
		return TxReceipt{}, dErrors.New(dErrors.CodeRemoteCall, "execution reverted: no request")
	}
	req.Rejected, req.Approved = true, false
	c.requests[wallet] = req
	return c.receipt(), nil
}

func (c *MemoryClient) IsVerified(_ context.Context, wallet id.Address) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("IsVerified"); err != nil {
		return false, err
	}
	return c.verified[wallet], nil
}

func (c *MemoryClient) VerifyInvestor(_ context.Context, wallet id.Address) (TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("VerifyInvestor"); err != nil {
		return TxReceipt{}, err
	}
	c.verified[wallet] = true
	return c.receipt(), nil
}

func (c *MemoryClient) RevokeInvestor(_ context.Context, wallet id.Address) (TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("RevokeInvestor"); err != nil {
		return TxReceipt{}, err
	}
	delete(c.verified, wallet)
	return c.receipt(), nil
}

func (c *MemoryClient) Owner(_ context.Context) (id.Address, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.owner, nil
}

func (c *MemoryClient) PriceUnitsPerToken(_ context.Context, sale id.Address) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("PriceUnitsPerToken"); err != nil {
		return "", err
	}
	st, ok := c.sales[sale]
	if !ok {
		return "", dErrors.New(dErrors.CodeRemoteCall, "no contract at address")
	}
	return st.price.String(), nil
}

func (c *MemoryClient) SaleActive(_ context.Context, sale id.Address) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("SaleActive"); err != nil {
		return false, err
	}
	st, ok := c.sales[sale]
	if !ok {
		return false, dErrors.New(dErrors.CodeRemoteCall, "no contract at address")
	}
	return st.active, nil
}

func (c *MemoryClient) BuyTokens(_ context.Context, sale id.Address, wallet id.Address, paymentUnits string) (TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("BuyTokens"); err != nil {
		return TxReceipt{}, err
	}
	st, ok := c.sales[sale]
	if !ok {
		return TxReceipt{}, dErrors.New(dErrors.CodeRemoteCall, "no contract at address")
	}
	if !st.active {
		return TxReceipt{}, dErrors.New(dErrors.CodeRemoteCall, "execution reverted: sale not active")
	}
	if !c.verified[wallet] {
		return TxReceipt{}, dErrors.New(dErrors.CodeRemoteCall, "execution reverted: not whitelisted")
	}
	value, ok := new(big.Int).SetString(paymentUnits, 10)
	if !ok || value.Sign() <= 0 {
		return TxReceipt{}, dErrors.New(dErrors.CodeRemoteCall, "execution reverted: bad payment")
	}
	return c.receipt(), nil
}

func (c *MemoryClient) TokenCount(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tokens), nil
}

func (c *MemoryClient) TokenAt(_ context.Context, index int) (id.Address, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if index < 0 || index >= len(c.tokens) {
		return "", dErrors.New(dErrors.CodeRemoteCall, "token index out of range")
	}
	return c.tokens[index], nil
}

func (c *MemoryClient) TokenInfo(_ context.Context, token id.Address) (domain.TokenInfo, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.injected("TokenInfo"); err != nil {
		return domain.TokenInfo{}, err
	}
	info, ok := c.infos[token]
	if !ok {
		return domain.TokenInfo{}, dErrors.New(dErrors.CodeRemoteCall, "no contract at address")
	}
	return info, nil
}
