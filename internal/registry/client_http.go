package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	contract "brickgate/contracts/registry"
	"brickgate/internal/domain"
	"brickgate/internal/registry/metrics"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// HTTPClient talks JSON to a chain node (or the chain-node mock). Node error
// messages are surfaced verbatim in the remote_call error so callers see the
// contract revert reason, not an interpretation of it.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	metrics *metrics.Metrics
}

type HTTPClientOption func(*HTTPClient)

// WithHTTPClientMetrics records write transaction outcomes per operation.
func WithHTTPClientMetrics(m *metrics.Metrics) HTTPClientOption {
	return func(c *HTTPClient) {
		c.metrics = m
	}
}

// NewHTTPClient builds a client for the given node base URL. The http.Client
// carries no timeout: the core defines none, and a stalled call stalls the
// dependent flow by design of the remote boundary.
func NewHTTPClient(baseURL string, httpClient *http.Client, opts ...HTTPClientOption) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &HTTPClient{baseURL: baseURL, http: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) SubmitRequest(ctx context.Context, wallet id.Address, commitment domain.Commitment) (TxReceipt, error) {
	return c.write(ctx, "submit_request", "/kyc/submit", map[string]string{
		"wallet":     wallet.String(),
		"commitment": string(commitment),
	})
}

func (c *HTTPClient) GetRequest(ctx context.Context, wallet id.Address) (Request, error) {
	var out contract.KYCRequest
	if err := c.read(ctx, "/kyc/requests/"+url.PathEscape(wallet.String()), &out); err != nil {
		return Request{}, err
	}
	return Request{
		Commitment: domain.Commitment(out.Commitment),
		Exists:     out.Exists,
		Approved:   out.Approved,
		Rejected:   out.Rejected,
	}, nil
}

func (c *HTTPClient) ApproveRequest(ctx context.Context, wallet id.Address) (TxReceipt, error) {
	return c.write(ctx, "approve_request", "/kyc/approve", map[string]string{"wallet": wallet.String()})
}

func (c *HTTPClient) RejectRequest(ctx context.Context, wallet id.Address) (TxReceipt, error) {
	return c.write(ctx, "reject_request", "/kyc/reject", map[string]string{"wallet": wallet.String()})
}

func (c *HTTPClient) IsVerified(ctx context.Context, wallet id.Address) (bool, error) {
	var out struct {
		Verified bool `json:"verified"`
	}
	if err := c.read(ctx, "/identity/verified/"+url.PathEscape(wallet.String()), &out); err != nil {
		return false, err
	}
	return out.Verified, nil
}

func (c *HTTPClient) VerifyInvestor(ctx context.Context, wallet id.Address) (TxReceipt, error) {
	return c.write(ctx, "verify_investor", "/identity/verify", map[string]string{"wallet": wallet.String()})
}

func (c *HTTPClient) RevokeInvestor(ctx context.Context, wallet id.Address) (TxReceipt, error) {
	return c.write(ctx, "revoke_investor", "/identity/revoke", map[string]string{"wallet": wallet.String()})
}

func (c *HTTPClient) Owner(ctx context.Context) (id.Address, error) {
	var out struct {
		Owner string `json:"owner"`
	}
	if err := c.read(ctx, "/identity/owner", &out); err != nil {
		return "", err
	}
	return id.ParseAddress(out.Owner)
}

func (c *HTTPClient) PriceUnitsPerToken(ctx context.Context, sale id.Address) (string, error) {
	var out contract.SaleState
	if err := c.read(ctx, "/sales/"+url.PathEscape(sale.String()), &out); err != nil {
		return "", err
	}
	return out.PriceUnitsPerToken, nil
}

func (c *HTTPClient) SaleActive(ctx context.Context, sale id.Address) (bool, error) {
	var out contract.SaleState
	if err := c.read(ctx, "/sales/"+url.PathEscape(sale.String()), &out); err != nil {
		return false, err
	}
	return out.SaleActive, nil
}

func (c *HTTPClient) BuyTokens(ctx context.Context, sale id.Address, wallet id.Address, paymentUnits string) (TxReceipt, error) {
	return c.write(ctx, "buy_tokens", "/sales/"+url.PathEscape(sale.String())+"/buy", map[string]string{
		"wallet": wallet.String(),
		"value":  paymentUnits,
	})
}

func (c *HTTPClient) TokenCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.read(ctx, "/tokens", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *HTTPClient) TokenAt(ctx context.Context, index int) (id.Address, error) {
	var out struct {
		Address string `json:"address"`
	}
	if err := c.read(ctx, "/tokens/"+strconv.Itoa(index), &out); err != nil {
		return "", err
	}
	return id.ParseAddress(out.Address)
}

func (c *HTTPClient) TokenInfo(ctx context.Context, token id.Address) (domain.TokenInfo, error) {
	var out contract.TokenState
	if err := c.read(ctx, "/tokens/info/"+url.PathEscape(token.String()), &out); err != nil {
		return domain.TokenInfo{}, err
	}
	total, err := parseUnits(out.TotalSupply)
	if err != nil {
		return domain.TokenInfo{}, err
	}
	max, err := parseUnits(out.MaxSupply)
	if err != nil {
		return domain.TokenInfo{}, err
	}
	info := domain.TokenInfo{
		Address:     token,
		Name:        out.Name,
		Symbol:      out.Symbol,
		TotalSupply: total,
		MaxSupply:   max,
	}
	if out.SaleContract != "" {
		sale, err := id.ParseAddress(out.SaleContract)
		if err != nil {
			return domain.TokenInfo{}, dErrors.Wrap(err, dErrors.CodeRemoteCall, "token reports malformed sale contract address")
		}
		info.SaleContract = sale
	}
	return info, nil
}

func parseUnits(s string) (*big.Int, error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, dErrors.New(dErrors.CodeRemoteCall, fmt.Sprintf("node returned non-numeric units %q", s))
	}
	return v, nil
}

func (c *HTTPClient) read(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeRemoteCall, "build node request")
	}
	return c.do(req, out)
}

func (c *HTTPClient) write(ctx context.Context, op, path string, body map[string]string) (TxReceipt, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return TxReceipt{}, dErrors.Wrap(err, dErrors.CodeRemoteCall, "encode node request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return TxReceipt{}, dErrors.Wrap(err, dErrors.CodeRemoteCall, "build node request")
	}
	req.Header.Set("Content-Type", "application/json")

	var receipt contract.TxReceipt
	if err := c.do(req, &receipt); err != nil {
		c.metrics.IncrementWrite(op, "error")
		return TxReceipt{}, err
	}
	c.metrics.IncrementWrite(op, "ok")
	return TxReceipt{TxHash: receipt.TxHash}, nil
}

func (c *HTTPClient) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeRemoteCall, "node unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		// Surface the node's message verbatim.
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return dErrors.New(dErrors.CodeRemoteCall, fmt.Sprintf("node returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeRemoteCall, "decode node response")
	}
	return nil
}
