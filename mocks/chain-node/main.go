// Mock chain node exposing the registry, identity and sale contracts over
// JSON. Used for local development and e2e tests instead of a real node.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	contract "brickgate/contracts/registry"
)

const (
	defaultPort      = "8545"
	defaultOwner     = "0x00000000000000000000000000000000000000ad"
	defaultLatencyMs = "50"
)

type saleState struct {
	PriceUnitsPerToken *big.Int
	Active             bool
	Token              string
}

type tokenState struct {
	Name         string
	Symbol       string
	TotalSupply  *big.Int
	MaxSupply    *big.Int
	SaleContract string
}

// node holds all contract state behind one lock. Every write mints a new
// transaction hash, mirroring how each registry call is its own transaction.
type node struct {
	mu       sync.Mutex
	owner    string
	requests map[string]contract.KYCRequest
	verified map[string]bool
	sales    map[string]*saleState
	tokens   []string
	infos    map[string]*tokenState
	txSeq    uint64
}

func newNode(owner string) *node {
	n := &node{
		owner:    strings.ToLower(owner),
		requests: make(map[string]contract.KYCRequest),
		verified: make(map[string]bool),
		sales:    make(map[string]*saleState),
		infos:    make(map[string]*tokenState),
	}

	// One purchasable demo property, 100 parts at 0.05 ether.
	sale := "0x0000000000000000000000000000000000000201"
	token := "0x0000000000000000000000000000000000000101"
	price, _ := new(big.Int).SetString("50000000000000000", 10)
	n.sales[sale] = &saleState{PriceUnitsPerToken: price, Active: true, Token: token}
	n.tokens = append(n.tokens, token)
	n.infos[token] = &tokenState{
		Name:         "Maison des Lilas",
		Symbol:       "LILAS",
		TotalSupply:  big.NewInt(0),
		MaxSupply:    big.NewInt(100),
		SaleContract: sale,
	}
	return n
}

func (n *node) receipt() contract.TxReceipt {
	n.txSeq++
	return contract.TxReceipt{TxHash: fmt.Sprintf("0x%064x", n.txSeq)}
}

var latencyMs = getEnvInt("LATENCY_MS", defaultLatencyMs)

func main() {
	port := getEnv("PORT", defaultPort)
	n := newNode(getEnv("OWNER_WALLET", defaultOwner))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handleHealth)

	mux.HandleFunc("POST /kyc/submit", n.handleSubmit)
	mux.HandleFunc("GET /kyc/requests/{wallet}", n.handleGetRequest)
	mux.HandleFunc("POST /kyc/approve", n.handleApprove)
	mux.HandleFunc("POST /kyc/reject", n.handleReject)

	mux.HandleFunc("GET /identity/verified/{wallet}", n.handleIsVerified)
	mux.HandleFunc("POST /identity/verify", n.handleVerify)
	mux.HandleFunc("POST /identity/revoke", n.handleRevoke)
	mux.HandleFunc("GET /identity/owner", n.handleOwner)

	mux.HandleFunc("GET /sales/{sale}", n.handleSale)
	mux.HandleFunc("POST /sales/{sale}/buy", n.handleBuy)

	mux.HandleFunc("GET /tokens", n.handleTokenCount)
	mux.HandleFunc("GET /tokens/{index}", n.handleTokenAt)
	mux.HandleFunc("GET /tokens/info/{token}", n.handleTokenInfo)

	log.Printf("⛓️  Mock chain node starting on port %s (contract schema %s)", port, contract.ContractVersion)
	log.Printf("🔑 Owner wallet: %s", n.owner)
	log.Printf("⏱️  Simulated latency: %dms", latencyMs)

	if err := http.ListenAndServe(":"+port, withLatency(mux)); err != nil {
		log.Fatal(err)
	}
}

func withLatency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Duration(latencyMs) * time.Millisecond)
		log.Printf("📥 %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "chain-node",
		"version": contract.ContractVersion,
	})
}

func (n *node) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Wallet     string `json:"wallet"`
		Commitment string `json:"commitment"`
	}
	if !decode(w, r, &req) {
		return
	}
	wallet, ok := requireWallet(w, req.Wallet)
	if !ok {
		return
	}
	if req.Commitment == "" {
		sendRevert(w, "commitment is required")
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	// Resubmitting replaces the request and clears any prior decision.
	n.requests[wallet] = contract.KYCRequest{Commitment: req.Commitment, Exists: true}
	sendJSON(w, http.StatusOK, n.receipt())
	log.Printf("✅ KYC request stored for %s", wallet)
}

func (n *node) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	wallet := strings.ToLower(r.PathValue("wallet"))

	n.mu.Lock()
	defer n.mu.Unlock()
	// Unknown wallets return the zero struct, like a contract mapping read.
	sendJSON(w, http.StatusOK, n.requests[wallet])
}

func (n *node) handleApprove(w http.ResponseWriter, r *http.Request) {
	n.decide(w, r, true)
}

func (n *node) handleReject(w http.ResponseWriter, r *http.Request) {
	n.decide(w, r, false)
}

func (n *node) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	var req struct {
		Wallet string `json:"wallet"`
	}
	if !decode(w, r, &req) {
		return
	}
	wallet, ok := requireWallet(w, req.Wallet)
	if !ok {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	record, exists := n.requests[wallet]
	if !exists || !record.Exists {
		sendRevert(w, "no KYC request for wallet")
		return
	}
	record.Approved = approve
	record.Rejected = !approve
	n.requests[wallet] = record
	sendJSON(w, http.StatusOK, n.receipt())
	log.Printf("✅ KYC request %s: approved=%v", wallet, approve)
}

func (n *node) handleIsVerified(w http.ResponseWriter, r *http.Request) {
	wallet := strings.ToLower(r.PathValue("wallet"))

	n.mu.Lock()
	defer n.mu.Unlock()
	sendJSON(w, http.StatusOK, map[string]bool{"verified": n.verified[wallet]})
}

func (n *node) handleVerify(w http.ResponseWriter, r *http.Request) {
	n.setVerified(w, r, true)
}

func (n *node) handleRevoke(w http.ResponseWriter, r *http.Request) {
	n.setVerified(w, r, false)
}

func (n *node) setVerified(w http.ResponseWriter, r *http.Request, verified bool) {
	var req struct {
		Wallet string `json:"wallet"`
	}
	if !decode(w, r, &req) {
		return
	}
	wallet, ok := requireWallet(w, req.Wallet)
	if !ok {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.verified[wallet] = verified
	sendJSON(w, http.StatusOK, n.receipt())
	log.Printf("✅ Whitelist %s: verified=%v", wallet, verified)
}

func (n *node) handleOwner(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sendJSON(w, http.StatusOK, map[string]string{"owner": n.owner})
}

func (n *node) handleSale(w http.ResponseWriter, r *http.Request) {
	sale := strings.ToLower(r.PathValue("sale"))

	n.mu.Lock()
	defer n.mu.Unlock()
	state, ok := n.sales[sale]
	if !ok {
		sendRevert(w, "no sale contract at address")
		return
	}
	sendJSON(w, http.StatusOK, contract.SaleState{
		PriceUnitsPerToken: state.PriceUnitsPerToken.String(),
		SaleActive:         state.Active,
	})
}

// handleBuy mirrors the sale contract checks: active sale, whitelisted buyer,
// payment an exact positive multiple of the price, and supply left.
func (n *node) handleBuy(w http.ResponseWriter, r *http.Request) {
	sale := strings.ToLower(r.PathValue("sale"))
	var req struct {
		Wallet string `json:"wallet"`
		Value  string `json:"value"`
	}
	if !decode(w, r, &req) {
		return
	}
	wallet, ok := requireWallet(w, req.Wallet)
	if !ok {
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	state, exists := n.sales[sale]
	if !exists {
		sendRevert(w, "no sale contract at address")
		return
	}
	if !state.Active {
		sendRevert(w, "sale is not active")
		return
	}
	if !n.verified[wallet] {
		sendRevert(w, "buyer is not whitelisted")
		return
	}

	value, ok := new(big.Int).SetString(req.Value, 10)
	if !ok || value.Sign() <= 0 {
		sendRevert(w, "invalid payment value")
		return
	}
	parts, remainder := new(big.Int).QuoRem(value, state.PriceUnitsPerToken, new(big.Int))
	if remainder.Sign() != 0 || parts.Sign() <= 0 {
		sendRevert(w, "payment is not a multiple of the part price")
		return
	}

	info := n.infos[state.Token]
	supply := new(big.Int).Add(info.TotalSupply, parts)
	if supply.Cmp(info.MaxSupply) > 0 {
		sendRevert(w, "sold out")
		return
	}
	info.TotalSupply = supply

	sendJSON(w, http.StatusOK, n.receipt())
	log.Printf("✅ %s bought %s parts of %s", wallet, parts, info.Symbol)
}

func (n *node) handleTokenCount(w http.ResponseWriter, _ *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()
	sendJSON(w, http.StatusOK, map[string]int{"count": len(n.tokens)})
}

func (n *node) handleTokenAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		sendRevert(w, "invalid token index")
		return
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	if index < 0 || index >= len(n.tokens) {
		sendRevert(w, "token index out of range")
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"address": n.tokens[index]})
}

func (n *node) handleTokenInfo(w http.ResponseWriter, r *http.Request) {
	token := strings.ToLower(r.PathValue("token"))

	n.mu.Lock()
	defer n.mu.Unlock()
	info, ok := n.infos[token]
	if !ok {
		sendRevert(w, "no token at address")
		return
	}
	sendJSON(w, http.StatusOK, contract.TokenState{
		Name:         info.Name,
		Symbol:       info.Symbol,
		TotalSupply:  info.TotalSupply.String(),
		MaxSupply:    info.MaxSupply.String(),
		SaleContract: info.SaleContract,
	})
}

func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		sendRevert(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func requireWallet(w http.ResponseWriter, raw string) (string, bool) {
	wallet := strings.ToLower(strings.TrimSpace(raw))
	if len(wallet) != 42 || !strings.HasPrefix(wallet, "0x") {
		sendRevert(w, "invalid wallet address")
		return "", false
	}
	return wallet, true
}

// sendRevert reports a failed call the way a node surfaces a contract
// revert: a 400 with the revert reason as the body.
func sendRevert(w http.ResponseWriter, reason string) {
	http.Error(w, reason, http.StatusBadRequest)
	log.Printf("❌ revert: %s", reason)
}

func sendJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
