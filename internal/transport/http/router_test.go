package httptransport

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"brickgate/internal/admin"
	"brickgate/internal/audit"
	"brickgate/internal/compliance"
	compStore "brickgate/internal/compliance/store"
	"brickgate/internal/domain"
	"brickgate/internal/listing"
	listStore "brickgate/internal/listing/store"
	"brickgate/internal/platform/middleware"
	"brickgate/internal/purchase"
	"brickgate/internal/registry"
	id "brickgate/pkg/domain"
)

const (
	ownerWallet    = "0x00000000000000000000000000000000000000ee"
	investorWallet = "0x00000000000000000000000000000000000000aa"
	tokenAddr      = "0x0000000000000000000000000000000000000101"
	saleAddr       = "0x0000000000000000000000000000000000000201"
)

type testEnv struct {
	router http.Handler
	client *registry.MemoryClient
	sink   *audit.MemorySink
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := registry.NewMemoryClient(id.Address(ownerWallet))
	client.AddSale(id.Address(saleAddr), big.NewInt(2_000_000), true)
	client.AddToken(domain.TokenInfo{
		Address:      id.Address(tokenAddr),
		Name:         "Maison Lilas",
		Symbol:       "LILAS",
		TotalSupply:  big.NewInt(40),
		MaxSupply:    big.NewInt(100),
		SaleContract: id.Address(saleAddr),
	})

	snapshots := registry.NewSnapshotter(client)
	sink := audit.NewMemorySink()
	publisher := audit.NewPublisher(sink)

	submissions := compStore.NewMemory()
	validator := compliance.NewValidator(compliance.Eligibility{Nationality: "FR", TaxResidency: "FR"})
	complianceSvc := compliance.New(validator, submissions, client, snapshots,
		compliance.WithLogger(logger), compliance.WithAuditPublisher(publisher))

	adminSvc := admin.New(client, snapshots, complianceSvc,
		admin.WithLogger(logger), admin.WithAuditPublisher(publisher))

	purchaseSvc := purchase.New(client, snapshots,
		purchase.WithLogger(logger), purchase.WithAuditPublisher(publisher))

	listings := listStore.NewMemory()
	listingSvc := listing.New(listings, client,
		listing.WithLogger(logger), listing.WithAuditPublisher(publisher))

	router := NewRouter(Deps{
		KYC:     NewKYCHandler(complianceSvc, logger),
		Admin:   NewAdminHandler(adminSvc, logger),
		Market:  NewMarketHandler(listingSvc, purchaseSvc, logger),
		Listing: NewListingHandler(listingSvc, adminSvc, logger),
	}, middleware.RequestID)

	return &testEnv{router: router, client: client, sink: sink}
}

func (e *testEnv) do(t *testing.T, method, path, wallet string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if wallet != "" {
		req.Header.Set(middleware.WalletHeader, wallet)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func submitPayload() map[string]any {
	return map[string]any{
		"profile": map[string]string{
			"firstName":    "Ada",
			"lastName":     "Lovelace",
			"birthDate":    "1990-06-15",
			"nationality":  "FR",
			"taxResidency": "FR",
			"street":       "12 rue des Lilas",
			"city":         "Paris",
			"country":      "FR",
		},
		"documents": map[string]any{
			"identity":       map[string]string{"name": "passport.pdf", "mimeType": "application/pdf", "content": "cGFzc3BvcnQ="},
			"proofOfAddress": map[string]string{"name": "bill.pdf", "mimeType": "application/pdf", "content": "YmlsbA=="},
		},
	}
}

func TestSubmitRequiresWallet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/kyc/submit", "", submitPayload())
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without wallet header, got %d", rec.Code)
	}
}

func TestMalformedWalletHeaderRejected(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/kyc/status", "not-an-address", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed wallet header, got %d", rec.Code)
	}
}

func TestKYCSubmitStatusAndApproval(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/kyc/submit", investorWallet, submitPayload())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 submitting, got %d: %s", rec.Code, rec.Body.String())
	}

	var submitted SubmissionResponse
	if err := json.NewDecoder(rec.Body).Decode(&submitted); err != nil {
		t.Fatalf("decode submission response: %v", err)
	}
	if submitted.Commitment == "" || submitted.Wallet != investorWallet {
		t.Fatalf("unexpected submission response: %+v", submitted)
	}
	for slot, meta := range submitted.Documents {
		if meta.Size == 0 {
			t.Fatalf("expected decoded document size for slot %s", slot)
		}
	}

	rec = env.do(t, http.MethodGet, "/kyc/status", investorWallet, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching status, got %d", rec.Code)
	}
	var status StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode status response: %v", err)
	}
	if status.State != "pending" || !status.CommitmentMatch {
		t.Fatalf("expected pending status with matching commitment, got %+v", status)
	}

	rec = env.do(t, http.MethodGet, "/admin/kyc/queue", ownerWallet, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching queue, got %d", rec.Code)
	}
	var queue QueueResponse
	if err := json.NewDecoder(rec.Body).Decode(&queue); err != nil {
		t.Fatalf("decode queue response: %v", err)
	}
	if len(queue.Pending) != 1 || queue.Pending[0].Wallet != investorWallet {
		t.Fatalf("expected one pending entry for investor, got %+v", queue)
	}

	rec = env.do(t, http.MethodPost, "/admin/kyc/"+investorWallet+"/approve", ownerWallet, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 approving, got %d: %s", rec.Code, rec.Body.String())
	}
	var report ReportResponse
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode report response: %v", err)
	}
	if report.Outcome != "fully_applied" || len(report.TxHashes) != 2 {
		t.Fatalf("expected fully applied approval with two receipts, got %+v", report)
	}

	rec = env.do(t, http.MethodGet, "/kyc/status", investorWallet, nil)
	var after StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&after); err != nil {
		t.Fatalf("decode status response: %v", err)
	}
	if after.State != "approved_verified" {
		t.Fatalf("expected approved_verified after approval, got %q", after.State)
	}
}

func TestQueueForbiddenForNonAdmin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/admin/kyc/queue", investorWallet, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/admin/kyc/queue", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without wallet, got %d", rec.Code)
	}
}

func TestAdminActionRejectsBadWalletParam(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/admin/kyc/nope/approve", ownerWallet, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad wallet param, got %d", rec.Code)
	}
}

func TestPurchaseFlow(t *testing.T) {
	env := newTestEnv(t)

	// Preconditions fail before verification.
	rec := env.do(t, http.MethodPost, "/market/"+tokenAddr+"/purchase", investorWallet, map[string]any{"parts": 2})
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 before KYC, got %d", rec.Code)
	}
	var failure PurchaseFailureResponse
	if err := json.NewDecoder(rec.Body).Decode(&failure); err != nil {
		t.Fatalf("decode failure response: %v", err)
	}
	if failure.Failure != string(purchase.KycNotSubmitted) {
		t.Fatalf("expected KycNotSubmitted failure, got %+v", failure)
	}

	env.do(t, http.MethodPost, "/kyc/submit", investorWallet, submitPayload())
	env.do(t, http.MethodPost, "/admin/kyc/"+investorWallet+"/approve", ownerWallet, nil)

	rec = env.do(t, http.MethodPost, "/market/"+tokenAddr+"/purchase", investorWallet, map[string]any{"parts": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 purchasing, got %d: %s", rec.Code, rec.Body.String())
	}
	var confirmation PurchaseResponse
	if err := json.NewDecoder(rec.Body).Decode(&confirmation); err != nil {
		t.Fatalf("decode purchase response: %v", err)
	}
	if confirmation.RequiredPaymentUnits != "6000000" {
		t.Fatalf("expected payment of 6000000 units, got %q", confirmation.RequiredPaymentUnits)
	}
	if confirmation.TxHash == "" {
		t.Fatalf("expected tx hash on confirmation")
	}
}

func TestPurchaseWithoutWalletIs412(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/market/"+tokenAddr+"/purchase", "", map[string]any{"parts": 1})
	if rec.Code != http.StatusPreconditionFailed {
		t.Fatalf("expected 412 without wallet, got %d", rec.Code)
	}
	var failure PurchaseFailureResponse
	if err := json.NewDecoder(rec.Body).Decode(&failure); err != nil {
		t.Fatalf("decode failure response: %v", err)
	}
	if failure.Failure != string(purchase.WalletNotConnected) {
		t.Fatalf("expected WalletNotConnected failure, got %+v", failure)
	}
}

func TestListingLifecycleAndMarket(t *testing.T) {
	env := newTestEnv(t)

	upsert := map[string]any{
		"title":         "Maison des Lilas",
		"city":          "Nantes",
		"description":   "Townhouse split into 100 parts",
		"surfaceM2":     180,
		"rooms":         6,
		"propertyPrice": "200000",
		"expectedYield": "5.2",
		"spvName":       "SCI Lilas",
		"spvRegistryId": "RCS-4242",
	}

	// Non-admin cannot touch listings.
	rec := env.do(t, http.MethodPut, "/admin/listings/"+tokenAddr, investorWallet, upsert)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin upsert, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPut, "/admin/listings/"+tokenAddr, ownerWallet, upsert)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 upserting listing, got %d: %s", rec.Code, rec.Body.String())
	}

	// Hidden listings are invisible on the public market.
	rec = env.do(t, http.MethodGet, "/market/"+tokenAddr, "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unpublished property, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/admin/listings/"+tokenAddr+"/publish", ownerWallet, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 publishing, got %d: %s", rec.Code, rec.Body.String())
	}

	// Published listings are locked against edits.
	rec = env.do(t, http.MethodPut, "/admin/listings/"+tokenAddr, ownerWallet, upsert)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 editing published listing, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/market", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching catalog, got %d", rec.Code)
	}
	var catalog CatalogResponse
	if err := json.NewDecoder(rec.Body).Decode(&catalog); err != nil {
		t.Fatalf("decode catalog response: %v", err)
	}
	if len(catalog.Properties) != 1 {
		t.Fatalf("expected one published property, got %d", len(catalog.Properties))
	}
	prop := catalog.Properties[0]
	if prop.Symbol != "LILAS" || prop.FundingProgress != 40 {
		t.Fatalf("unexpected property view: %+v", prop)
	}
	if prop.Sale.PriceUnitsPerToken != "2000000" || !prop.Sale.SaleActive {
		t.Fatalf("unexpected sale view: %+v", prop.Sale)
	}

	rec = env.do(t, http.MethodGet, "/market/"+tokenAddr, "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching property, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d", rec.Code)
	}
}
