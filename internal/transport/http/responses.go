package httptransport

import (
	"time"

	"brickgate/internal/admin"
	"brickgate/internal/compliance"
	"brickgate/internal/domain"
	"brickgate/internal/listing"
	"brickgate/internal/purchase"
)

// HTTP response DTOs. Document content never leaves local storage, so
// submission responses expose metadata only.

type SubmissionResponse struct {
	Wallet      string                         `json:"wallet"`
	Commitment  string                         `json:"commitment"`
	SubmittedAt time.Time                      `json:"submittedAt"`
	Documents   map[string]domain.DocumentMeta `json:"documents"`
}

func toSubmissionResponse(s domain.Submission) SubmissionResponse {
	docs := make(map[string]domain.DocumentMeta, len(s.Documents))
	for slot, doc := range s.Documents {
		docs[string(slot)] = doc.Meta()
	}
	return SubmissionResponse{
		Wallet:      s.Wallet.String(),
		Commitment:  string(s.Commitment),
		SubmittedAt: s.SubmittedAt,
		Documents:   docs,
	}
}

type StatusResponse struct {
	State           string `json:"state"`
	Severity        string `json:"severity"`
	Message         string `json:"message"`
	Commitment      string `json:"commitment,omitempty"`
	CommitmentMatch bool   `json:"commitmentMatch"`
}

func toStatusResponse(s compliance.Status) StatusResponse {
	return StatusResponse{
		State:           string(s.State),
		Severity:        string(s.Severity),
		Message:         s.Message,
		Commitment:      string(s.Commitment),
		CommitmentMatch: s.CommitmentMatch,
	}
}

type QueueEntryResponse struct {
	Wallet      string    `json:"wallet"`
	SubmittedAt time.Time `json:"submittedAt"`
	Commitment  string    `json:"commitment"`
	State       string    `json:"state"`
	Severity    string    `json:"severity"`
}

type QueueResponse struct {
	Pending  []QueueEntryResponse `json:"pending"`
	Approved []QueueEntryResponse `json:"approved"`
	Rejected []QueueEntryResponse `json:"rejected"`
}

func toQueueResponse(q admin.Queue) QueueResponse {
	convert := func(entries []admin.QueueEntry) []QueueEntryResponse {
		out := make([]QueueEntryResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, QueueEntryResponse{
				Wallet:      e.Wallet.String(),
				SubmittedAt: e.SubmittedAt,
				Commitment:  string(e.Commitment),
				State:       string(e.State),
				Severity:    string(e.Severity),
			})
		}
		return out
	}
	return QueueResponse{
		Pending:  convert(q.Pending),
		Approved: convert(q.Approved),
		Rejected: convert(q.Rejected),
	}
}

type ReportResponse struct {
	Action     string   `json:"action"`
	Outcome    string   `json:"outcome"`
	FailedStep string   `json:"failedStep,omitempty"`
	TxHashes   []string `json:"txHashes"`
}

func toReportResponse(r admin.ApplyReport) ReportResponse {
	hashes := make([]string, 0, len(r.Receipts))
	for _, receipt := range r.Receipts {
		hashes = append(hashes, receipt.TxHash)
	}
	return ReportResponse{
		Action:     string(r.Action),
		Outcome:    string(r.Outcome),
		FailedStep: string(r.FailedStep),
		TxHashes:   hashes,
	}
}

type SaleResponse struct {
	SaleContract       string `json:"saleContract,omitempty"`
	PriceUnitsPerToken string `json:"priceUnitsPerToken,omitempty"`
	SaleActive         bool   `json:"saleActive"`
	ReadFailed         bool   `json:"readFailed,omitempty"`
}

type PropertyResponse struct {
	Listing         domain.Listing `json:"listing"`
	Name            string          `json:"name"`
	Symbol          string          `json:"symbol"`
	TotalSupply     string          `json:"totalSupply"`
	MaxSupply       string          `json:"maxSupply"`
	FundingProgress int             `json:"fundingProgress"`
	Sale            SaleResponse    `json:"sale"`
}

func toPropertyResponse(v listing.PropertyView) PropertyResponse {
	resp := PropertyResponse{
		Listing:         v.Listing,
		Name:            v.Token.Name,
		Symbol:          v.Token.Symbol,
		FundingProgress: v.FundingProgress,
		Sale: SaleResponse{
			SaleActive: v.Sale.SaleActive,
			ReadFailed: v.Sale.ReadFailed,
		},
	}
	if v.Token.TotalSupply != nil {
		resp.TotalSupply = v.Token.TotalSupply.String()
	}
	if v.Token.MaxSupply != nil {
		resp.MaxSupply = v.Token.MaxSupply.String()
	}
	if v.Sale.Configured() {
		resp.Sale.SaleContract = v.Sale.SaleContract.String()
		if v.Sale.PriceUnitsPerToken != nil {
			resp.Sale.PriceUnitsPerToken = v.Sale.PriceUnitsPerToken.String()
		}
	}
	return resp
}

type CatalogResponse struct {
	Properties []PropertyResponse `json:"properties"`
}

func toCatalogResponse(views []listing.PropertyView) CatalogResponse {
	out := make([]PropertyResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toPropertyResponse(v))
	}
	return CatalogResponse{Properties: out}
}

type PurchaseResponse struct {
	Token                string `json:"token"`
	Parts                uint64 `json:"parts"`
	RequiredPaymentUnits string `json:"requiredPaymentUnits"`
	TxHash               string `json:"txHash"`
}

func toPurchaseResponse(c purchase.Confirmation) PurchaseResponse {
	resp := PurchaseResponse{
		Token:  c.Order.Token.String(),
		Parts:  c.Order.PartsRequested,
		TxHash: c.TxHash,
	}
	if c.Order.RequiredPaymentUnits != nil {
		resp.RequiredPaymentUnits = c.Order.RequiredPaymentUnits.String()
	}
	return resp
}

// PurchaseFailureResponse names the first failed purchase gate so the
// frontend can render the matching banner without parsing messages.
type PurchaseFailureResponse struct {
	Error   string `json:"error"`
	Failure string `json:"failure"`
	Message string `json:"message"`
}
