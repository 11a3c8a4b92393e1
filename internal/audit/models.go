package audit

import (
	"time"

	id "brickgate/pkg/domain"
)

// Action names the domain event being recorded.
type Action string

const (
	ActionKYCSubmitted     Action = "kyc.submitted"
	ActionKYCApproved      Action = "kyc.approved"
	ActionKYCRejected      Action = "kyc.rejected"
	ActionKYCFrozen        Action = "kyc.frozen"
	ActionKYCReWhitelisted Action = "kyc.rewhitelisted"
	ActionPurchase         Action = "purchase.completed"
	ActionListingUpserted  Action = "listing.upserted"
	ActionListingPublished Action = "listing.published"
	ActionListingHidden    Action = "listing.hidden"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time  `json:"timestamp"`
	Action    Action     `json:"action"`
	Wallet    id.Address `json:"wallet,omitempty"`
	Actor     id.Address `json:"actor,omitempty"`
	Token     id.Address `json:"token,omitempty"`
	TxHash    string     `json:"tx_hash,omitempty"`
	Outcome   string     `json:"outcome,omitempty"`
	Reason    string     `json:"reason,omitempty"`
}
