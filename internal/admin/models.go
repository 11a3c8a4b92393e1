// Package admin exposes the administrator-only composite actions against the
// KYC request registry and the identity whitelist, plus the review queue.
package admin

import (
	"time"

	"brickgate/internal/authorization"
	"brickgate/internal/domain"
	"brickgate/internal/registry"
	id "brickgate/pkg/domain"
)

// Action names one of the four composite admin operations.
type Action string

const (
	ActionApproveAndWhitelist Action = "approve_and_whitelist"
	ActionRejectAndRevoke     Action = "reject_and_revoke"
	ActionFreeze              Action = "freeze"
	ActionReWhitelist         Action = "rewhitelist"
)

// Step names one registry write inside a composite action.
type Step string

const (
	StepApproveRequest Step = "approve_request"
	StepRejectRequest  Step = "reject_request"
	StepVerifyInvestor Step = "verify_investor"
	StepRevokeInvestor Step = "revoke_investor"
)

// ApplyOutcome classifies how much of a composite action took effect. The
// writes are independent transactions, so a failure after the first write
// leaves a valid but unintended state that must be surfaced.
type ApplyOutcome string

const (
	FullyApplied     ApplyOutcome = "fully_applied"
	PartiallyApplied ApplyOutcome = "partially_applied"
	NotApplied       ApplyOutcome = "not_applied"
)

// ApplyReport describes what an admin action actually changed.
type ApplyReport struct {
	Action     Action
	Outcome    ApplyOutcome
	FailedStep Step
	Receipts   []registry.TxReceipt
}

// QueueEntry joins a locally stored submission with its live registry state.
type QueueEntry struct {
	Wallet      id.Address
	SubmittedAt time.Time
	Commitment  domain.Commitment
	State       authorization.State
	Severity    authorization.Severity
}

// Queue buckets entries by decision status for the review screen. Frozen and
// verified wallets both land in Approved; wallets whose registry record is
// missing stay in Pending with their state visible.
type Queue struct {
	Pending  []QueueEntry
	Approved []QueueEntry
	Rejected []QueueEntry
}
