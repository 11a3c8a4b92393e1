// Package authorization derives the single investor authorization state from
// a registry snapshot. The goal is to keep the rules centralized and testable:
// every surface that renders or gates on authorization calls Resolve rather
// than re-deriving state from raw flags.
package authorization

import "brickgate/internal/domain"

// State enumerates the five possible authorization states.
type State string

const (
	// NoRequest: the wallet never submitted, or the registry has no record.
	NoRequest State = "no_request"
	// Pending: a request exists and awaits an administrator decision.
	Pending State = "pending"
	// Rejected: the request was rejected. Wins over any stale approved flag.
	Rejected State = "rejected"
	// ApprovedFrozen: KYC approved but the whitelist flag is off, so
	// purchasing is blocked (post-approval freeze or jurisdiction constraint).
	ApprovedFrozen State = "approved_frozen"
	// ApprovedVerified: fully authorized to purchase.
	ApprovedVerified State = "approved_verified"
)

// Severity is the user-facing tone attached to a state. Centralized here so
// surfaces cannot disagree about how serious a state is.
type Severity string

const (
	SeverityOK     Severity = "ok"
	SeverityWarn   Severity = "warn"
	SeverityDanger Severity = "danger"
)

// Resolve maps a registry snapshot onto exactly one state. The check order is
// load-bearing: rejection is tested before the approved flag so a registry
// that transiently reports both resolves to Rejected.
func Resolve(snap domain.RegistrySnapshot) State {
	switch {
	case !snap.RequestExists:
		return NoRequest
	case snap.Rejected:
		return Rejected
	case !snap.Approved:
		return Pending
	case !snap.Verified:
		return ApprovedFrozen
	default:
		return ApprovedVerified
	}
}

// SeverityOf returns the display severity for a state.
func SeverityOf(state State) Severity {
	switch state {
	case ApprovedVerified:
		return SeverityOK
	case Rejected:
		return SeverityDanger
	default:
		return SeverityWarn
	}
}

// MessageOf returns the investor-facing status line for a state.
func MessageOf(state State) string {
	switch state {
	case NoRequest:
		return "Submit your KYC before investing."
	case Pending:
		return "Your KYC is awaiting approval."
	case Rejected:
		return "Your KYC was rejected. Contact support."
	case ApprovedFrozen:
		return "Your KYC is approved but purchasing is currently disabled for your wallet."
	case ApprovedVerified:
		return "KYC approved, purchasing authorized."
	default:
		return ""
	}
}
