// Package compliance validates investor profiles, derives commitment hashes,
// and orchestrates KYC submissions against the on-chain request registry.
package compliance

import (
	"time"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

const majorityAge = 18

// birthDateLayout is the wire format for birth dates.
const birthDateLayout = "2006-01-02"

// Reason identifies which compliance rule failed. Exactly one reason is
// reported per invalid profile; the rules short-circuit in order.
type Reason string

const (
	ReasonInvalidBirthDate       Reason = "birth_date_invalid"
	ReasonUnderage               Reason = "underage"
	ReasonIneligibleNationality  Reason = "nationality_not_eligible"
	ReasonIneligibleTaxResidency Reason = "tax_residency_not_eligible"
)

func (r Reason) Message() string {
	switch r {
	case ReasonInvalidBirthDate:
		return "birth date is not a valid calendar date"
	case ReasonUnderage:
		return "investor must be at least 18 years old"
	case ReasonIneligibleNationality:
		return "nationality is not eligible for this offering"
	case ReasonIneligibleTaxResidency:
		return "tax residency is not eligible for this offering"
	}
	return "profile is not compliant"
}

// ValidationResult is Valid or carries the single failed rule.
type ValidationResult struct {
	Valid  bool
	Reason Reason
}

func invalid(reason Reason) ValidationResult {
	return ValidationResult{Reason: reason}
}

// Eligibility holds the configured single eligible nationality and tax
// residency values.
type Eligibility struct {
	Nationality  string
	TaxResidency string
}

// Validator applies the compliance rules in a fixed order. It gates
// submission creation only; registry approval stays an administrator
// decision.
type Validator struct {
	eligibility Eligibility
	now         func() time.Time
}

func NewValidator(eligibility Eligibility) *Validator {
	return &Validator{eligibility: eligibility, now: time.Now}
}

// Validate short-circuits at the first failed rule so callers can render a
// precise message.
func (v *Validator) Validate(profile domain.ComplianceProfile) ValidationResult {
	birthDate, err := time.Parse(birthDateLayout, profile.BirthDate)
	if err != nil {
		return invalid(ReasonInvalidBirthDate)
	}
	if !id.IsOfAge(birthDate, v.now(), majorityAge) {
		return invalid(ReasonUnderage)
	}
	if profile.Nationality != v.eligibility.Nationality {
		return invalid(ReasonIneligibleNationality)
	}
	if profile.TaxResidency != v.eligibility.TaxResidency {
		return invalid(ReasonIneligibleTaxResidency)
	}
	return ValidationResult{Valid: true}
}

// CheckDocuments enforces the required upload slots. It is a separate rule
// from profile validation and runs only after the profile passes.
func CheckDocuments(documents map[domain.DocumentSlot]domain.Document) error {
	var missing []string
	for _, slot := range domain.RequiredSlots {
		doc, ok := documents[slot]
		if !ok || len(doc.Content) == 0 {
			missing = append(missing, string(slot))
		}
	}
	if len(missing) > 0 {
		message := "missing required documents: " + missing[0]
		for _, slot := range missing[1:] {
			message += ", " + slot
		}
		return dErrors.New(dErrors.CodeMissingDocuments, message)
	}
	return nil
}
