package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"brickgate/internal/domain"
	dErrors "brickgate/pkg/domain-errors"
)

var testEligibility = Eligibility{Nationality: "FR", TaxResidency: "FR"}

func fixedValidator(now time.Time) *Validator {
	v := NewValidator(testEligibility)
	v.now = func() time.Time { return now }
	return v
}

func compliantProfile() domain.ComplianceProfile {
	return domain.ComplianceProfile{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		BirthDate:    "1990-06-15",
		Nationality:  "FR",
		TaxResidency: "FR",
		Street:       "1 rue de la Paix",
		City:         "Paris",
		Country:      "FR",
	}
}

func TestValidatorAcceptsCompliantProfile(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	result := fixedValidator(now).Validate(compliantProfile())
	require.True(t, result.Valid)
}

func TestValidatorShortCircuitsInOrder(t *testing.T) {
	now := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(p *domain.ComplianceProfile)
		reason Reason
	}{
		{
			name:   "unparseable birth date",
			mutate: func(p *domain.ComplianceProfile) { p.BirthDate = "15/06/1990" },
			reason: ReasonInvalidBirthDate,
		},
		{
			name:   "impossible calendar date",
			mutate: func(p *domain.ComplianceProfile) { p.BirthDate = "1990-02-30" },
			reason: ReasonInvalidBirthDate,
		},
		{
			name: "bad birth date masks bad nationality",
			mutate: func(p *domain.ComplianceProfile) {
				p.BirthDate = "not-a-date"
				p.Nationality = "DE"
			},
			reason: ReasonInvalidBirthDate,
		},
		{
			name:   "underage",
			mutate: func(p *domain.ComplianceProfile) { p.BirthDate = "2010-01-01" },
			reason: ReasonUnderage,
		},
		{
			name: "underage masks bad tax residency",
			mutate: func(p *domain.ComplianceProfile) {
				p.BirthDate = "2010-01-01"
				p.TaxResidency = "DE"
			},
			reason: ReasonUnderage,
		},
		{
			name:   "ineligible nationality",
			mutate: func(p *domain.ComplianceProfile) { p.Nationality = "DE" },
			reason: ReasonIneligibleNationality,
		},
		{
			name:   "ineligible tax residency",
			mutate: func(p *domain.ComplianceProfile) { p.TaxResidency = "DE" },
			reason: ReasonIneligibleTaxResidency,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			profile := compliantProfile()
			tc.mutate(&profile)
			result := fixedValidator(now).Validate(profile)
			require.False(t, result.Valid)
			require.Equal(t, tc.reason, result.Reason)
		})
	}
}

func TestValidatorEighteenthBirthdayBoundary(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	profile := compliantProfile()
	profile.BirthDate = "2008-09-01" // turns 18 today
	require.True(t, fixedValidator(now).Validate(profile).Valid)

	profile.BirthDate = "2008-09-02" // one day short
	result := fixedValidator(now).Validate(profile)
	require.False(t, result.Valid)
	require.Equal(t, ReasonUnderage, result.Reason)
}

func TestCheckDocuments(t *testing.T) {
	content := []byte{0x01}
	full := map[domain.DocumentSlot]domain.Document{
		domain.SlotIdentity:       {Name: "passport.pdf", MimeType: "application/pdf", Size: 1, Content: content},
		domain.SlotProofOfAddress: {Name: "bill.pdf", MimeType: "application/pdf", Size: 1, Content: content},
	}
	require.NoError(t, CheckDocuments(full))

	// tax notice stays optional
	withTax := map[domain.DocumentSlot]domain.Document{
		domain.SlotIdentity:       full[domain.SlotIdentity],
		domain.SlotProofOfAddress: full[domain.SlotProofOfAddress],
		domain.SlotTaxNotice:      {Name: "tax.pdf", MimeType: "application/pdf", Size: 1, Content: content},
	}
	require.NoError(t, CheckDocuments(withTax))

	missing := map[domain.DocumentSlot]domain.Document{
		domain.SlotIdentity: full[domain.SlotIdentity],
	}
	err := CheckDocuments(missing)
	require.Error(t, err)
	require.True(t, dErrors.HasCode(err, dErrors.CodeMissingDocuments))
	require.Contains(t, err.Error(), "proofOfAddress")

	// an empty slot counts as missing
	empty := map[domain.DocumentSlot]domain.Document{
		domain.SlotIdentity:       full[domain.SlotIdentity],
		domain.SlotProofOfAddress: {Name: "bill.pdf", MimeType: "application/pdf", Size: 0},
	}
	require.Error(t, CheckDocuments(empty))
}
