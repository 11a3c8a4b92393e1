package compliance

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
)

// hashedSlots fixes the slot order inside the canonical payload. Map
// iteration order must never leak into the hash.
var hashedSlots = []domain.DocumentSlot{
	domain.SlotIdentity,
	domain.SlotProofOfAddress,
	domain.SlotTaxNotice,
}

// commitmentPayload is the canonical serialization hashed into the on-chain
// commitment. Field order is fixed by the struct definition; document content
// is deliberately absent.
type commitmentPayload struct {
	Wallet    string            `json:"wallet"`
	Profile   profilePayload    `json:"profile"`
	Documents []documentPayload `json:"documents"`
}

type profilePayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BirthDate    string `json:"birthDate"`
	Nationality  string `json:"nationality"`
	TaxResidency string `json:"taxResidency"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

type documentPayload struct {
	Slot string             `json:"slot"`
	Meta domain.DocumentMeta `json:"meta"`
}

// Commit derives the keccak-256 commitment for a wallet's profile and
// document metadata. Identical inputs always produce an identical value so
// the registry's stored commitment can later be compared against a freshly
// recomputed one.
func Commit(wallet id.Address, profile domain.ComplianceProfile, documents map[domain.DocumentSlot]domain.Document) (domain.Commitment, error) {
	payload := commitmentPayload{
		Wallet: string(wallet),
		Profile: profilePayload{
			FirstName:    profile.FirstName,
			LastName:     profile.LastName,
			BirthDate:    profile.BirthDate,
			Nationality:  profile.Nationality,
			TaxResidency: profile.TaxResidency,
			Street:       profile.Street,
			City:         profile.City,
			Country:      profile.Country,
		},
		Documents: []documentPayload{},
	}
	for _, slot := range hashedSlots {
		doc, ok := documents[slot]
		if !ok {
			continue
		}
		payload.Documents = append(payload.Documents, documentPayload{
			Slot: string(slot),
			Meta: doc.Meta(),
		})
	}

	canonical, err := json.Marshal(payload)
	if err != nil {
		return domain.ZeroCommitment, fmt.Errorf("canonicalize commitment payload: %w", err)
	}

	digest := sha3.NewLegacyKeccak256()
	digest.Write(canonical)
	return domain.Commitment("0x" + hex.EncodeToString(digest.Sum(nil))), nil
}
