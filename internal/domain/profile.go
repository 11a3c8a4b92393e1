// Package domain holds the core records exchanged between features. Storage of
// the actual submission records lives in the compliance store.
package domain

import (
	"time"

	id "brickgate/pkg/domain"
)

// DocumentSlot names the fixed upload slots of a compliance profile.
type DocumentSlot string

const (
	SlotIdentity       DocumentSlot = "identity"
	SlotProofOfAddress DocumentSlot = "proofOfAddress"
	SlotTaxNotice      DocumentSlot = "taxNotice"
)

// RequiredSlots are the slots that must be present before a submission may be
// created. SlotTaxNotice stays optional.
var RequiredSlots = []DocumentSlot{SlotIdentity, SlotProofOfAddress}

// Document is one uploaded file. Content is kept locally only; the commitment
// hash covers metadata alone so re-uploading identical metadata with different
// bytes does not change the on-chain value.
type Document struct {
	Name     string
	MimeType string
	Size     int64
	Content  []byte
}

// Meta strips the content for hashing and listings.
func (d Document) Meta() DocumentMeta {
	return DocumentMeta{Name: d.Name, MimeType: d.MimeType, Size: d.Size}
}

// DocumentMeta is the hashed, disclosable part of a document.
type DocumentMeta struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
}

// ComplianceProfile is the validated identity and residency data for one
// wallet. It is created and edited locally by the wallet owner and becomes
// immutable input to a submission once hashed.
type ComplianceProfile struct {
	FirstName    string
	LastName     string
	BirthDate    string // ISO date, validated by the compliance validator
	Nationality  string
	TaxResidency string
	Street       string
	City         string
	Country      string
}

// Submission is the latest locally stored compliance submission for a wallet.
// A new submission overwrites the prior local record; registry history is not
// erased.
type Submission struct {
	Wallet      id.Address
	Profile     ComplianceProfile
	Documents   map[DocumentSlot]Document
	Commitment  Commitment
	SubmittedAt time.Time
}
