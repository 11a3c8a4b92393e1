package httptransport

import (
	"encoding/base64"
	"strings"

	"brickgate/internal/domain"
	id "brickgate/pkg/domain"
	dErrors "brickgate/pkg/domain-errors"
)

// HTTP request DTOs. These carry the JSON wire shape and convert to domain
// inputs before reaching a service; semantic validation (age, eligibility,
// required slots) stays in the services.

type ProfilePayload struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	BirthDate    string `json:"birthDate"`
	Nationality  string `json:"nationality"`
	TaxResidency string `json:"taxResidency"`
	Street       string `json:"street"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

type DocumentPayload struct {
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
	// Content is base64; sizes come from the decoded bytes, not the client.
	Content string `json:"content"`
}

type SubmitKYCRequest struct {
	Profile   ProfilePayload             `json:"profile"`
	Documents map[string]DocumentPayload `json:"documents"`
}

func (r *SubmitKYCRequest) Normalize() {
	if r == nil {
		return
	}
	r.Profile.FirstName = strings.TrimSpace(r.Profile.FirstName)
	r.Profile.LastName = strings.TrimSpace(r.Profile.LastName)
	r.Profile.BirthDate = strings.TrimSpace(r.Profile.BirthDate)
	r.Profile.Nationality = strings.ToUpper(strings.TrimSpace(r.Profile.Nationality))
	r.Profile.TaxResidency = strings.ToUpper(strings.TrimSpace(r.Profile.TaxResidency))
	r.Profile.Street = strings.TrimSpace(r.Profile.Street)
	r.Profile.City = strings.TrimSpace(r.Profile.City)
	r.Profile.Country = strings.TrimSpace(r.Profile.Country)
}

func (r *SubmitKYCRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	for slot, doc := range r.Documents {
		switch domain.DocumentSlot(slot) {
		case domain.SlotIdentity, domain.SlotProofOfAddress, domain.SlotTaxNotice:
		default:
			return dErrors.New(dErrors.CodeValidation, "unknown document slot: "+slot)
		}
		if doc.Name == "" {
			return dErrors.New(dErrors.CodeValidation, "document name is required for slot "+slot)
		}
		if _, err := base64.StdEncoding.DecodeString(doc.Content); err != nil {
			return dErrors.New(dErrors.CodeValidation, "document content must be base64 for slot "+slot)
		}
	}
	return nil
}

func (r *SubmitKYCRequest) profile() domain.ComplianceProfile {
	return domain.ComplianceProfile{
		FirstName:    r.Profile.FirstName,
		LastName:     r.Profile.LastName,
		BirthDate:    r.Profile.BirthDate,
		Nationality:  r.Profile.Nationality,
		TaxResidency: r.Profile.TaxResidency,
		Street:       r.Profile.Street,
		City:         r.Profile.City,
		Country:      r.Profile.Country,
	}
}

func (r *SubmitKYCRequest) documents() map[domain.DocumentSlot]domain.Document {
	docs := make(map[domain.DocumentSlot]domain.Document, len(r.Documents))
	for slot, doc := range r.Documents {
		// Validate() already proved the content decodes.
		content, _ := base64.StdEncoding.DecodeString(doc.Content)
		docs[domain.DocumentSlot(slot)] = domain.Document{
			Name:     doc.Name,
			MimeType: doc.MimeType,
			Size:     int64(len(content)),
			Content:  content,
		}
	}
	return docs
}

type PurchaseRequest struct {
	Parts uint64 `json:"parts"`
}

// Validate accepts zero parts so the precondition chain reports it with its
// own failure code instead of a generic validation error.
func (r *PurchaseRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	return nil
}

type UpsertListingRequest struct {
	Title         string `json:"title"`
	City          string `json:"city"`
	Description   string `json:"description"`
	SurfaceM2     int    `json:"surfaceM2"`
	Rooms         int    `json:"rooms"`
	PropertyPrice string `json:"propertyPrice"`
	ExpectedYield string `json:"expectedYield"`
	SPVName       string `json:"spvName"`
	SPVRegistryID string `json:"spvRegistryId"`
}

func (r *UpsertListingRequest) Normalize() {
	if r == nil {
		return
	}
	r.Title = strings.TrimSpace(r.Title)
	r.City = strings.TrimSpace(r.City)
	r.Description = strings.TrimSpace(r.Description)
	r.PropertyPrice = strings.TrimSpace(r.PropertyPrice)
	r.ExpectedYield = strings.TrimSpace(r.ExpectedYield)
	r.SPVName = strings.TrimSpace(r.SPVName)
	r.SPVRegistryID = strings.TrimSpace(r.SPVRegistryID)
}

func (r *UpsertListingRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.SurfaceM2 < 0 || r.Rooms < 0 {
		return dErrors.New(dErrors.CodeValidation, "surface and rooms must not be negative")
	}
	return nil
}

func (r *UpsertListingRequest) listing(token id.Address) domain.Listing {
	return domain.Listing{
		Token:         token,
		Title:         r.Title,
		City:          r.City,
		Description:   r.Description,
		SurfaceM2:     r.SurfaceM2,
		Rooms:         r.Rooms,
		PropertyPrice: r.PropertyPrice,
		ExpectedYield: r.ExpectedYield,
		SPVName:       r.SPVName,
		SPVRegistryID: r.SPVRegistryID,
	}
}
