package model

import (
	"net/url"
	"strings"
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// DonationDto is the wire form of a Donation.
type DonationDto struct {
	Title        string `bson:"title" json:"title"`
	Link         string `bson:"link" json:"link"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
	Enabled      bool   `bson:"enabled" json:"enabled"`
	DisplayOrder int    `bson:"displayOrder" json:"displayOrder"`
	CreatedAt    int64  `bson:"createdAt" json:"createdAt"`
	CreatedBy    string `bson:"createdBy" json:"createdBy"`
}

// Donation is a payment link shown on the donations page.
type Donation struct {
	ID           string
	Title        string
	Link         string
	Notes        string
	Enabled      bool
	DisplayOrder int
	CreatedAt    time.Time
	CreatedBy    string
}

// NewDonation creates an enabled donation with a fresh creation time. The
// ID is assigned when the document is inserted.
func NewDonation(title, link, createdBy string, displayOrder int) Donation {
	return Donation{
		Title:        title,
		Link:         link,
		Enabled:      true,
		DisplayOrder: displayOrder,
		CreatedAt:    Now(),
		CreatedBy:    createdBy,
	}
}

// DonationPatch is a field-named partial update.
type DonationPatch struct {
	Title        *string
	Link         *string
	Notes        *string
	Enabled      *bool
	DisplayOrder *int
}

// Update returns a new Donation with the patch applied. ID, CreatedAt and
// CreatedBy are immutable.
func (d Donation) Update(p DonationPatch) Donation {
	d.Title = orElse(p.Title, d.Title)
	d.Link = orElse(p.Link, d.Link)
	d.Notes = orElse(p.Notes, d.Notes)
	d.Enabled = orElse(p.Enabled, d.Enabled)
	d.DisplayOrder = orElse(p.DisplayOrder, d.DisplayOrder)
	return d
}

// Enable returns an enabled copy.
func (d Donation) Enable() Donation { return d.Update(DonationPatch{Enabled: Ptr(true)}) }

// Disable returns a disabled copy.
func (d Donation) Disable() Donation { return d.Update(DonationPatch{Enabled: Ptr(false)}) }

// HasNotes reports whether the donation carries non-blank notes.
func (d Donation) HasNotes() bool { return strings.TrimSpace(d.Notes) != "" }

// HasValidLink reports whether the link parses as an absolute URL.
func (d Donation) HasValidLink() bool {
	u, err := url.Parse(d.Link)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// LinkDomain returns the link's host for display, or empty when the link
// does not parse.
func (d Donation) LinkDomain() string {
	u, err := url.Parse(d.Link)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Hostname()
}

// IsPayBoxLink reports whether the link points at PayBox.
func (d Donation) IsPayBoxLink() bool {
	return strings.Contains(strings.ToLower(d.LinkDomain()), "paybox")
}

// PaymentServiceName names the payment service behind the link.
func (d Donation) PaymentServiceName() string {
	domain := strings.ToLower(d.LinkDomain())
	switch {
	case strings.Contains(domain, "paybox"):
		return "PayBox"
	case strings.Contains(domain, "paypal"):
		return "PayPal"
	case strings.Contains(domain, "stripe"):
		return "Stripe"
	case strings.Contains(domain, "square"):
		return "Square"
	default:
		return "Unknown"
	}
}

// AgeInDays returns full days elapsed since creation, rounded up.
func (d Donation) AgeInDays() int {
	elapsed := time.Since(d.CreatedAt)
	if elapsed < 0 {
		elapsed = -elapsed
	}
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// IsRecent reports whether the donation was created within 30 days.
func (d Donation) IsRecent() bool { return d.AgeInDays() <= 30 }

// NotesPreview returns the first 100 characters of the notes.
func (d Donation) NotesPreview() string {
	runes := []rune(d.Notes)
	if len(runes) <= 100 {
		return d.Notes
	}
	return string(runes[:100]) + "..."
}

// Order implements DisplayOrdered.
func (d Donation) Order() int { return d.DisplayOrder }

// OrderTieBreak implements DisplayOrdered.
func (d Donation) OrderTieBreak() (time.Time, string) { return d.CreatedAt, d.ID }

// ToDto converts the donation to its wire form.
func (d Donation) ToDto() DonationDto {
	return DonationDto{
		Title:        d.Title,
		Link:         d.Link,
		Notes:        d.Notes,
		Enabled:      d.Enabled,
		DisplayOrder: d.DisplayOrder,
		CreatedAt:    ToMillis(d.CreatedAt),
		CreatedBy:    d.CreatedBy,
	}
}

type donationMapper struct{}

func (donationMapper) FromDto(dto DonationDto, id string) (Donation, error) {
	if dto.Title == "" {
		return Donation{}, errors.NewValidationError("donation title is required").
			WithDetail("id", id)
	}
	return Donation{
		ID:           id,
		Title:        dto.Title,
		Link:         dto.Link,
		Notes:        dto.Notes,
		Enabled:      dto.Enabled,
		DisplayOrder: dto.DisplayOrder,
		CreatedAt:    FromMillis(dto.CreatedAt),
		CreatedBy:    dto.CreatedBy,
	}, nil
}

func (donationMapper) ToDto(d Donation) DonationDto { return d.ToDto() }

// DonationMapper converts between Donation and its wire form.
var DonationMapper repository.Mapper[Donation, DonationDto] = donationMapper{}
