package model

import (
	"strings"
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// FinancialReportDto is the wire form of a FinancialReport.
type FinancialReportDto struct {
	Title          string `bson:"title" json:"title"`
	DisplayOrder   int    `bson:"displayOrder" json:"displayOrder"`
	LinkToDocument string `bson:"linkToDocument" json:"linkToDocument"`
	Enabled        bool   `bson:"enabled" json:"enabled"`
	CreatedAt      int64  `bson:"createdAt" json:"createdAt"`
	CreatedBy      string `bson:"createdBy" json:"createdBy"`
	Content        string `bson:"content" json:"content"`
}

// FinancialReport is a published report with an optional uploaded document.
// LinkToDocument points at a blob in object storage, not at another
// collection.
type FinancialReport struct {
	ID             string
	Title          string
	DisplayOrder   int
	LinkToDocument string
	Enabled        bool
	CreatedAt      time.Time
	CreatedBy      string
	Content        string
}

// NewFinancialReport creates an enabled report. The ID is assigned when
// the document is inserted.
func NewFinancialReport(title, linkToDocument, createdBy, content string, displayOrder int) FinancialReport {
	return FinancialReport{
		Title:          title,
		DisplayOrder:   displayOrder,
		LinkToDocument: linkToDocument,
		Enabled:        true,
		CreatedAt:      Now(),
		CreatedBy:      createdBy,
		Content:        content,
	}
}

// FinancialReportPatch is a field-named partial update.
type FinancialReportPatch struct {
	Title          *string
	DisplayOrder   *int
	LinkToDocument *string
	Enabled        *bool
	Content        *string
}

// Update returns a new FinancialReport with the patch applied. ID,
// CreatedAt and CreatedBy are immutable.
func (r FinancialReport) Update(p FinancialReportPatch) FinancialReport {
	r.Title = orElse(p.Title, r.Title)
	r.DisplayOrder = orElse(p.DisplayOrder, r.DisplayOrder)
	r.LinkToDocument = orElse(p.LinkToDocument, r.LinkToDocument)
	r.Enabled = orElse(p.Enabled, r.Enabled)
	r.Content = orElse(p.Content, r.Content)
	return r
}

// Enable returns an enabled copy.
func (r FinancialReport) Enable() FinancialReport {
	return r.Update(FinancialReportPatch{Enabled: Ptr(true)})
}

// Disable returns a disabled copy.
func (r FinancialReport) Disable() FinancialReport {
	return r.Update(FinancialReportPatch{Enabled: Ptr(false)})
}

// HasContent reports whether the report body is non-blank.
func (r FinancialReport) HasContent() bool { return strings.TrimSpace(r.Content) != "" }

// HasDocument reports whether a document has been attached.
func (r FinancialReport) HasDocument() bool { return r.LinkToDocument != "" }

// ContentPreview returns the first 200 characters of the content.
func (r FinancialReport) ContentPreview() string {
	runes := []rune(r.Content)
	if len(runes) <= 200 {
		return r.Content
	}
	return string(runes[:200]) + "..."
}

// Order implements DisplayOrdered.
func (r FinancialReport) Order() int { return r.DisplayOrder }

// OrderTieBreak implements DisplayOrdered.
func (r FinancialReport) OrderTieBreak() (time.Time, string) { return r.CreatedAt, r.ID }

// ToDto converts the report to its wire form.
func (r FinancialReport) ToDto() FinancialReportDto {
	return FinancialReportDto{
		Title:          r.Title,
		DisplayOrder:   r.DisplayOrder,
		LinkToDocument: r.LinkToDocument,
		Enabled:        r.Enabled,
		CreatedAt:      ToMillis(r.CreatedAt),
		CreatedBy:      r.CreatedBy,
		Content:        r.Content,
	}
}

type financialReportMapper struct{}

func (financialReportMapper) FromDto(dto FinancialReportDto, id string) (FinancialReport, error) {
	if dto.Title == "" {
		return FinancialReport{}, errors.NewValidationError("report title is required").
			WithDetail("id", id)
	}
	return FinancialReport{
		ID:             id,
		Title:          dto.Title,
		DisplayOrder:   dto.DisplayOrder,
		LinkToDocument: dto.LinkToDocument,
		Enabled:        dto.Enabled,
		CreatedAt:      FromMillis(dto.CreatedAt),
		CreatedBy:      dto.CreatedBy,
		Content:        dto.Content,
	}, nil
}

func (financialReportMapper) ToDto(r FinancialReport) FinancialReportDto { return r.ToDto() }

// FinancialReportMapper converts between FinancialReport and its wire form.
var FinancialReportMapper repository.Mapper[FinancialReport, FinancialReportDto] = financialReportMapper{}
