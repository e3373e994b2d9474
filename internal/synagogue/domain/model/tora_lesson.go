package model

import (
	"strings"
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// ToraLessonDto is the wire form of a ToraLesson.
type ToraLessonDto struct {
	Title        string `bson:"title" json:"title"`
	LedBy        string `bson:"ledBy,omitempty" json:"ledBy,omitempty"`
	When         string `bson:"when,omitempty" json:"when,omitempty"`
	DisplayOrder int    `bson:"displayOrder" json:"displayOrder"`
	Enabled      bool   `bson:"enabled" json:"enabled"`
	Notes        string `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    int64  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    int64  `bson:"updatedAt" json:"updatedAt"`
}

// ToraLesson is a recurring Torah lesson listed on the lessons page.
type ToraLesson struct {
	ID           string
	Title        string
	LedBy        string
	When         string // free-form schedule text, e.g. "מוצ"ש אחרי ערבית"
	DisplayOrder int
	Enabled      bool
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewToraLesson creates an enabled lesson. The ID is assigned when the
// document is inserted.
func NewToraLesson(title, ledBy, when string, displayOrder int) ToraLesson {
	now := Now()
	return ToraLesson{
		Title:        title,
		LedBy:        ledBy,
		When:         when,
		DisplayOrder: displayOrder,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// ToraLessonPatch is a field-named partial update.
type ToraLessonPatch struct {
	Title        *string
	LedBy        *string
	When         *string
	DisplayOrder *int
	Enabled      *bool
	Notes        *string
}

// Update returns a new ToraLesson with the patch applied and UpdatedAt
// refreshed. ID and CreatedAt are immutable.
func (l ToraLesson) Update(p ToraLessonPatch) ToraLesson {
	l.Title = orElse(p.Title, l.Title)
	l.LedBy = orElse(p.LedBy, l.LedBy)
	l.When = orElse(p.When, l.When)
	l.DisplayOrder = orElse(p.DisplayOrder, l.DisplayOrder)
	l.Enabled = orElse(p.Enabled, l.Enabled)
	l.Notes = orElse(p.Notes, l.Notes)
	l.UpdatedAt = Now()
	return l
}

// Enable returns an enabled copy.
func (l ToraLesson) Enable() ToraLesson { return l.Update(ToraLessonPatch{Enabled: Ptr(true)}) }

// Disable returns a disabled copy.
func (l ToraLesson) Disable() ToraLesson { return l.Update(ToraLessonPatch{Enabled: Ptr(false)}) }

// HasNotes reports whether the lesson carries non-blank notes.
func (l ToraLesson) HasNotes() bool { return strings.TrimSpace(l.Notes) != "" }

// Order implements DisplayOrdered.
func (l ToraLesson) Order() int { return l.DisplayOrder }

// OrderTieBreak implements DisplayOrdered.
func (l ToraLesson) OrderTieBreak() (time.Time, string) { return l.CreatedAt, l.ID }

// ToDto converts the lesson to its wire form.
func (l ToraLesson) ToDto() ToraLessonDto {
	return ToraLessonDto{
		Title:        l.Title,
		LedBy:        l.LedBy,
		When:         l.When,
		DisplayOrder: l.DisplayOrder,
		Enabled:      l.Enabled,
		Notes:        l.Notes,
		CreatedAt:    ToMillis(l.CreatedAt),
		UpdatedAt:    ToMillis(l.UpdatedAt),
	}
}

type toraLessonMapper struct{}

func (toraLessonMapper) FromDto(dto ToraLessonDto, id string) (ToraLesson, error) {
	if dto.Title == "" {
		return ToraLesson{}, errors.NewValidationError("lesson title is required").
			WithDetail("id", id)
	}
	return ToraLesson{
		ID:           id,
		Title:        dto.Title,
		LedBy:        dto.LedBy,
		When:         dto.When,
		DisplayOrder: dto.DisplayOrder,
		Enabled:      dto.Enabled,
		Notes:        dto.Notes,
		CreatedAt:    FromMillis(dto.CreatedAt),
		UpdatedAt:    FromMillis(dto.UpdatedAt),
	}, nil
}

func (toraLessonMapper) ToDto(l ToraLesson) ToraLessonDto { return l.ToDto() }

// ToraLessonMapper converts between ToraLesson and its wire form.
var ToraLessonMapper repository.Mapper[ToraLesson, ToraLessonDto] = toraLessonMapper{}
