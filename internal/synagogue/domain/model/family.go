package model

import (
	"strings"
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// FamilyDto is the wire form of a Family.
type FamilyDto struct {
	FamilyLabel string `bson:"familyLabel" json:"familyLabel"`
	Notes       string `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt   int64  `bson:"createdAt" json:"createdAt"`
	CreatedBy   string `bson:"createdBy" json:"createdBy"`
}

// Family groups memberships under one household label.
type Family struct {
	ID          string
	FamilyLabel string
	Notes       string
	CreatedAt   time.Time
	CreatedBy   string
}

// NewFamily creates a family. The ID is assigned when the document is
// inserted.
func NewFamily(familyLabel, createdBy string) Family {
	return Family{
		FamilyLabel: familyLabel,
		CreatedAt:   Now(),
		CreatedBy:   createdBy,
	}
}

// FamilyPatch is a field-named partial update.
type FamilyPatch struct {
	FamilyLabel *string
	Notes       *string
}

// Update returns a new Family with the patch applied. ID, CreatedAt and
// CreatedBy are immutable.
func (f Family) Update(p FamilyPatch) Family {
	f.FamilyLabel = orElse(p.FamilyLabel, f.FamilyLabel)
	f.Notes = orElse(p.Notes, f.Notes)
	return f
}

// HasNotes reports whether the family carries non-blank notes.
func (f Family) HasNotes() bool { return strings.TrimSpace(f.Notes) != "" }

// ToDto converts the family to its wire form.
func (f Family) ToDto() FamilyDto {
	return FamilyDto{
		FamilyLabel: f.FamilyLabel,
		Notes:       f.Notes,
		CreatedAt:   ToMillis(f.CreatedAt),
		CreatedBy:   f.CreatedBy,
	}
}

type familyMapper struct{}

func (familyMapper) FromDto(dto FamilyDto, id string) (Family, error) {
	if dto.FamilyLabel == "" {
		return Family{}, errors.NewValidationError("family label is required").
			WithDetail("id", id)
	}
	return Family{
		ID:          id,
		FamilyLabel: dto.FamilyLabel,
		Notes:       dto.Notes,
		CreatedAt:   FromMillis(dto.CreatedAt),
		CreatedBy:   dto.CreatedBy,
	}, nil
}

func (familyMapper) ToDto(f Family) FamilyDto { return f.ToDto() }

// FamilyMapper converts between Family and its wire form.
var FamilyMapper repository.Mapper[Family, FamilyDto] = familyMapper{}
