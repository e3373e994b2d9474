package model

import (
	"strings"
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// Default theme colors applied when a synagogue has not picked its own.
const (
	DefaultPrimaryColor   = "#9da832"
	DefaultSecondaryColor = "#328ba8"
	DefaultErrorColor     = "#e84242"
)

// SynagogueDto is the wire form of a Synagogue. The document ID is the
// tenant ID and is not part of the payload.
type SynagogueDto struct {
	Name           string `bson:"name" json:"name"`
	CreatedAt      int64  `bson:"createdAt" json:"createdAt"`
	CreatedBy      string `bson:"createdBy" json:"createdBy"`
	PrimaryColor   string `bson:"primaryColor,omitempty" json:"primaryColor,omitempty"`
	SecondaryColor string `bson:"secondaryColor,omitempty" json:"secondaryColor,omitempty"`
	ErrorColor     string `bson:"errorColor,omitempty" json:"errorColor,omitempty"`
}

// Synagogue is a tenant: the unit of data isolation for every scoped
// collection.
type Synagogue struct {
	ID             string
	Name           string
	CreatedAt      time.Time
	CreatedBy      string
	PrimaryColor   string
	SecondaryColor string
	ErrorColor     string
}

// NewSynagogue creates a synagogue draft. The ID is assigned when the
// document is inserted (the tenant ID doubles as the document ID).
func NewSynagogue(name, createdBy string) Synagogue {
	return Synagogue{
		Name:      name,
		CreatedAt: Now(),
		CreatedBy: createdBy,
	}
}

// SynagoguePatch is a field-named partial update.
type SynagoguePatch struct {
	Name           *string
	PrimaryColor   *string
	SecondaryColor *string
	ErrorColor     *string
}

// Update returns a new Synagogue with the patch applied. ID, CreatedAt and
// CreatedBy are immutable.
func (s Synagogue) Update(p SynagoguePatch) Synagogue {
	s.Name = orElse(p.Name, s.Name)
	s.PrimaryColor = orElse(p.PrimaryColor, s.PrimaryColor)
	s.SecondaryColor = orElse(p.SecondaryColor, s.SecondaryColor)
	s.ErrorColor = orElse(p.ErrorColor, s.ErrorColor)
	return s
}

// IsValid reports whether the synagogue has a non-blank name.
func (s Synagogue) IsValid() bool {
	return strings.TrimSpace(s.Name) != ""
}

// PrimaryColorValue returns the primary theme color or its default.
func (s Synagogue) PrimaryColorValue() string {
	if s.PrimaryColor != "" {
		return s.PrimaryColor
	}
	return DefaultPrimaryColor
}

// SecondaryColorValue returns the secondary theme color or its default.
func (s Synagogue) SecondaryColorValue() string {
	if s.SecondaryColor != "" {
		return s.SecondaryColor
	}
	return DefaultSecondaryColor
}

// ErrorColorValue returns the error theme color or its default.
func (s Synagogue) ErrorColorValue() string {
	if s.ErrorColor != "" {
		return s.ErrorColor
	}
	return DefaultErrorColor
}

// ToDto converts the synagogue to its wire form.
func (s Synagogue) ToDto() SynagogueDto {
	return SynagogueDto{
		Name:           s.Name,
		CreatedAt:      ToMillis(s.CreatedAt),
		CreatedBy:      s.CreatedBy,
		PrimaryColor:   s.PrimaryColor,
		SecondaryColor: s.SecondaryColor,
		ErrorColor:     s.ErrorColor,
	}
}

type synagogueMapper struct{}

func (synagogueMapper) FromDto(dto SynagogueDto, id string) (Synagogue, error) {
	if dto.Name == "" {
		return Synagogue{}, errors.NewValidationError("synagogue name is required").
			WithDetail("id", id)
	}
	return Synagogue{
		ID:             id,
		Name:           dto.Name,
		CreatedAt:      FromMillis(dto.CreatedAt),
		CreatedBy:      dto.CreatedBy,
		PrimaryColor:   dto.PrimaryColor,
		SecondaryColor: dto.SecondaryColor,
		ErrorColor:     dto.ErrorColor,
	}, nil
}

func (synagogueMapper) ToDto(s Synagogue) SynagogueDto { return s.ToDto() }

// SynagogueMapper converts between Synagogue and its wire form.
var SynagogueMapper repository.Mapper[Synagogue, SynagogueDto] = synagogueMapper{}
