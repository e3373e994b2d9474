package model

import (
	"fmt"
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// GabbaiBoardID is the fixed document ID of the per-synagogue board
// settings. Each synagogue has at most one.
const GabbaiBoardID = "gabbaiBoard"

// DefaultLookaheadDays is how far ahead the board looks when none is set.
const DefaultLookaheadDays = 14

// GabbaiBoardDto is the wire form of the GabbaiBoard settings.
type GabbaiBoardDto struct {
	LookaheadDays int    `bson:"lookaheadDays" json:"lookaheadDays"`
	UpdatedAt     int64  `bson:"updatedAt" json:"updatedAt"`
	UpdatedBy     string `bson:"updatedBy" json:"updatedBy"`
}

// GabbaiBoard holds the gabbai board display settings for one synagogue.
type GabbaiBoard struct {
	ID            string
	LookaheadDays int
	UpdatedAt     time.Time
	UpdatedBy     string
}

// NewGabbaiBoard creates board settings with the singleton document ID.
func NewGabbaiBoard(updatedBy string, lookaheadDays int) GabbaiBoard {
	return GabbaiBoard{
		ID:            GabbaiBoardID,
		LookaheadDays: lookaheadDays,
		UpdatedAt:     Now(),
		UpdatedBy:     updatedBy,
	}
}

// UpdateLookaheadDays returns a copy with the new lookahead window,
// stamped with the editor and edit time. ID is immutable.
func (g GabbaiBoard) UpdateLookaheadDays(lookaheadDays int, updatedBy string) GabbaiBoard {
	g.LookaheadDays = lookaheadDays
	g.UpdatedAt = Now()
	g.UpdatedBy = updatedBy
	return g
}

// IsValidLookaheadDays reports whether the lookahead window is positive.
func (g GabbaiBoard) IsValidLookaheadDays() bool { return g.LookaheadDays > 0 }

// LookaheadDaysDescription returns the Hebrew display string for the
// window, e.g. "14 ימים".
func (g GabbaiBoard) LookaheadDaysDescription() string {
	return fmt.Sprintf("%d ימים", g.LookaheadDays)
}

// ToDto converts the board settings to their wire form.
func (g GabbaiBoard) ToDto() GabbaiBoardDto {
	return GabbaiBoardDto{
		LookaheadDays: g.LookaheadDays,
		UpdatedAt:     ToMillis(g.UpdatedAt),
		UpdatedBy:     g.UpdatedBy,
	}
}

type gabbaiBoardMapper struct{}

func (gabbaiBoardMapper) FromDto(dto GabbaiBoardDto, id string) (GabbaiBoard, error) {
	if dto.LookaheadDays < 0 {
		return GabbaiBoard{}, errors.NewValidationError("lookahead days must not be negative").
			WithDetail("id", id)
	}
	lookahead := dto.LookaheadDays
	if lookahead == 0 {
		lookahead = DefaultLookaheadDays
	}
	return GabbaiBoard{
		ID:            id,
		LookaheadDays: lookahead,
		UpdatedAt:     FromMillis(dto.UpdatedAt),
		UpdatedBy:     dto.UpdatedBy,
	}, nil
}

func (gabbaiBoardMapper) ToDto(g GabbaiBoard) GabbaiBoardDto { return g.ToDto() }

// GabbaiBoardMapper converts between GabbaiBoard and its wire form.
var GabbaiBoardMapper repository.Mapper[GabbaiBoard, GabbaiBoardDto] = gabbaiBoardMapper{}
