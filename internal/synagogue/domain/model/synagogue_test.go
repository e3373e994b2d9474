package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynagogue_ColorDefaults(t *testing.T) {
	s := NewSynagogue("בית כנסת המרכזי", "uid-1")
	assert.Equal(t, DefaultPrimaryColor, s.PrimaryColorValue())
	assert.Equal(t, DefaultSecondaryColor, s.SecondaryColorValue())
	assert.Equal(t, DefaultErrorColor, s.ErrorColorValue())

	s = s.Update(SynagoguePatch{PrimaryColor: Ptr("#112233")})
	assert.Equal(t, "#112233", s.PrimaryColorValue())
	assert.Equal(t, DefaultSecondaryColor, s.SecondaryColorValue())
}

func TestSynagogue_UpdateKeepsIdentity(t *testing.T) {
	s := NewSynagogue("בית כנסת", "uid-1")
	s.ID = "shul-1"

	updated := s.Update(SynagoguePatch{Name: Ptr("שם חדש")})
	assert.Equal(t, "shul-1", updated.ID)
	assert.Equal(t, s.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "uid-1", updated.CreatedBy)
	assert.Equal(t, "שם חדש", updated.Name)

	// the original value is untouched
	assert.Equal(t, "בית כנסת", s.Name)
}

func TestSynagogueMapper_RoundTrip(t *testing.T) {
	s := NewSynagogue("בית כנסת", "uid-1")
	s.ID = "shul-1"
	s.PrimaryColor = "#abcdef"

	back, err := SynagogueMapper.FromDto(SynagogueMapper.ToDto(s), s.ID)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestSynagogueMapper_RequiresName(t *testing.T) {
	_, err := SynagogueMapper.FromDto(SynagogueDto{}, "shul-1")
	assert.Error(t, err)
}
