package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGabbaiBoard_SingletonID(t *testing.T) {
	g := NewGabbaiBoard("uid-1", 14)
	assert.Equal(t, GabbaiBoardID, g.ID)
}

func TestGabbaiBoard_UpdateLookaheadDays(t *testing.T) {
	g := NewGabbaiBoard("uid-1", 14)
	updated := g.UpdateLookaheadDays(30, "uid-2")

	assert.Equal(t, GabbaiBoardID, updated.ID)
	assert.Equal(t, 30, updated.LookaheadDays)
	assert.Equal(t, "uid-2", updated.UpdatedBy)
	assert.False(t, updated.UpdatedAt.Before(g.UpdatedAt))
}

func TestGabbaiBoard_Validation(t *testing.T) {
	assert.True(t, NewGabbaiBoard("uid-1", 14).IsValidLookaheadDays())
	assert.False(t, GabbaiBoard{LookaheadDays: 0}.IsValidLookaheadDays())
	assert.Equal(t, "14 ימים", NewGabbaiBoard("uid-1", 14).LookaheadDaysDescription())
}

func TestGabbaiBoardMapper_RoundTrip(t *testing.T) {
	g := NewGabbaiBoard("uid-1", 21)

	back, err := GabbaiBoardMapper.FromDto(GabbaiBoardMapper.ToDto(g), g.ID)
	require.NoError(t, err)
	assert.Equal(t, g, back)
}

func TestGabbaiBoardMapper_DefaultsLookahead(t *testing.T) {
	g, err := GabbaiBoardMapper.FromDto(GabbaiBoardDto{UpdatedBy: "uid-1"}, GabbaiBoardID)
	require.NoError(t, err)
	assert.Equal(t, DefaultLookaheadDays, g.LookaheadDays)

	_, err = GabbaiBoardMapper.FromDto(GabbaiBoardDto{LookaheadDays: -1}, GabbaiBoardID)
	assert.Error(t, err)
}

func TestFamily_UpdateKeepsIdentity(t *testing.T) {
	f := NewFamily("משפחת לוי", "uid-1")
	f.ID = "fam-1"

	updated := f.Update(FamilyPatch{Notes: Ptr("הערות")})
	assert.Equal(t, "fam-1", updated.ID)
	assert.Equal(t, f.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "uid-1", updated.CreatedBy)
	assert.True(t, updated.HasNotes())
	assert.False(t, f.HasNotes())
}

func TestFamilyMapper_RoundTrip(t *testing.T) {
	f := NewFamily("משפחת לוי", "uid-1")
	f.ID = "fam-1"

	back, err := FamilyMapper.FromDto(FamilyMapper.ToDto(f), f.ID)
	require.NoError(t, err)
	assert.Equal(t, f, back)
}

func TestAdmin_EmailAsID(t *testing.T) {
	a := NewAdmin("gabbai@shul.org")
	assert.Equal(t, "gabbai@shul.org", a.Email())
	assert.True(t, a.IsValid())
	assert.False(t, NewAdmin("not-an-email").IsValid())
}

func TestAdminMapper_RoundTrip(t *testing.T) {
	a := NewAdmin("gabbai@shul.org")
	back, err := AdminMapper.FromDto(AdminMapper.ToDto(a), a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, back)
}
