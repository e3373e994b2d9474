package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoped_WithTenant(t *testing.T) {
	assert.Equal(t, "synagogues/shul-1/donations", Scoped("shul-1", "donations"))
	assert.Equal(t, "synagogues/shul-1/prayerTimes", Scoped("shul-1", "/prayerTimes/"))
}

func TestScoped_WithoutTenant(t *testing.T) {
	assert.Equal(t, "donations", Scoped("", "donations"))
	assert.Equal(t, "synagogues", Global("/synagogues"))
}

func TestParse_GlobalCollection(t *testing.T) {
	info, err := Parse("donations")
	assert.NoError(t, err)
	assert.Empty(t, info.SynagogueID)
	assert.Equal(t, "donations", info.Collection)
	assert.Equal(t, []string{"donations"}, info.Segments)
}

func TestParse_ScopedCollection(t *testing.T) {
	info, err := Parse("synagogues/shul-1/families")
	assert.NoError(t, err)
	assert.Equal(t, "shul-1", info.SynagogueID)
	assert.Equal(t, "families", info.Collection)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("")
	assert.Error(t, err)

	_, err = Parse("a/b")
	assert.Error(t, err)

	_, err = Parse("tenants/shul-1/families")
	assert.Error(t, err)

	_, err = Parse("synagogues/shul$1/families")
	assert.Error(t, err)
}

func TestIsScoped(t *testing.T) {
	assert.True(t, isScoped("synagogues/shul-1/donations"))
	assert.False(t, isScoped("donations"))
	assert.False(t, isScoped("not//a//path"))
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("abc-123_X"))
	assert.True(t, IsValidID("gabbai@shul.org"))
	assert.False(t, IsValidID(""))
	assert.False(t, IsValidID("a$b"))
	assert.False(t, IsValidID("a/b"))
}

func TestRoundTrip(t *testing.T) {
	path := Scoped("shul-42", "toraLessons")
	info, err := Parse(path)
	assert.NoError(t, err)
	assert.Equal(t, "shul-42", info.SynagogueID)
	assert.Equal(t, "toraLessons", info.Collection)
}
