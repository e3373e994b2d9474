package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMembership_RoleChecks(t *testing.T) {
	m := NewMembership("uid-1", RoleMember, "fam-1")
	assert.True(t, m.IsActive())
	assert.False(t, m.IsAdmin())
	assert.False(t, m.IsGabbaiOrHigher())
	assert.Equal(t, "חבר", m.RoleDisplayName())

	m = m.ChangeRole(RoleGabbai)
	assert.True(t, m.IsGabbaiOrHigher())
	assert.False(t, m.IsAdmin())

	m = m.ChangeRole(RoleAdmin)
	assert.True(t, m.IsAdmin())
	assert.Equal(t, "מנהל", m.RoleDisplayName())
}

func TestMembership_DisableKeepsIdentity(t *testing.T) {
	m := NewMembership("uid-1", RoleMember, "fam-1")
	disabled := m.Disable()

	assert.Equal(t, "uid-1", disabled.ID)
	assert.Equal(t, m.CreatedAt, disabled.CreatedAt)
	assert.False(t, disabled.Enabled)
	assert.False(t, disabled.IsActive())
}

func TestMembershipMapper_RoundTrip(t *testing.T) {
	m := NewMembership("uid-1", RoleGabbai, "fam-1")

	back, err := MembershipMapper.FromDto(MembershipMapper.ToDto(m), m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, back)
}

func TestMembershipMapper_UnknownRoleDefaultsToMember(t *testing.T) {
	dto := MembershipDto{Role: "owner", FamilyID: "fam-1", Enabled: true}
	m, err := MembershipMapper.FromDto(dto, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, m.Role)
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleGabbai, ParseRole("gabbai"))
	assert.Equal(t, RoleMember, ParseRole("member"))
	assert.Equal(t, RoleMember, ParseRole("anything-else"))
}
