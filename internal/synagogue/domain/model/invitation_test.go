package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvitation_Lifecycle(t *testing.T) {
	inv := NewInvitation("inv-1", "uid-admin", "הגבאי", RoleMember)
	assert.True(t, inv.IsPending())

	accepted := inv.Accept("uid-new")
	assert.Equal(t, InvitationAccepted, accepted.Status)
	assert.Equal(t, "uid-new", accepted.InviteeUID)
	assert.False(t, accepted.IsPending())

	cancelled := inv.Cancel()
	assert.Equal(t, InvitationCancelled, cancelled.Status)
	assert.False(t, cancelled.IsPending())
}

func TestInvitation_Expiry(t *testing.T) {
	inv := NewInvitation("inv-1", "uid-admin", "הגבאי", RoleMember)
	assert.False(t, inv.IsExpired(), "no expiry set means never expired")

	expired := inv.WithExpiry(time.Now().Add(-time.Hour))
	assert.True(t, expired.IsExpired())
	assert.False(t, expired.IsPending(), "expired invitations cannot be accepted")

	future := inv.WithExpiry(time.Now().Add(time.Hour))
	assert.False(t, future.IsExpired())
	assert.True(t, future.IsPending())
}

func TestInvitation_WithFamilyAndMigration(t *testing.T) {
	inv := NewInvitation("inv-1", "uid-admin", "הגבאי", RoleGabbai).
		WithFamily("fam-1", "משפחת כהן").
		WithMigration("uid-old")

	assert.Equal(t, "fam-1", inv.FamilyID)
	assert.Equal(t, "משפחת כהן", inv.FamilyLabel)
	assert.Equal(t, "uid-old", inv.UIDToMigrate)
}

func TestInvitationMapper_RoundTrip(t *testing.T) {
	inv := NewInvitation("inv-1", "uid-admin", "הגבאי", RoleMember).
		WithFamily("fam-1", "משפחת כהן").
		WithExpiry(Now().Add(48 * time.Hour))

	back, err := InvitationMapper.FromDto(InvitationMapper.ToDto(inv), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, inv, back)
}

func TestInvitationMapper_NoExpiry(t *testing.T) {
	inv := NewInvitation("inv-1", "uid-admin", "הגבאי", RoleMember)

	dto := InvitationMapper.ToDto(inv)
	assert.Zero(t, dto.ExpiresAt)

	back, err := InvitationMapper.FromDto(dto, inv.ID)
	require.NoError(t, err)
	assert.True(t, back.ExpiresAt.IsZero())
}

func TestInvitationMapper_RejectsUnknownStatus(t *testing.T) {
	dto := InvitationDto{InviterUID: "uid-1", Status: "declined"}
	_, err := InvitationMapper.FromDto(dto, "inv-1")
	assert.Error(t, err)
}

func TestInvitationStatus_DisplayName(t *testing.T) {
	assert.Equal(t, "ממתין", InvitationPending.DisplayName())
	assert.Equal(t, "אושר", InvitationAccepted.DisplayName())
	assert.Equal(t, "בוטל", InvitationCancelled.DisplayName())
}
