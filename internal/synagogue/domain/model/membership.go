package model

import (
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// MembershipDto is the wire form of a Membership.
type MembershipDto struct {
	Role      string `bson:"role" json:"role"`
	FamilyID  string `bson:"familyId" json:"familyId"`
	Enabled   bool   `bson:"enabled" json:"enabled"`
	CreatedAt int64  `bson:"createdAt" json:"createdAt"`
	UpdatedAt int64  `bson:"updatedAt" json:"updatedAt"`
}

// Membership ties a user to a synagogue with a role and a family. The
// document ID is the member's user ID.
type Membership struct {
	ID        string
	Role      Role
	FamilyID  string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewMembership creates an enabled membership for the given user.
func NewMembership(userID string, role Role, familyID string) Membership {
	now := Now()
	return Membership{
		ID:        userID,
		Role:      role,
		FamilyID:  familyID,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MembershipPatch is a field-named partial update.
type MembershipPatch struct {
	Role     *Role
	FamilyID *string
	Enabled  *bool
}

// Update returns a new Membership with the patch applied and UpdatedAt
// refreshed. ID and CreatedAt are immutable.
func (m Membership) Update(p MembershipPatch) Membership {
	m.Role = orElse(p.Role, m.Role)
	m.FamilyID = orElse(p.FamilyID, m.FamilyID)
	m.Enabled = orElse(p.Enabled, m.Enabled)
	m.UpdatedAt = Now()
	return m
}

// Enable returns an enabled copy.
func (m Membership) Enable() Membership { return m.Update(MembershipPatch{Enabled: Ptr(true)}) }

// Disable returns a disabled copy.
func (m Membership) Disable() Membership { return m.Update(MembershipPatch{Enabled: Ptr(false)}) }

// ChangeRole returns a copy with the given role.
func (m Membership) ChangeRole(role Role) Membership {
	return m.Update(MembershipPatch{Role: &role})
}

// IsActive reports whether the membership is enabled.
func (m Membership) IsActive() bool { return m.Enabled }

// IsAdmin reports whether the member is an admin.
func (m Membership) IsAdmin() bool { return m.Role == RoleAdmin }

// IsGabbaiOrHigher reports whether the member has gabbai privileges.
func (m Membership) IsGabbaiOrHigher() bool { return m.Role.AtLeastGabbai() }

// RoleDisplayName returns the Hebrew display name of the member's role.
func (m Membership) RoleDisplayName() string { return m.Role.DisplayName() }

// ToDto converts the membership to its wire form.
func (m Membership) ToDto() MembershipDto {
	return MembershipDto{
		Role:      string(m.Role),
		FamilyID:  m.FamilyID,
		Enabled:   m.Enabled,
		CreatedAt: ToMillis(m.CreatedAt),
		UpdatedAt: ToMillis(m.UpdatedAt),
	}
}

type membershipMapper struct{}

func (membershipMapper) FromDto(dto MembershipDto, id string) (Membership, error) {
	if dto.Role == "" {
		return Membership{}, errors.NewValidationError("membership role is required").
			WithDetail("id", id)
	}
	return Membership{
		ID:        id,
		Role:      ParseRole(dto.Role),
		FamilyID:  dto.FamilyID,
		Enabled:   dto.Enabled,
		CreatedAt: FromMillis(dto.CreatedAt),
		UpdatedAt: FromMillis(dto.UpdatedAt),
	}, nil
}

func (membershipMapper) ToDto(m Membership) MembershipDto { return m.ToDto() }

// MembershipMapper converts between Membership and its wire form.
var MembershipMapper repository.Mapper[Membership, MembershipDto] = membershipMapper{}
