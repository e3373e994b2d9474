package model

import (
	"time"

	"synagogue-manager/internal/shared/errors"
	"synagogue-manager/internal/synagogue/domain/repository"
)

// InvitationStatus is the lifecycle state of an invitation.
type InvitationStatus string

const (
	InvitationPending   InvitationStatus = "pending"
	InvitationAccepted  InvitationStatus = "accepted"
	InvitationCancelled InvitationStatus = "cancelled"
)

// IsValid reports whether the status is one of the known values.
func (s InvitationStatus) IsValid() bool {
	return s == InvitationPending || s == InvitationAccepted || s == InvitationCancelled
}

// DisplayName returns the Hebrew display name for the status.
func (s InvitationStatus) DisplayName() string {
	switch s {
	case InvitationPending:
		return "ממתין"
	case InvitationAccepted:
		return "אושר"
	case InvitationCancelled:
		return "בוטל"
	default:
		return string(s)
	}
}

// InvitationDto is the wire form of an Invitation. ExpiresAt is zero when
// the invitation never expires.
type InvitationDto struct {
	InviterUID   string `bson:"inviterUid" json:"inviterUid"`
	InviterName  string `bson:"inviterName" json:"inviterName"`
	FamilyID     string `bson:"familyId,omitempty" json:"familyId,omitempty"`
	FamilyLabel  string `bson:"familyLabel,omitempty" json:"familyLabel,omitempty"`
	InviteeRole  string `bson:"inviteeRole" json:"inviteeRole"`
	UIDToMigrate string `bson:"uidToMigrate,omitempty" json:"uidToMigrate,omitempty"`
	InviteeUID   string `bson:"inviteeUid,omitempty" json:"inviteeUid,omitempty"`
	Status       string `bson:"status" json:"status"`
	CreatedAt    int64  `bson:"createdAt" json:"createdAt"`
	ExpiresAt    int64  `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
}

// Invitation invites a user into a synagogue with a role, optionally
// attached to a family. The document ID is caller-supplied so the ID can
// be shared as a link before the invitee signs in.
type Invitation struct {
	ID           string
	InviterUID   string
	InviterName  string
	FamilyID     string
	FamilyLabel  string
	InviteeRole  Role
	UIDToMigrate string
	InviteeUID   string
	Status       InvitationStatus
	CreatedAt    time.Time
	ExpiresAt    time.Time // zero when the invitation never expires
}

// NewInvitation creates a pending invitation with the given ID.
func NewInvitation(id, inviterUID, inviterName string, inviteeRole Role) Invitation {
	return Invitation{
		ID:          id,
		InviterUID:  inviterUID,
		InviterName: inviterName,
		InviteeRole: inviteeRole,
		Status:      InvitationPending,
		CreatedAt:   Now(),
	}
}

// WithFamily returns a copy attached to the given family.
func (i Invitation) WithFamily(familyID, familyLabel string) Invitation {
	i.FamilyID = familyID
	i.FamilyLabel = familyLabel
	return i
}

// WithExpiry returns a copy that expires at the given time.
func (i Invitation) WithExpiry(expiresAt time.Time) Invitation {
	i.ExpiresAt = expiresAt.UTC().Truncate(time.Millisecond)
	return i
}

// WithMigration returns a copy that migrates an existing placeholder
// member record to the invitee on acceptance.
func (i Invitation) WithMigration(uidToMigrate string) Invitation {
	i.UIDToMigrate = uidToMigrate
	return i
}

// Accept returns a copy marked accepted by the given user.
func (i Invitation) Accept(inviteeUID string) Invitation {
	i.Status = InvitationAccepted
	i.InviteeUID = inviteeUID
	return i
}

// Cancel returns a copy marked cancelled.
func (i Invitation) Cancel() Invitation {
	i.Status = InvitationCancelled
	return i
}

// IsExpired reports whether the expiry time has passed.
func (i Invitation) IsExpired() bool {
	return !i.ExpiresAt.IsZero() && i.ExpiresAt.Before(time.Now())
}

// IsPending reports whether the invitation can still be accepted.
func (i Invitation) IsPending() bool {
	return i.Status == InvitationPending && !i.IsExpired()
}

// ToDto converts the invitation to its wire form.
func (i Invitation) ToDto() InvitationDto {
	var expiresAt int64
	if !i.ExpiresAt.IsZero() {
		expiresAt = ToMillis(i.ExpiresAt)
	}
	return InvitationDto{
		InviterUID:   i.InviterUID,
		InviterName:  i.InviterName,
		FamilyID:     i.FamilyID,
		FamilyLabel:  i.FamilyLabel,
		InviteeRole:  string(i.InviteeRole),
		UIDToMigrate: i.UIDToMigrate,
		InviteeUID:   i.InviteeUID,
		Status:       string(i.Status),
		CreatedAt:    ToMillis(i.CreatedAt),
		ExpiresAt:    expiresAt,
	}
}

type invitationMapper struct{}

func (invitationMapper) FromDto(dto InvitationDto, id string) (Invitation, error) {
	if dto.InviterUID == "" {
		return Invitation{}, errors.NewValidationError("invitation inviter is required").
			WithDetail("id", id)
	}
	status := InvitationStatus(dto.Status)
	if !status.IsValid() {
		return Invitation{}, errors.NewValidationError("unknown invitation status").
			WithDetail("id", id).
			WithDetail("status", dto.Status)
	}
	var expiresAt time.Time
	if dto.ExpiresAt != 0 {
		expiresAt = FromMillis(dto.ExpiresAt)
	}
	return Invitation{
		ID:           id,
		InviterUID:   dto.InviterUID,
		InviterName:  dto.InviterName,
		FamilyID:     dto.FamilyID,
		FamilyLabel:  dto.FamilyLabel,
		InviteeRole:  ParseRole(dto.InviteeRole),
		UIDToMigrate: dto.UIDToMigrate,
		InviteeUID:   dto.InviteeUID,
		Status:       status,
		CreatedAt:    FromMillis(dto.CreatedAt),
		ExpiresAt:    expiresAt,
	}, nil
}

func (invitationMapper) ToDto(i Invitation) InvitationDto { return i.ToDto() }

// InvitationMapper converts between Invitation and its wire form.
var InvitationMapper repository.Mapper[Invitation, InvitationDto] = invitationMapper{}
