package model

// Role is a user's role inside one synagogue.
type Role string

const (
	RoleMember Role = "member"
	RoleGabbai Role = "gabbai"
	RoleAdmin  Role = "admin"
)

// ParseRole maps a claim string to a Role, defaulting to member.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleGabbai:
		return RoleGabbai
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleMember
	}
}

// IsValid reports whether the role is one of the known values.
func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleGabbai || r == RoleAdmin
}

// AtLeastGabbai reports whether the role grants gabbai privileges.
func (r Role) AtLeastGabbai() bool {
	return r == RoleGabbai || r == RoleAdmin
}

// DisplayName returns the Hebrew display name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleMember:
		return "חבר"
	case RoleGabbai:
		return "גבאי"
	case RoleAdmin:
		return "מנהל"
	default:
		return "לא ידוע"
	}
}

// User is the projection of the identity provider's signed-in user. The
// sign-in protocol itself is not implemented here; these values arrive via
// verified token claims.
type User struct {
	UID         string
	Email       string
	Role        Role
	PrayerID    string
	DisplayName string
	PhotoURL    string
}
