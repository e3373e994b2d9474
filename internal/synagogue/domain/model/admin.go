package model

import (
	"strings"

	"synagogue-manager/internal/synagogue/domain/repository"
)

// AdminDto is the wire form of an Admin. The record carries no payload;
// the document's existence is the whole fact.
type AdminDto struct{}

// Admin marks an email address as a platform administrator. The email is
// the document ID, so membership checks are a single existence probe. IDs
// are matched byte for byte; case-variant spellings of the same address
// are distinct documents.
type Admin struct {
	ID string // email
}

// NewAdmin creates an admin record for the given email.
func NewAdmin(email string) Admin {
	return Admin{ID: email}
}

// Email returns the admin's email address.
func (a Admin) Email() string { return a.ID }

// IsValid reports whether the ID looks like an email address.
func (a Admin) IsValid() bool {
	at := strings.Index(a.ID, "@")
	return at > 0 && at < len(a.ID)-1
}

type adminMapper struct{}

func (adminMapper) FromDto(_ AdminDto, id string) (Admin, error) {
	return Admin{ID: id}, nil
}

func (adminMapper) ToDto(Admin) AdminDto { return AdminDto{} }

// AdminMapper converts between Admin and its wire form.
var AdminMapper repository.Mapper[Admin, AdminDto] = adminMapper{}
