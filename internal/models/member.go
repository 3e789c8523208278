package models

import (
	"fmt"
	"strings"
	"time"
)

// Role controls what a member may record.
type Role string

const (
	// RoleAdmin may record expenditures and payments on behalf of others.
	RoleAdmin Role = "admin"
	// RoleMember may record only their own payments.
	RoleMember Role = "member"
)

// ParseRole converts a stored or configured role string into a Role.
// Unknown and empty values fall back to RoleMember.
func ParseRole(s string) Role {
	if Role(strings.ToLower(strings.TrimSpace(s))) == RoleAdmin {
		return RoleAdmin
	}
	return RoleMember
}

// Member represents one person in the household.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Name is the unique display name. Contributions reference members by name.
	Name string

	// PasswordHash is the bcrypt hash of the member's credential.
	PasswordHash string

	// Role is either RoleAdmin or RoleMember.
	Role Role

	// CreatedAt is the Unix timestamp when the member was seeded.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last credential change.
	UpdatedAt int64
}

// IsAdmin reports whether the member holds the admin role.
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// NewMember creates a member with the given name, role and credential hash.
// The ID is assigned by the store.
func NewMember(name string, role Role, passwordHash string) *Member {
	now := time.Now().Unix()
	return &Member{
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks the fields required before a member is inserted.
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: member name is required", ErrInvalidRecord)
	}
	if m.PasswordHash == "" {
		return fmt.Errorf("%w: member %q has no credential", ErrInvalidRecord, m.Name)
	}
	return nil
}
