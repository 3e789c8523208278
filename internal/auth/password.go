package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/kaskos/internal/models"
	"github.com/mmynk/kaskos/internal/storage"
)

// MinPasswordLength is the shortest accepted credential.
const MinPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid name or password")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrMemberExists       = errors.New("member already exists")
)

// MemberStorage defines the member persistence operations the authenticator needs.
type MemberStorage interface {
	InsertMember(ctx context.Context, member *models.Member) error
	GetMember(ctx context.Context, name string) (*models.Member, error)
	UpdateMemberCredential(ctx context.Context, name, passwordHash string) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage MemberStorage
	cost    int
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage MemberStorage) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
}

// WithCost returns a copy of the authenticator using the given bcrypt cost.
// Tests use bcrypt.MinCost to stay fast.
func (a *PasswordAuthenticator) WithCost(cost int) *PasswordAuthenticator {
	return &PasswordAuthenticator{storage: a.storage, cost: cost}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a member with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, name string, role models.Role, credential string) (*models.Member, error) {
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	member := models.NewMember(name, role, string(hash))
	if err := member.Validate(); err != nil {
		return nil, err
	}

	if err := a.storage.InsertMember(ctx, member); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, ErrMemberExists
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return member, nil
}

// Authenticate verifies the name and password, returning the member if valid.
// Store outages are returned as-is so callers can tell them apart from a
// wrong password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, name, credential string) (*models.Member, error) {
	member, err := a.storage.GetMember(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(credential)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return member, nil
}

// ChangeCredential verifies the current password and stores a hash of next.
func (a *PasswordAuthenticator) ChangeCredential(ctx context.Context, name, current, next string) error {
	if err := a.ValidateCredential(next); err != nil {
		return err
	}

	if _, err := a.Authenticate(ctx, name, current); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), a.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.storage.UpdateMemberCredential(ctx, name, string(hash)); err != nil {
		return fmt.Errorf("failed to update credential: %w", err)
	}
	return nil
}
