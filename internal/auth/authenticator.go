package auth

import (
	"context"

	"github.com/mmynk/kaskos/internal/models"
)

// Authenticator defines the interface for credential verification.
// This abstraction allows swapping the credential scheme without changing
// the service layer code.
type Authenticator interface {
	// Register creates a member with the given name, role and credential.
	// Used when seeding the roster.
	Register(ctx context.Context, name string, role models.Role, credential string) (*models.Member, error)

	// Authenticate verifies the member's credential and returns the member.
	Authenticate(ctx context.Context, name, credential string) (*models.Member, error)

	// ChangeCredential replaces a member's credential after verifying the
	// current one.
	ChangeCredential(ctx context.Context, name, current, next string) error

	// ValidateCredential checks if the credential meets the requirements.
	ValidateCredential(credential string) error
}
