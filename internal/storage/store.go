// Package storage provides abstractions for persistent ledger storage.
//
// Backends return contributions and expenditures as raw records whose
// optional fields may be missing (older documents, rows written before a
// column existed). Callers never use raw records directly: LoadSnapshot,
// Contributions and Expenditures normalize every record at this boundary.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

var (
	// ErrUnavailable means the backend could not be reached or queried.
	ErrUnavailable = errors.New("ledger store unavailable")
	// ErrNotFound means the requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate means a record with the same unique key already exists.
	ErrDuplicate = errors.New("record already exists")
)

// ContributionRecord is a contribution as read from a backend.
// Nil fields were absent in the stored record.
type ContributionRecord struct {
	ID        string
	Member    string
	Amount    *int64
	CreatedAt *time.Time
	Note      *string
	Period    *string
}

// ExpenditureRecord is an expenditure as read from a backend.
// Nil fields were absent in the stored record.
type ExpenditureRecord struct {
	ID          string
	Item        string
	Amount      *int64
	PurchasedOn *time.Time
	RecordedBy  *string
	CreatedAt   *time.Time
}

// Store defines the ledger storage operations.
// This abstraction allows swapping backends (SQLite, MongoDB)
// without changing the service layer.
type Store interface {
	// InsertMember persists a new member. The member.ID field is populated
	// by the store. Returns ErrDuplicate if the name is taken.
	InsertMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by name. Returns ErrNotFound if missing.
	GetMember(ctx context.Context, name string) (*models.Member, error)

	// ListMembers returns all members.
	ListMembers(ctx context.Context) ([]*models.Member, error)

	// CountMembers returns the number of members.
	CountMembers(ctx context.Context) (int64, error)

	// MemberNames returns the distinct member names in no particular order.
	MemberNames(ctx context.Context) ([]string, error)

	// UpdateMemberCredential replaces a member's password hash.
	// Returns ErrNotFound if the member does not exist.
	UpdateMemberCredential(ctx context.Context, name, passwordHash string) error

	// InsertContribution appends a contribution. The ID is populated by the store.
	InsertContribution(ctx context.Context, c *models.Contribution) error

	// ListContributions returns contributions, optionally only those of one
	// member. Order is not guaranteed.
	ListContributions(ctx context.Context, member string) ([]*ContributionRecord, error)

	// InsertExpenditure appends an expenditure. The ID is populated by the store.
	InsertExpenditure(ctx context.Context, e *models.Expenditure) error

	// ListExpenditures returns all expenditures. Order is not guaranteed.
	ListExpenditures(ctx context.Context) ([]*ExpenditureRecord, error)

	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any resources held by the store.
	Close() error
}
