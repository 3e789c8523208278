package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRecord is returned when a record fails validation before insert.
var ErrInvalidRecord = errors.New("invalid record")

// Contribution represents one cash payment into the shared fund.
type Contribution struct {
	// ID is the unique identifier for the contribution (UUID format).
	ID string

	// Member is the name of the member who paid.
	Member string

	// Amount is the paid amount in whole currency units. Always positive.
	Amount int64

	// CreatedAt is when the payment was recorded.
	CreatedAt time.Time

	// Note is an optional free-text description.
	Note string

	// Period is the year-month of CreatedAt.
	Period Period
}

// NewContribution creates a contribution timestamped at now, tagged with the
// period of now.
func NewContribution(member string, amount int64, note string, now time.Time) *Contribution {
	return &Contribution{
		Member:    member,
		Amount:    amount,
		CreatedAt: now,
		Note:      strings.TrimSpace(note),
		Period:    PeriodOf(now),
	}
}

// Validate checks the contribution invariants.
func (c *Contribution) Validate() error {
	if strings.TrimSpace(c.Member) == "" {
		return fmt.Errorf("%w: contribution member is required", ErrInvalidRecord)
	}
	if c.Amount <= 0 {
		return fmt.Errorf("%w: contribution amount must be positive, got %d", ErrInvalidRecord, c.Amount)
	}
	return nil
}
