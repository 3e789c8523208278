package models

import (
	"fmt"
	"strings"
	"time"
)

// Expenditure represents money spent from the shared fund.
type Expenditure struct {
	// ID is the unique identifier for the expenditure (UUID format).
	ID string

	// Item describes what was bought.
	Item string

	// Amount is the spent amount in whole currency units. Always positive.
	Amount int64

	// PurchasedOn is the date of the purchase.
	PurchasedOn time.Time

	// RecordedBy is the name of the admin who recorded it.
	RecordedBy string

	// CreatedAt is when the record was stored.
	CreatedAt time.Time
}

// Validate checks the expenditure invariants.
func (e *Expenditure) Validate() error {
	if strings.TrimSpace(e.Item) == "" {
		return fmt.Errorf("%w: expenditure item is required", ErrInvalidRecord)
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: expenditure amount must be positive, got %d", ErrInvalidRecord, e.Amount)
	}
	if e.PurchasedOn.IsZero() {
		return fmt.Errorf("%w: expenditure purchase date is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(e.RecordedBy) == "" {
		return fmt.Errorf("%w: expenditure recorder is required", ErrInvalidRecord)
	}
	return nil
}
