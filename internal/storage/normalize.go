package storage

import (
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

// NormalizeContribution turns a raw record into a contribution, filling in
// defaults for missing fields:
//   - amount: 0
//   - timestamp: fallback
//   - note: empty
//   - period: derived from the timestamp in loc
//
// loc is the ledger time zone; nil means UTC. The second return value
// reports whether any default was used.
func NormalizeContribution(r *ContributionRecord, fallback time.Time, loc *time.Location) (*models.Contribution, bool) {
	if loc == nil {
		loc = time.UTC
	}

	degraded := false
	c := &models.Contribution{
		ID:     r.ID,
		Member: r.Member,
	}

	if r.Amount != nil {
		c.Amount = *r.Amount
	} else {
		degraded = true
	}

	if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		c.CreatedAt = *r.CreatedAt
	} else {
		c.CreatedAt = fallback
		degraded = true
	}

	if r.Note != nil {
		c.Note = *r.Note
	} else {
		degraded = true
	}

	c.CreatedAt = c.CreatedAt.In(loc)
	c.Period = models.PeriodOf(c.CreatedAt)
	if r.Period != nil {
		if p, err := models.ParsePeriod(*r.Period); err == nil {
			c.Period = p
		} else {
			degraded = true
		}
	} else {
		degraded = true
	}

	return c, degraded
}

// NormalizeExpenditure turns a raw record into an expenditure, filling in
// defaults for missing fields:
//   - amount: 0
//   - record timestamp: fallback
//   - purchase date: the record timestamp
//   - recorder: empty
//
// The second return value reports whether any default was used.
func NormalizeExpenditure(r *ExpenditureRecord, fallback time.Time) (*models.Expenditure, bool) {
	degraded := false
	e := &models.Expenditure{
		ID:   r.ID,
		Item: r.Item,
	}

	if r.Amount != nil {
		e.Amount = *r.Amount
	} else {
		degraded = true
	}

	if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
		e.CreatedAt = *r.CreatedAt
	} else {
		e.CreatedAt = fallback
		degraded = true
	}

	if r.PurchasedOn != nil && !r.PurchasedOn.IsZero() {
		e.PurchasedOn = *r.PurchasedOn
	} else {
		e.PurchasedOn = e.CreatedAt
		degraded = true
	}

	if r.RecordedBy != nil {
		e.RecordedBy = *r.RecordedBy
	} else {
		degraded = true
	}

	return e, degraded
}
