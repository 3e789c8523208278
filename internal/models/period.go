package models

import (
	"fmt"
	"time"
)

// Period is a calendar year-month bucket.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" tag.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: want YYYY-MM", s)
	}
	return PeriodOf(t), nil
}

// String renders the period as "YYYY-MM".
func (p Period) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Index returns a month count usable for ordering and differences.
func (p Period) Index() int {
	return p.Year*12 + int(p.Month) - 1
}

// Before reports whether p is strictly earlier than other.
func (p Period) Before(other Period) bool {
	return p.Index() < other.Index()
}
