package calculator

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

// PreStartPolicy decides how many periods are owed before the schedule starts.
type PreStartPolicy int

const (
	// FloorZero owes nothing before the start period.
	FloorZero PreStartPolicy = iota
	// FloorOne always owes at least one period, even before the start.
	FloorOne
)

// ParsePreStartPolicy accepts "zero" or "one".
func ParsePreStartPolicy(s string) (PreStartPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "zero", "0":
		return FloorZero, nil
	case "one", "1":
		return FloorOne, nil
	default:
		return FloorZero, fmt.Errorf("unknown pre-start policy %q: want zero or one", s)
	}
}

func (p PreStartPolicy) String() string {
	if p == FloorOne {
		return "one"
	}
	return "zero"
}

// Schedule describes the dues every member owes: a fixed rate per calendar
// month, counted from a start period.
type Schedule struct {
	Start    models.Period
	Rate     int64
	PreStart PreStartPolicy
}

// ElapsedPeriods returns the number of billing months owed at now, counting
// the start month and the current month. Day of month is ignored.
func (s Schedule) ElapsedPeriods(now time.Time) int64 {
	elapsed := int64(models.PeriodOf(now).Index()-s.Start.Index()) + 1

	var floor int64
	if s.PreStart == FloorOne {
		floor = 1
	}
	if elapsed < floor {
		return floor
	}
	return elapsed
}

// Obligation returns the elapsed periods at now and the total each member
// should have paid by then.
func (s Schedule) Obligation(now time.Time) (periods int64, total int64) {
	periods = s.ElapsedPeriods(now)
	return periods, periods * s.Rate
}
