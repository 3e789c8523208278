package calculator

import "github.com/mmynk/kaskos/internal/models"

// PeriodStatus classifies a member's payments within a single period.
type PeriodStatus string

const (
	// PeriodPaid means the member paid at least the rate this period.
	PeriodPaid PeriodStatus = "LUNAS"
	// PeriodShort means the member paid less than the rate this period.
	PeriodShort PeriodStatus = "KURANG"
)

// PeriodBalance is one member's standing for a single period.
type PeriodBalance struct {
	MemberName  string
	Rate        int64
	Contributed int64
	Shortfall   int64 // max(0, Rate - Contributed)
	Status      PeriodStatus
}

// ClassifyPeriod compares what a member paid in one period against the rate.
func ClassifyPeriod(member string, rate, contributed int64) PeriodBalance {
	b := PeriodBalance{
		MemberName:  member,
		Rate:        rate,
		Contributed: contributed,
		Status:      PeriodPaid,
	}
	if contributed < rate {
		b.Shortfall = rate - contributed
		b.Status = PeriodShort
	}
	return b
}

// PeriodStatuses classifies every roster member for the given period.
// Output follows roster order.
func PeriodStatuses(roster []string, contributions []*models.Contribution, period models.Period, rate int64) []PeriodBalance {
	totals := contributedBy(contributions, Filter{Period: period})

	out := make([]PeriodBalance, 0, len(roster))
	for _, name := range roster {
		out = append(out, ClassifyPeriod(name, rate, totals[name]))
	}
	return out
}
