package calculator

import "github.com/mmynk/kaskos/internal/models"

// Filter selects contributions by member and/or period.
// Zero-valued fields match everything.
type Filter struct {
	Member string
	Period models.Period
}

// Matches reports whether c passes the filter.
func (f Filter) Matches(c *models.Contribution) bool {
	if c == nil {
		return false
	}
	if f.Member != "" && c.Member != f.Member {
		return false
	}
	if !f.Period.IsZero() && c.Period != f.Period {
		return false
	}
	return true
}

// SumContributions adds up the amounts of the contributions matching f.
// An empty match set sums to zero.
func SumContributions(contributions []*models.Contribution, f Filter) int64 {
	var total int64
	for _, c := range contributions {
		if f.Matches(c) {
			total += c.Amount
		}
	}
	return total
}

// SumExpenditures adds up all expenditure amounts.
func SumExpenditures(expenditures []*models.Expenditure) int64 {
	var total int64
	for _, e := range expenditures {
		if e != nil {
			total += e.Amount
		}
	}
	return total
}

// contributedBy totals contributions per member in one pass.
func contributedBy(contributions []*models.Contribution, f Filter) map[string]int64 {
	totals := make(map[string]int64)
	for _, c := range contributions {
		if f.Matches(c) {
			totals[c.Member] += c.Amount
		}
	}
	return totals
}
