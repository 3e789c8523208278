package calculator

import "github.com/mmynk/kaskos/internal/models"

// Status classifies a member's lifetime balance.
type Status string

const (
	// StatusDelinquent means the member still owes money.
	StatusDelinquent Status = "DELINQUENT"
	// StatusSettled means the member has paid exactly what is owed.
	StatusSettled Status = "SETTLED"
	// StatusSurplus means the member has prepaid.
	StatusSurplus Status = "SURPLUS"
)

// MemberBalance represents the lifetime balance for one member.
type MemberBalance struct {
	MemberName  string
	Obligation  int64 // Total owed so far (elapsed periods x rate)
	Contributed int64 // Total paid so far
	Balance     int64 // Contributed - Obligation; negative = owes money
	Shortfall   int64 // Amount still owed, zero unless delinquent
	Status      Status
}

// Classify computes the balance of one member from their obligation and the
// total they contributed.
func Classify(member string, obligation, contributed int64) MemberBalance {
	b := MemberBalance{
		MemberName:  member,
		Obligation:  obligation,
		Contributed: contributed,
		Balance:     contributed - obligation,
	}

	switch {
	case b.Balance < 0:
		b.Status = StatusDelinquent
		b.Shortfall = -b.Balance
	case b.Balance == 0:
		b.Status = StatusSettled
	default:
		b.Status = StatusSurplus
	}
	return b
}

// CalculateMemberBalances classifies every roster member against the same
// obligation, using their lifetime contributions. Output follows roster order.
func CalculateMemberBalances(roster []string, contributions []*models.Contribution, obligation int64) []MemberBalance {
	totals := contributedBy(contributions, Filter{})

	balances := make([]MemberBalance, 0, len(roster))
	for _, name := range roster {
		balances = append(balances, Classify(name, obligation, totals[name]))
	}
	return balances
}
