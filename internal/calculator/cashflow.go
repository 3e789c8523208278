package calculator

import (
	"sort"
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

// Aggregate is the treasury position across all members and all time.
type Aggregate struct {
	TotalIn      int64
	TotalOut     int64
	CashPosition int64 // TotalIn - TotalOut
}

// SeriesPoint is one day of the cumulative cash series.
type SeriesPoint struct {
	Date       time.Time // Midnight of the day in the series location
	Delta      int64     // Net movement on this day
	Cumulative int64     // Running cash position at the end of the day
}

// CashPosition sums all inflows and outflows.
func CashPosition(contributions []*models.Contribution, expenditures []*models.Expenditure) Aggregate {
	in := SumContributions(contributions, Filter{})
	out := SumExpenditures(expenditures)
	return Aggregate{
		TotalIn:      in,
		TotalOut:     out,
		CashPosition: in - out,
	}
}

// RunningSeries merges contributions (positive) and expenditures (negative)
// into one daily series sorted ascending, with a running sum. Days are
// computed in loc; a nil loc means UTC.
//
// The last point's Cumulative always equals CashPosition.
func RunningSeries(contributions []*models.Contribution, expenditures []*models.Expenditure, loc *time.Location) []SeriesPoint {
	if loc == nil {
		loc = time.UTC
	}

	deltas := make(map[time.Time]int64)
	for _, c := range contributions {
		if c != nil {
			deltas[dayOf(c.CreatedAt, loc)] += c.Amount
		}
	}
	for _, e := range expenditures {
		if e != nil {
			deltas[dayOf(e.PurchasedOn, loc)] -= e.Amount
		}
	}

	days := make([]time.Time, 0, len(deltas))
	for d := range deltas {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	series := make([]SeriesPoint, 0, len(days))
	var running int64
	for _, d := range days {
		running += deltas[d]
		series = append(series, SeriesPoint{Date: d, Delta: deltas[d], Cumulative: running})
	}
	return series
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
