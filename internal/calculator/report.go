package calculator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

// Mode selects which obligation model a report uses.
type Mode string

const (
	// ModeLifetime compares lifetime contributions against the cumulative
	// obligation since the schedule start.
	ModeLifetime Mode = "lifetime"
	// ModePeriod compares contributions within one period against the rate.
	ModePeriod Mode = "period"
)

// ParseMode accepts "lifetime" or "period".
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLifetime:
		return ModeLifetime, nil
	case ModePeriod:
		return ModePeriod, nil
	default:
		return "", fmt.Errorf("unknown report mode %q: want lifetime or period", s)
	}
}

// Options control a report build.
type Options struct {
	Mode     Mode
	Schedule Schedule

	// Period is the target period in ModePeriod. Zero means the period of Now.
	Period models.Period

	// Now is the evaluation time. Building an old snapshot with the same Now
	// reproduces the same report.
	Now time.Time

	// Location is used for day boundaries in the time series. Nil means UTC.
	Location *time.Location
}

// Report is the full computed view of a snapshot.
type Report struct {
	Mode           Mode
	Period         models.Period
	ElapsedPeriods int64 // ModeLifetime only
	Obligation     int64 // Per-member obligation; the rate in ModePeriod

	PerMember     []MemberBalance // ModeLifetime only
	PeriodMembers []PeriodBalance // ModePeriod only

	Aggregate  Aggregate
	TimeSeries []SeriesPoint

	// Unrostered lists names that have contributions but are not members.
	Unrostered []string
}

// Build computes a report over snap. An empty snapshot yields an empty
// report with zero aggregates.
func Build(snap *models.Snapshot, opts Options) (*Report, error) {
	if snap == nil {
		snap = &models.Snapshot{}
	}
	if opts.Now.IsZero() {
		opts.Now = snap.TakenAt
	}

	report := &Report{
		Mode:       opts.Mode,
		Aggregate:  CashPosition(snap.Contributions, snap.Expenditures),
		TimeSeries: RunningSeries(snap.Contributions, snap.Expenditures, opts.Location),
		Unrostered: unrostered(snap.Members, snap.Contributions),
	}

	switch opts.Mode {
	case ModeLifetime:
		periods, obligation := opts.Schedule.Obligation(opts.Now)
		report.Period = models.PeriodOf(opts.Now)
		report.ElapsedPeriods = periods
		report.Obligation = obligation
		report.PerMember = CalculateMemberBalances(snap.Members, snap.Contributions, obligation)
	case ModePeriod:
		period := opts.Period
		if period.IsZero() {
			period = models.PeriodOf(opts.Now)
		}
		report.Period = period
		report.Obligation = opts.Schedule.Rate
		report.PeriodMembers = PeriodStatuses(snap.Members, snap.Contributions, period, opts.Schedule.Rate)
	default:
		return nil, fmt.Errorf("unknown report mode %q", opts.Mode)
	}

	return report, nil
}

func unrostered(roster []string, contributions []*models.Contribution) []string {
	known := make(map[string]bool, len(roster))
	for _, name := range roster {
		known[name] = true
	}

	seen := make(map[string]bool)
	var out []string
	for _, c := range contributions {
		if c == nil || known[c.Member] || seen[c.Member] {
			continue
		}
		seen[c.Member] = true
		out = append(out, c.Member)
	}
	sort.Strings(out)
	return out
}
