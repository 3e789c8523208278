package storage

import (
	"context"
	"sort"
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

// LoadSnapshot pulls the whole ledger and normalizes every record.
// now is recorded as the snapshot time and used as the timestamp fallback.
// loc is the ledger time zone used to derive missing periods.
func LoadSnapshot(ctx context.Context, store Store, now time.Time, loc *time.Location) (*models.Snapshot, error) {
	names, err := store.MemberNames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	contributionRecords, err := store.ListContributions(ctx, "")
	if err != nil {
		return nil, err
	}

	expenditureRecords, err := store.ListExpenditures(ctx)
	if err != nil {
		return nil, err
	}

	snap := &models.Snapshot{
		Members:       names,
		Contributions: make([]*models.Contribution, 0, len(contributionRecords)),
		Expenditures:  make([]*models.Expenditure, 0, len(expenditureRecords)),
		TakenAt:       now,
	}

	for _, r := range contributionRecords {
		c, degraded := NormalizeContribution(r, now, loc)
		if degraded {
			snap.Degraded++
		}
		snap.Contributions = append(snap.Contributions, c)
	}
	for _, r := range expenditureRecords {
		e, degraded := NormalizeExpenditure(r, now)
		if degraded {
			snap.Degraded++
		}
		snap.Expenditures = append(snap.Expenditures, e)
	}

	return snap, nil
}

// Contributions returns normalized contributions, most recent first.
// An empty member or zero period matches everything.
func Contributions(ctx context.Context, store Store, member string, period models.Period, now time.Time, loc *time.Location) ([]*models.Contribution, error) {
	records, err := store.ListContributions(ctx, member)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Contribution, 0, len(records))
	for _, r := range records {
		c, _ := NormalizeContribution(r, now, loc)
		if !period.IsZero() && c.Period != period {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Expenditures returns normalized expenditures, most recent purchase first.
func Expenditures(ctx context.Context, store Store, now time.Time) ([]*models.Expenditure, error) {
	records, err := store.ListExpenditures(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Expenditure, 0, len(records))
	for _, r := range records {
		e, _ := NormalizeExpenditure(r, now)
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PurchasedOn.Equal(out[j].PurchasedOn) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].PurchasedOn.After(out[j].PurchasedOn)
	})
	return out, nil
}
