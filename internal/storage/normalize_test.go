package storage

import (
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeContribution(t *testing.T) {
	fallback := time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)
	paid := time.Date(2025, time.February, 14, 18, 30, 0, 0, time.UTC)

	t.Run("complete record is untouched", func(t *testing.T) {
		c, degraded := NormalizeContribution(&ContributionRecord{
			ID: "c1", Member: "Aqil", Amount: ptr(int64(50000)),
			CreatedAt: &paid, Note: ptr("februari"), Period: ptr("2025-02"),
		}, fallback, time.UTC)
		if degraded {
			t.Error("complete record reported as degraded")
		}
		if c.Amount != 50000 || c.Note != "februari" || !c.CreatedAt.Equal(paid) || c.Period.String() != "2025-02" {
			t.Errorf("unexpected contribution: %+v", c)
		}
	})

	t.Run("missing note and period", func(t *testing.T) {
		c, degraded := NormalizeContribution(&ContributionRecord{
			ID: "c2", Member: "Ucup", Amount: ptr(int64(1000)), CreatedAt: &paid,
		}, fallback, time.UTC)
		if !degraded {
			t.Error("expected degraded record")
		}
		if c.Note != "" {
			t.Errorf("note = %q, want empty", c.Note)
		}
		if c.Period.String() != "2025-02" {
			t.Errorf("period = %s, want derived 2025-02", c.Period)
		}
	})

	t.Run("missing timestamp and amount", func(t *testing.T) {
		c, degraded := NormalizeContribution(&ContributionRecord{ID: "c3", Member: "Diki"}, fallback, nil)
		if !degraded {
			t.Error("expected degraded record")
		}
		if c.Amount != 0 {
			t.Errorf("amount = %d, want 0", c.Amount)
		}
		if !c.CreatedAt.Equal(fallback) {
			t.Errorf("timestamp = %v, want fallback", c.CreatedAt)
		}
		if c.Period.String() != "2025-04" {
			t.Errorf("period = %s, want 2025-04", c.Period)
		}
	})

	t.Run("unparseable period is derived", func(t *testing.T) {
		c, degraded := NormalizeContribution(&ContributionRecord{
			Member: "Raka", Amount: ptr(int64(1)), CreatedAt: &paid, Note: ptr(""), Period: ptr("feb"),
		}, fallback, time.UTC)
		if !degraded || c.Period.String() != "2025-02" {
			t.Errorf("degraded=%v period=%s", degraded, c.Period)
		}
	})

	t.Run("period derived in ledger zone", func(t *testing.T) {
		wib := time.FixedZone("WIB", 7*60*60)
		lateJan := time.Date(2025, time.January, 31, 20, 0, 0, 0, time.UTC)
		c, _ := NormalizeContribution(&ContributionRecord{
			Member: "Wildan", Amount: ptr(int64(75000)), CreatedAt: &lateJan,
		}, fallback, wib)
		if c.Period.String() != "2025-02" {
			t.Errorf("period = %s, want 2025-02", c.Period)
		}
		if !c.CreatedAt.Equal(lateJan) {
			t.Errorf("timestamp = %v, want %v", c.CreatedAt, lateJan)
		}
	})
}

func TestNormalizeExpenditure(t *testing.T) {
	fallback := time.Date(2025, time.April, 2, 9, 0, 0, 0, time.UTC)
	created := time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)
	bought := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	e, degraded := NormalizeExpenditure(&ExpenditureRecord{
		ID: "e1", Item: "Galon", Amount: ptr(int64(20000)),
		PurchasedOn: &bought, RecordedBy: ptr("Wildan"), CreatedAt: &created,
	}, fallback)
	if degraded {
		t.Error("complete record reported as degraded")
	}
	if !e.PurchasedOn.Equal(bought) || e.RecordedBy != "Wildan" {
		t.Errorf("unexpected expenditure: %+v", e)
	}

	e, degraded = NormalizeExpenditure(&ExpenditureRecord{ID: "e2", Item: "Sapu", CreatedAt: &created}, fallback)
	if !degraded {
		t.Error("expected degraded record")
	}
	if !e.PurchasedOn.Equal(created) {
		t.Errorf("purchase date = %v, want record timestamp", e.PurchasedOn)
	}
	if e.Amount != 0 || e.RecordedBy != "" {
		t.Errorf("unexpected defaults: %+v", e)
	}

	e, _ = NormalizeExpenditure(&ExpenditureRecord{ID: "e3", Item: "Lap"}, fallback)
	if !e.CreatedAt.Equal(fallback) || !e.PurchasedOn.Equal(fallback) {
		t.Errorf("timestamps should fall back: %+v", e)
	}
}
