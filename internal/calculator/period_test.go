package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

func TestPeriodStatuses(t *testing.T) {
	feb := models.Period{Year: 2025, Month: time.February}
	contributions := []*models.Contribution{
		contribution("Aqil", 30000, date(2025, time.February, 4)),
		contribution("Ucup", 60000, date(2025, time.February, 9)),
		contribution("Aqil", 90000, date(2025, time.March, 1)), // other period
	}

	got := PeriodStatuses([]string{"Aqil", "Ucup", "Wildan"}, contributions, feb, 50000)

	want := []PeriodBalance{
		{MemberName: "Aqil", Rate: 50000, Contributed: 30000, Shortfall: 20000, Status: PeriodShort},
		{MemberName: "Ucup", Rate: 50000, Contributed: 60000, Shortfall: 0, Status: PeriodPaid},
		{MemberName: "Wildan", Rate: 50000, Contributed: 0, Shortfall: 50000, Status: PeriodShort},
	}

	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestClassifyPeriodExact(t *testing.T) {
	b := ClassifyPeriod("Diki", 50000, 50000)
	if b.Status != PeriodPaid || b.Shortfall != 0 {
		t.Errorf("exact payment: got %+v", b)
	}
}
