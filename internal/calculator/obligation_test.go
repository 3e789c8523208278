package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/kaskos/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestScheduleElapsedPeriods(t *testing.T) {
	start := models.Period{Year: 2025, Month: time.January}

	tests := []struct {
		name   string
		policy PreStartPolicy
		now    time.Time
		want   int64
	}{
		{name: "start month counts as one", now: date(2025, time.January, 1), want: 1},
		{name: "two months later", now: date(2025, time.March, 31), want: 3},
		{name: "across year boundary", now: date(2026, time.February, 15), want: 14},
		{name: "before start floors at zero", now: date(2024, time.November, 20), want: 0},
		{name: "month before start floors at zero", now: date(2024, time.December, 31), want: 0},
		{name: "before start floors at one", policy: FloorOne, now: date(2024, time.June, 1), want: 1},
		{name: "floor one after start", policy: FloorOne, now: date(2025, time.April, 1), want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Schedule{Start: start, Rate: 50000, PreStart: tt.policy}
			if got := s.ElapsedPeriods(tt.now); got != tt.want {
				t.Errorf("ElapsedPeriods(%s) = %d, want %d", tt.now.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestScheduleObligation(t *testing.T) {
	s := Schedule{Start: models.Period{Year: 2025, Month: time.January}, Rate: 50000}

	periods, total := s.Obligation(date(2025, time.March, 10))
	if periods != 3 {
		t.Errorf("periods = %d, want 3", periods)
	}
	if total != 150000 {
		t.Errorf("obligation = %d, want 150000", total)
	}
}

func TestElapsedPeriodsMonotonic(t *testing.T) {
	for _, policy := range []PreStartPolicy{FloorZero, FloorOne} {
		s := Schedule{Start: models.Period{Year: 2025, Month: time.June}, Rate: 1, PreStart: policy}

		prev := int64(-1)
		for day := date(2024, time.January, 1); day.Before(date(2027, time.January, 1)); day = day.AddDate(0, 0, 9) {
			got := s.ElapsedPeriods(day)
			if got < prev {
				t.Fatalf("policy %s: elapsed decreased at %s: %d < %d", policy, day.Format("2006-01-02"), got, prev)
			}
			if _, obligation := s.Obligation(day); obligation != got*s.Rate {
				t.Fatalf("obligation %d != rate x periods at %s", obligation, day.Format("2006-01-02"))
			}
			prev = got
		}
	}
}

func TestParsePreStartPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    PreStartPolicy
		wantErr bool
	}{
		{in: "", want: FloorZero},
		{in: "zero", want: FloorZero},
		{in: "ONE", want: FloorOne},
		{in: "1", want: FloorOne},
		{in: "two", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParsePreStartPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePreStartPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePreStartPolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
