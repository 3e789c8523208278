package models

import (
	"errors"
	"testing"
	"time"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{in: "2025-02", want: Period{Year: 2025, Month: time.February}},
		{in: "1999-12", want: Period{Year: 1999, Month: time.December}},
		{in: "2025-13", wantErr: true},
		{in: "2025/02", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePeriod(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePeriod(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPeriodString(t *testing.T) {
	p := PeriodOf(time.Date(2025, time.March, 31, 23, 0, 0, 0, time.UTC))
	if p.String() != "2025-03" {
		t.Errorf("String() = %q, want 2025-03", p.String())
	}
	if (Period{}).String() != "" {
		t.Error("zero period should render empty")
	}
	if !(Period{Year: 2024, Month: time.December}).Before(p) {
		t.Error("2024-12 should be before 2025-03")
	}
}

func TestContributionValidate(t *testing.T) {
	now := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)

	ok := NewContribution("Aqil", 50000, "  februari ", now)
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid contribution rejected: %v", err)
	}
	if ok.Note != "februari" {
		t.Errorf("note not trimmed: %q", ok.Note)
	}
	if ok.Period.String() != "2025-02" {
		t.Errorf("period = %s, want 2025-02", ok.Period)
	}

	for _, c := range []*Contribution{
		NewContribution("Aqil", 0, "", now),
		NewContribution("Aqil", -10, "", now),
		NewContribution(" ", 1000, "", now),
	} {
		if err := c.Validate(); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("Validate(%+v) = %v, want ErrInvalidRecord", c, err)
		}
	}
}

func TestExpenditureValidate(t *testing.T) {
	base := Expenditure{
		Item:        "Galon",
		Amount:      20000,
		PurchasedOn: time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC),
		RecordedBy:  "Ucup",
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("valid expenditure rejected: %v", err)
	}

	noItem := base
	noItem.Item = ""
	zero := base
	zero.Amount = 0
	noDate := base
	noDate.PurchasedOn = time.Time{}

	for name, e := range map[string]Expenditure{"no item": noItem, "zero amount": zero, "no date": noDate} {
		if err := e.Validate(); !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("%s: Validate() = %v, want ErrInvalidRecord", name, err)
		}
	}
}

func TestParseRole(t *testing.T) {
	if ParseRole(" Admin ") != RoleAdmin {
		t.Error("expected admin")
	}
	if ParseRole("") != RoleMember || ParseRole("owner") != RoleMember {
		t.Error("unknown roles should fall back to member")
	}
}
