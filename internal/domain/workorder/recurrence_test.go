package workorder

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandOnce(t *testing.T) {
	sched := day(2024, time.May, 10)
	tpl := Template{
		Name:          "AC maintenance",
		Price:         decimal.NewNullDecimal(decimal.NewFromInt(300)),
		ScheduledDate: &sched,
		RecurringType: RecurringOnce,
	}

	end := day(2024, time.December, 1)
	occ := Expand(tpl, day(2024, time.May, 1), &end)

	if len(occ) != 1 {
		t.Fatalf("got %d occurrences, want 1", len(occ))
	}
	if occ[0].Name != "AC maintenance" {
		t.Fatalf("once occurrence must not be tagged: %q", occ[0].Name)
	}
	if occ[0].ScheduledDate == nil || !occ[0].ScheduledDate.Equal(sched) {
		t.Fatalf("scheduled date not inherited")
	}
}

func TestExpandMonthlyOverThreeMonths(t *testing.T) {
	tpl := Template{
		Name:          "Fire pump inspection",
		Price:         decimal.NewNullDecimal(decimal.NewFromInt(500)),
		RecurringType: RecurringMonthly,
	}

	start := day(2024, time.January, 15)
	end := day(2024, time.March, 15)
	occ := Expand(tpl, start, &end)

	if len(occ) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(occ))
	}

	for i, o := range occ {
		wantName := fmt.Sprintf("Fire pump inspection (Month%d)", i+1)
		if o.Name != wantName {
			t.Fatalf("occurrence %d name = %q, want %q", i, o.Name, wantName)
		}
		if !o.Price.Valid || !o.Price.Decimal.Equal(decimal.NewFromInt(500)) {
			t.Fatalf("occurrence %d price not inherited", i)
		}
		wantDate := start.AddDate(0, i, 0)
		if o.ScheduledDate == nil || !o.ScheduledDate.Equal(wantDate) {
			t.Fatalf("occurrence %d date = %v, want %v", i, o.ScheduledDate, wantDate)
		}
	}
}

func TestExpandQuarterly(t *testing.T) {
	tpl := Template{Name: "Deep clean", RecurringType: RecurringQuarterly}

	start := day(2024, time.January, 1)
	end := day(2024, time.December, 31)
	occ := Expand(tpl, start, &end)

	if len(occ) != 4 {
		t.Fatalf("got %d occurrences, want 4", len(occ))
	}
	for i, o := range occ {
		wantName := fmt.Sprintf("Deep clean (Q%d)", i+1)
		if o.Name != wantName {
			t.Fatalf("occurrence %d name = %q, want %q", i, o.Name, wantName)
		}
	}
	if !occ[3].ScheduledDate.Equal(day(2024, time.October, 1)) {
		t.Fatalf("Q4 date = %v", occ[3].ScheduledDate)
	}
}

func TestExpandRecurringWithoutEndDate(t *testing.T) {
	// Policy: no project end date means one occurrence, not an unbounded
	// series.
	for _, rt := range []RecurringType{RecurringMonthly, RecurringQuarterly} {
		tpl := Template{Name: "Inspection", RecurringType: rt}
		occ := Expand(tpl, day(2024, time.January, 1), nil)
		if len(occ) != 1 {
			t.Fatalf("%s without end date: got %d occurrences, want 1", rt, len(occ))
		}
		if occ[0].Name != "Inspection" {
			t.Fatalf("%s without end date must not be tagged: %q", rt, occ[0].Name)
		}
	}
}

func TestExpandUnpricedTemplateStaysUnpriced(t *testing.T) {
	tpl := Template{Name: "Ad-hoc repair", RecurringType: RecurringOnce}

	occ := Expand(tpl, day(2024, time.January, 1), nil)
	if occ[0].Price.Valid {
		t.Fatalf("unpriced template produced a priced occurrence")
	}
}

func TestBaseNameRoundTrip(t *testing.T) {
	names := []string{
		"Fire pump inspection",
		"Deep clean (weekly)",
		"AC filter swap",
	}

	end := day(2024, time.June, 30)
	for _, name := range names {
		for _, rt := range []RecurringType{RecurringMonthly, RecurringQuarterly} {
			tpl := Template{Name: name, RecurringType: rt}
			for _, o := range Expand(tpl, day(2024, time.January, 1), &end) {
				if got := BaseName(o.Name); got != name {
					t.Fatalf("BaseName(%q) = %q, want %q", o.Name, got, name)
				}
			}
		}
	}
}

func TestBaseNameForms(t *testing.T) {
	cases := map[string]string{
		"Inspection (Month12)": "Inspection",
		"Inspection (Q2)":      "Inspection",
		"Q3: Inspection":       "Inspection",
		"Month2: Inspection":   "Inspection",
		"Inspection":           "Inspection",
		"Inspection (draft)":   "Inspection (draft)",
	}

	for in, want := range cases {
		if got := BaseName(in); got != want {
			t.Fatalf("BaseName(%q) = %q, want %q", in, got, want)
		}
	}
}
