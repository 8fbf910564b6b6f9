package expiry

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassify(t *testing.T) {
	now := time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry *time.Time
		want   Band
	}{
		{name: "nil expiry", expiry: nil, want: BandNone},
		{name: "yesterday", expiry: ptr(date(2024, time.March, 14)), want: BandExpired},
		{name: "today", expiry: ptr(date(2024, time.March, 15)), want: BandExpiringSoon},
		{name: "in 30 days", expiry: ptr(date(2024, time.April, 14)), want: BandExpiringSoon},
		{name: "in 31 days", expiry: ptr(date(2024, time.April, 15)), want: BandActive},
		{name: "next year", expiry: ptr(date(2025, time.March, 15)), want: BandActive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.expiry, now); got != tc.want {
				t.Fatalf("Classify() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassifyIsStableWithinDay(t *testing.T) {
	expiry := ptr(date(2024, time.April, 14))

	morning := time.Date(2024, time.March, 15, 0, 1, 0, 0, time.UTC)
	night := time.Date(2024, time.March, 15, 23, 59, 0, 0, time.UTC)

	if Classify(expiry, morning) != Classify(expiry, night) {
		t.Fatalf("band changed within the same calendar day")
	}
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2024, time.March, 15, 18, 0, 0, 0, time.UTC)

	if d := DaysUntil(ptr(date(2024, time.March, 16)), now); d != 1 {
		t.Fatalf("tomorrow = %d days, want 1", d)
	}
	if d := DaysUntil(ptr(date(2024, time.March, 14)), now); d != -1 {
		t.Fatalf("yesterday = %d days, want -1", d)
	}
	if d := DaysUntil(ptr(date(2024, time.March, 15)), now); d != 0 {
		t.Fatalf("today = %d days, want 0", d)
	}
}

func TestSortByUrgency(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

	var alerts []Alert
	for _, d := range []time.Time{
		date(2024, time.April, 1),
		date(2024, time.March, 10),
		date(2024, time.March, 20),
	} {
		exp := d
		a, ok := BuildAlert("equipment", 1, 1, "HQ", "extinguisher", &exp, now)
		if !ok {
			t.Fatalf("expected alert for %v", d)
		}
		alerts = append(alerts, a)
	}

	SortByUrgency(alerts)

	if alerts[0].Band != BandExpired {
		t.Fatalf("expired item should sort first, got %s", alerts[0].Band)
	}
	for i := 1; i < len(alerts); i++ {
		if alerts[i-1].DaysLeft > alerts[i].DaysLeft {
			t.Fatalf("alerts not sorted by days left: %v", alerts)
		}
	}
}

func TestBuildAlertSkipsHealthy(t *testing.T) {
	now := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	exp := date(2025, time.January, 1)

	if _, ok := BuildAlert("certificate", 1, 1, "HQ", "fire safety", &exp, now); ok {
		t.Fatalf("active artifact should not produce an alert")
	}
	if _, ok := BuildAlert("certificate", 1, 1, "HQ", "fire safety", nil, now); ok {
		t.Fatalf("undated artifact should not produce an alert")
	}
}

func ptr(t time.Time) *time.Time { return &t }
