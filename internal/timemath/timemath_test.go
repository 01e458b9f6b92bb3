package timemath

import (
	"testing"
	"time"

	"pgregory.net/rapid"
)

func TestProgressPercentEndpoints(t *testing.T) {
	tests := []struct {
		name    string
		elapsed int64
		total   int64
		want    int
	}{
		{"start of interval", 0, 3600, 0},
		{"end of interval", 3600, 3600, 100},
		{"half of interval", 1800, 3600, 50},
		{"one second total", 1, 1, 100},
		{"floor not round", 1, 3, 33},
		{"zero total placeholder", 10, 0, 100},
		{"negative total placeholder", 10, -5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressPercent(tt.elapsed, tt.total); got != tt.want {
				t.Errorf("ProgressPercent(%d, %d) = %d, want %d", tt.elapsed, tt.total, got, tt.want)
			}
		})
	}
}

func TestProperty_ProgressPercentBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Int64Range(1, 1<<40).Draw(t, "total")
		elapsed := rapid.Int64Range(0, total).Draw(t, "elapsed")

		got := ProgressPercent(elapsed, total)
		if got < 0 || got > 100 {
			t.Fatalf("ProgressPercent(%d, %d) = %d, out of [0,100]", elapsed, total, got)
		}
		if elapsed == 0 && got != 0 {
			t.Fatalf("ProgressPercent(0, %d) = %d, want 0", total, got)
		}
		if elapsed == total && got != 100 {
			t.Fatalf("ProgressPercent(%d, %d) = %d, want 100", total, total, got)
		}
	})
}

func TestProperty_ProgressPercentMonotonic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		total := rapid.Int64Range(1, 1<<40).Draw(t, "total")
		a := rapid.Int64Range(0, total).Draw(t, "a")
		b := rapid.Int64Range(a, total).Draw(t, "b")

		if ProgressPercent(a, total) > ProgressPercent(b, total) {
			t.Fatalf("percent decreased: elapsed %d -> %d, total %d", a, b, total)
		}
	})
}

func TestRemainingBreakdownPastEnd(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	for _, end := range []time.Time{now, now.Add(-time.Second), now.Add(-24 * time.Hour)} {
		b := RemainingBreakdown(now, end)
		if !b.IsZero() {
			t.Errorf("RemainingBreakdown(now, %v) = %+v, want all zero", end, b)
		}
	}
}

func TestRemainingBreakdownFixedSpans(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want Breakdown
	}{
		{"ninety seconds", now.Add(90 * time.Second), Breakdown{Minutes: 1, Seconds: 30}},
		{"one hour", now.Add(time.Hour), Breakdown{Hours: 1}},
		{"two days three hours", now.Add(51 * time.Hour), Breakdown{Days: 2, Hours: 3}},
		{"with milliseconds", now.Add(1500 * time.Millisecond), Breakdown{Seconds: 1, Milliseconds: 500}},
		{"exactly one month", now.AddDate(0, 1, 0), Breakdown{Months: 1}},
		{"month and a day", now.AddDate(0, 1, 1), Breakdown{Months: 1, Days: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingBreakdown(now, tt.end); got != tt.want {
				t.Errorf("RemainingBreakdown = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProperty_RemainingBreakdownComponentRanges(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		now := base.Add(time.Duration(rapid.Int64Range(0, 1<<35).Draw(t, "nowOffsetMs")) * time.Millisecond)
		end := now.Add(time.Duration(rapid.Int64Range(-1<<33, 1<<35).Draw(t, "deltaMs")) * time.Millisecond)

		b := RemainingBreakdown(now, end)

		if b.Months < 0 || b.Days < 0 || b.Hours < 0 || b.Minutes < 0 || b.Seconds < 0 || b.Milliseconds < 0 {
			t.Fatalf("negative component: %+v", b)
		}
		if b.Days > 31 || b.Hours > 23 || b.Minutes > 59 || b.Seconds > 59 || b.Milliseconds > 999 {
			t.Fatalf("component out of range: %+v", b)
		}
		if !end.After(now) && !b.IsZero() {
			t.Fatalf("end <= now but breakdown not zero: %+v", b)
		}
	})
}

func TestYearProgress(t *testing.T) {
	now := time.Date(2026, 7, 2, 12, 0, 0, 0, time.UTC)

	percent := YearProgressPercent(now)
	if percent < 49 || percent > 51 {
		t.Errorf("YearProgressPercent(mid-year) = %d, want about 50", percent)
	}

	left := YearTimeLeft(now)
	wantLeft := int64(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC).Sub(now) / time.Second)
	if left != wantLeft {
		t.Errorf("YearTimeLeft = %d, want %d", left, wantLeft)
	}

	newYear := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := YearProgressPercent(newYear); got != 0 {
		t.Errorf("YearProgressPercent(new year) = %d, want 0", got)
	}
}
