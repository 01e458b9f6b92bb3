package timemath

import "time"

// Breakdown is the remaining time until an end instant, split into
// calendar-aware components. Months and days honour variable month
// lengths, the rest are fixed-size units.
type Breakdown struct {
	Months       int
	Days         int
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int
}

func (b Breakdown) IsZero() bool {
	return b.Months == 0 && b.Days == 0 && b.Hours == 0 &&
		b.Minutes == 0 && b.Seconds == 0 && b.Milliseconds == 0
}

// ProgressPercent returns floor(100 * elapsed / total) for totalSeconds > 0.
// Callers clamp elapsed to [0, total] before calling. A non-positive total
// has no well-defined percentage, so it maps to the neutral placeholder 100.
func ProgressPercent(elapsedSeconds, totalSeconds int64) int {
	if totalSeconds <= 0 {
		return 100
	}
	return int(100 * elapsedSeconds / totalSeconds)
}

// RemainingBreakdown computes the calendar-aware difference between now and
// end. Once end <= now every component is zero; no component is ever negative.
func RemainingBreakdown(now, end time.Time) Breakdown {
	if !end.After(now) {
		return Breakdown{}
	}

	var b Breakdown
	cursor := now
	for {
		next := cursor.AddDate(0, 1, 0)
		if next.After(end) {
			break
		}
		cursor = next
		b.Months++
	}
	for {
		next := cursor.AddDate(0, 0, 1)
		if next.After(end) {
			break
		}
		cursor = next
		b.Days++
	}

	rest := end.Sub(cursor)
	b.Hours = int(rest / time.Hour)
	rest -= time.Duration(b.Hours) * time.Hour
	b.Minutes = int(rest / time.Minute)
	rest -= time.Duration(b.Minutes) * time.Minute
	b.Seconds = int(rest / time.Second)
	rest -= time.Duration(b.Seconds) * time.Second
	b.Milliseconds = int(rest / time.Millisecond)

	return b
}

// YearEnd returns the first instant of the year after now, in now's location.
func YearEnd(now time.Time) time.Time {
	return time.Date(now.Year()+1, time.January, 1, 0, 0, 0, 0, now.Location())
}

// YearTimeLeft returns whole seconds until the year boundary, never negative.
func YearTimeLeft(now time.Time) int64 {
	left := YearEnd(now).Sub(now)
	if left < 0 {
		return 0
	}
	return int64(left / time.Second)
}

// YearProgressPercent returns how much of now's year has elapsed, 0-100.
func YearProgressPercent(now time.Time) int {
	start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	total := int64(YearEnd(now).Sub(start) / time.Second)
	elapsed := int64(now.Sub(start) / time.Second)
	return ProgressPercent(elapsed, total)
}
