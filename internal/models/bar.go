package models

import "time"

// ProgressBar is a named countdown interval with a shareable short id.
// Records are immutable after creation.
type ProgressBar struct {
	ID          string
	Name        string
	StartTime   time.Time
	EndTime     time.Time
	CreatedAt   time.Time
	CreatedByIP string
}

// TotalSeconds is the full span of the bar in whole seconds.
func (b *ProgressBar) TotalSeconds() int64 {
	return int64(b.EndTime.Sub(b.StartTime) / time.Second)
}

// RemainingSeconds is the whole seconds left at now, clamped at zero.
func (b *ProgressBar) RemainingSeconds(now time.Time) int64 {
	left := int64(b.EndTime.Sub(now) / time.Second)
	if left < 0 {
		return 0
	}
	return left
}
