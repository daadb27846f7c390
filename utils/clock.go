package utils

import "time"

// Clock supplies the current time so the analytics trackers and the
// spaced-repetition scheduler can be tested against a fixed instant.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using time.Now()
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock implements Clock using a fixed time
type FixedClock struct {
	Fixed time.Time
}

func (fc FixedClock) Now() time.Time {
	return fc.Fixed
}

// Midnight truncates a timestamp to UTC midnight. Daily activity rows are
// keyed by this value.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of the week containing t, at UTC midnight.
func WeekStart(t time.Time) time.Time {
	day := Midnight(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
