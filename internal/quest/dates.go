package quest

import (
	"strings"
	"time"
)

// DayLayout is the calendar date format stored on tasks and stats.
const DayLayout = "2006-01-02"

// Day formats t as a calendar date in t's location.
func Day(t time.Time) string {
	return t.Format(DayLayout)
}

// Midnight truncates t to the start of its calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ParseDay reads a stored date and returns local midnight of that day.
// It accepts plain dates and the full timestamps older saves carry.
func ParseDay(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(DayLayout, s, loc); err == nil {
		return t, true
	}
	// RFC3339 parsing also accepts the fractional seconds of JS toISOString.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Midnight(t, loc), true
	}
	return time.Time{}, false
}

// DaysBetween counts calendar days from a to b, ignoring clock time and DST.
func DaysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
