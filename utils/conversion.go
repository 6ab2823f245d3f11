package utils

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a "2006-01-02" calendar date into a UTC-midnight instant.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return t.UTC(), nil
}

// NormalizeDate truncates an instant to UTC midnight of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfToday returns UTC midnight of the current day.
func StartOfToday() time.Time {
	return NormalizeDate(time.Now())
}

// ResolveWallClock combines a calendar date and a "15:04" wall-clock time,
// interprets them in the given IANA time zone (UTC when empty), and returns
// the resulting absolute instant in UTC. Everything persisted downstream is
// UTC; the zone is applied exactly once, here.
func ResolveWallClock(date, clock, timeZone string) (time.Time, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	hm, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", clock, err)
	}

	loc := time.UTC
	if timeZone != "" {
		loc, err = time.LoadLocation(timeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time zone %q: %w", timeZone, err)
		}
	}

	local := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc)
	return local.UTC(), nil
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
