// Package timeutil holds the calendar arithmetic used by the timeline.
package timeutil

import (
	"math"
	"time"
)

// Unit is the length of one timeline period.
type Unit int

const (
	// UnitDay is one calendar day.
	UnitDay Unit = iota
	// UnitWeek is seven days starting on Sunday.
	UnitWeek
	// UnitMonth is one calendar month.
	UnitMonth
	// UnitYear is one calendar year.
	UnitYear
)

const layoutISO = "2006-01-02"

// Day truncates t to midnight UTC of the calendar day t falls on in its own
// location.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(layoutISO, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutISO)
}

// WeekNumber returns the ISO-8601 week number of t. Dates early in January
// can belong to week 52 or 53 of the previous year.
func WeekNumber(t time.Time) int {
	d := Day(t)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7
	}
	thursday := d.AddDate(0, 0, 4-wd)
	yearStart := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	days := thursday.Sub(yearStart).Hours() / 24
	return int(math.Ceil((days + 1) / 7))
}

// Step advances t by exactly one period of u.
func Step(t time.Time, u Unit) time.Time {
	switch u {
	case UnitWeek:
		return t.AddDate(0, 0, 7)
	case UnitMonth:
		return t.AddDate(0, 1, 0)
	case UnitYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// StartOf normalizes t to the first day of its period: the most recent
// Sunday, the 1st of the month or January 1st. Days are returned unchanged.
func StartOf(t time.Time, u Unit) time.Time {
	switch u {
	case UnitWeek:
		return t.AddDate(0, 0, -int(t.Weekday()))
	case UnitMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	case UnitYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
