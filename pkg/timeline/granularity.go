// Package timeline derives the visible date window, pixel coordinates and bar
// geometry of a Gantt chart. Everything here is a pure function of its
// arguments except Pipeline, which memoizes the same derivations.
package timeline

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// Granularity is the time scale of the chart columns.
type Granularity string

const (
	// Day shows one column per calendar day.
	Day Granularity = "day"
	// Week shows one column per Sunday-started week.
	Week Granularity = "week"
	// Month shows one column per calendar month.
	Month Granularity = "month"
	// Year shows one column per calendar year.
	Year Granularity = "year"
)

// All returns the supported granularities from finest to coarsest.
func All() []Granularity {
	return []Granularity{Day, Week, Month, Year}
}

// ParseGranularity converts a name to a Granularity.
func ParseGranularity(raw string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(raw)))
	if g == "" {
		return Day, nil
	}
	if g.Valid() {
		return g, nil
	}
	return Day, fmt.Errorf("timeline: unknown granularity %q", raw)
}

// Valid reports whether g is one of the four known granularities.
func (g Granularity) Valid() bool {
	switch g {
	case Day, Week, Month, Year:
		return true
	}
	return false
}

func (g Granularity) String() string {
	return string(g)
}

// ColumnWidth is the pixel width of one period. Unknown values are treated
// as Day.
func (g Granularity) ColumnWidth() float64 {
	switch g {
	case Week:
		return 100
	case Month:
		return 120
	case Year:
		return 150
	default:
		return 40
	}
}

// Unit maps g onto the calendar unit used for stepping.
func (g Granularity) Unit() timeutil.Unit {
	switch g {
	case Week:
		return timeutil.UnitWeek
	case Month:
		return timeutil.UnitMonth
	case Year:
		return timeutil.UnitYear
	default:
		return timeutil.UnitDay
	}
}

// Step advances t by one period.
func (g Granularity) Step(t time.Time) time.Time {
	return timeutil.Step(t, g.Unit())
}

// StartOf normalizes t to the start of its period.
func (g Granularity) StartOf(t time.Time) time.Time {
	return timeutil.StartOf(t, g.Unit())
}

// pad expands the raw task bounds so the chart shows context on both sides.
func (g Granularity) pad(lo, hi time.Time) (time.Time, time.Time) {
	switch g {
	case Week:
		return g.StartOf(lo).AddDate(0, 0, -7), g.StartOf(hi).AddDate(0, 0, 28)
	case Month:
		return g.StartOf(lo).AddDate(0, -1, 0), g.StartOf(hi).AddDate(0, 6, 0)
	case Year:
		return g.StartOf(lo).AddDate(-1, 0, 0), g.StartOf(hi).AddDate(2, 0, 0)
	default:
		return lo.AddDate(0, 0, -2), hi.AddDate(0, 0, 5)
	}
}

// Labels returns the header label and sub-label for the period starting at t.
func (g Granularity) Labels(t time.Time) (string, string) {
	switch g {
	case Week:
		return fmt.Sprintf("W%d", timeutil.WeekNumber(t)), fmt.Sprintf("%d/%d", int(t.Month()), t.Day())
	case Month:
		return t.Format("Jan"), t.Format("2006")
	case Year:
		return t.Format("2006"), ""
	default:
		return fmt.Sprintf("%d/%d", int(t.Month()), t.Day()), t.Format("Mon")
	}
}
