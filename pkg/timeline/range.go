package timeline

import (
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// Span is the inclusive [Start, End] date range of one task.
type Span struct {
	Start time.Time
	End   time.Time
}

// VisibleRange is the window of periods shown on the timeline.
type VisibleRange struct {
	Start   time.Time
	End     time.Time
	Periods []time.Time
}

// Empty reports whether the range has no periods.
func (r VisibleRange) Empty() bool {
	return len(r.Periods) == 0
}

// Len is the number of periods (columns).
func (r VisibleRange) Len() int {
	return len(r.Periods)
}

// Bounds returns the start of period i and the start of the following period.
func (r VisibleRange) Bounds(i int, g Granularity) (time.Time, time.Time) {
	start := r.Periods[i]
	if i+1 < len(r.Periods) {
		return start, r.Periods[i+1]
	}
	return start, g.Step(start)
}

// Upper is the exclusive end of the last period, or the zero time when the
// range is empty.
func (r VisibleRange) Upper(g Granularity) time.Time {
	if r.Empty() {
		return time.Time{}
	}
	return g.Step(r.Periods[len(r.Periods)-1])
}

// DeriveRange computes the visible range for spans, anchoring an empty range
// at today.
func DeriveRange(spans []Span, g Granularity) VisibleRange {
	return DeriveRangeAt(spans, g, time.Now())
}

// DeriveRangeAt is DeriveRange with an explicit clock.
func DeriveRangeAt(spans []Span, g Granularity, now time.Time) VisibleRange {
	if len(spans) == 0 {
		today := timeutil.Day(now)
		return VisibleRange{Start: today, End: today}
	}

	lo := timeutil.Day(spans[0].Start)
	hi := timeutil.Day(spans[0].End)
	for _, s := range spans[1:] {
		if start := timeutil.Day(s.Start); start.Before(lo) {
			lo = start
		}
		if end := timeutil.Day(s.End); end.After(hi) {
			hi = end
		}
	}

	start, end := g.pad(lo, hi)
	periods := make([]time.Time, 0, estimatePeriods(start, end, g))
	for t := start; !t.After(end); t = g.Step(t) {
		periods = append(periods, t)
	}
	return VisibleRange{Start: start, End: end, Periods: periods}
}

func estimatePeriods(start, end time.Time, g Granularity) int {
	days := int(end.Sub(start).Hours()/24) + 1
	switch g {
	case Week:
		return days/7 + 1
	case Month:
		return days/28 + 1
	case Year:
		return days/365 + 1
	default:
		return days
	}
}
