package timeline

import (
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// Column is one header cell of the timeline.
type Column struct {
	Start    time.Time `json:"start" yaml:"start"`
	Left     float64   `json:"leftPx" yaml:"leftPx"`
	Width    float64   `json:"widthPx" yaml:"widthPx"`
	Label    string    `json:"label" yaml:"label"`
	SubLabel string    `json:"subLabel,omitempty" yaml:"subLabel,omitempty"`
	Weekend  bool      `json:"weekend,omitempty" yaml:"weekend,omitempty"`
	Today    bool      `json:"today,omitempty" yaml:"today,omitempty"`
}

// Columns builds the header cells for r. Weekend is only set in day view.
func Columns(r VisibleRange, g Granularity, now time.Time) []Column {
	if r.Empty() {
		return nil
	}
	today := timeutil.Day(now)
	width := g.ColumnWidth()
	cols := make([]Column, len(r.Periods))
	for i, p := range r.Periods {
		start, next := r.Bounds(i, g)
		label, sub := g.Labels(p)
		cols[i] = Column{
			Start:    p,
			Left:     float64(i) * width,
			Width:    width,
			Label:    label,
			SubLabel: sub,
			Weekend:  g == Day && timeutil.IsWeekend(p),
			Today:    !today.Before(start) && today.Before(next),
		}
	}
	return cols
}

// TodayOffset returns the pixel offset of the start of today when it falls
// inside r.
func TodayOffset(r VisibleRange, g Granularity, now time.Time) (float64, bool) {
	if r.Empty() {
		return 0, false
	}
	today := timeutil.Day(now)
	if today.Before(r.Periods[0]) || !today.Before(r.Upper(g)) {
		return 0, false
	}
	return DateToPixel(today, r, g), true
}

// Layout is everything a renderer needs to draw one chart.
type Layout struct {
	Granularity Granularity  `json:"granularity" yaml:"granularity"`
	Range       VisibleRange `json:"-" yaml:"-"`
	ColumnWidth float64      `json:"columnWidth" yaml:"columnWidth"`
	Width       float64      `json:"widthPx" yaml:"widthPx"`
	Columns     []Column     `json:"columns" yaml:"columns"`
	Today       float64      `json:"todayPx,omitempty" yaml:"todayPx,omitempty"`
	HasToday    bool         `json:"hasToday" yaml:"hasToday"`
	Bars        []Geometry   `json:"bars" yaml:"bars"`
}

// Compute runs the whole derivation for spans in one pass. Bars are in the
// same order as spans and empty when spans is empty.
func Compute(spans []Span, g Granularity, viewport float64, now time.Time) Layout {
	r := DeriveRangeAt(spans, g, now)
	l := Layout{
		Granularity: g,
		Range:       r,
		ColumnWidth: g.ColumnWidth(),
		Width:       TotalWidth(r, g, viewport),
		Columns:     Columns(r, g, now),
		Bars:        make([]Geometry, len(spans)),
	}
	l.Today, l.HasToday = TodayOffset(r, g, now)
	for i, s := range spans {
		l.Bars[i] = Resolve(s, r, g)
	}
	return l
}
