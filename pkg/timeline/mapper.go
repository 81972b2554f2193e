package timeline

import (
	"sort"
	"time"
)

// DateToPixel maps t to a horizontal offset within r. Dates before the first
// period map to 0 and dates past the last period map to the right edge.
// Inside a period the offset is interpolated by elapsed time.
func DateToPixel(t time.Time, r VisibleRange, g Granularity) float64 {
	if r.Empty() || t.Before(r.Periods[0]) {
		return 0
	}
	width := g.ColumnWidth()

	// first period starting after t; the enclosing one is just before it.
	i := sort.Search(len(r.Periods), func(j int) bool {
		return r.Periods[j].After(t)
	}) - 1

	start, next := r.Bounds(i, g)
	if !t.Before(next) {
		return float64(len(r.Periods)) * width
	}
	fraction := float64(t.Sub(start)) / float64(next.Sub(start))
	return (float64(i) + fraction) * width
}
