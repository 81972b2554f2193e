package timeline

import "math"

const (
	// ViewportHeadroom is the minimum chart width as a multiple of the
	// viewport, leaving room to scroll.
	ViewportHeadroom = 1.5
	// YearFillMax is the largest year count that stretches to the viewport
	// instead of the headroom minimum.
	YearFillMax = 5
)

// TotalWidth is the renderable width of the chart for a viewport of the
// given pixel width.
func TotalWidth(r VisibleRange, g Granularity, viewport float64) float64 {
	base := float64(r.Len()) * g.ColumnWidth()
	if g == Year && r.Len() >= 1 && r.Len() <= YearFillMax {
		return math.Max(base, viewport)
	}
	return math.Max(base, viewport*ViewportHeadroom)
}
