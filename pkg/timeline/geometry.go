package timeline

import (
	"math"

	"tableflip.dev/gantt/pkg/timeutil"
)

// MinWidth keeps zero-length and inverted spans visible.
const MinWidth = 5.0

// Geometry is the horizontal placement of one bar.
type Geometry struct {
	Left  float64 `json:"leftPx" yaml:"leftPx"`
	Width float64 `json:"widthPx" yaml:"widthPx"`
}

// Right is the pixel just past the bar.
func (g Geometry) Right() float64 {
	return g.Left + g.Width
}

// Fill is the width of the progress overlay for a 0-100 progress value,
// clamped to the bar.
func (g Geometry) Fill(progress int) float64 {
	p := math.Max(0, math.Min(100, float64(progress)))
	return g.Width * p / 100
}

// Resolve places span on the timeline. The end date is inclusive so the bar
// runs to the start of the following day. Inverted spans are not rejected;
// they collapse to MinWidth at the start date.
func Resolve(span Span, r VisibleRange, g Granularity) Geometry {
	left := DateToPixel(timeutil.Day(span.Start), r, g)
	right := DateToPixel(timeutil.Day(span.End).AddDate(0, 0, 1), r, g)
	return Geometry{
		Left:  left,
		Width: math.Max(right-left, MinWidth),
	}
}
