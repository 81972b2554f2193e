package timeline

import (
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// Pipeline memoizes the layout derivation for a single owner such as an
// interactive view. Each stage is recomputed only when one of its inputs
// changed:
//
//	range    <- spans, granularity, today
//	width    <- range, granularity, viewport
//	columns  <- range, granularity, today
//	geometry <- span, range, granularity
//
// When new spans leave the range as it was, only the bars of the spans that
// moved are resolved again.
//
// A Pipeline is not safe for concurrent use.
type Pipeline struct {
	spans       []Span
	granularity Granularity
	viewport    float64
	today       time.Time

	rng      VisibleRange
	rngOK    bool
	width    float64
	widthOK  bool
	columns  []Column
	colsOK   bool
	bars     []Geometry
	barsOK   []bool
	computes int
	resolves int
}

// NewPipeline returns a pipeline for g and a viewport in pixels.
func NewPipeline(g Granularity, viewport float64) *Pipeline {
	return &Pipeline{
		granularity: g,
		viewport:    viewport,
		today:       timeutil.Day(time.Now()),
	}
}

// SetSpans replaces the task spans. Unchanged input keeps the cache.
func (p *Pipeline) SetSpans(spans []Span) {
	if equalSpans(p.spans, spans) {
		return
	}
	old, oldRange, hadRange := p.spans, p.rng, p.rngOK
	p.spans = append(p.spans[:0:0], spans...)
	if !hadRange {
		p.invalidateRange()
		return
	}

	rng := DeriveRangeAt(p.spans, p.granularity, p.today)
	p.computes++
	if !sameRange(oldRange, rng) {
		p.invalidateRange()
		p.rng, p.rngOK = rng, true
		return
	}

	bars := make([]Geometry, len(p.spans))
	barsOK := make([]bool, len(p.spans))
	for i := range p.spans {
		if i < len(old) && i < len(p.barsOK) && p.barsOK[i] && equalSpan(old[i], p.spans[i]) {
			bars[i], barsOK[i] = p.bars[i], true
		}
	}
	p.bars, p.barsOK = bars, barsOK
}

// SetGranularity switches the time scale.
func (p *Pipeline) SetGranularity(g Granularity) {
	if p.granularity == g {
		return
	}
	p.granularity = g
	p.invalidateRange()
}

// SetViewport updates the viewport width; only the width stage depends on it.
func (p *Pipeline) SetViewport(viewport float64) {
	if p.viewport == viewport {
		return
	}
	p.viewport = viewport
	p.widthOK = false
}

// SetNow moves the clock. The range is only rederived when the day changes.
func (p *Pipeline) SetNow(now time.Time) {
	today := timeutil.Day(now)
	if p.today.Equal(today) {
		return
	}
	p.today = today
	p.invalidateRange()
}

// Granularity returns the current time scale.
func (p *Pipeline) Granularity() Granularity {
	return p.granularity
}

// Viewport returns the current viewport width.
func (p *Pipeline) Viewport() float64 {
	return p.viewport
}

// Range returns the visible range.
func (p *Pipeline) Range() VisibleRange {
	if !p.rngOK {
		p.rng = DeriveRangeAt(p.spans, p.granularity, p.today)
		p.rngOK = true
		p.computes++
	}
	return p.rng
}

// Width returns the total chart width.
func (p *Pipeline) Width() float64 {
	if !p.widthOK {
		p.width = TotalWidth(p.Range(), p.granularity, p.viewport)
		p.widthOK = true
	}
	return p.width
}

// Columns returns the header cells.
func (p *Pipeline) Columns() []Column {
	if !p.colsOK {
		p.columns = Columns(p.Range(), p.granularity, p.today)
		p.colsOK = true
	}
	return p.columns
}

// Geometry returns the bar placement of span i.
func (p *Pipeline) Geometry(i int) Geometry {
	r := p.Range()
	if !p.barsOK[i] {
		p.bars[i] = Resolve(p.spans[i], r, p.granularity)
		p.barsOK[i] = true
		p.resolves++
	}
	return p.bars[i]
}

// Today returns the today marker offset, if visible.
func (p *Pipeline) Today() (float64, bool) {
	return TodayOffset(p.Range(), p.granularity, p.today)
}

// Layout assembles the memoized stages into a Layout equal to Compute.
func (p *Pipeline) Layout() Layout {
	l := Layout{
		Granularity: p.granularity,
		Range:       p.Range(),
		ColumnWidth: p.granularity.ColumnWidth(),
		Width:       p.Width(),
		Columns:     p.Columns(),
		Bars:        make([]Geometry, len(p.spans)),
	}
	l.Today, l.HasToday = p.Today()
	for i := range p.spans {
		l.Bars[i] = p.Geometry(i)
	}
	return l
}

func (p *Pipeline) invalidateRange() {
	p.rngOK = false
	p.widthOK = false
	p.colsOK = false
	p.bars = make([]Geometry, len(p.spans))
	p.barsOK = make([]bool, len(p.spans))
}

func equalSpans(a, b []Span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalSpan(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalSpan(a, b Span) bool {
	return a.Start.Equal(b.Start) && a.End.Equal(b.End)
}

// sameRange compares two ranges of the same granularity.
func sameRange(a, b VisibleRange) bool {
	return a.Start.Equal(b.Start) && a.End.Equal(b.End) && len(a.Periods) == len(b.Periods)
}
