// Package chart joins a project with its computed timeline layout, the shape
// every renderer consumes.
package chart

import (
	"time"

	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/timeline"
)

// DefaultViewport is used when Options.Viewport is not set.
const DefaultViewport = 1200

// Options selects the time scale, viewport width and clock of a chart.
type Options struct {
	Granularity timeline.Granularity
	Viewport    float64
	Now         time.Time
}

// Row is one task with its resolved bar.
type Row struct {
	Task     project.Task      `json:"task" yaml:"task"`
	Category project.Category  `json:"category" yaml:"category"`
	Geometry timeline.Geometry `json:"geometry" yaml:"geometry"`
	// Fill is the pixel width of the progress overlay.
	Fill float64 `json:"fillPx" yaml:"fillPx"`
}

// Chart is a renderable project snapshot.
type Chart struct {
	Title      string             `json:"title" yaml:"title"`
	Subtitle   string             `json:"subtitle" yaml:"subtitle"`
	Watermark  project.Watermark  `json:"watermark" yaml:"watermark"`
	Categories []project.Category `json:"categories" yaml:"categories"`
	Layout     timeline.Layout    `json:"layout" yaml:"layout"`
	Rows       []Row              `json:"rows" yaml:"rows"`
}

// Build lays out p. Rows keep the project's task order.
func Build(p *project.Project, o Options) *Chart {
	if o.Granularity == "" {
		o.Granularity = timeline.Day
	}
	if o.Viewport <= 0 {
		o.Viewport = DefaultViewport
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}

	layout := timeline.Compute(p.Spans(), o.Granularity, o.Viewport, o.Now)
	c := &Chart{
		Title:      p.Title,
		Subtitle:   p.Subtitle,
		Watermark:  p.Watermark,
		Categories: p.Categories,
		Layout:     layout,
		Rows:       make([]Row, len(p.Tasks)),
	}
	for i, t := range p.Tasks {
		g := layout.Bars[i]
		c.Rows[i] = Row{
			Task:     t,
			Category: p.Category(t.Category),
			Geometry: g,
			Fill:     g.Fill(t.Progress),
		}
	}
	return c
}

// Empty reports whether there is nothing to draw.
func (c *Chart) Empty() bool {
	return len(c.Rows) == 0
}
