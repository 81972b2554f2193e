package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/timeline"
)

// ViewOptions picks how a chart is laid out.
type ViewOptions struct {
	View     string
	Viewport float64
	Today    string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	cmd.Flags().StringVar(&o.View, "view", "",
		"Time scale: day, week, month or year. Defaults to the configured view.")
	cmd.Flags().Float64Var(&o.Viewport, "viewport", 0,
		"Viewport width in pixels used by the width policy. Defaults to the configured viewport.")
	cmd.Flags().StringVar(&o.Today, "today", "",
		`Date of the today marker, example: --today="2023-11-15".`)
}

// Granularity resolves --view, falling back to the configured view.
func (o *ViewOptions) Granularity(fallback string) (timeline.Granularity, error) {
	if o.View != "" {
		return timeline.ParseGranularity(o.View)
	}
	return timeline.ParseGranularity(fallback)
}

// ViewportPx resolves --viewport, falling back to the configured width.
func (o *ViewOptions) ViewportPx(fallback float64) float64 {
	if o.Viewport > 0 {
		return o.Viewport
	}
	return fallback
}

// Now returns the --today date, or the zero time to use the clock.
func (o *ViewOptions) Now() (time.Time, error) {
	if o.Today == "" {
		return time.Time{}, nil
	}
	d, err := project.ParseDate(o.Today)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time, nil
}
