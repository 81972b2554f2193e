// Package show prints a project as a text Gantt chart.
package show

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/chart"
	"tableflip.dev/gantt/pkg/printers"
	"tableflip.dev/gantt/pkg/timeline"
)

type Show struct {
	Project     string
	Granularity timeline.Granularity
	Viewport    float64
	// Now overrides the date of the today marker when set.
	Now time.Time

	Service *app.Service
	Printer *printers.PrettyPrint
}

func (n *Show) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not show, no persistence")
	}
	c, err := n.Service.Chart(ctx, n.Project, chart.Options{
		Granularity: n.Granularity,
		Viewport:    n.Viewport,
		Now:         n.Now,
	})
	if err != nil {
		return err
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.NewLine()
	pp.Chart(c)
	return nil
}
