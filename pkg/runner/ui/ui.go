// Package ui launches the interactive chart viewer.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/timeline"
	"tableflip.dev/gantt/pkg/tui/viewer"
)

type UI struct {
	Project     string
	Granularity timeline.Granularity

	Service *app.Service
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not open ui, no persistence")
	}
	g := u.Granularity
	if g == "" {
		g = timeline.Day
	}
	return viewer.Run(ctx, u.Service, u.Project, g)
}
