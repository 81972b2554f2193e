// Package complete provides the runner logic for marking tasks complete.
package complete

import (
	"context"
	"errors"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/printers"
	"tableflip.dev/gantt/pkg/project"
)

// Complete sets the progress of a task to 100%.
type Complete struct {
	Project string
	ID      int

	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do executes the completion operation for the configured task ID.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no persistence")
	}

	_, err := n.Service.EditTask(ctx, n.Project, n.ID, func(in *project.TaskInput) {
		in.Progress = 100
	})
	if err != nil {
		return err
	}
	p, err := n.Service.Project(ctx, n.Project)
	if err != nil {
		return err
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	pp.NewLine()
	pp.Title(p.Title, n.Project)
	pp.Tasks(p)
	return nil
}
