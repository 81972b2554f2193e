// Package add provides the runner logic for adding tasks to a project.
package add

import (
	"context"
	"errors"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/printers"
	"tableflip.dev/gantt/pkg/project"
)

// Add appends a task and prints the resulting task table.
type Add struct {
	Project string
	Input   project.TaskInput

	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do executes the add operation.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no persistence")
	}
	if _, err := n.Service.AddTask(ctx, n.Project, n.Input); err != nil {
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
