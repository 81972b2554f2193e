// Package get provides the runner logic for listing a project's tasks and
// categories.
package get

import (
	"context"
	"errors"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/printers"
)

// Get prints the tasks of a project, or every stored project when All is set.
type Get struct {
	Project    string
	All        bool
	Categories bool

	Service *app.Service
	Printer *printers.PrettyPrint
}

// Do executes the listing.
func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no persistence")
	}

	names := []string{n.Project}
	if n.All {
		var err error
		if names, err = n.Service.Projects(ctx); err != nil {
			return err
		}
	}

	pp := n.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	for _, name := range names {
		p, err := n.Service.Project(ctx, name)
		if err != nil {
			return err
		}
		pp.NewLine()
		pp.Title(p.Title, name)
		if n.Categories {
			pp.Categories(p)
			continue
		}
		pp.Tasks(p)
	}
	return nil
}
