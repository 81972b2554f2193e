// Package info reports where projects are stored and which exist.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/gantt/pkg/store"
)

type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("GANTT_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "GANTT_CONFIG_PATH found on env, using", override)
	} else {
		fmt.Fprintln(out, "GANTT_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "Config.path:    ", n.Config.BasePath())
	fmt.Fprintln(out, "Config.project: ", n.Config.Project())
	fmt.Fprintln(out, "Config.view:    ", n.Config.View())
	fmt.Fprintln(out, "Config.viewport:", n.Config.Viewport())

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	fmt.Fprintln(out, "Projects:")
	found := 0
	for _, name := range n.Persistence.List(ctx) {
		marker := " "
		if name == n.Config.Project() {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %s\n", marker, name)
		found++
	}

	if found == 0 {
		fmt.Fprintf(out, "  %s\n", "no projects")
	}

	return nil
}
