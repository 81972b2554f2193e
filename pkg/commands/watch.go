package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/commands/options"
	"tableflip.dev/gantt/pkg/runner/show"
	"tableflip.dev/gantt/pkg/store"
)

func addWatch(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reprint the chart whenever the project file changes",
		Example: `
gantt watch --view week
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			opts, err := chartOptions(vo, e)
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Project:     e.project,
				Granularity: opts.Granularity,
				Viewport:    opts.Viewport,
				Now:         opts.Now,
				Service:     e.svc,
				Printer:     e.printer(cmd),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return oo.HandleError(watchProject(ctx, e, &s))
		},
	}

	options.AddViewArgs(cmd, vo)
	registerViewCompletion(cmd)
	topLevel.AddCommand(cmd)
}

func watchProject(ctx context.Context, e *env, s *show.Show) error {
	events, err := e.svc.Watch(ctx)
	if err != nil {
		return err
	}
	if err := s.Do(ctx); err != nil {
		return err
	}
	e.log.Info("watching for changes", "project", e.project, "path", e.cfg.BasePath())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type != store.EventProjectsInvalidated && ev.Project != e.project {
				continue
			}
			e.log.Debug("project changed", "event", ev.Type.String(), "project", ev.Project)
			if err := s.Do(ctx); err != nil {
				e.log.Error("reprint failed", "err", err)
			}
		}
	}
}
