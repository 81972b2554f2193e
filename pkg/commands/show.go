package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/chart"
	"tableflip.dev/gantt/pkg/commands/options"
	"tableflip.dev/gantt/pkg/runner/show"
	"tableflip.dev/gantt/pkg/timeline"
)

func addShow(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the project as a Gantt chart",
		Example: `
gantt show
gantt show --view week
gantt show --view month --today 2023-11-15
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
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddViewArgs(cmd, vo)
	registerViewCompletion(cmd)
	topLevel.AddCommand(cmd)
}

func addLayout(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the computed chart layout as JSON or YAML",
		Long: `Print the visible range columns, total width, today marker and the
geometry of every task bar, as the renderers see them.`,
		Example: `
gantt layout --view week
gantt layout --view year --viewport 1600 -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := fo.Validate(); err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			opts, err := chartOptions(vo, e)
			if err != nil {
				return oo.HandleError(err)
			}
			c, err := e.svc.Chart(cmd.Context(), e.project, opts)
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(fo.Write(cmd.OutOrStdout(), c))
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddFormatArg(cmd, fo)
	registerViewCompletion(cmd)
	topLevel.AddCommand(cmd)
}

func chartOptions(vo *options.ViewOptions, e *env) (chart.Options, error) {
	g, err := vo.Granularity(e.cfg.View())
	if err != nil {
		return chart.Options{}, err
	}
	now, err := vo.Now()
	if err != nil {
		return chart.Options{}, err
	}
	return chart.Options{
		Granularity: g,
		Viewport:    vo.ViewportPx(e.cfg.Viewport()),
		Now:         now,
	}, nil
}

func registerViewCompletion(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("view", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var views []string
		for _, g := range timeline.All() {
			views = append(views, g.String())
		}
		return views, cobra.ShellCompDirectiveNoFileComp
	})
}
