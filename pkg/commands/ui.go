package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/commands/options"
	"tableflip.dev/gantt/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive chart viewer",
		Long: `Open the project in a full screen viewer.

Keys: d/w/m/y switch the time scale, h/l or the arrow keys scroll,
H/L scroll a page, t jumps to today, r reloads and q quits. The chart
reloads by itself when the project file changes.`,
		Example: `
gantt ui
gantt -p roadmap ui --view month
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			g, err := vo.Granularity(e.cfg.View())
			if err != nil {
				return err
			}
			i := ui.UI{Project: e.project, Granularity: g, Service: e.svc}
			return i.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&vo.View, "view", "",
		"Initial time scale: day, week, month or year.")
	registerViewCompletion(cmd)
	topLevel.AddCommand(cmd)
}
