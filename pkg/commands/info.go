package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and the stored projects.",
		Example: `
gantt info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := info.Info{
				Config:      e.cfg,
				Persistence: e.store,
				Out:         cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
