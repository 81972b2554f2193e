package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/commands/options"
	"tableflip.dev/gantt/pkg/runner/complete"
)

func addComplete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "complete <task id>",
		Aliases: []string{"done"},
		Short:   "Mark a task 100% done",
		Example: `
gantt complete 3
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			id, err := options.ParseID(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := complete.Complete{
				Project: e.project,
				ID:      id,
				Service: e.svc,
				Printer: e.printer(cmd),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
