package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/runner/get"
)

func addList(topLevel *cobra.Command) {
	var all, categories bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List the tasks of a project",
		Example: `
gantt list
gantt list --all
gantt -p roadmap list --categories
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			s := get.Get{
				Project:    e.project,
				All:        all,
				Categories: categories,
				Service:    e.svc,
				Printer:    e.printer(cmd),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "List every stored project.")
	cmd.Flags().BoolVar(&categories, "categories", false, "List categories instead of tasks.")

	topLevel.AddCommand(cmd)
}
