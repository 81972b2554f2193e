package commands

import (
	"github.com/spf13/cobra"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
gantt add task Kickoff --start 2023-11-01 --end 2023-11-05
gantt add category Research --color "#0ea5e9"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTask(cmd)
	addCategoryAdd(cmd)

	topLevel.AddCommand(cmd)
}
