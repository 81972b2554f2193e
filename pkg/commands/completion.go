package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(gantt completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(gantt completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(cmd.OutOrStdout(), true)
		},
	}

	_ = topLevel.RegisterFlagCompletionFunc("project", func(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return projectCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func projectCompletions(toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	p, err := store.Load(cfg, nil)
	if err != nil {
		return nil
	}
	var names []string
	for _, name := range p.List(context.Background()) {
		if strings.HasPrefix(name, toComplete) {
			names = append(names, name)
		}
	}
	return names
}
