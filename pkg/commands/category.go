package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/store"
)

func addCategory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"categories"},
		Short:   "Manage task categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	addCategoryAdd(cmd)
	cmd.AddCommand(newCategoryDeleteCmd(), newCategoryListCmd())
	topLevel.AddCommand(cmd)
}

func addCategoryAdd(topLevel *cobra.Command) {
	var color string
	cmd := &cobra.Command{
		Use:   "category <label>",
		Short: "Add a category",
		Example: `
gantt category add Research --color "#0ea5e9"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			c, err := e.svc.AddCategory(cmd.Context(), e.project, strings.Join(args, " "), color)
			if err != nil {
				return oo.HandleError(err)
			}
			e.log.Debug("added category", "id", c.ID, "project", e.project)
			return oo.HandleError(printCategories(cmd, e))
		},
	}
	// Under "gantt category" the verb reads better than the noun.
	if topLevel.Name() == "category" {
		cmd.Use = "add <label>"
	}
	cmd.Flags().StringVar(&color, "color", "#3b82f6", "Bar color as a hex value.")
	topLevel.AddCommand(cmd)
}

func newCategoryDeleteCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "delete <category id>",
		Aliases: []string{"rm"},
		Short:   "Delete a category",
		Long: `Delete a category. A category used by tasks is only removed with --force;
those tasks then render as Uncategorized. The last category cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			if err := e.svc.DeleteCategory(cmd.Context(), e.project, args[0], force); err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(printCategories(cmd, e))
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Delete even when tasks use the category.")
	cmd.ValidArgsFunction = func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
	return cmd
}

func newCategoryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List categories and how many tasks use each",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			return oo.HandleError(printCategories(cmd, e))
		},
	}
}

func printCategories(cmd *cobra.Command, e *env) error {
	p, err := e.svc.Project(cmd.Context(), e.project)
	if err != nil {
		return err
	}
	pp := e.printer(cmd)
	pp.NewLine()
	pp.Title(p.Title, e.project)
	pp.Categories(p)
	return nil
}

func registerCategoryCompletion(cmd *cobra.Command, flagName string) {
	_ = cmd.RegisterFlagCompletionFunc(flagName, func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return categoryCompletions(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	})
}

func categoryCompletions(_ *cobra.Command, toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	s, err := store.Load(cfg, nil)
	if err != nil {
		return nil
	}
	p, err := s.Load(po.Resolve(cfg.Project()))
	if err != nil {
		p = project.New()
	}
	var ids []string
	for _, c := range p.Categories {
		if strings.HasPrefix(c.ID, toComplete) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
