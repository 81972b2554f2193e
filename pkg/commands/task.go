package commands

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/commands/options"
	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/runner/add"
	"tableflip.dev/gantt/pkg/snake"
)

func addTask(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "task [name]",
		Short: "Add a task",
		Example: `
gantt add task Kickoff --start 2023-11-01 --end 2023-11-05
gantt add task "Backend API" --start 2023-11-06 --for 2w --category development
gantt add task -i
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			to.Name = strings.Join(args, " ")

			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			in, err := to.Input(time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			if i.Interactive {
				p, err := e.svc.Project(cmd.Context(), e.project)
				if err != nil {
					return oo.HandleError(err)
				}
				pr := snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				if in, err = pr.Task(p, in); err != nil {
					return oo.HandleError(err)
				}
			} else if in.Name == "" {
				return oo.HandleError(project.ErrNameRequired)
			}

			s := add.Add{
				Project: e.project,
				Input:   in,
				Service: e.svc,
				Printer: e.printer(cmd),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddTaskArgs(cmd, to, false)
	options.InteractiveArgs(cmd, i)
	registerCategoryCompletion(cmd, "category")

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	to := &options.TaskOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:   "edit <task id>",
		Short: "Change fields of a task",
		Example: `
gantt edit 3 --progress 60
gantt edit 3 --end 2023-11-24 --category testing
gantt edit 3 -i
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
			p, err := e.svc.Project(cmd.Context(), e.project)
			if err != nil {
				return oo.HandleError(err)
			}
			cur, err := p.Task(id)
			if err != nil {
				return oo.HandleError(err)
			}

			in := project.FromTask(cur)
			if err := to.Patch(cmd.Flags(), &in); err != nil {
				return oo.HandleError(err)
			}
			if i.Interactive {
				pr := snake.Prompter{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
				if in, err = pr.Task(p, in); err != nil {
					return oo.HandleError(err)
				}
			}

			if _, err := e.svc.EditTask(cmd.Context(), e.project, id, func(t *project.TaskInput) {
				*t = in
			}); err != nil {
				return oo.HandleError(err)
			}
			e.log.Debug("edited task", "id", id, "project", e.project)
			return oo.HandleError(printProject(cmd, e))
		},
	}

	options.AddTaskArgs(cmd, to, true)
	options.InteractiveArgs(cmd, i)
	registerCategoryCompletion(cmd, "category")

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <task id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Example: `
gantt delete 3
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
			if err := e.svc.DeleteTask(cmd.Context(), e.project, id); err != nil {
				return oo.HandleError(err)
			}
			e.log.Debug("deleted task", "id", id, "project", e.project)
			return oo.HandleError(printProject(cmd, e))
		},
	}

	topLevel.AddCommand(cmd)
}

// printProject shows the task table after a mutation.
func printProject(cmd *cobra.Command, e *env) error {
	p, err := e.svc.Project(cmd.Context(), e.project)
	if err != nil {
		return err
	}
	pp := e.printer(cmd)
	pp.NewLine()
	pp.Title(p.Title, e.project)
	pp.Tasks(p)
	return nil
}
