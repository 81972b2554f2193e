package options

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/timeutil"
)

// TaskOptions holds the task fields given on the command line.
type TaskOptions struct {
	Name     string
	Start    string
	End      string
	Length   string
	Progress int
	Category string
}

// AddTaskArgs registers the task field flags. withName adds --name, for
// commands that take the task id as their argument.
func AddTaskArgs(cmd *cobra.Command, o *TaskOptions, withName bool) {
	if withName {
		cmd.Flags().StringVar(&o.Name, "name", "", "Task name.")
	}
	cmd.Flags().StringVar(&o.Start, "start", "",
		`Start date, example: --start="2023-11-01". Defaults to today.`)
	cmd.Flags().StringVar(&o.End, "end", "",
		`Inclusive end date, example: --end="2023-11-05".`)
	cmd.Flags().StringVar(&o.Length, "for", "",
		`Task length instead of --end, example: --for=1w3d.`)
	cmd.Flags().IntVar(&o.Progress, "progress", 0, "Completion percentage, 0-100.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", "",
		"Category id. Defaults to the first category of the project.")
}

// Input builds a new task from the flags. A missing start means today and a
// missing end means a one day task.
func (o *TaskOptions) Input(now time.Time) (project.TaskInput, error) {
	in := project.TaskInput{
		Name:     strings.TrimSpace(o.Name),
		Progress: o.Progress,
		Category: o.Category,
		Start:    project.NewDate(now),
	}
	if o.Start != "" {
		d, err := project.ParseDate(o.Start)
		if err != nil {
			return in, err
		}
		in.Start = d
	}
	end, err := o.end(in.Start)
	if err != nil {
		return in, err
	}
	if end.IsZero() {
		end = in.Start
	}
	in.End = end
	return in, nil
}

// Patch applies only the flags that were set on the command line to in.
func (o *TaskOptions) Patch(flags *pflag.FlagSet, in *project.TaskInput) error {
	if flags.Changed("name") {
		in.Name = strings.TrimSpace(o.Name)
	}
	if flags.Changed("start") {
		d, err := project.ParseDate(o.Start)
		if err != nil {
			return err
		}
		in.Start = d
	}
	if flags.Changed("end") || flags.Changed("for") {
		d, err := o.end(in.Start)
		if err != nil {
			return err
		}
		in.End = d
	}
	if flags.Changed("progress") {
		in.Progress = o.Progress
	}
	if flags.Changed("category") {
		in.Category = o.Category
	}
	return nil
}

func (o *TaskOptions) end(start project.Date) (project.Date, error) {
	switch {
	case o.End != "" && o.Length != "":
		return project.Date{}, errors.New("use only one of --end and --for")
	case o.End != "":
		return project.ParseDate(o.End)
	case o.Length != "":
		days, _, err := timeutil.ParseLength(o.Length)
		if err != nil {
			return project.Date{}, err
		}
		return project.NewDate(timeutil.EndAfter(start.Time, days)), nil
	}
	return project.Date{}, nil
}

// ParseID reads a task id argument.
func ParseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(arg), "#"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}
