package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
	po = &options.ProjectOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "gantt",
		Short: base.Wrap80("Gantt charts of project schedules on the command line."),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			oo.Out = cmd.OutOrStdout()
			color.NoColor = color.NoColor || !isTerminal(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	options.AddProjectArg(cmd, po)
	options.AddOutputArg(cmd, oo)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addEdit(topLevel)
	addDelete(topLevel)
	addComplete(topLevel)
	addList(topLevel)
	addCategory(topLevel)
	addShow(topLevel)
	addLayout(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addTitle(topLevel)
	addWatermark(topLevel)
	addUI(topLevel)
	addWatch(topLevel)
	addMCP(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
