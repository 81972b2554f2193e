package options

import (
	"strings"

	"github.com/spf13/cobra"
)

// ProjectOptions names the project a command works on.
type ProjectOptions struct {
	Name string
}

// AddProjectArg registers --project on cmd and every subcommand.
func AddProjectArg(cmd *cobra.Command, o *ProjectOptions) {
	cmd.PersistentFlags().StringVarP(&o.Name, "project", "p", "",
		"Project to use. Defaults to the configured project.")
}

// Resolve returns the flag value, or fallback when the flag is unset.
func (o *ProjectOptions) Resolve(fallback string) string {
	if name := strings.TrimSpace(o.Name); name != "" {
		return name
	}
	return fallback
}
