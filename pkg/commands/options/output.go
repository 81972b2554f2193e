package options

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out defaults to color.Output.
	Out io.Writer
}

// AddOutputArg registers --json on cmd and every subcommand.
func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.PersistentFlags().BoolVar(&po.JSON, "json", false,
		"Output errors as JSON.")
}

func (o *OutputOptions) out() io.Writer {
	if o.Out != nil {
		return o.Out
	}
	return color.Output
}

// HandleError reports err as {"error": "..."} on the output when --json is
// set, and hands it back unchanged otherwise.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(o.out(), string(b))
		return nil
	}
	return err
}
