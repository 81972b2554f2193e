package options

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// FormatOptions selects a structured output encoding.
type FormatOptions struct {
	Output string
}

func AddFormatArg(cmd *cobra.Command, o *FormatOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "json",
		"Output format. One of 'json' or 'yaml'.")
}

// Validate rejects unknown formats before any work is done.
func (o *FormatOptions) Validate() error {
	switch strings.ToLower(o.Output) {
	case "json", "yaml", "yml":
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected json or yaml)", o.Output)
}

// Write encodes v to w in the selected format.
func (o *FormatOptions) Write(w io.Writer, v interface{}) error {
	switch strings.ToLower(o.Output) {
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return o.Validate()
}
