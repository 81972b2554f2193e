package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/commands/options"
	"tableflip.dev/gantt/pkg/export"
	"tableflip.dev/gantt/pkg/project"
)

func addExport(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Save an SVG snapshot or the JSON project file",
		Long: `Export the project. --format svg renders the chart with its watermark,
--format json writes the project file that "gantt import" reads back.
Without --out the file name is derived from the title and today's date;
--out - writes to stdout.`,
		Example: `
gantt export
gantt export --view week --out roadmap.svg
gantt export --format json --out -
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}

			var buf bytes.Buffer
			mode := project.SaveImage
			switch strings.ToLower(format) {
			case "svg":
				opts, err := chartOptions(vo, e)
				if err != nil {
					return oo.HandleError(err)
				}
				c, err := e.svc.Chart(cmd.Context(), e.project, opts)
				if err != nil {
					return oo.HandleError(err)
				}
				if err := export.SVG(&buf, c); err != nil {
					return oo.HandleError(err)
				}
			case "json":
				mode = project.SaveProject
				data, err := e.svc.Export(cmd.Context(), e.project)
				if err != nil {
					return oo.HandleError(err)
				}
				buf.Write(data)
			default:
				return oo.HandleError(fmt.Errorf("unknown export format %q (expected svg or json)", format))
			}

			if out == "-" {
				_, err := io.Copy(cmd.OutOrStdout(), &buf)
				return oo.HandleError(err)
			}
			if out == "" {
				p, err := e.svc.Project(cmd.Context(), e.project)
				if err != nil {
					return oo.HandleError(err)
				}
				out = project.SuggestFileName(p.Title, mode, time.Now()) + "." + strings.ToLower(format)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return oo.HandleError(err)
			}
			e.log.Info("exported", "format", format, "file", out)
			return nil
		},
	}

	options.AddViewArgs(cmd, vo)
	cmd.Flags().StringVar(&format, "format", "svg", "Export format. One of 'svg' or 'json'.")
	cmd.Flags().StringVar(&out, "out", "", "Destination file, or - for stdout.")
	registerViewCompletion(cmd)
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"svg", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the project with a saved project file",
		Long: `Import a project file written by "gantt export --format json". Files that
hold only a JSON array of tasks are accepted and get default categories.`,
		Example: `
gantt import Roadmap_2023-11-01.json
gantt -p q4 import - < plan.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return oo.HandleError(err)
			}

			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := e.svc.Import(cmd.Context(), e.project, data)
			if err != nil {
				return oo.HandleError(err)
			}
			if p.Legacy {
				e.log.Warn("imported a bare task list, default categories were added", "file", args[0])
			}
			return oo.HandleError(printProject(cmd, e))
		},
	}

	topLevel.AddCommand(cmd)
}
