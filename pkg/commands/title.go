package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/gantt/pkg/project"
)

func addTitle(topLevel *cobra.Command) {
	var subtitle string

	cmd := &cobra.Command{
		Use:   "title <title>",
		Short: "Set the chart title and subtitle",
		Example: `
gantt title "Q4 Launch" --subtitle "Platform team"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			p, err := e.svc.SetTitle(cmd.Context(), e.project, strings.Join(args, " "), subtitle)
			if err != nil {
				return oo.HandleError(err)
			}
			pp := e.printer(cmd)
			pp.NewLine()
			pp.Title(p.Title, p.Subtitle)
			return nil
		},
	}

	cmd.Flags().StringVar(&subtitle, "subtitle", "", "Chart subtitle.")
	topLevel.AddCommand(cmd)
}

func addWatermark(topLevel *cobra.Command) {
	w := project.Watermark{}
	var reset bool

	cmd := &cobra.Command{
		Use:   "watermark",
		Short: "Configure the watermark stamped on SVG exports",
		Example: `
gantt watermark --text CONFIDENTIAL --position center --opacity 0.2
gantt watermark --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv(cmd)
			if err != nil {
				return oo.HandleError(err)
			}
			flags := cmd.Flags()
			got, err := e.svc.SetWatermark(cmd.Context(), e.project, func(cur *project.Watermark) {
				if reset {
					cur.Text = ""
				}
				if flags.Changed("text") {
					cur.Text = w.Text
				}
				if flags.Changed("position") {
					cur.Position = w.Position
				}
				if flags.Changed("color") {
					cur.Color = w.Color
				}
				if flags.Changed("opacity") {
					cur.Opacity = w.Opacity
				}
				if flags.Changed("font-size") {
					cur.FontSize = w.FontSize
				}
				if flags.Changed("rotate") {
					cur.Rotate = w.Rotate
				}
			})
			if err != nil {
				return oo.HandleError(err)
			}
			text := got.Text
			if !got.Enabled() {
				text = "(none)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "watermark %s: %s, %s, opacity %.2f, %dpx, %.0f°\n",
				text, got.Position, got.Color, got.Opacity, got.FontSize, got.Rotate)
			return nil
		},
	}

	def := project.DefaultWatermark()
	cmd.Flags().StringVar(&w.Text, "text", "", "Watermark text. Empty text disables the watermark.")
	cmd.Flags().StringVar(&w.Position, "position", def.Position,
		"One of "+strings.Join(project.Positions(), ", ")+".")
	cmd.Flags().StringVar(&w.Color, "color", def.Color, "Text color as a hex value.")
	cmd.Flags().Float64Var(&w.Opacity, "opacity", def.Opacity, "Opacity between 0 and 1.")
	cmd.Flags().IntVar(&w.FontSize, "font-size", def.FontSize, "Font size in pixels.")
	cmd.Flags().Float64Var(&w.Rotate, "rotate", def.Rotate, "Rotation in degrees.")
	cmd.Flags().BoolVar(&reset, "clear", false, "Remove the watermark text.")
	_ = cmd.RegisterFlagCompletionFunc("position", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return project.Positions(), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
