package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/gantt/pkg/project"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Cells is the character width of one timeline column in Chart. Zero
	// picks a width per granularity.
	Cells int
}

const nameWidth = 28

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title, subtitle string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
	if subtitle != "" {
		_, _ = color.New(color.Faint).Fprintln(pp.out(), subtitle)
	}
}

// Tasks prints the task list ordered by start date.
func (pp *PrettyPrint) Tasks(p *project.Project) {
	if len(p.Tasks) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no tasks\n\n")
		return
	}

	bold := color.New(color.Bold)
	id := color.New(color.FgHiYellow, color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Task"), bold.Sprint("Start"), bold.Sprint("End"), bold.Sprint("Days"), bold.Sprint("Progress"), bold.Sprint("Category"))
	for _, t := range p.SortedTasks() {
		c := p.Category(t.Category)
		tbl.AddRow(
			id.Sprint(t.ID),
			truncate.StringWithTail(t.Name, nameWidth, "…"),
			t.Start.String(),
			t.End.String(),
			t.Days(),
			ProgressBar(t.Progress, 10),
			Swatch(c.Color).Sprint("■ ")+c.Label,
		)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Categories prints the category list with the number of tasks using each.
func (pp *PrettyPrint) Categories(p *project.Project) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Label"), bold.Sprint("Color"), bold.Sprint("Tasks"))
	for _, c := range p.Categories {
		tbl.AddRow(c.ID, Swatch(c.Color).Sprint("■ ")+c.Label, c.Color, p.CategoryUsage(c.ID))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// ProgressBar renders progress as a fixed width bar, e.g. "████░░░░ 50%".
func ProgressBar(progress, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	filled := progress * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + fmt.Sprintf(" %3d%%", progress)
}
