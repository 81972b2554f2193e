package printers

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/gantt/pkg/chart"
	"tableflip.dev/gantt/pkg/timeline"
)

// DefaultCells is the character width of one column per granularity.
var DefaultCells = map[timeline.Granularity]int{
	timeline.Day:   6,
	timeline.Week:  6,
	timeline.Month: 7,
	timeline.Year:  8,
}

const (
	fillRune    = '█'
	restRune    = '▒'
	todayRune   = '|'
	weekendRune = '·'
)

// Chart prints a text Gantt chart. Pixel geometry is scaled so that one
// column is Cells characters wide.
func (pp *PrettyPrint) Chart(c *chart.Chart) {
	pp.Title(c.Title, c.Subtitle)
	pp.NewLine()
	if c.Empty() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no tasks\n\n")
		return
	}

	l := c.Layout
	cells := pp.Cells
	if cells <= 0 {
		cells = DefaultCells[l.Granularity]
	}
	if cells <= 0 {
		cells = 4
	}
	total := len(l.Columns) * cells
	gutter := strings.Repeat(" ", nameWidth+1)

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	var labels, subs strings.Builder
	for _, col := range l.Columns {
		label := cell(col.Label, cells)
		if col.Today {
			label = bold.Sprint(label)
		}
		labels.WriteString(label)
		subs.WriteString(faint.Sprint(cell(col.SubLabel, cells)))
	}
	_, _ = fmt.Fprintln(pp.out(), gutter+labels.String())
	_, _ = fmt.Fprintln(pp.out(), gutter+subs.String())

	todayCell := -1
	if l.HasToday {
		todayCell = int(math.Floor(l.Today * float64(cells) / l.ColumnWidth))
	}
	weekends := weekendCells(l.Columns, cells)

	for _, row := range c.Rows {
		bar := BarCells(row.Geometry, row.Fill, l.ColumnWidth, cells, total)
		name := padding.String(truncate.StringWithTail(row.Task.Name, nameWidth, "…"), nameWidth)
		_, _ = fmt.Fprintln(pp.out(), name+" "+paintBar(bar, Swatch(row.Category.Color), todayCell, weekends))
	}
	pp.NewLine()
	pp.legend(c)
}

func (pp *PrettyPrint) legend(c *chart.Chart) {
	parts := make([]string, 0, len(c.Categories))
	for _, cat := range c.Categories {
		parts = append(parts, Swatch(cat.Color).Sprint("■ ")+cat.Label)
	}
	_, _ = fmt.Fprintln(pp.out(), strings.Join(parts, "   "))
	pp.NewLine()
}

// BarCells lays a bar onto a row of total cells: fillRune for the progress
// portion, restRune for the remainder and spaces elsewhere. Every bar covers
// at least one cell.
func BarCells(g timeline.Geometry, fill, columnWidth float64, cells, total int) []rune {
	row := []rune(strings.Repeat(" ", total))
	if total == 0 || columnWidth <= 0 {
		return row
	}
	scale := float64(cells) / columnWidth
	start := clampCell(int(math.Floor(g.Left*scale)), total)
	end := clampCell(int(math.Ceil(g.Right()*scale)), total)
	if end <= start {
		end = start + 1
		if end > total {
			start, end = total-1, total
		}
	}
	filled := clampCell(int(math.Round((g.Left+fill)*scale)), total)
	for i := start; i < end; i++ {
		if i < filled {
			row[i] = fillRune
		} else {
			row[i] = restRune
		}
	}
	return row
}

func clampCell(i, total int) int {
	if i < 0 {
		return 0
	}
	if i > total {
		return total
	}
	return i
}

func weekendCells(cols []timeline.Column, cells int) map[int]bool {
	out := make(map[int]bool)
	for i, col := range cols {
		if !col.Weekend {
			continue
		}
		for j := 0; j < cells; j++ {
			out[i*cells+j] = true
		}
	}
	return out
}

func paintBar(row []rune, c *color.Color, today int, weekends map[int]bool) string {
	faint := color.New(color.Faint)
	var b strings.Builder
	for i, r := range row {
		switch {
		case r != ' ':
			b.WriteString(c.Sprint(string(r)))
		case i == today:
			b.WriteString(color.New(color.FgRed).Sprint(string(todayRune)))
		case weekends[i]:
			b.WriteString(faint.Sprint(string(weekendRune)))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cell fits s into exactly w characters.
func cell(s string, w int) string {
	return padding.String(truncate.String(s, uint(w-1)), uint(w))
}

type ansiColor struct {
	attr color.Attribute
	hex  string
}

// xterm defaults for the 16 basic colors.
var palette = []ansiColor{
	{color.FgBlack, "#000000"},
	{color.FgRed, "#cd0000"},
	{color.FgGreen, "#00cd00"},
	{color.FgYellow, "#cdcd00"},
	{color.FgBlue, "#0000ee"},
	{color.FgMagenta, "#cd00cd"},
	{color.FgCyan, "#00cdcd"},
	{color.FgWhite, "#e5e5e5"},
	{color.FgHiBlack, "#7f7f7f"},
	{color.FgHiRed, "#ff0000"},
	{color.FgHiGreen, "#00ff00"},
	{color.FgHiYellow, "#ffff00"},
	{color.FgHiBlue, "#5c5cff"},
	{color.FgHiMagenta, "#ff00ff"},
	{color.FgHiCyan, "#00ffff"},
	{color.FgHiWhite, "#ffffff"},
}

// NearestAttribute maps a hex color to the closest basic terminal color.
// Unparseable input maps to FgHiBlack.
func NearestAttribute(hex string) color.Attribute {
	want, err := colorful.Hex(hex)
	if err != nil {
		return color.FgHiBlack
	}
	best, bestDist := color.FgHiBlack, math.Inf(1)
	for _, p := range palette {
		c, _ := colorful.Hex(p.hex)
		if d := want.DistanceCIEDE2000(c); d < bestDist {
			best, bestDist = p.attr, d
		}
	}
	return best
}

// Swatch returns a printer for text in the category color.
func Swatch(hex string) *color.Color {
	return color.New(NearestAttribute(hex))
}
