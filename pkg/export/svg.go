// Package export renders chart snapshots as SVG images.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/gantt/pkg/chart"
	"tableflip.dev/gantt/pkg/project"
)

// Fixed SVG dimensions in pixels.
const (
	SidebarWidth  = 256
	TitleHeight   = 72
	HeaderHeight  = 52
	RowHeight     = 56
	BarHeight     = 32
	MinBodyHeight = 300
	LegendHeight  = 44

	watermarkInset = 20
)

const (
	gridColor    = "#f3f4f6"
	weekendColor = "#f9fafb"
	todayColor   = "#ef4444"
	textColor    = "#374151"
	mutedColor   = "#9ca3af"
	darkLabel    = "#1f2937"
	lightLabel   = "#ffffff"
)

// Size returns the pixel size of the SVG rendered for c.
func Size(c *chart.Chart) (width, height float64) {
	width = SidebarWidth + c.Layout.Width
	height = TitleHeight + HeaderHeight + bodyHeight(c) + LegendHeight
	return width, height
}

func bodyHeight(c *chart.Chart) float64 {
	h := float64(len(c.Rows) * RowHeight)
	if h < MinBodyHeight {
		return MinBodyHeight
	}
	return h
}

// SVG renders c as a standalone SVG document.
func SVG(w io.Writer, c *chart.Chart) error {
	width, height := Size(c)
	s := &svg{}
	s.printf(`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g" font-family="sans-serif">`+"\n", width, height, width, height)
	s.printf(`<rect width="100%%" height="100%%" fill="#ffffff"/>` + "\n")

	s.title(c)
	s.header(c)
	s.body(c)
	s.legend(c, height-LegendHeight)
	s.watermark(c.Watermark, width, height)

	s.printf("</svg>\n")
	_, err := io.WriteString(w, s.b.String())
	return err
}

type svg struct {
	b strings.Builder
}

func (s *svg) printf(format string, args ...interface{}) {
	fmt.Fprintf(&s.b, format, args...)
}

func (s *svg) title(c *chart.Chart) {
	s.printf(`<text x="24" y="34" font-size="20" font-weight="bold" fill="%s">%s</text>`+"\n", textColor, esc(c.Title))
	if c.Subtitle != "" {
		s.printf(`<text x="24" y="56" font-size="12" fill="%s">%s</text>`+"\n", mutedColor, esc(c.Subtitle))
	}
}

func (s *svg) header(c *chart.Chart) {
	top := float64(TitleHeight)
	s.printf(`<rect x="0" y="%g" width="%d" height="%d" fill="%s"/>`+"\n", top, SidebarWidth, HeaderHeight, weekendColor)
	s.printf(`<text x="16" y="%g" font-size="13" font-weight="bold" fill="%s">Tasks</text>`+"\n", top+HeaderHeight/2+4, textColor)
	for _, col := range c.Layout.Columns {
		x := SidebarWidth + col.Left
		mid := x + col.Width/2
		weight := "normal"
		if col.Today {
			weight = "bold"
		}
		s.printf(`<text x="%g" y="%g" font-size="11" text-anchor="middle" font-weight="%s" fill="%s">%s</text>`+"\n", mid, top+22, weight, textColor, esc(col.Label))
		if col.SubLabel != "" {
			s.printf(`<text x="%g" y="%g" font-size="10" text-anchor="middle" fill="%s">%s</text>`+"\n", mid, top+38, mutedColor, esc(col.SubLabel))
		}
	}
}

func (s *svg) body(c *chart.Chart) {
	top := float64(TitleHeight + HeaderHeight)
	h := bodyHeight(c)
	l := c.Layout

	for _, col := range l.Columns {
		x := SidebarWidth + col.Left
		if col.Weekend {
			s.printf(`<rect class="weekend" x="%g" y="%g" width="%g" height="%g" fill="%s"/>`+"\n", x, top, col.Width, h, weekendColor)
		}
		s.printf(`<line x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s"/>`+"\n", x+col.Width, top-HeaderHeight, x+col.Width, top+h, gridColor)
	}
	s.printf(`<line x1="%d" y1="%g" x2="%d" y2="%g" stroke="#e5e7eb"/>`+"\n", SidebarWidth, top-HeaderHeight, SidebarWidth, top+h)

	if l.HasToday {
		x := SidebarWidth + l.Today
		s.printf(`<line class="today" x1="%g" y1="%g" x2="%g" y2="%g" stroke="%s" stroke-width="2"/>`+"\n", x, top, x, top+h, todayColor)
	}

	for i, row := range c.Rows {
		y := top + float64(i*RowHeight)
		s.printf(`<line x1="0" y1="%g" x2="%g" y2="%g" stroke="%s"/>`+"\n", y+RowHeight, SidebarWidth+l.Width, y+RowHeight, gridColor)
		s.printf(`<text x="16" y="%g" font-size="13" fill="%s">%s</text>`+"\n", y+RowHeight/2+4, textColor, esc(row.Task.Name))

		fill := normalizeColor(row.Category.Color)
		barY := y + (RowHeight-BarHeight)/2
		x := SidebarWidth + row.Geometry.Left
		s.printf(`<g class="bar" data-task="%d">`+"\n", row.Task.ID)
		s.printf(`<rect x="%g" y="%g" width="%g" height="%d" rx="6" fill="%s"/>`+"\n", x, barY, row.Geometry.Width, BarHeight, fill)
		if row.Fill > 0 {
			s.printf(`<rect x="%g" y="%g" width="%g" height="%d" rx="6" fill="#ffffff" fill-opacity="0.3"/>`+"\n", x, barY, row.Fill, BarHeight)
		}
		s.printf(`<text x="%g" y="%g" font-size="10" font-weight="500" fill="%s">%s (%d%%)</text>`+"\n", x+8, barY+BarHeight/2+3, LabelColor(fill), esc(row.Task.Name), row.Task.Progress)
		s.printf("</g>\n")
	}
}

func (s *svg) legend(c *chart.Chart, top float64) {
	x := 24.0
	for _, cat := range c.Categories {
		s.printf(`<rect x="%g" y="%g" width="12" height="12" rx="3" fill="%s"/>`+"\n", x, top+16, normalizeColor(cat.Color))
		s.printf(`<text x="%g" y="%g" font-size="12" fill="%s">%s</text>`+"\n", x+18, top+26, textColor, esc(cat.Label))
		x += 36 + float64(7*len([]rune(cat.Label)))
	}
}

func (s *svg) watermark(w project.Watermark, width, height float64) {
	if !w.Enabled() {
		return
	}
	x, y, anchor := WatermarkAnchor(w.Position, width, height)
	s.printf(`<text class="watermark" x="%g" y="%g" text-anchor="%s" dominant-baseline="middle" font-size="%d" font-weight="bold" fill="%s" fill-opacity="%g" transform="rotate(%g %g %g)">%s</text>`+"\n",
		x, y, anchor, w.FontSize, normalizeColor(w.Color), w.Opacity, w.Rotate, x, y, esc(w.Text))
}

// WatermarkAnchor places the watermark text inset from the named corner, or
// at the middle for center. The text rotates about this point.
func WatermarkAnchor(pos string, width, height float64) (x, y float64, anchor string) {
	x, y, anchor = width/2, height/2, "middle"
	if pos == project.Center {
		return x, y, anchor
	}
	if strings.Contains(pos, "top") {
		y = watermarkInset
	}
	if strings.Contains(pos, "bottom") {
		y = height - watermarkInset
	}
	if strings.Contains(pos, "left") {
		x, anchor = watermarkInset, "start"
	}
	if strings.Contains(pos, "right") {
		x, anchor = width-watermarkInset, "end"
	}
	return x, y, anchor
}

// normalizeColor returns a canonical #rrggbb, substituting the
// uncategorized color for anything unparseable.
func normalizeColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return project.Uncategorized.Color
	}
	return c.Hex()
}

// LabelColor picks dark or light text for legibility on a bar of color hex.
func LabelColor(hex string) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return lightLabel
	}
	l, _, _ := c.Lab()
	if l > 0.75 {
		return darkLabel
	}
	return lightLabel
}

func esc(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
