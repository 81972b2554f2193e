package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/gantt/pkg/chart"
	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/timeline"
)

func init() {
	color.NoColor = true
}

func TestBarCells(t *testing.T) {
	tests := []struct {
		name string
		g    timeline.Geometry
		fill float64
		want string
	}{{
		name: "half done",
		g:    timeline.Geometry{Left: 80, Width: 200},
		fill: 100,
		want: strings.Repeat(" ", 8) + strings.Repeat("█", 10) + strings.Repeat("▒", 10) + strings.Repeat(" ", 12),
	}, {
		name: "minimum width",
		g:    timeline.Geometry{Left: 440, Width: 5},
		want: strings.Repeat(" ", 44) + "▒" + strings.Repeat(" ", 3),
	}, {
		name: "past the end",
		g:    timeline.Geometry{Left: 480, Width: 5},
		fill: 5,
		want: strings.Repeat(" ", 47) + "█",
	}}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			total := 40
			if tc.name != "half done" {
				total = 48
			}
			got := string(BarCells(tc.g, tc.fill, 40, 4, total))
			if got != tc.want {
				t.Fatalf("BarCells =\n%q\nwant\n%q", got, tc.want)
			}
		})
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(50, 10); got != "█████░░░░░  50%" {
		t.Fatalf("ProgressBar(50) = %q", got)
	}
	if got := ProgressBar(150, 4); got != "████ 100%" {
		t.Fatalf("ProgressBar(150) = %q", got)
	}
	if got := ProgressBar(-3, 4); got != "░░░░   0%" {
		t.Fatalf("ProgressBar(-3) = %q", got)
	}
}

func TestNearestAttribute(t *testing.T) {
	tests := map[string]color.Attribute{
		"#ff0000": color.FgHiRed,
		"#0000ee": color.FgBlue,
		"#fefefe": color.FgHiWhite,
		"nothex":  color.FgHiBlack,
	}
	for in, want := range tests {
		if got := NearestAttribute(in); got != want {
			t.Errorf("NearestAttribute(%q) = %v, want %v", in, got, want)
		}
	}
}

func sampleChart() *chart.Chart {
	p := project.New()
	p.Tasks = []project.Task{
		{ID: 1, Name: "Kickoff and requirements", Start: project.MustDate("2023-11-01"), End: project.MustDate("2023-11-05"), Progress: 100, Category: "planning"},
		{ID: 2, Name: "Backend API", Start: project.MustDate("2023-11-15"), End: project.MustDate("2023-11-25"), Progress: 30, Category: "development"},
	}
	return chart.Build(p, chart.Options{
		Granularity: timeline.Day,
		Viewport:    1200,
		Now:         time.Date(2023, 11, 15, 12, 0, 0, 0, time.UTC),
	})
}

func TestChart(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Chart(sampleChart())

	out := buf.String()
	for _, want := range []string{project.DefaultTitle, "10/30", "Mon", "Kickoff and requirements", "Backend API", "█", "▒", "Development"} {
		if !strings.Contains(out, want) {
			t.Fatalf("chart output missing %q:\n%s", want, out)
		}
	}
}

func TestChartEmpty(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Chart(chart.Build(project.New(), chart.Options{}))
	if !strings.Contains(buf.String(), "no tasks") {
		t.Fatalf("expected empty notice, got %q", buf.String())
	}
}

func TestTasksAndCategories(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	c := sampleChart()
	p := project.New()
	for _, r := range c.Rows {
		p.Tasks = append(p.Tasks, r.Task)
	}
	pp.Tasks(p)
	pp.Categories(p)

	out := buf.String()
	for _, want := range []string{"Kickoff and requirements", "2023-11-15", "Planning", "#10b981"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
