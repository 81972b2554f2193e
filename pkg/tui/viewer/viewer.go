// Package viewer is the interactive Bubble Tea chart viewer.
package viewer

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/padding"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/printers"
	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/store"
	"tableflip.dev/gantt/pkg/timeline"
	"tableflip.dev/gantt/pkg/tui/theme"
)

const (
	nameWidth = 24
	// Rows above and below the chart body.
	chromeHeight = 7
)

// Model renders one project as a scrollable text Gantt chart.
type Model struct {
	ctx     context.Context
	svc     *app.Service
	name    string
	project *project.Project
	pipe    *timeline.Pipeline
	theme   theme.Theme
	now     func() time.Time

	termWidth  int
	termHeight int
	// offset is the first visible cell of the timeline.
	offset int
	status string
	err    error

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc
}

// New returns a viewer for the named project in granularity g.
func New(ctx context.Context, svc *app.Service, name string, g timeline.Granularity) *Model {
	if ctx == nil {
		ctx = context.Background()
	}
	m := &Model{
		ctx:        ctx,
		svc:        svc,
		name:       name,
		project:    project.New(),
		pipe:       timeline.NewPipeline(g, 0),
		theme:      theme.Default(),
		now:        time.Now,
		termWidth:  80,
		termHeight: 24,
	}
	m.pipe.SetViewport(m.viewportPx())
	return m
}

type projectLoadedMsg struct {
	project *project.Project
	err     error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), startWatchCmd(m.ctx, m.svc))
}

func (m *Model) load() tea.Cmd {
	if m.svc == nil {
		return nil
	}
	svc, ctx, name := m.svc, m.ctx, m.name
	return func() tea.Msg {
		p, err := svc.Project(ctx, name)
		return projectLoadedMsg{project: p, err: err}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

// SetProject replaces the displayed project.
func (m *Model) SetProject(p *project.Project) {
	m.project = p
	m.pipe.SetSpans(p.Spans())
	m.pipe.SetNow(m.now())
	m.clampOffset()
}

// Update handles messages and keybindings
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.pipe.SetViewport(m.viewportPx())
		m.clampOffset()
	case projectLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			break
		}
		m.err = nil
		m.SetProject(msg.project)
		m.status = fmt.Sprintf("%d tasks", len(msg.project.Tasks))
	case watchStartedMsg:
		if msg.err != nil {
			m.status = "watch: " + msg.err.Error()
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		cmds = append(cmds, m.waitForWatch())
	case watchEventMsg:
		if msg.event.Type == store.EventProjectsInvalidated || msg.event.Project == m.name {
			cmds = append(cmds, m.load())
		}
		cmds = append(cmds, m.waitForWatch())
	case watchStoppedMsg:
		m.stopWatch()
	case tea.KeyPressMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.stopWatch()
		return tea.Quit
	case "d":
		m.setGranularity(timeline.Day)
	case "w":
		m.setGranularity(timeline.Week)
	case "m":
		m.setGranularity(timeline.Month)
	case "y":
		m.setGranularity(timeline.Year)
	case "h", "left":
		m.scroll(-m.cells())
	case "l", "right":
		m.scroll(m.cells())
	case "H", "shift+left":
		m.scroll(-m.visibleCells())
	case "L", "shift+right":
		m.scroll(m.visibleCells())
	case "t":
		m.scrollToToday()
	case "r":
		return m.load()
	}
	return nil
}

func (m *Model) setGranularity(g timeline.Granularity) {
	if m.pipe.Granularity() == g {
		return
	}
	m.pipe.SetGranularity(g)
	m.pipe.SetViewport(m.viewportPx())
	m.offset = 0
	m.scrollToToday()
}

func (m *Model) scroll(delta int) {
	m.offset += delta
	m.clampOffset()
}

func (m *Model) scrollToToday() {
	px, ok := m.pipe.Today()
	if !ok {
		m.status = "today is outside the chart"
		return
	}
	m.offset = m.pxToCell(px) - m.visibleCells()/2
	m.clampOffset()
}

func (m *Model) clampOffset() {
	limit := m.totalCells() - m.visibleCells()
	if m.offset > limit {
		m.offset = limit
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// cells is the character width of one timeline column.
func (m *Model) cells() int {
	if c := printers.DefaultCells[m.pipe.Granularity()]; c > 0 {
		return c
	}
	return 4
}

func (m *Model) visibleCells() int {
	w := m.termWidth - nameWidth - 1
	if w < 1 {
		return 1
	}
	return w
}

func (m *Model) totalCells() int {
	return len(m.pipe.Range().Periods) * m.cells()
}

// viewportPx converts the visible terminal width into timeline pixels.
func (m *Model) viewportPx() float64 {
	return float64(m.visibleCells()) * m.pipe.Granularity().ColumnWidth() / float64(m.cells())
}

func (m *Model) pxToCell(px float64) int {
	return int(math.Floor(px * float64(m.cells()) / m.pipe.Granularity().ColumnWidth()))
}

func (m *Model) View() string {
	var b strings.Builder
	th := m.theme

	b.WriteString(th.Header.Title.Render(m.project.Title))
	b.WriteString("  ")
	b.WriteString(th.Header.View.Render(string(m.pipe.Granularity())))
	b.WriteString("\n")
	b.WriteString(th.Header.Subtitle.Render(m.project.Subtitle))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(th.Footer.Error.Render("ERR: " + m.err.Error()))
		b.WriteString("\n")
		b.WriteString(m.footer())
		return b.String()
	}
	if len(m.project.Tasks) == 0 {
		b.WriteString(th.Chart.Empty.Render("  no tasks, add one with `gantt add task`"))
		b.WriteString("\n\n")
		b.WriteString(m.footer())
		return b.String()
	}

	labels, subs := m.headerRows()
	gutter := strings.Repeat(" ", nameWidth+1)
	b.WriteString(gutter + labels + "\n")
	b.WriteString(gutter + subs + "\n")

	rows := m.project.Tasks
	if limit := m.termHeight - chromeHeight; limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	for i, t := range rows {
		b.WriteString(th.Chart.TaskName.Render(padding.String(truncate.StringWithTail(t.Name, nameWidth, "…"), nameWidth)))
		b.WriteString(" ")
		b.WriteString(m.barRow(i, t))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m *Model) headerRows() (string, string) {
	cols := m.pipe.Columns()
	cells := m.cells()
	var labels, subs []rune
	for _, col := range cols {
		labels = append(labels, []rune(fit(col.Label, cells))...)
		subs = append(subs, []rune(fit(col.SubLabel, cells))...)
	}
	return m.window(labels), m.theme.Chart.SubLabel.Render(m.window(subs))
}

func (m *Model) barRow(i int, t project.Task) string {
	g := m.pipe.Geometry(i)
	row := printers.BarCells(g, g.Fill(t.Progress), m.pipe.Granularity().ColumnWidth(), m.cells(), m.totalCells())

	today := -1
	if px, ok := m.pipe.Today(); ok {
		today = m.pxToCell(px)
	}
	cols := m.pipe.Columns()
	cells := m.cells()
	bar := theme.Bar(m.project.Category(t.Category).Color)

	end := m.offset + m.visibleCells()
	if end > len(row) {
		end = len(row)
	}
	var b strings.Builder
	for c := m.offset; c < end; c++ {
		r := row[c]
		switch {
		case r != ' ':
			b.WriteString(bar.Render(string(r)))
		case c == today:
			b.WriteString(m.theme.Chart.Today.Render("|"))
		case c/cells < len(cols) && cols[c/cells].Weekend:
			b.WriteString(m.theme.Chart.Weekend.Render("·"))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// window slices the visible part of a full-width row.
func (m *Model) window(row []rune) string {
	start := m.offset
	if start > len(row) {
		start = len(row)
	}
	end := start + m.visibleCells()
	if end > len(row) {
		end = len(row)
	}
	return string(row[start:end])
}

func (m *Model) footer() string {
	help := "d/w/m/y view · h/l scroll · t today · r reload · q quit"
	status := m.status
	if status != "" {
		status = " · " + status
	}
	return m.theme.Footer.Help.Render(help) + m.theme.Footer.Status.Render(status)
}

// fit pads or cuts s to exactly w cells, keeping one cell of spacing.
func fit(s string, w int) string {
	return padding.String(truncate.String(s, uint(w-1)), uint(w))
}

// Run launches the interactive viewer.
func Run(ctx context.Context, svc *app.Service, name string, g timeline.Granularity) error {
	p := tea.NewProgram(New(ctx, svc, name, g), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
