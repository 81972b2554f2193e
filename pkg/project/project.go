// Package project holds the Gantt project model: tasks, categories, chart
// titles and watermark settings, together with the project file format.
package project

import (
	"sort"
	"time"

	"tableflip.dev/gantt/pkg/timeline"
)

const (
	// CurrentVersion is the project file version written by Encode.
	CurrentVersion = 4

	// DefaultTitle is the title of a new project.
	DefaultTitle = "Project Gantt Chart"
	// DefaultSubtitle is the subtitle of a new project.
	DefaultSubtitle = "Visualize project progress and schedule"
)

// Watermark positions.
const (
	TopLeft     = "top-left"
	TopRight    = "top-right"
	BottomLeft  = "bottom-left"
	BottomRight = "bottom-right"
	Center      = "center"
)

// Positions lists the valid watermark positions.
func Positions() []string {
	return []string{TopLeft, TopRight, BottomLeft, BottomRight, Center}
}

// Watermark describes the text stamped on exported snapshots.
type Watermark struct {
	Text     string  `json:"text"`
	Position string  `json:"pos"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
	FontSize int     `json:"fontSize"`
	Rotate   float64 `json:"rotate"`
}

// DefaultWatermark returns the watermark settings of a new project.
func DefaultWatermark() Watermark {
	return Watermark{
		Position: BottomRight,
		Color:    "#94a3b8",
		Opacity:  0.3,
		FontSize: 24,
		Rotate:   -30,
	}
}

// Enabled reports whether there is any text to stamp.
func (w Watermark) Enabled() bool {
	return w.Text != ""
}

// Project is the whole editable state of one chart.
type Project struct {
	Version    int
	CreatedAt  time.Time
	Categories []Category
	Tasks      []Task
	Watermark  Watermark
	Title      string
	Subtitle   string

	// Legacy is set when the project was decoded from a bare task array.
	Legacy bool
}

// New returns an empty project with default categories and settings.
func New() *Project {
	return &Project{
		Version:    CurrentVersion,
		Categories: DefaultCategories(),
		Tasks:      []Task{},
		Watermark:  DefaultWatermark(),
		Title:      DefaultTitle,
		Subtitle:   DefaultSubtitle,
	}
}

// Spans returns the layout spans of all tasks, in task order.
func (p *Project) Spans() []timeline.Span {
	spans := make([]timeline.Span, len(p.Tasks))
	for i, t := range p.Tasks {
		spans[i] = t.Span()
	}
	return spans
}

// NextID is one more than the largest task id, or 1 for an empty project.
func (p *Project) NextID() int {
	next := 0
	for _, t := range p.Tasks {
		if t.ID > next {
			next = t.ID
		}
	}
	return next + 1
}

// Task looks up a task by id.
func (p *Project) Task(id int) (Task, error) {
	for _, t := range p.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return Task{}, ErrTaskNotFound
}

// AddTask validates in and appends it with a fresh id.
func (p *Project) AddTask(in TaskInput) (Task, error) {
	if err := in.Validate(); err != nil {
		return Task{}, err
	}
	t := p.fromInput(p.NextID(), in)
	p.Tasks = append(p.Tasks, t)
	return t, nil
}

// UpdateTask replaces the task with the given id in place.
func (p *Project) UpdateTask(id int, in TaskInput) (Task, error) {
	if err := in.Validate(); err != nil {
		return Task{}, err
	}
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			p.Tasks[i] = p.fromInput(id, in)
			return p.Tasks[i], nil
		}
	}
	return Task{}, ErrTaskNotFound
}

// DeleteTask removes the task with the given id.
func (p *Project) DeleteTask(id int) error {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			p.Tasks = append(p.Tasks[:i], p.Tasks[i+1:]...)
			return nil
		}
	}
	return ErrTaskNotFound
}

// SortedTasks returns a copy of the tasks ordered by start date, then id.
func (p *Project) SortedTasks() []Task {
	out := append([]Task(nil), p.Tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Start.Equal(out[j].Start.Time) {
			return out[i].ID < out[j].ID
		}
		return out[i].Start.Before(out[j].Start.Time)
	})
	return out
}

func (p *Project) fromInput(id int, in TaskInput) Task {
	category := in.Category
	if category == "" {
		category = p.DefaultCategoryID()
	}
	return Task{
		ID:       id,
		Name:     in.Name,
		Start:    in.Start,
		End:      in.End,
		Progress: clampProgress(in.Progress),
		Category: category,
	}
}
