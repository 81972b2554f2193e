// Package mcp provides the Model Context Protocol server integration for gantt.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/chart"
	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/store"
	"tableflip.dev/gantt/pkg/timeline"
	"tableflip.dev/gantt/pkg/timeutil"
)

// Service coordinates persistence-backed operations that are shared by the MCP server.
type Service struct {
	app *app.Service
}

// ProjectSummary describes a project and basic aggregate metadata.
type ProjectSummary struct {
	Name            string `json:"name"`
	Title           string `json:"title"`
	TaskCount       int    `json:"taskCount"`
	Start           string `json:"start,omitempty"`
	End             string `json:"end,omitempty"`
	AverageProgress int    `json:"averageProgress"`
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Start         string `json:"start"`
	End           string `json:"end"`
	Days          int    `json:"days"`
	Progress      int    `json:"progress"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
	Color         string `json:"color"`
}

// ProjectDTO is the full project as served to MCP clients.
type ProjectDTO struct {
	Name       string             `json:"name"`
	Title      string             `json:"title"`
	Subtitle   string             `json:"subtitle"`
	Categories []project.Category `json:"categories"`
	Tasks      []TaskDTO          `json:"tasks"`
	Watermark  project.Watermark  `json:"watermark"`
}

// AddTaskOptions captures the parameters used to create a task.
type AddTaskOptions struct {
	Project  string
	Name     string
	Start    string
	End      string
	Progress int
	Category string
}

// UpdateTaskOptions lists the fields to change; nil fields are kept.
type UpdateTaskOptions struct {
	Project  string
	ID       int
	Name     *string
	Start    *string
	End      *string
	Progress *int
	Category *string
}

// NewService builds a service wrapper using the provided persistence layer.
func NewService(p store.Persistence) *Service {
	return &Service{app: &app.Service{Persistence: p}}
}

// ListProjects returns summaries for every stored project.
func (s *Service) ListProjects(ctx context.Context) ([]ProjectSummary, error) {
	names, err := s.app.Projects(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]ProjectSummary, 0, len(names))
	for _, name := range names {
		p, err := s.app.Project(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		summaries = append(summaries, summarize(name, p))
	}
	return summaries, nil
}

// Project returns the named project with resolved task categories.
func (s *Service) Project(ctx context.Context, name string) (ProjectDTO, error) {
	if err := requireName(name); err != nil {
		return ProjectDTO{}, err
	}
	p, err := s.app.Project(ctx, name)
	if err != nil {
		return ProjectDTO{}, err
	}
	return ProjectDTO{
		Name:       name,
		Title:      p.Title,
		Subtitle:   p.Subtitle,
		Categories: p.Categories,
		Tasks:      toTaskDTOs(p, p.SortedTasks()),
		Watermark:  p.Watermark,
	}, nil
}

// ListTasks returns the tasks of a project ordered by start date.
func (s *Service) ListTasks(ctx context.Context, name string) ([]TaskDTO, error) {
	dto, err := s.Project(ctx, name)
	if err != nil {
		return nil, err
	}
	return dto.Tasks, nil
}

// AddTask creates a task.
func (s *Service) AddTask(ctx context.Context, opts AddTaskOptions) (TaskDTO, error) {
	if err := requireName(opts.Project); err != nil {
		return TaskDTO{}, err
	}
	start, err := project.ParseDate(opts.Start)
	if err != nil {
		return TaskDTO{}, err
	}
	end, err := project.ParseDate(opts.End)
	if err != nil {
		return TaskDTO{}, err
	}
	t, err := s.app.AddTask(ctx, opts.Project, project.TaskInput{
		Name:     opts.Name,
		Start:    start,
		End:      end,
		Progress: opts.Progress,
		Category: opts.Category,
	})
	if err != nil {
		return TaskDTO{}, err
	}
	return s.taskDTO(ctx, opts.Project, t)
}

// UpdateTask changes the given fields of a task.
func (s *Service) UpdateTask(ctx context.Context, opts UpdateTaskOptions) (TaskDTO, error) {
	if err := requireName(opts.Project); err != nil {
		return TaskDTO{}, err
	}
	var start, end *project.Date
	if opts.Start != nil {
		d, err := project.ParseDate(*opts.Start)
		if err != nil {
			return TaskDTO{}, err
		}
		start = &d
	}
	if opts.End != nil {
		d, err := project.ParseDate(*opts.End)
		if err != nil {
			return TaskDTO{}, err
		}
		end = &d
	}
	t, err := s.app.EditTask(ctx, opts.Project, opts.ID, func(in *project.TaskInput) {
		if opts.Name != nil {
			in.Name = *opts.Name
		}
		if start != nil {
			in.Start = *start
		}
		if end != nil {
			in.End = *end
		}
		if opts.Progress != nil {
			in.Progress = *opts.Progress
		}
		if opts.Category != nil {
			in.Category = *opts.Category
		}
	})
	if err != nil {
		return TaskDTO{}, err
	}
	return s.taskDTO(ctx, opts.Project, t)
}

// DeleteTask removes a task.
func (s *Service) DeleteTask(ctx context.Context, name string, id int) error {
	if err := requireName(name); err != nil {
		return err
	}
	return s.app.DeleteTask(ctx, name, id)
}

// Layout computes the chart layout of a project for a granularity name.
func (s *Service) Layout(ctx context.Context, name, view string, viewport float64) (*chart.Chart, error) {
	if err := requireName(name); err != nil {
		return nil, err
	}
	g, err := timeline.ParseGranularity(view)
	if err != nil {
		return nil, err
	}
	return s.app.Chart(ctx, name, chart.Options{Granularity: g, Viewport: viewport})
}

var errNameRequired = errors.New("project name is required")

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errNameRequired
	}
	return nil
}

func (s *Service) taskDTO(ctx context.Context, name string, t project.Task) (TaskDTO, error) {
	p, err := s.app.Project(ctx, name)
	if err != nil {
		return TaskDTO{}, err
	}
	return toTaskDTO(p, t), nil
}

func summarize(name string, p *project.Project) ProjectSummary {
	sum := ProjectSummary{Name: name, Title: p.Title, TaskCount: len(p.Tasks)}
	if len(p.Tasks) == 0 {
		return sum
	}
	var lo, hi time.Time
	total := 0
	for i, t := range p.Tasks {
		if i == 0 || t.Start.Before(lo) {
			lo = t.Start.Time
		}
		if i == 0 || t.End.After(hi) {
			hi = t.End.Time
		}
		total += t.Progress
	}
	sum.Start = timeutil.FormatDate(lo)
	sum.End = timeutil.FormatDate(hi)
	sum.AverageProgress = total / len(p.Tasks)
	return sum
}

func toTaskDTOs(p *project.Project, tasks []project.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskDTO(p, t)
	}
	return out
}

func toTaskDTO(p *project.Project, t project.Task) TaskDTO {
	c := p.Category(t.Category)
	return TaskDTO{
		ID:            t.ID,
		Name:          t.Name,
		Start:         t.Start.String(),
		End:           t.End.String(),
		Days:          t.Days(),
		Progress:      t.Progress,
		Category:      t.Category,
		CategoryLabel: c.Label,
		Color:         c.Color,
	}
}
