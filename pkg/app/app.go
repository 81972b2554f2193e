package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/gantt/pkg/chart"
	"tableflip.dev/gantt/pkg/project"
	"tableflip.dev/gantt/pkg/store"
)

// Service provides high-level project operations on top of persistence so
// the CLI, the viewer and the MCP server share one code path.
type Service struct {
	Persistence store.Persistence

	// Now defaults to time.Now.
	Now func() time.Time
}

var errNoPersistence = errors.New("app: no persistence configured")

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Projects returns the sorted project names.
func (s *Service) Projects(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.List(ctx), nil
}

// Project loads a project. A project that was never saved comes back as a
// fresh default project.
func (s *Service) Project(ctx context.Context, name string) (*project.Project, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	p, err := s.Persistence.Load(name)
	if errors.Is(err, store.ErrProjectNotFound) {
		return project.New(), nil
	}
	return p, err
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// update loads name, applies fn and saves the result unless fn fails.
func (s *Service) update(ctx context.Context, name string, fn func(p *project.Project) error) (*project.Project, error) {
	p, err := s.Project(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.Legacy = false
	if err := s.Persistence.Save(name, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddTask appends a task to the named project.
func (s *Service) AddTask(ctx context.Context, name string, in project.TaskInput) (project.Task, error) {
	var added project.Task
	_, err := s.update(ctx, name, func(p *project.Project) error {
		if err := checkCategory(p, in.Category); err != nil {
			return err
		}
		t, err := p.AddTask(in)
		added = t
		return err
	})
	return added, err
}

// EditTask applies patch to the current values of task id.
func (s *Service) EditTask(ctx context.Context, name string, id int, patch func(in *project.TaskInput)) (project.Task, error) {
	var edited project.Task
	_, err := s.update(ctx, name, func(p *project.Project) error {
		cur, err := p.Task(id)
		if err != nil {
			return err
		}
		in := project.FromTask(cur)
		if patch != nil {
			patch(&in)
		}
		if in.Category != cur.Category {
			if err := checkCategory(p, in.Category); err != nil {
				return err
			}
		}
		t, err := p.UpdateTask(id, in)
		edited = t
		return err
	})
	return edited, err
}

// DeleteTask removes task id from the named project.
func (s *Service) DeleteTask(ctx context.Context, name string, id int) error {
	_, err := s.update(ctx, name, func(p *project.Project) error {
		return p.DeleteTask(id)
	})
	return err
}

// AddCategory creates a category in the named project.
func (s *Service) AddCategory(ctx context.Context, name, label, color string) (project.Category, error) {
	var added project.Category
	_, err := s.update(ctx, name, func(p *project.Project) error {
		c, err := p.AddCategory(label, color)
		added = c
		return err
	})
	return added, err
}

// DeleteCategory removes a category. force allows removing a category that
// tasks still reference.
func (s *Service) DeleteCategory(ctx context.Context, name, id string, force bool) error {
	_, err := s.update(ctx, name, func(p *project.Project) error {
		return p.DeleteCategory(id, force)
	})
	return err
}

// SetTitle changes the chart title and, when non-empty, the subtitle.
func (s *Service) SetTitle(ctx context.Context, name, title, subtitle string) (*project.Project, error) {
	return s.update(ctx, name, func(p *project.Project) error {
		p.Title = title
		if subtitle != "" {
			p.Subtitle = subtitle
		}
		return nil
	})
}

// SetWatermark applies patch to the watermark settings.
func (s *Service) SetWatermark(ctx context.Context, name string, patch func(w *project.Watermark)) (project.Watermark, error) {
	p, err := s.update(ctx, name, func(p *project.Project) error {
		patch(&p.Watermark)
		return validateWatermark(p.Watermark)
	})
	if err != nil {
		return project.Watermark{}, err
	}
	return p.Watermark, nil
}

// Import replaces the named project with the decoded contents of data.
func (s *Service) Import(ctx context.Context, name string, data []byte) (*project.Project, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	p, err := project.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.Save(name, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Export encodes the named project as a project file.
func (s *Service) Export(ctx context.Context, name string) ([]byte, error) {
	p, err := s.Project(ctx, name)
	if err != nil {
		return nil, err
	}
	return project.Encode(p, s.now())
}

// Chart lays out the named project. A zero opts.Now uses the service clock.
func (s *Service) Chart(ctx context.Context, name string, opts chart.Options) (*chart.Chart, error) {
	p, err := s.Project(ctx, name)
	if err != nil {
		return nil, err
	}
	if opts.Now.IsZero() {
		opts.Now = s.now()
	}
	return chart.Build(p, opts), nil
}

func checkCategory(p *project.Project, id string) error {
	if id == "" || p.HasCategory(id) {
		return nil
	}
	return fmt.Errorf("%w: %s", project.ErrCategoryNotFound, id)
}

func validateWatermark(w project.Watermark) error {
	if w.Opacity < 0 || w.Opacity > 1 {
		return fmt.Errorf("app: watermark opacity %v out of range [0,1]", w.Opacity)
	}
	if w.FontSize < 0 {
		return fmt.Errorf("app: watermark font size %d must be positive", w.FontSize)
	}
	for _, pos := range project.Positions() {
		if w.Position == pos {
			return nil
		}
	}
	return fmt.Errorf("app: unknown watermark position %q", w.Position)
}
