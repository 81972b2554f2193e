package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrUnknownFormat is returned for JSON that is neither a project document
// nor a legacy task array.
var ErrUnknownFormat = errors.New("project: unrecognized project file")

type fileWatermark struct {
	Text     *string  `json:"text"`
	Position *string  `json:"pos"`
	Color    *string  `json:"color"`
	Opacity  *float64 `json:"opacity"`
	FontSize *int     `json:"fontSize"`
	Rotate   *float64 `json:"rotate"`
}

type fileDocument struct {
	Version    *int           `json:"version"`
	CreatedAt  string         `json:"createdAt,omitempty"`
	Categories []Category     `json:"categories"`
	Tasks      *[]Task        `json:"tasks"`
	Watermark  *fileWatermark `json:"watermark"`
	Title      string         `json:"projectTitle"`
	Subtitle   string         `json:"projectSubtitle"`
}

// Encode renders p as an indented project document. CreatedAt is stamped
// with now.
func Encode(p *Project, now time.Time) ([]byte, error) {
	w := p.Watermark
	tasks := p.Tasks
	if tasks == nil {
		tasks = []Task{}
	}
	categories := p.Categories
	if categories == nil {
		categories = []Category{}
	}
	version := CurrentVersion
	doc := fileDocument{
		Version:    &version,
		CreatedAt:  now.UTC().Format(time.RFC3339Nano),
		Categories: categories,
		Tasks:      &tasks,
		Watermark: &fileWatermark{
			Text:     &w.Text,
			Position: &w.Position,
			Color:    &w.Color,
			Opacity:  &w.Opacity,
			FontSize: &w.FontSize,
			Rotate:   &w.Rotate,
		},
		Title:    p.Title,
		Subtitle: p.Subtitle,
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode reads a project document. A bare array is accepted as a legacy
// task list and gets the default categories.
func Decode(data []byte) (*Project, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrUnknownFormat
	}

	switch trimmed[0] {
	case '[':
		if err := validateLegacy(trimmed); err != nil {
			return nil, err
		}
		var tasks []Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, fmt.Errorf("project: decode legacy tasks: %w", err)
		}
		p := New()
		p.Tasks = tasks
		p.Legacy = true
		return p, nil
	case '{':
		return decodeDocument(trimmed)
	default:
		return nil, ErrUnknownFormat
	}
}

// validateLegacy checks a bare task array against the task rules of the
// document schema, so a task without dates is rejected the same way in both
// formats.
func validateLegacy(data []byte) error {
	doc := make([]byte, 0, len(data)+32)
	doc = append(doc, `{"version":1,"tasks":`...)
	doc = append(doc, data...)
	doc = append(doc, '}')
	return Validate(doc)
}

func decodeDocument(data []byte) (*Project, error) {
	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("project: decode: %w", err)
	}
	if doc.Version == nil || *doc.Version == 0 || doc.Tasks == nil {
		return nil, ErrUnknownFormat
	}
	if err := Validate(data); err != nil {
		return nil, err
	}

	p := New()
	p.Version = *doc.Version
	p.Tasks = *doc.Tasks
	if doc.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339Nano, doc.CreatedAt); err == nil {
			p.CreatedAt = t
		}
	}
	if len(doc.Categories) > 0 {
		p.Categories = doc.Categories
	}
	if w := doc.Watermark; w != nil {
		if w.Text != nil {
			p.Watermark.Text = *w.Text
		}
		if w.Position != nil && *w.Position != "" {
			p.Watermark.Position = *w.Position
		}
		if w.Color != nil && *w.Color != "" {
			p.Watermark.Color = *w.Color
		}
		if w.Opacity != nil {
			p.Watermark.Opacity = *w.Opacity
		}
		if w.FontSize != nil && *w.FontSize != 0 {
			p.Watermark.FontSize = *w.FontSize
		}
		if w.Rotate != nil {
			p.Watermark.Rotate = *w.Rotate
		}
	}
	if doc.Title != "" {
		p.Title = doc.Title
	}
	if doc.Subtitle != "" {
		p.Subtitle = doc.Subtitle
	}
	return p, nil
}
