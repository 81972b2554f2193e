package project

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrCategoryNotFound is returned when no category has the requested id.
	ErrCategoryNotFound = errors.New("project: category not found")
	// ErrLastCategory is returned when deleting the only remaining category.
	ErrLastCategory = errors.New("project: at least one category is required")
	// ErrCategoryInUse is returned when deleting a referenced category without force.
	ErrCategoryInUse = errors.New("project: category is used by tasks")
	// ErrLabelRequired is returned for a category without a label.
	ErrLabelRequired = errors.New("project: category label required")
)

// Category groups tasks under a label and bar color.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// Uncategorized is what an unknown category reference resolves to.
var Uncategorized = Category{Label: "Uncategorized", Color: "#94a3b8"}

// DefaultCategories returns the categories of a new project.
func DefaultCategories() []Category {
	return []Category{
		{ID: "planning", Label: "Planning", Color: "#3b82f6"},
		{ID: "design", Label: "Design", Color: "#a855f7"},
		{ID: "development", Label: "Development", Color: "#10b981"},
		{ID: "testing", Label: "Testing", Color: "#f59e0b"},
		{ID: "deploy", Label: "Deploy", Color: "#64748b"},
	}
}

// newCategoryID is swapped in tests.
var newCategoryID = func() string {
	return "cat_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Category resolves id, falling back to Uncategorized.
func (p *Project) Category(id string) Category {
	if c, ok := p.findCategory(id); ok {
		return c
	}
	return Uncategorized
}

// HasCategory reports whether id names an existing category.
func (p *Project) HasCategory(id string) bool {
	_, ok := p.findCategory(id)
	return ok
}

// AddCategory appends a new category with a generated id.
func (p *Project) AddCategory(label, color string) (Category, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Category{}, ErrLabelRequired
	}
	if color == "" {
		color = "#000000"
	}
	c := Category{ID: newCategoryID(), Label: label, Color: color}
	p.Categories = append(p.Categories, c)
	return c, nil
}

// UpdateCategory changes the label and color of an existing category. Empty
// values leave the field unchanged.
func (p *Project) UpdateCategory(id, label, color string) (Category, error) {
	for i := range p.Categories {
		if p.Categories[i].ID != id {
			continue
		}
		if label = strings.TrimSpace(label); label != "" {
			p.Categories[i].Label = label
		}
		if color != "" {
			p.Categories[i].Color = color
		}
		return p.Categories[i], nil
	}
	return Category{}, ErrCategoryNotFound
}

// CategoryUsage counts the tasks that reference id.
func (p *Project) CategoryUsage(id string) int {
	n := 0
	for _, t := range p.Tasks {
		if t.Category == id {
			n++
		}
	}
	return n
}

// DeleteCategory removes a category. The last category cannot be removed and
// a category still referenced by tasks needs force; those tasks then render
// as Uncategorized.
func (p *Project) DeleteCategory(id string, force bool) error {
	idx := -1
	for i, c := range p.Categories {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCategoryNotFound
	}
	if len(p.Categories) <= 1 {
		return ErrLastCategory
	}
	if !force && p.CategoryUsage(id) > 0 {
		return ErrCategoryInUse
	}
	p.Categories = append(p.Categories[:idx], p.Categories[idx+1:]...)
	return nil
}

// DefaultCategoryID is the category assigned to tasks submitted without one.
func (p *Project) DefaultCategoryID() string {
	if len(p.Categories) == 0 {
		return ""
	}
	return p.Categories[0].ID
}

func (p *Project) findCategory(id string) (Category, bool) {
	for _, c := range p.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
