package project

import (
	"errors"
	"testing"
	"time"
)

func sampleProject() *Project {
	p := New()
	p.Tasks = []Task{
		{ID: 1, Name: "Kickoff and requirements", Start: MustDate("2023-11-01"), End: MustDate("2023-11-05"), Progress: 100, Category: "planning"},
		{ID: 2, Name: "UI/UX prototype", Start: MustDate("2023-11-06"), End: MustDate("2023-11-12"), Progress: 80, Category: "design"},
		{ID: 5, Name: "Integration testing", Start: MustDate("2023-11-26"), End: MustDate("2023-11-30"), Progress: 0, Category: "testing"},
	}
	return p
}

func TestNextID(t *testing.T) {
	if got := New().NextID(); got != 1 {
		t.Fatalf("empty project NextID = %d, want 1", got)
	}
	if got := sampleProject().NextID(); got != 6 {
		t.Fatalf("NextID = %d, want 6", got)
	}
}

func TestAddTask(t *testing.T) {
	p := sampleProject()
	task, err := p.AddTask(TaskInput{
		Name:     "Backend API",
		Start:    MustDate("2023-11-15"),
		End:      MustDate("2023-11-25"),
		Progress: 130,
	})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}
	if task.ID != 6 {
		t.Fatalf("expected id 6, got %d", task.ID)
	}
	if task.Progress != 100 {
		t.Fatalf("progress should clamp to 100, got %d", task.Progress)
	}
	if task.Category != "planning" {
		t.Fatalf("empty category should default to first, got %q", task.Category)
	}
	if len(p.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(p.Tasks))
	}
}

func TestAddTaskRejectsIncomplete(t *testing.T) {
	tests := []struct {
		in   TaskInput
		want error
	}{
		{TaskInput{Start: MustDate("2023-11-01"), End: MustDate("2023-11-02")}, ErrNameRequired},
		{TaskInput{Name: "  ", Start: MustDate("2023-11-01"), End: MustDate("2023-11-02")}, ErrNameRequired},
		{TaskInput{Name: "x", End: MustDate("2023-11-02")}, ErrStartRequired},
		{TaskInput{Name: "x", Start: MustDate("2023-11-01")}, ErrEndRequired},
	}
	for _, tc := range tests {
		p := New()
		if _, err := p.AddTask(tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("AddTask(%+v) = %v, want %v", tc.in, err, tc.want)
		}
		if len(p.Tasks) != 0 {
			t.Fatalf("rejected task was stored")
		}
	}
}

func TestAddTaskAcceptsInvertedSpan(t *testing.T) {
	p := New()
	task, err := p.AddTask(TaskInput{Name: "x", Start: MustDate("2023-11-05"), End: MustDate("2023-11-01")})
	if err != nil {
		t.Fatalf("inverted span should be accepted: %v", err)
	}
	if task.Days() != 0 {
		t.Fatalf("inverted span days = %d", task.Days())
	}
}

func TestUpdateAndDeleteTask(t *testing.T) {
	p := sampleProject()
	in := FromTask(p.Tasks[1])
	in.Progress = 90
	got, err := p.UpdateTask(2, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Progress != 90 || p.Tasks[1].Progress != 90 || p.Tasks[1].ID != 2 {
		t.Fatalf("task not updated in place: %+v", p.Tasks[1])
	}
	if _, err := p.UpdateTask(42, in); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	if err := p.DeleteTask(2); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.Task(2); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("task 2 still present")
	}
	if err := p.DeleteTask(2); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("second delete = %v", err)
	}
}

func TestCategoryFallback(t *testing.T) {
	p := sampleProject()
	if c := p.Category("design"); c.Label != "Design" {
		t.Fatalf("design category = %+v", c)
	}
	if c := p.Category("marketing"); c != Uncategorized {
		t.Fatalf("unknown category = %+v, want Uncategorized", c)
	}
}

func TestCategoryLifecycle(t *testing.T) {
	orig := newCategoryID
	defer func() { newCategoryID = orig }()
	newCategoryID = func() string { return "cat_test" }

	p := sampleProject()
	c, err := p.AddCategory("Marketing", "#ff0000")
	if err != nil {
		t.Fatalf("add category: %v", err)
	}
	if c.ID != "cat_test" || !p.HasCategory("cat_test") {
		t.Fatalf("category not added: %+v", c)
	}
	if _, err := p.AddCategory(" ", "#fff"); !errors.Is(err, ErrLabelRequired) {
		t.Fatalf("expected ErrLabelRequired, got %v", err)
	}

	if _, err := p.UpdateCategory("cat_test", "Growth", ""); err != nil {
		t.Fatalf("update category: %v", err)
	}
	if got := p.Category("cat_test"); got.Label != "Growth" || got.Color != "#ff0000" {
		t.Fatalf("category after update = %+v", got)
	}

	if err := p.DeleteCategory("design", false); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	if err := p.DeleteCategory("design", true); err != nil {
		t.Fatalf("forced delete: %v", err)
	}
	if got := p.Category(p.Tasks[1].Category); got != Uncategorized {
		t.Fatalf("orphaned task should be uncategorized, got %+v", got)
	}
	if err := p.DeleteCategory("nope", true); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDeleteLastCategory(t *testing.T) {
	p := New()
	p.Categories = p.Categories[:1]
	if err := p.DeleteCategory("planning", true); !errors.Is(err, ErrLastCategory) {
		t.Fatalf("expected ErrLastCategory, got %v", err)
	}
}

func TestSortedTasks(t *testing.T) {
	p := sampleProject()
	p.Tasks[0], p.Tasks[2] = p.Tasks[2], p.Tasks[0]
	sorted := p.SortedTasks()
	if sorted[0].ID != 1 || sorted[2].ID != 5 {
		t.Fatalf("unexpected order: %d %d %d", sorted[0].ID, sorted[1].ID, sorted[2].ID)
	}
	if p.Tasks[0].ID != 5 {
		t.Fatalf("SortedTasks must not reorder the project")
	}
}

func TestSpans(t *testing.T) {
	spans := sampleProject().Spans()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans, got %d", len(spans))
	}
	if !spans[0].Start.Equal(time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("span start = %v", spans[0].Start)
	}
}

func TestSuggestFileName(t *testing.T) {
	now := time.Date(2023, 11, 20, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		title string
		mode  SaveMode
		want  string
	}{
		{"Roadmap", SaveProject, "Roadmap_2023-11-20"},
		{` Q4: a/b? `, SaveProject, "Q4_ a_b__2023-11-20"},
		{"", SaveProject, "gantt_project_2023-11-20"},
		{"   ", SaveImage, "gantt_snapshot_2023-11-20"},
	}
	for _, tc := range tests {
		if got := SuggestFileName(tc.title, tc.mode, now); got != tc.want {
			t.Errorf("SuggestFileName(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}
