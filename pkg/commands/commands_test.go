package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/gantt/pkg/project"
)

// setup points the store at a fresh directory and keeps the logger quiet.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("GANTT_CONFIG_PATH", t.TempDir())
	t.Setenv("GANTT_PATH", dir)
	t.Setenv("GANTT_PROJECT", "")
	t.Setenv("GANTT_VIEW", "")
	t.Setenv("GANTT_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("gantt %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func seed(t *testing.T) {
	t.Helper()
	mustRun(t, "add", "task", "Kickoff", "--start", "2023-11-01", "--end", "2023-11-05", "--progress", "100", "--category", "planning")
	mustRun(t, "add", "task", "Backend", "API", "--start", "2023-11-26", "--for", "5d", "--progress", "30", "-c", "development")
}

func TestAddAndList(t *testing.T) {
	setup(t)
	seed(t)

	out := mustRun(t, "list")
	for _, want := range []string{"Kickoff", "Backend API", "2023-11-30", "Development", "30%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("list missing %q:\n%s", want, out)
		}
	}

	if out := mustRun(t, "-p", "other", "list"); strings.Contains(out, "Kickoff") {
		t.Fatalf("projects are not isolated:\n%s", out)
	}
	if out := mustRun(t, "list", "--all"); !strings.Contains(out, "default") {
		t.Fatalf("list --all should name the default project:\n%s", out)
	}
}

func TestAddRequiresName(t *testing.T) {
	setup(t)
	if _, err := run(t, "add", "task", "--start", "2023-11-01"); !errors.Is(err, project.ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
	if _, err := run(t, "add", "task", "x", "--start", "2023-11-01", "--category", "nope"); !errors.Is(err, project.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestEditCompleteDelete(t *testing.T) {
	setup(t)
	seed(t)

	out := mustRun(t, "edit", "2", "--progress", "80", "--name", "Backend")
	if !strings.Contains(out, "80%") || strings.Contains(out, "Backend API") {
		t.Fatalf("edit not applied:\n%s", out)
	}

	out = mustRun(t, "complete", "2")
	if strings.Contains(out, "80%") {
		t.Fatalf("complete not applied:\n%s", out)
	}

	mustRun(t, "delete", "1")
	out = mustRun(t, "rm", "2")
	if !strings.Contains(out, "no tasks") {
		t.Fatalf("expected empty project:\n%s", out)
	}

	if _, err := run(t, "delete", "7"); !errors.Is(err, project.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

func TestJSONErrors(t *testing.T) {
	setup(t)
	out, err := run(t, "--json", "edit", "9", "--progress", "10")
	if err != nil {
		t.Fatalf("--json should swallow the error, got %v", err)
	}
	var got map[string]string
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &got); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if got["error"] != project.ErrTaskNotFound.Error() {
		t.Fatalf("got %v", got)
	}
}

func TestLayout(t *testing.T) {
	setup(t)
	seed(t)

	out := mustRun(t, "layout", "--view", "day", "--today", "2023-11-15")
	var c struct {
		Layout struct {
			Granularity string  `json:"granularity"`
			Width       float64 `json:"widthPx"`
			Columns     []any   `json:"columns"`
			HasToday    bool    `json:"hasToday"`
		} `json:"layout"`
		Rows []struct {
			Geometry struct {
				Left  float64 `json:"leftPx"`
				Width float64 `json:"widthPx"`
			} `json:"geometry"`
		} `json:"rows"`
	}
	if err := json.Unmarshal([]byte(out), &c); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if c.Layout.Granularity != "day" || len(c.Layout.Columns) != 37 || !c.Layout.HasToday {
		t.Fatalf("unexpected layout %+v", c.Layout)
	}
	if len(c.Rows) != 2 || c.Rows[0].Geometry.Left != 80 || c.Rows[0].Geometry.Width != 200 {
		t.Fatalf("unexpected rows %+v", c.Rows)
	}

	out = mustRun(t, "layout", "--view", "week", "-o", "yaml")
	if !strings.Contains(out, "granularity: week") || !strings.Contains(out, "2023-11-01") {
		t.Fatalf("yaml layout:\n%s", out)
	}

	if _, err := run(t, "layout", "--view", "fortnight"); err == nil {
		t.Fatalf("expected error for unknown view")
	}
}

func TestShow(t *testing.T) {
	setup(t)
	seed(t)
	out := mustRun(t, "show", "--view", "week", "--today", "2023-11-15")
	for _, want := range []string{project.DefaultTitle, "Kickoff", "Backend API", "█"} {
		if !strings.Contains(out, want) {
			t.Fatalf("show missing %q:\n%s", want, out)
		}
	}
}

func TestTitleAndWatermark(t *testing.T) {
	setup(t)
	out := mustRun(t, "title", "Q4", "Launch", "--subtitle", "Platform team")
	if !strings.Contains(out, "Q4 Launch") || !strings.Contains(out, "Platform team") {
		t.Fatalf("title output:\n%s", out)
	}

	out = mustRun(t, "watermark", "--text", "DRAFT", "--position", "center", "--opacity", "0.5")
	if !strings.Contains(out, "DRAFT") || !strings.Contains(out, "center") {
		t.Fatalf("watermark output:\n%s", out)
	}
	if _, err := run(t, "watermark", "--opacity", "2"); err == nil {
		t.Fatalf("expected error for opacity 2")
	}
	if _, err := run(t, "watermark", "--position", "middle"); err == nil {
		t.Fatalf("expected error for unknown position")
	}
	out = mustRun(t, "watermark", "--clear")
	if !strings.Contains(out, "(none)") {
		t.Fatalf("watermark not cleared:\n%s", out)
	}
}

func TestCategories(t *testing.T) {
	setup(t)
	seed(t)

	out := mustRun(t, "category", "add", "Research", "--color", "#0ea5e9")
	if !strings.Contains(out, "Research") || !strings.Contains(out, "#0ea5e9") {
		t.Fatalf("category add output:\n%s", out)
	}
	if out := mustRun(t, "add", "category", "Ops"); !strings.Contains(out, "Ops") {
		t.Fatalf("add category output:\n%s", out)
	}

	if _, err := run(t, "category", "delete", "planning"); !errors.Is(err, project.ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got %v", err)
	}
	mustRun(t, "category", "delete", "planning", "--force")
	out = mustRun(t, "list")
	if !strings.Contains(out, "Uncategorized") {
		t.Fatalf("orphaned task should render Uncategorized:\n%s", out)
	}
	if out := mustRun(t, "category", "list"); strings.Contains(out, "Planning") {
		t.Fatalf("planning still listed:\n%s", out)
	}
}

func TestExportImport(t *testing.T) {
	setup(t)
	seed(t)
	mustRun(t, "title", "Roadmap")

	out := mustRun(t, "export", "--format", "json", "--out", "-")
	p, err := project.Decode([]byte(out))
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if p.Title != "Roadmap" || len(p.Tasks) != 2 {
		t.Fatalf("unexpected export %+v", p)
	}

	svgPath := filepath.Join(t.TempDir(), "roadmap.svg")
	mustRun(t, "export", "--view", "month", "--out", svgPath)
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg") || !strings.Contains(string(data), "Kickoff (100%)") {
		t.Fatalf("unexpected svg:\n%s", data)
	}

	if _, err := run(t, "export", "--format", "png", "--out", "-"); err == nil {
		t.Fatalf("expected error for png")
	}

	legacy := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(legacy, []byte(`[{"id":4,"name":"Migrated","start":"2023-01-02","end":"2023-01-06","progress":20,"category":"design"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	out = mustRun(t, "-p", "legacy", "import", legacy)
	if !strings.Contains(out, "Migrated") || !strings.Contains(out, "Design") {
		t.Fatalf("import output:\n%s", out)
	}
	if _, err := run(t, "import", filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestInfo(t *testing.T) {
	dir := setup(t)
	seed(t)
	out := mustRun(t, "info")
	if !strings.Contains(out, dir) || !strings.Contains(out, "* default") {
		t.Fatalf("info output:\n%s", out)
	}
}
