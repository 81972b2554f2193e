package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tableflip.dev/gantt/pkg/logging"
	"tableflip.dev/gantt/pkg/project"
)

func newTestPersistence(t *testing.T) (Persistence, string) {
	t.Helper()
	base := t.TempDir()
	p, err := Load(NewConfig(base), logging.Discard())
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	return p, base
}

func TestPersistenceRoundTrip(t *testing.T) {
	p, _ := newTestPersistence(t)

	proj := project.New()
	proj.Title = "Roadmap"
	if _, err := proj.AddTask(project.TaskInput{
		Name:  "Kickoff",
		Start: project.MustDate("2023-11-01"),
		End:   project.MustDate("2023-11-05"),
	}); err != nil {
		t.Fatalf("add task: %v", err)
	}

	if p.Exists("Q4/launch plan") {
		t.Fatalf("project should not exist yet")
	}
	if err := p.Save("Q4/launch plan", proj); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !p.Exists("Q4/launch plan") {
		t.Fatalf("project should exist after save")
	}

	got, err := p.Load("Q4/launch plan")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Title != "Roadmap" || len(got.Tasks) != 1 || got.Tasks[0].Name != "Kickoff" {
		t.Fatalf("loaded project = %+v", got)
	}
}

func TestPersistenceList(t *testing.T) {
	p, base := newTestPersistence(t)
	for _, name := range []string{"zeta", "alpha", "beta-2"} {
		if err := p.Save(name, project.New()); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	// Stray files are skipped.
	if err := os.WriteFile(filepath.Join(base, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatalf("write stray file: %v", err)
	}

	got := p.List(context.Background())
	want := []string{"alpha", "beta-2", "zeta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
}

func TestPersistenceDelete(t *testing.T) {
	p, _ := newTestPersistence(t)
	if err := p.Save("roadmap", project.New()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := p.Delete("roadmap"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.Load("roadmap"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if err := p.Delete("roadmap"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("second delete = %v", err)
	}
}

func TestPersistenceLoadsLegacyFile(t *testing.T) {
	p, base := newTestPersistence(t)
	dir := filepath.Join(base, projectsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	legacy := `[{"id":3,"name":"Old","start":"2023-01-02","end":"2023-01-04","progress":10,"category":"design"}]`
	if err := os.WriteFile(filepath.Join(dir, encodeName("old")+fileExt), []byte(legacy), 0o644); err != nil {
		t.Fatalf("write legacy file: %v", err)
	}

	got, err := p.Load("old")
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if !got.Legacy || got.Tasks[0].ID != 3 {
		t.Fatalf("legacy project = %+v", got)
	}
}

func TestEmptyNameRejected(t *testing.T) {
	p, _ := newTestPersistence(t)
	if err := p.Save("  ", project.New()); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if p.Exists("") {
		t.Fatalf("empty name cannot exist")
	}
}

func TestKeyTransforms(t *testing.T) {
	key, err := toKey("Q4/launch")
	if err != nil {
		t.Fatalf("toKey: %v", err)
	}
	pk := keyToPathTransform(key)
	if len(pk.Path) != 1 || pk.Path[0] != projectsDir {
		t.Fatalf("path = %v", pk.Path)
	}
	if back := pathToKeyTransform(pk); back != key {
		t.Fatalf("inverse transform = %q, want %q", back, key)
	}
	name, err := fromKey(key)
	if err != nil || name != "Q4/launch" {
		t.Fatalf("fromKey = %q, %v", name, err)
	}
}

func TestPersistenceLoadSeesOtherWriters(t *testing.T) {
	base := t.TempDir()
	writer, err := Load(NewConfig(base), logging.Discard())
	if err != nil {
		t.Fatalf("load writer: %v", err)
	}
	reader, err := Load(NewConfig(base), logging.Discard())
	if err != nil {
		t.Fatalf("load reader: %v", err)
	}

	proj := project.New()
	proj.Title = "before"
	if err := writer.Save("roadmap", proj); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, err := reader.Load("roadmap"); err != nil || got.Title != "before" {
		t.Fatalf("first load = %+v, %v", got, err)
	}

	proj.Title = "after"
	if err := writer.Save("roadmap", proj); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := reader.Load("roadmap")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got.Title != "after" {
		t.Fatalf("reader kept a stale copy, title %q", got.Title)
	}
}
