package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/gantt/pkg/logging"
	"tableflip.dev/gantt/pkg/project"
)

func TestPersistenceWatchEmitsProjectChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(NewConfig(base), logging.Discard())
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before saving.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save("roadmap", project.New()); err != nil {
		t.Fatalf("save project: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventProjectsInvalidated {
				return
			}
			if evt.Type == EventProjectChanged {
				if evt.Project != "roadmap" {
					t.Fatalf("expected project 'roadmap', got %q", evt.Project)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for project change event")
		}
	}
}

func TestEventThrottleCoalesces(t *testing.T) {
	throttle := newEventThrottle(20 * time.Millisecond)
	defer throttle.Stop()

	got := make(chan Event, 8)
	send := func(ev Event) { got <- ev }
	for i := 0; i < 5; i++ {
		throttle.Enqueue(Event{Type: EventProjectChanged, Project: "roadmap"}, send)
	}

	select {
	case ev := <-got:
		if ev.Project != "roadmap" {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	select {
	case ev := <-got:
		t.Fatalf("burst should produce one event, got extra %+v", ev)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestPersistenceWatchSkipsUnchangedContent(t *testing.T) {
	base := t.TempDir()
	p, err := Load(NewConfig(base), logging.Discard())
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	proj := project.New()
	proj.Title = "before"
	if err := p.Save("roadmap", proj); err != nil {
		t.Fatalf("save project: %v", err)
	}
	path := filepath.Join(base, projectsDir, encodeName("roadmap")+fileExt)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("touch: %v", err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	select {
	case evt := <-ch:
		t.Fatalf("touch without new content produced %+v", evt)
	case <-time.After(300 * time.Millisecond):
	}

	proj.Title = "after"
	if err := p.Save("roadmap", proj); err != nil {
		t.Fatalf("save project: %v", err)
	}
	select {
	case evt := <-ch:
		if evt.Type != EventProjectChanged || evt.Project != "roadmap" {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for project change event")
	}
}

func TestContentSums(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	seen := make(contentSums)
	if seen.changed("p", path) {
		t.Fatalf("a file never seen and not present is not a change")
	}
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !seen.changed("p", path) {
		t.Fatalf("new file should be a change")
	}
	if seen.changed("p", path) {
		t.Fatalf("same bytes should not be a change")
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if !seen.changed("p", path) {
		t.Fatalf("removal should be a change")
	}
}
