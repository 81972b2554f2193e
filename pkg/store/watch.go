package store

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventProjectChanged means the named project file was written or
	// removed.
	EventProjectChanged EventType = iota

	// EventProjectsInvalidated means the change could not be attributed to
	// one project; callers should reload everything they show.
	EventProjectsInvalidated
)

func (t EventType) String() string {
	switch t {
	case EventProjectChanged:
		return "changed"
	case EventProjectsInvalidated:
		return "invalidated"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type    EventType
	Project string
}

// Watch streams change events until ctx is cancelled. Callers should drain the
// returned channel to avoid blocking the watcher. The channel is closed once
// ctx is done or the watcher encounters an unrecoverable error.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := ensureDir(filepath.Join(p.basePath, projectsDir)); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				p.log.Warn("watcher close", "err", err)
			}
		})
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("store: watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		// Directories created later are added once.
		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		seen := p.snapshot()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Consumer is behind; it will catch up on the next event.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.log.Debug("watcher error", "err", err)
				throttle.Enqueue(Event{Type: EventProjectsInvalidated}, send)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Op&fsnotify.Create == fsnotify.Create {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						absDir := filepath.Clean(evt.Name)
						if _, found := watched[absDir]; !found {
							if err := watcher.Add(absDir); err != nil {
								p.log.Warn("watch directory", "dir", absDir, "err", err)
							} else {
								watched[absDir] = struct{}{}
							}
						}
						throttle.Enqueue(Event{Type: EventProjectsInvalidated}, send)
						continue
					}
				}

				name := p.projectForPath(evt.Name)
				if name == "" {
					throttle.Enqueue(Event{Type: EventProjectsInvalidated}, send)
					continue
				}

				if !seen.changed(name, evt.Name) {
					continue
				}
				throttle.Enqueue(Event{Type: EventProjectChanged, Project: name}, send)
			}
		}
	}()

	return events, nil
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// projectForPath maps a file under the store back to its project name, or
// returns "" for anything else.
func (p *persistence) projectForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil || rel == "." {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || parts[0] != projectsDir || !strings.HasSuffix(parts[1], fileExt) {
		return ""
	}
	name, err := decodeName(strings.TrimSuffix(parts[1], fileExt))
	if err != nil {
		return ""
	}
	return name
}

// contentSums remembers the digest of every project file so touches, chmods
// and rewrites with identical bytes do not count as changes.
type contentSums map[string][sha256.Size]byte

func (p *persistence) snapshot() contentSums {
	seen := make(contentSums)
	entries, err := os.ReadDir(filepath.Join(p.basePath, projectsDir))
	if err != nil {
		return seen
	}
	for _, e := range entries {
		path := filepath.Join(p.basePath, projectsDir, e.Name())
		if name := p.projectForPath(path); name != "" {
			seen.changed(name, path)
		}
	}
	return seen
}

// changed records the current digest of the file at path and reports whether
// it differs from the last one seen for name. A missing file is a change.
func (s contentSums) changed(name, path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		_, had := s[name]
		delete(s, name)
		return had || !errors.Is(err, fs.ErrNotExist)
	}
	sum := sha256.Sum256(data)
	if prev, ok := s[name]; ok && prev == sum {
		return false
	}
	s[name] = sum
	return true
}

// eventThrottle coalesces bursts of filesystem activity into one event per
// project.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[EventType]map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[EventType]map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	if t.pending[ev.Type] == nil {
		t.pending[ev.Type] = make(map[string]struct{})
	}
	key := ev.Project
	t.pending[ev.Type][key] = struct{}{}

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending := t.pending
	t.pending = make(map[EventType]map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	for eventType, names := range pending {
		if len(names) == 0 {
			send(Event{Type: eventType})
			continue
		}

		for name := range names {
			send(Event{Type: eventType, Project: name})
		}
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
