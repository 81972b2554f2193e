package store

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/gantt/pkg/project"
)

// ErrProjectNotFound is returned by Load and Delete for unknown names.
var ErrProjectNotFound = errors.New("store: project not found")

// Persistence defines the persistence contract for gantt projects.
type Persistence interface {
	List(ctx context.Context) []string
	Load(name string) (*project.Project, error)
	Save(name string, p *project.Project) error
	Delete(name string) error
	Exists(name string) bool
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config. A nil
// logger falls back to the package default.
func Load(cfg Config, logger *log.Logger) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = log.Default()
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath, log: logger, now: time.Now}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *log.Logger
	now      func() time.Time
}

func (p *persistence) List(ctx context.Context) []string {
	names := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		name, err := fromKey(key)
		if err != nil {
			p.log.Warn("skipping unreadable key", "key", key, "err", err)
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) Load(name string) (*project.Project, error) {
	key, err := toKey(name)
	if err != nil {
		return nil, err
	}
	if !p.d.Has(key) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	val, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", name, err)
	}
	proj, err := project.Decode(val)
	if err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", name, err)
	}
	if proj.Legacy {
		p.log.Debug("loaded legacy task list", "project", name)
	}
	return proj, nil
}

// read always goes to disk; another process may have saved the project
// since this one cached it.
func (p *persistence) read(key string) ([]byte, error) {
	rc, err := p.d.ReadStream(key, true)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (p *persistence) Save(name string, proj *project.Project) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	data, err := project.Encode(proj, p.now())
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	p.log.Debug("saved project", "project", name, "tasks", len(proj.Tasks))
	return nil
}

func (p *persistence) Delete(name string) error {
	key, err := toKey(name)
	if err != nil {
		return err
	}
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	return p.d.Erase(key)
}

func (p *persistence) Exists(name string) bool {
	key, err := toKey(name)
	if err != nil {
		return false
	}
	return p.d.Has(key)
}

const (
	projectsDir = "projects"
	fileExt     = ".json"
	keySep      = "/"
)

// Keys are `projects/<base64 name>`; on disk that is projects/<name>.json.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySep)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + fileExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return strings.Join(append(append([]string{}, pathKey.Path...), strings.TrimSuffix(pathKey.FileName, fileExt)), keySep)
}

func toKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("store: project name required")
	}
	return projectsDir + keySep + encodeName(name), nil
}

func fromKey(key string) (string, error) {
	pk := keyToPathTransform(key)
	if len(pk.Path) != 1 || pk.Path[0] != projectsDir {
		return "", fmt.Errorf("store: unexpected key %q", key)
	}
	return decodeName(strings.TrimSuffix(pk.FileName, fileExt))
}

// Names use URL-safe base64 so they never contain a path separator.
func encodeName(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func decodeName(s string) (string, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("store: decode name: %w", err)
	}
	return string(b), nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	return nil
}
