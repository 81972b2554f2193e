package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config is the resolved gantt configuration.
type Config interface {
	BasePath() string
	Project() string
	View() string
	Viewport() float64
	LogLevel() string
}

const (
	DefaultPath     = "~/.gantt"
	DefaultProject  = "default"
	DefaultView     = "day"
	DefaultViewport = 1200
	DefaultLogLevel = "info"
)

// LoadConfig reads .gantt.yaml from $GANTT_CONFIG_PATH or the working
// directory. Every key can be overridden with a GANTT_ environment variable.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", DefaultPath)
	v.SetDefault("project", DefaultProject)
	v.SetDefault("view", DefaultView)
	v.SetDefault("viewport", DefaultViewport)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetConfigName(".gantt") // .yaml is implicit
	v.SetEnvPrefix("GANTT")
	v.AutomaticEnv()

	if override := os.Getenv("GANTT_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return &fileConfig{
		Path:        path,
		ProjectName: v.GetString("project"),
		ViewName:    v.GetString("view"),
		ViewportPx:  v.GetFloat64("viewport"),
		Level:       v.GetString("log_level"),
	}, nil
}

// NewConfig builds a Config rooted at path with default settings.
func NewConfig(path string) Config {
	return &fileConfig{
		Path:        path,
		ProjectName: DefaultProject,
		ViewName:    DefaultView,
		ViewportPx:  DefaultViewport,
		Level:       DefaultLogLevel,
	}
}

type fileConfig struct {
	Path        string  `json:"path"`
	ProjectName string  `json:"project"`
	ViewName    string  `json:"view"`
	ViewportPx  float64 `json:"viewport"`
	Level       string  `json:"log_level"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Project() string {
	if f.ProjectName == "" {
		return DefaultProject
	}
	return f.ProjectName
}

func (f *fileConfig) View() string {
	return f.ViewName
}

func (f *fileConfig) Viewport() float64 {
	if f.ViewportPx <= 0 {
		return DefaultViewport
	}
	return f.ViewportPx
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}
