// Package config handles loading and parsing of bench configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/hoaproject/Bench/internal/derrors"
	"github.com/hoaproject/Bench/pkg/bench"
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".bench.yml",
	".bench.yaml",
	".bench.toml",
	".bench.json",
}

const (
	// DefaultFormat is the report format used when none is configured
	DefaultFormat = "text"
	// DefaultLogLevel is the log level used when none is configured
	DefaultLogLevel = "warn"
)

// Step is a command timed under its own mark
type Step struct {
	Name string `koanf:"name"`
	Run  string `koanf:"run"`
	// PauseAfter leaves the mark paused instead of stopped, so a later step
	// with the same name resumes it
	PauseAfter bool `koanf:"pause_after"`
}

// FilterSpec describes a report filter. A spec holds either atomic
// conditions or exactly one composite (all, any, not).
type FilterSpec struct {
	MinPercent *float64      `koanf:"min_percent"`
	MaxPercent *float64      `koanf:"max_percent"`
	MinElapsed time.Duration `koanf:"min_elapsed"`
	MaxElapsed time.Duration `koanf:"max_elapsed"`
	Match      string        `koanf:"match"`   // glob the mark id must match
	Exclude    string        `koanf:"exclude"` // glob the mark id must not match
	All        []FilterSpec  `koanf:"all"`
	Any        []FilterSpec  `koanf:"any"`
	Not        *FilterSpec   `koanf:"not"`
}

// Config represents a bench configuration
type Config struct {
	Width    int          `koanf:"width"`
	Format   string       `koanf:"format"`
	Template string       `koanf:"template"`
	LogLevel string       `koanf:"log_level"`
	Filters  []FilterSpec `koanf:"filters"`
	Steps    []Step       `koanf:"steps"`
}

// Default returns the configuration used when no file is found
func Default() *Config {
	return &Config{
		Width:    bench.DefaultWidth,
		Format:   DefaultFormat,
		LogLevel: DefaultLogLevel,
	}
}

// StepNames returns the step names in order, without duplicates
func (c *Config) StepNames() []string {
	seen := make(map[string]bool, len(c.Steps))
	names := make([]string, 0, len(c.Steps))
	for _, s := range c.Steps {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		names = append(names, s.Name)
	}
	return names
}

// Loader handles loading and parsing configuration files
type Loader struct {
	// Cache for parsed configs keyed by path
	cache map[string]*cachedConfig
}

type cachedConfig struct {
	config  *Config
	modTime time.Time
	size    int64
}

// New creates a new config loader
func New() *Loader {
	return &Loader{cache: make(map[string]*cachedConfig)}
}

// Find returns the first supported config file in dir, or "" when there is none
func Find(dir string) string {
	for _, name := range SupportedConfigNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// parserFor returns the koanf parser matching a file extension
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Load reads and parses a configuration file
func (l *Loader) Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to stat config", err)
	}

	if cached, ok := l.cache[path]; ok {
		if !info.ModTime().After(cached.modTime) && info.Size() == cached.size {
			return cached.config, nil
		}
		delete(l.cache, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to read config", err)
	}

	cfg, err := Parse(path, content)
	if err != nil {
		return nil, err
	}

	l.cache[path] = &cachedConfig{config: cfg, modTime: info.ModTime(), size: info.Size()}
	return cfg, nil
}

// Parse parses configuration content. The path only selects the parser.
func Parse(path string, content []byte) (*Config, error) {
	k, err := load(path, content)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}
	return cfg, nil
}

func load(path string, content []byte) (*koanf.Koanf, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}
	return k, nil
}
