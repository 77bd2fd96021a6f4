package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Modules whose name starts with one of these prefixes are not scanned
	IgnoredModulePrefixes []string `yaml:"ignored_module_prefixes"`

	// Output settings
	ResultsDir  string `yaml:"results_dir"`
	ResultsFile string `yaml:"results_file"`
	LogFormat   string `yaml:"log_format"`

	// Execution settings
	CollectGarbage bool `yaml:"gc_between_tests"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile    string
	Ignore        []string
	ReplacePrefix bool
	ResultsDir    string
	LogFormat     string
	NoColor       bool
	NoResults     bool
	NoGC          bool
	Progress      bool
	Plain         bool
	ShowResolved  bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ResultsDir:     DefaultResultsDir,
		ResultsFile:    DefaultResultsFile,
		LogFormat:      DefaultLogFormat,
		CollectGarbage: DefaultCollectGarbage,
	}
	// Copy default prefixes so callers can't modify the package defaults
	cfg.IgnoredModulePrefixes = make([]string, len(DefaultIgnoredModulePrefixes))
	copy(cfg.IgnoredModulePrefixes, DefaultIgnoredModulePrefixes)
	return cfg
}

// Load creates a config from defaults, the config file, the environment and
// flags, in increasing order of precedence.
func Load(flags Flags) (*Config, error) {
	cfg := New()
	cfg.Flags = flags

	// .env is optional; variables already set win over it
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", DefaultEnvFile, err)
	}

	path := flags.ConfigFile
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			path = DefaultConfigFile
		}
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	cfg.applyFlags(flags)
	return cfg, cfg.Validate()
}

// LoadFile overlays the YAML file at path onto c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvIgnoredPrefixes); v != "" {
		c.IgnoredModulePrefixes = splitList(v)
	}
	if v := os.Getenv(EnvResultsDir); v != "" {
		c.ResultsDir = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
}

func (c *Config) applyFlags(f Flags) {
	if len(f.Ignore) > 0 {
		if f.ReplacePrefix {
			c.IgnoredModulePrefixes = append([]string(nil), f.Ignore...)
		} else {
			c.IgnoredModulePrefixes = append(c.IgnoredModulePrefixes, f.Ignore...)
		}
	}
	if f.ResultsDir != "" {
		c.ResultsDir = f.ResultsDir
	}
	if f.LogFormat != "" {
		c.LogFormat = f.LogFormat
	}
	if f.NoGC {
		c.CollectGarbage = false
	}
}

// Validate checks the values that can't be checked by parsing alone.
func (c *Config) Validate() error {
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("unknown log format %q (want %s or %s)", c.LogFormat, LogFormatText, LogFormatJSON)
	}
	if c.ResultsFile == "" {
		return errors.New("results file name must not be empty")
	}
	return nil
}

// GetOutputPath returns the absolute path of the results file.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.ResultsDir, c.ResultsFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
