// Package config loads doctest settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"
)

// ErrInvalid indicates an invalid configuration value.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix prefixes the environment variables that override settings,
// e.g. DOCTEST_TIMEOUT=10s.
const EnvPrefix = "DOCTEST_"

// Defaults.
const (
	DefaultTimeout      = 5 * time.Second
	DefaultPollInterval = 100 * time.Millisecond
	DefaultMode         = "shared"
	DefaultMarker       = `^\s*==?>`
	DefaultColor        = "auto"
	DefaultLogLevel     = "warn"
)

// Config holds the settings of a doctest run, as read from a doctest.yaml
// file.
type Config struct {
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
	Mode         string        `yaml:"mode"`
	EchoResult   bool          `yaml:"echo_result"`
	StripANSI    bool          `yaml:"strip_ansi"`
	NoTable      bool          `yaml:"no_table"`
	Format       string        `yaml:"format,omitempty"`
	Marker       string        `yaml:"marker"`
	Sections     bool          `yaml:"sections"`
	Color        string        `yaml:"color"`
	Verbose      bool          `yaml:"verbose"`
	LogLevel     string        `yaml:"log_level"`
	MetricsAddr  string        `yaml:"metrics_addr,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Timeout:      DefaultTimeout,
		PollInterval: DefaultPollInterval,
		Mode:         DefaultMode,
		Marker:       DefaultMarker,
		Color:        DefaultColor,
		LogLevel:     DefaultLogLevel,
	}
}

// DefaultFile is read when no configuration path is given.
const DefaultFile = "doctest.yaml"

// Load reads path over the defaults. An empty path or a missing file
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalid, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	var problems []string

	if c.Timeout <= 0 {
		problems = append(problems, "timeout must be positive")
	}
	if c.PollInterval <= 0 {
		problems = append(problems, "poll_interval must be positive")
	}
	if !oneOf(c.Mode, "shared", "isolated") {
		problems = append(problems, fmt.Sprintf("unknown mode %q", c.Mode))
	}
	if !oneOf(c.Format, "", "auto", "lines", "comments") {
		problems = append(problems, fmt.Sprintf("unknown format %q", c.Format))
	}
	if !oneOf(c.Color, "auto", "always", "never") {
		problems = append(problems, fmt.Sprintf("unknown color setting %q", c.Color))
	}
	if _, err := regexp.Compile(c.Marker); err != nil {
		problems = append(problems, fmt.Sprintf("bad marker: %v", err))
	}
	if _, err := log.LvlFromString(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("unknown log_level %q", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, ", "))
	}
	return nil
}

// MarkerRegexp compiles Marker.
func (c *Config) MarkerRegexp() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.Marker)
	if err != nil {
		return nil, fmt.Errorf("%w: marker: %w", ErrInvalid, err)
	}
	return re, nil
}

func oneOf(s string, options ...string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
