// Package config loads tickline's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harrison/tickline/internal/glyph"
	"github.com/harrison/tickline/internal/loader"
	"github.com/harrison/tickline/internal/logger"
	"github.com/harrison/tickline/internal/models"
)

// FileName is the name of the config file inside the tickline home directory.
const FileName = "config.yaml"

// Config represents tickline configuration options
type Config struct {
	// LoadingMessage is shown next to the animation while a task runs
	LoadingMessage string `yaml:"loading_message"`

	// FinishedMessage replaces the animation when a task succeeds
	FinishedMessage string `yaml:"finished_message"`

	// Interval is the pause between animation frames
	Interval time.Duration `yaml:"-"`

	// Color is the animation color tag
	Color string `yaml:"color"`

	// Mode is "inline" or "stacked"
	Mode string `yaml:"mode"`

	// Style names a registered glyph style
	Style string `yaml:"style"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir is the directory where run logs are written
	LogDir string `yaml:"log_dir"`

	// LockFile, when set, makes sessions in different processes exclusive
	LockFile string `yaml:"lock_file"`

	// ForceColor overrides terminal detection for the animation color (nil = auto)
	ForceColor *bool `yaml:"force_color"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	lc := loader.DefaultConfig()
	return &Config{
		LoadingMessage:  lc.LoadingMessage,
		FinishedMessage: lc.FinishedMessage,
		Interval:        lc.Interval,
		Color:           lc.Color,
		Mode:            string(lc.Mode),
		Style:           lc.Style,
		LogLevel:        "info",
		LogDir:          ".tickline/logs",
	}
}

// yamlConfig mirrors Config with the interval kept as text so that both
// "0.25" (seconds) and "250ms" parse.
type yamlConfig struct {
	LoadingMessage  string `yaml:"loading_message"`
	FinishedMessage string `yaml:"finished_message"`
	Interval        string `yaml:"interval"`
	Color           string `yaml:"color"`
	Mode            string `yaml:"mode"`
	Style           string `yaml:"style"`
	LogLevel        string `yaml:"log_level"`
	LogDir          string `yaml:"log_dir"`
	LockFile        string `yaml:"lock_file,omitempty"`
	ForceColor      *bool  `yaml:"force_color,omitempty"`
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-zero values from file (merging with defaults)
	if yamlCfg.LoadingMessage != "" {
		cfg.LoadingMessage = yamlCfg.LoadingMessage
	}
	if yamlCfg.FinishedMessage != "" {
		cfg.FinishedMessage = yamlCfg.FinishedMessage
	}
	if yamlCfg.Interval != "" {
		interval, err := ParseInterval(yamlCfg.Interval)
		if err != nil {
			return nil, err
		}
		cfg.Interval = interval
	}
	if yamlCfg.Color != "" {
		cfg.Color = yamlCfg.Color
	}
	if yamlCfg.Mode != "" {
		cfg.Mode = yamlCfg.Mode
	}
	if yamlCfg.Style != "" {
		cfg.Style = yamlCfg.Style
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.LockFile != "" {
		cfg.LockFile = yamlCfg.LockFile
	}
	if yamlCfg.ForceColor != nil {
		cfg.ForceColor = yamlCfg.ForceColor
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from config.yaml in the specified
// tickline home directory.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// ParseInterval accepts a bare number of seconds ("0.1") or a Go duration
// ("100ms").
func ParseInterval(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid interval format %q: want seconds (0.1) or a duration (100ms)", s)
	}
	return d, nil
}

// Flags holds CLI overrides. Nil fields leave the configuration untouched.
type Flags struct {
	LoadingMessage  *string
	FinishedMessage *string
	Interval        *time.Duration
	Color           *string
	Mode            *string
	Style           *string
	LogLevel        *string
	LogDir          *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(f Flags) {
	if f.LoadingMessage != nil {
		c.LoadingMessage = *f.LoadingMessage
	}
	if f.FinishedMessage != nil {
		c.FinishedMessage = *f.FinishedMessage
	}
	if f.Interval != nil {
		c.Interval = *f.Interval
	}
	if f.Color != nil {
		c.Color = *f.Color
	}
	if f.Mode != nil {
		c.Mode = *f.Mode
	}
	if f.Style != nil {
		c.Style = *f.Style
	}
	if f.LogLevel != nil {
		c.LogLevel = *f.LogLevel
	}
	if f.LogDir != nil {
		c.LogDir = *f.LogDir
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(logger.ValidLevels, ", "))
	}
	if _, err := c.LoaderConfig(); err != nil {
		return err
	}
	return nil
}

// LoaderConfig converts the file settings into a session configuration.
func (c *Config) LoaderConfig() (loader.Config, error) {
	mode, err := models.ParseDisplayMode(c.Mode)
	if err != nil {
		return loader.Config{}, &loader.ConfigurationError{Field: "mode", Value: c.Mode, Reason: "must be one of: inline, stacked", Err: err}
	}

	lc := loader.Config{
		LoadingMessage:  c.LoadingMessage,
		FinishedMessage: c.FinishedMessage,
		Interval:        c.Interval,
		Color:           c.Color,
		Mode:            mode,
		Style:           c.Style,
	}
	if err := lc.Validate(); err != nil {
		return loader.Config{}, err
	}
	return lc, nil
}

// ColorEnabled resolves ForceColor against whether output is a terminal.
func (c *Config) ColorEnabled(isTerminal bool) bool {
	if c.ForceColor != nil {
		return *c.ForceColor
	}
	return isTerminal
}

// Render returns the configuration as YAML, in the format LoadConfig reads.
func (c *Config) Render() ([]byte, error) {
	out := yamlConfig{
		LoadingMessage:  c.LoadingMessage,
		FinishedMessage: c.FinishedMessage,
		Interval:        c.Interval.String(),
		Color:           c.Color,
		Mode:            c.Mode,
		Style:           c.Style,
		LogLevel:        c.LogLevel,
		LogDir:          c.LogDir,
		LockFile:        c.LockFile,
		ForceColor:      c.ForceColor,
	}
	data, err := yaml.Marshal(&out)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	var b strings.Builder
	b.WriteString("# tickline configuration\n")
	fmt.Fprintf(&b, "# styles: %s\n", strings.Join(glyph.Names(), ", "))
	fmt.Fprintf(&b, "# colors: %s\n", strings.Join(glyph.ColorNames(), ", "))
	b.Write(data)
	return []byte(b.String()), nil
}
