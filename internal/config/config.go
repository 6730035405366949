// Package config loads md2slides configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxClassLength    = 100
	MaxPathLength     = 4096
	MaxDurationLength = 20 // "1m30s"
)

// Renderer names accepted in render.renderer.
const (
	RendererAuto    = ""
	RendererMarp    = "marp"
	RendererBuiltin = "builtin"
)

// Export formats accepted in export.formats.
var ExportFormats = []string{"pptx", "pdf"}

// configDirName is the directory under the user config dir searched for
// config names.
const configDirName = "go-md2slides"

// Config holds all configuration for deck generation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Slides SlidesConfig `yaml:"slides"`
	Render RenderConfig `yaml:"render"`
	Export ExportConfig `yaml:"export"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// SlidesConfig defines the deck and pagination settings.
// Pointer fields distinguish "unset" from an explicit zero or false.
type SlidesConfig struct {
	Theme        string   `yaml:"theme"`        // Empty = front matter theme, then "default"
	Class        string   `yaml:"class"`        // Marp class directive, e.g. "lead"
	Paginate     *bool    `yaml:"paginate"`     // Slide numbers (default: true)
	SplitDepth   int      `yaml:"splitDepth"`   // 1-6, 0 = default (2)
	UsableHeight float64  `yaml:"usableHeight"` // px, 0 = measured
	SafetyMargin *float64 `yaml:"safetyMargin"` // px (default: 30)
	AutoSplit    *bool    `yaml:"autoSplit"`    // Re-paginate decks with manual breaks (default: true)
}

// RenderConfig defines how probe documents are rendered and measured.
type RenderConfig struct {
	Renderer string `yaml:"renderer"` // "marp", "builtin", empty = marp when found
	MarpBin  string `yaml:"marpBin"`  // Empty = discover
	ThemeSet string `yaml:"themeSet"` // Directory of custom theme CSS
	Settle   string `yaml:"settle"`   // Duration, e.g. "1s"
	Timeout  string `yaml:"timeout"`  // Duration, e.g. "2m"
}

// ExportConfig defines the extra formats written next to the deck.
type ExportConfig struct {
	Formats []string `yaml:"formats"` // "pptx", "pdf"
}

// SettleDuration parses render.settle. It returns 0 when unset.
func (r RenderConfig) SettleDuration() (time.Duration, error) {
	return parseDuration("render.settle", r.Settle)
}

// TimeoutDuration parses render.timeout. It returns 0 when unset.
func (r RenderConfig) TimeoutDuration() (time.Duration, error) {
	return parseDuration("render.timeout", r.Timeout)
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidValue, field, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s: must be positive, got %s", ErrInvalidValue, field, value)
	}
	return d, nil
}

// Validate checks field values and lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., the MCP server).
func (c *Config) Validate() error {
	if c.Slides.Theme != "" {
		if err := assets.ValidateThemeName(c.Slides.Theme); err != nil {
			return fmt.Errorf("%w: slides.theme: %v", ErrInvalidValue, err)
		}
	}
	if err := validateFieldLength("slides.class", c.Slides.Class, MaxClassLength); err != nil {
		return err
	}
	if c.Slides.SplitDepth < 0 || c.Slides.SplitDepth > 6 {
		return fmt.Errorf("%w: slides.splitDepth: must be between 1 and 6, got %d", ErrInvalidValue, c.Slides.SplitDepth)
	}
	if c.Slides.UsableHeight < 0 {
		return fmt.Errorf("%w: slides.usableHeight: must not be negative, got %.1f", ErrInvalidValue, c.Slides.UsableHeight)
	}
	if m := c.Slides.SafetyMargin; m != nil && *m < 0 {
		return fmt.Errorf("%w: slides.safetyMargin: must not be negative, got %.1f", ErrInvalidValue, *m)
	}

	switch strings.ToLower(c.Render.Renderer) {
	case RendererAuto, RendererMarp, RendererBuiltin:
	default:
		return fmt.Errorf("%w: render.renderer: %q (must be marp or builtin)", ErrInvalidValue, c.Render.Renderer)
	}
	if err := validateFieldLength("render.marpBin", c.Render.MarpBin, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.themeSet", c.Render.ThemeSet, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.settle", c.Render.Settle, MaxDurationLength); err != nil {
		return err
	}
	if err := validateFieldLength("render.timeout", c.Render.Timeout, MaxDurationLength); err != nil {
		return err
	}
	if _, err := c.Render.SettleDuration(); err != nil {
		return err
	}
	if _, err := c.Render.TimeoutDuration(); err != nil {
		return err
	}

	for i, f := range c.Export.Formats {
		if !slices.Contains(ExportFormats, strings.ToLower(f)) {
			return fmt.Errorf("%w: export.formats[%d]: %q (must be pptx or pdf)", ErrInvalidValue, i, f)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: every setting falls back to
// the converter defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-md2slides/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, configDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
