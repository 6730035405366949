package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/alnah/go-md2slides/internal/config"
)

// envPrefix is the prefix of every md2slides environment variable.
const envPrefix = "MD2SLIDES_"

// ErrInvalidEnv is returned when an MD2SLIDES_* variable cannot be parsed.
var ErrInvalidEnv = errors.New("invalid environment variable")

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        `env:"CONFIG"`
	Timeout    time.Duration `env:"TIMEOUT"`
	Settle     time.Duration `env:"SETTLE"`

	InputDir  string `env:"INPUT_DIR"`
	OutputDir string `env:"OUTPUT_DIR"`
	Workers   int    `env:"WORKERS"`

	Theme      string `env:"THEME"`
	Class      string `env:"CLASS"`
	SplitDepth int    `env:"SPLIT_DEPTH"`
	// UsableHeight and SafetyMargin stay strings so an explicit 0 margin is
	// distinguishable from unset.
	UsableHeight string `env:"USABLE_HEIGHT"`
	SafetyMargin string `env:"SAFETY_MARGIN"`

	Renderer string   `env:"RENDERER"`
	MarpBin  string   `env:"MARP_BIN"`
	ThemeSet string   `env:"THEME_SET"`
	Export   []string `env:"EXPORT" envSeparator:","`
}

// knownEnvVars lists valid MD2SLIDES_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2SLIDES_CONFIG":        true,
	"MD2SLIDES_TIMEOUT":       true,
	"MD2SLIDES_SETTLE":        true,
	"MD2SLIDES_INPUT_DIR":     true,
	"MD2SLIDES_OUTPUT_DIR":    true,
	"MD2SLIDES_WORKERS":       true,
	"MD2SLIDES_THEME":         true,
	"MD2SLIDES_CLASS":         true,
	"MD2SLIDES_SPLIT_DEPTH":   true,
	"MD2SLIDES_USABLE_HEIGHT": true,
	"MD2SLIDES_SAFETY_MARGIN": true,
	"MD2SLIDES_RENDERER":      true,
	"MD2SLIDES_MARP_BIN":      true,
	"MD2SLIDES_THEME_SET":     true,
	"MD2SLIDES_EXPORT":        true,
	"MD2SLIDES_CONTAINER":     true, // read by doctor
}

// loadEnvConfig reads configuration from the MD2SLIDES_* variables of environ.
func loadEnvConfig(environ []string) (*envConfig, error) {
	cfg := &envConfig{}
	err := env.ParseWithOptions(cfg, env.Options{
		Environment: envMap(environ),
		Prefix:      envPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnv, err)
	}
	return cfg, nil
}

// envMap turns KEY=value pairs into a map.
func envMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			m[k] = v
		}
	}
	return m
}

// warnUnknownEnvVars logs warnings for unrecognized MD2SLIDES_* variables.
// Helps catch typos like MD2SLIDES_THEMES instead of MD2SLIDES_THEME.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with every variable that is set.
// It runs after the config file is loaded and before mergeFlags, giving
// CLI flags > env vars > config file > defaults.
func applyEnvConfig(e *envConfig, cfg *config.Config) error {
	setString(&cfg.Input.DefaultDir, e.InputDir)
	setString(&cfg.Output.DefaultDir, e.OutputDir)

	setString(&cfg.Slides.Theme, e.Theme)
	setString(&cfg.Slides.Class, e.Class)
	if e.SplitDepth != 0 {
		cfg.Slides.SplitDepth = e.SplitDepth
	}
	if e.UsableHeight != "" {
		h, err := parseEnvFloat("USABLE_HEIGHT", e.UsableHeight)
		if err != nil {
			return err
		}
		cfg.Slides.UsableHeight = h
	}
	if e.SafetyMargin != "" {
		m, err := parseEnvFloat("SAFETY_MARGIN", e.SafetyMargin)
		if err != nil {
			return err
		}
		cfg.Slides.SafetyMargin = &m
	}

	setString(&cfg.Render.Renderer, e.Renderer)
	setString(&cfg.Render.MarpBin, e.MarpBin)
	setString(&cfg.Render.ThemeSet, e.ThemeSet)
	if e.Settle > 0 {
		cfg.Render.Settle = e.Settle.String()
	}
	if e.Timeout > 0 {
		cfg.Render.Timeout = e.Timeout.String()
	}
	if len(e.Export) > 0 {
		cfg.Export.Formats = e.Export
	}

	return nil
}

// setString overwrites dst when value is set.
func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func parseEnvFloat(name, value string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s%s: %v", ErrInvalidEnv, envPrefix, name, err)
	}
	return f, nil
}
