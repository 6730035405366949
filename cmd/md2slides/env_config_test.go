package main

// Notes:
// - Environments are passed as KEY=value slices, so tests never touch the
//   process environment and can run in parallel.
// - Precedence: we test env overrides config file values and leaves them
//   alone when unset. Flags over env is covered by TestMergeFlags.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2slides/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Parallel()

	cfg, err := loadEnvConfig([]string{
		"MD2SLIDES_CONFIG=work",
		"MD2SLIDES_TIMEOUT=90s",
		"MD2SLIDES_SETTLE=500ms",
		"MD2SLIDES_WORKERS=4",
		"MD2SLIDES_THEME=gaia",
		"MD2SLIDES_SPLIT_DEPTH=3",
		"MD2SLIDES_SAFETY_MARGIN=0",
		"MD2SLIDES_EXPORT=pptx,pdf",
		"UNRELATED=1",
	})
	if err != nil {
		t.Fatalf("loadEnvConfig() error = %v", err)
	}

	if cfg.ConfigPath != "work" || cfg.Workers != 4 || cfg.Theme != "gaia" || cfg.SplitDepth != 3 {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Timeout != 90*time.Second || cfg.Settle != 500*time.Millisecond {
		t.Errorf("durations = %v / %v", cfg.Timeout, cfg.Settle)
	}
	if cfg.SafetyMargin != "0" {
		t.Errorf("SafetyMargin = %q, want \"0\"", cfg.SafetyMargin)
	}
	if len(cfg.Export) != 2 || cfg.Export[0] != "pptx" || cfg.Export[1] != "pdf" {
		t.Errorf("Export = %v", cfg.Export)
	}
}

func TestLoadEnvConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		env  []string
	}{
		{"workers", []string{"MD2SLIDES_WORKERS=two"}},
		{"timeout", []string{"MD2SLIDES_TIMEOUT=forever"}},
		{"split depth", []string{"MD2SLIDES_SPLIT_DEPTH=deep"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := loadEnvConfig(tt.env); !errors.Is(err, ErrInvalidEnv) {
				t.Errorf("error = %v, want ErrInvalidEnv", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	t.Run("fills unset values", func(t *testing.T) {
		t.Parallel()

		e := &envConfig{
			InputDir:     "in",
			OutputDir:    "out",
			Theme:        "gaia",
			Class:        "lead",
			SplitDepth:   1,
			UsableHeight: "600",
			SafetyMargin: "0",
			Renderer:     "builtin",
			MarpBin:      "marp",
			ThemeSet:     "themes",
			Settle:       time.Second,
			Timeout:      time.Minute,
			Export:       []string{"pdf"},
		}
		cfg := config.DefaultConfig()

		if err := applyEnvConfig(e, cfg); err != nil {
			t.Fatalf("applyEnvConfig() error = %v", err)
		}

		if cfg.Input.DefaultDir != "in" || cfg.Output.DefaultDir != "out" {
			t.Errorf("dirs = %q/%q", cfg.Input.DefaultDir, cfg.Output.DefaultDir)
		}
		s := cfg.Slides
		if s.Theme != "gaia" || s.Class != "lead" || s.SplitDepth != 1 || s.UsableHeight != 600 {
			t.Errorf("Slides = %+v", s)
		}
		if s.SafetyMargin == nil || *s.SafetyMargin != 0 {
			t.Error("explicit zero safety margin should be applied")
		}
		r := cfg.Render
		if r.Renderer != "builtin" || r.MarpBin != "marp" || r.ThemeSet != "themes" || r.Settle != "1s" || r.Timeout != "1m0s" {
			t.Errorf("Render = %+v", r)
		}
		if len(cfg.Export.Formats) != 1 {
			t.Errorf("Export.Formats = %v", cfg.Export.Formats)
		}
	})

	t.Run("env overrides config file", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Slides.Theme = "gaia"
		cfg.Render.Timeout = "10s"
		fileMargin := 12.0
		cfg.Slides.SafetyMargin = &fileMargin

		e, err := loadEnvConfig([]string{
			"MD2SLIDES_THEME=uncover",
			"MD2SLIDES_TIMEOUT=1m",
			"MD2SLIDES_SAFETY_MARGIN=0",
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := applyEnvConfig(e, cfg); err != nil {
			t.Fatal(err)
		}

		if cfg.Slides.Theme != "uncover" || cfg.Render.Timeout != "1m0s" {
			t.Errorf("env values not applied over file: theme %q, timeout %q", cfg.Slides.Theme, cfg.Render.Timeout)
		}
		if cfg.Slides.SafetyMargin == nil || *cfg.Slides.SafetyMargin != 0 {
			t.Error("explicit zero margin from env should replace the file value")
		}
	})

	t.Run("unset env keeps config file", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Slides.Theme = "gaia"
		cfg.Render.MarpBin = "/opt/marp"

		if err := applyEnvConfig(&envConfig{Class: "lead"}, cfg); err != nil {
			t.Fatal(err)
		}
		if cfg.Slides.Theme != "gaia" || cfg.Render.MarpBin != "/opt/marp" {
			t.Errorf("file values lost: %q %q", cfg.Slides.Theme, cfg.Render.MarpBin)
		}
		if cfg.Slides.Class != "lead" {
			t.Errorf("Class = %q, want lead", cfg.Slides.Class)
		}
	})

	t.Run("unparsable float", func(t *testing.T) {
		t.Parallel()

		err := applyEnvConfig(&envConfig{UsableHeight: "tall"}, config.DefaultConfig())
		if !errors.Is(err, ErrInvalidEnv) {
			t.Errorf("error = %v, want ErrInvalidEnv", err)
		}
		if err != nil && !strings.Contains(err.Error(), "MD2SLIDES_USABLE_HEIGHT") {
			t.Errorf("error should name the variable, got %v", err)
		}
	})
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deck.yaml")
	yaml := "slides:\n  theme: gaia\n  class: invert\nrender:\n  timeout: 10s\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := loadEnvConfig([]string{"MD2SLIDES_THEME=uncover", "MD2SLIDES_TIMEOUT=45s"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(path, e)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Slides.Theme != "uncover" || cfg.Render.Timeout != "45s" {
		t.Errorf("env should win over the file: theme %q, timeout %q", cfg.Slides.Theme, cfg.Render.Timeout)
	}
	if cfg.Slides.Class != "invert" {
		t.Errorf("Class = %q, file value should survive when env is unset", cfg.Slides.Class)
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf, []string{
		"MD2SLIDES_THEME=gaia",
		"MD2SLIDES_THEMES=gaia",
		"MD2SLIDES_CONTAINER=1",
		"HOME=/root",
	})

	out := buf.String()
	if !strings.Contains(out, "MD2SLIDES_THEMES") {
		t.Errorf("typo should be reported, got %q", out)
	}
	if strings.Count(out, "warning:") != 1 {
		t.Errorf("only the typo should be reported, got %q", out)
	}
}

func TestEnvMap(t *testing.T) {
	t.Parallel()

	m := envMap([]string{"A=1", "B=x=y", "BROKEN"})
	if m["A"] != "1" || m["B"] != "x=y" {
		t.Errorf("envMap() = %v", m)
	}
	if _, ok := m["BROKEN"]; ok {
		t.Error("entries without '=' should be skipped")
	}
}
