package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

// writeConfig writes content to name inside a temp dir and returns its path.
func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Slides.Theme != "" {
		t.Errorf("Slides.Theme = %q, want empty", cfg.Slides.Theme)
	}
	if cfg.Slides.AutoSplit != nil {
		t.Error("Slides.AutoSplit set, want nil")
	}
	if cfg.Render.Renderer != RendererAuto {
		t.Errorf("Render.Renderer = %q, want auto", cfg.Render.Renderer)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field values
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{
			name: "full valid config",
			cfg: Config{
				Slides: SlidesConfig{
					Theme:        "gaia",
					Class:        "lead",
					Paginate:     ptr(false),
					SplitDepth:   3,
					UsableHeight: 600,
					SafetyMargin: ptr(0.0),
					AutoSplit:    ptr(false),
				},
				Render: RenderConfig{Renderer: "builtin", Settle: "500ms", Timeout: "2m"},
				Export: ExportConfig{Formats: []string{"pptx", "PDF"}},
			},
		},
		{
			name:    "invalid theme name",
			cfg:     Config{Slides: SlidesConfig{Theme: "../gaia"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "class too long",
			cfg:     Config{Slides: SlidesConfig{Class: strings.Repeat("c", MaxClassLength+1)}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "split depth above 6",
			cfg:     Config{Slides: SlidesConfig{SplitDepth: 7}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative split depth",
			cfg:     Config{Slides: SlidesConfig{SplitDepth: -1}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative usable height",
			cfg:     Config{Slides: SlidesConfig{UsableHeight: -1}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative safety margin",
			cfg:     Config{Slides: SlidesConfig{SafetyMargin: ptr(-5.0)}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown renderer",
			cfg:     Config{Render: RenderConfig{Renderer: "reveal"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unparseable settle",
			cfg:     Config{Render: RenderConfig{Settle: "soon"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "zero timeout",
			cfg:     Config{Render: RenderConfig{Timeout: "0s"}},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "duration too long",
			cfg:     Config{Render: RenderConfig{Timeout: strings.Repeat("1", MaxDurationLength) + "s"}},
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "unknown export format",
			cfg:     Config{Export: ExportConfig{Formats: []string{"pptx", "key"}}},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderConfig_Durations(t *testing.T) {
	t.Parallel()

	r := RenderConfig{Settle: "250ms", Timeout: "90s"}
	settle, err := r.SettleDuration()
	if err != nil || settle != 250*time.Millisecond {
		t.Errorf("SettleDuration() = %v, %v", settle, err)
	}
	timeout, err := r.TimeoutDuration()
	if err != nil || timeout != 90*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v", timeout, err)
	}

	unset, err := RenderConfig{}.SettleDuration()
	if err != nil || unset != 0 {
		t.Errorf("unset SettleDuration() = %v, %v, want 0", unset, err)
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading and name resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		path := writeConfig(t, "test.yaml", `input:
  defaultDir: "/path/to/input"
output:
  defaultDir: "/path/to/output"
slides:
  theme: uncover
  class: invert
  paginate: false
  splitDepth: 1
  safetyMargin: 40
  autoSplit: false
render:
  renderer: marp
  themeSet: ./themes
  settle: 2s
export:
  formats: [pptx, pdf]
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "/path/to/input" {
			t.Errorf("Input.DefaultDir = %q", cfg.Input.DefaultDir)
		}
		if cfg.Output.DefaultDir != "/path/to/output" {
			t.Errorf("Output.DefaultDir = %q", cfg.Output.DefaultDir)
		}
		if cfg.Slides.Theme != "uncover" || cfg.Slides.Class != "invert" {
			t.Errorf("Slides = %+v", cfg.Slides)
		}
		if cfg.Slides.Paginate == nil || *cfg.Slides.Paginate {
			t.Error("Slides.Paginate should be explicitly false")
		}
		if cfg.Slides.SplitDepth != 1 {
			t.Errorf("Slides.SplitDepth = %d, want 1", cfg.Slides.SplitDepth)
		}
		if cfg.Slides.SafetyMargin == nil || *cfg.Slides.SafetyMargin != 40 {
			t.Errorf("Slides.SafetyMargin = %v, want 40", cfg.Slides.SafetyMargin)
		}
		if cfg.Slides.AutoSplit == nil || *cfg.Slides.AutoSplit {
			t.Error("Slides.AutoSplit should be explicitly false")
		}
		if cfg.Render.ThemeSet != "./themes" || cfg.Render.Settle != "2s" {
			t.Errorf("Render = %+v", cfg.Render)
		}
		if len(cfg.Export.Formats) != 2 {
			t.Errorf("Export.Formats = %v", cfg.Export.Formats)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, "invalid.yaml", "slides: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, "unknown.yaml", "slides:\n  theme: gaia\n  maxSlides: 10\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, "depth.yaml", "slides:\n  splitDepth: 9\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})

	t.Run("unreadable file returns read error not ErrConfigNotFound", func(t *testing.T) {
		if os.Geteuid() == 0 {
			t.Skip("root ignores file permissions")
		}
		path := writeConfig(t, "unreadable.yaml", "slides:\n  theme: gaia\n")
		if err := os.Chmod(path, 0000); err != nil {
			t.Fatalf("setup chmod: %v", err)
		}
		defer os.Chmod(path, 0600)

		_, err := LoadConfig(path)
		if err == nil {
			t.Fatal("expected error for unreadable file")
		}
		if errors.Is(err, ErrConfigNotFound) {
			t.Error("error should not be ErrConfigNotFound for permission error")
		}
	})

	t.Run("config name resolves yml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "talk.yml"), []byte("slides:\n  theme: gaia\n"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		t.Chdir(dir)

		cfg, err := LoadConfig("talk")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Slides.Theme != "gaia" {
			t.Errorf("Slides.Theme = %q, want gaia", cfg.Slides.Theme)
		}
	})

	t.Run("missing config name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nothere")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nothere.yaml") || !strings.Contains(err.Error(), "nothere.yml") {
			t.Errorf("error %q does not list tried paths", err)
		}
	})
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"talk", false},
		{"./talk.yaml", true},
		{"/etc/md2slides.yaml", true},
		{`C:\cfg\talk.yaml`, true},
	}
	for _, tt := range tests {
		if got := isFilePath(tt.in); got != tt.want {
			t.Errorf("isFilePath(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
