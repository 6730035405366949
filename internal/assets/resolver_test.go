package assets

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestThemeResolver - Custom-first lookup
// ---------------------------------------------------------------------------

func TestThemeResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	r, err := NewThemeResolver("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ThemeSetDir() != "" {
		t.Errorf("ThemeSetDir() = %q, want empty", r.ThemeSetDir())
	}
	if !r.Has("gaia") {
		t.Error("built-in theme gaia not found")
	}
	if r.Has("academic") {
		t.Error("unexpected theme academic")
	}
}

func TestThemeResolver_InvalidThemeSet(t *testing.T) {
	t.Parallel()

	_, err := NewThemeResolver("/nonexistent/themes")
	if !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("error = %v, want ErrInvalidBasePath", err)
	}
}

func TestThemeResolver_LoadTheme(t *testing.T) {
	t.Parallel()

	dir := writeThemeSet(t, map[string]string{
		"gaia.css":     "custom gaia",
		"academic.css": "custom academic",
	})
	r, err := NewThemeResolver(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		theme   string
		want    string
		wantErr error
	}{
		{name: "custom only", theme: "academic", want: "custom academic"},
		{name: "custom overrides built-in", theme: "gaia", want: "custom gaia"},
		{name: "falls back to built-in", theme: "default"},
		{name: "missing everywhere", theme: "beam", wantErr: ErrThemeNotFound},
		{name: "invalid name not retried", theme: "../x", wantErr: ErrInvalidThemeName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			css, err := r.LoadTheme(tt.theme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != "" && css != tt.want {
				t.Errorf("css = %q, want %q", css, tt.want)
			}
		})
	}
}

func TestThemeResolver_Themes(t *testing.T) {
	t.Parallel()

	dir := writeThemeSet(t, map[string]string{
		"gaia.css": "",
		"beam.css": "",
	})
	r, err := NewThemeResolver(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := r.Themes()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Theme{
		{Name: "default"},
		{Name: "uncover"},
		{Name: "beam", Custom: true},
		{Name: "gaia", Custom: true},
	}
	if len(got) != len(want) {
		t.Fatalf("Themes() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("themes[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}
