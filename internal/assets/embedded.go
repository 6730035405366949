package assets

import (
	"embed"
	"fmt"
	"sort"
)

//go:embed themes/*.css
var themes embed.FS

// DefaultTheme is used when no theme is requested.
const DefaultTheme = "default"

// BuiltinThemes lists the themes bundled with Marp and embedded here.
var BuiltinThemes = []string{"default", "gaia", "uncover"}

// EmbeddedLoader loads the built-in themes.
// Implements ThemeLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads a built-in theme's CSS by name.
func (e *EmbeddedLoader) LoadTheme(name string) (string, error) {
	if err := ValidateThemeName(name); err != nil {
		return "", err
	}

	content, err := themes.ReadFile("themes/" + name + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	return string(content), nil
}

// Themes lists the built-in themes.
func (e *EmbeddedLoader) Themes() ([]Theme, error) {
	list := make([]Theme, 0, len(BuiltinThemes))
	for _, name := range BuiltinThemes {
		list = append(list, Theme{Name: name})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
