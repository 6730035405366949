package md2slides

import (
	"fmt"

	"github.com/alnah/go-md2slides/internal/assets"
)

// Theme describes a slide theme available to a conversion.
type Theme struct {
	Name   string `json:"name"`
	Custom bool   `json:"custom"`
}

// Description returns a short human-readable label for the theme.
func (t Theme) Description() string {
	if t.Custom {
		return "Custom local theme"
	}
	return "Built-in Marp theme"
}

// ListThemes lists the built-in themes and the *.css files of themeSet.
// An empty themeSet lists built-in themes only.
func ListThemes(themeSet string) ([]Theme, error) {
	resolver, err := assets.NewThemeResolver(themeSet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThemeSet, err)
	}
	return listThemes(resolver)
}

func listThemes(loader assets.ThemeLoader) ([]Theme, error) {
	found, err := loader.Themes()
	if err != nil {
		return nil, err
	}
	list := make([]Theme, len(found))
	for i, t := range found {
		list[i] = Theme{Name: t.Name, Custom: t.Custom}
	}
	return list, nil
}

// ThemeNames returns the names of themes, in order.
func ThemeNames(themes []Theme) []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
