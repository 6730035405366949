package assets

import (
	"errors"
	"sort"
)

// ThemeResolver combines a theme set directory with the built-in themes.
// When a directory is configured, a theme is looked up there first and the
// embedded copy is used if it is not found.
type ThemeResolver struct {
	custom   *FilesystemLoader // nil if no theme set configured
	embedded ThemeLoader
}

// NewThemeResolver creates a ThemeResolver.
// If themeSet is empty, only built-in themes are used.
// Returns error if themeSet is set but invalid.
func NewThemeResolver(themeSet string) (*ThemeResolver, error) {
	resolver := &ThemeResolver{
		embedded: NewEmbeddedLoader(),
	}

	if themeSet != "" {
		fsLoader, err := NewFilesystemLoader(themeSet)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a theme, trying the theme set directory first if available.
func (r *ThemeResolver) LoadTheme(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	css, err := r.custom.LoadTheme(name)
	if err == nil {
		return css, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrThemeNotFound) {
		return "", err
	}

	return r.embedded.LoadTheme(name)
}

// Themes lists built-in and custom themes. A custom theme overriding a
// built-in one is listed once, as custom.
func (r *ThemeResolver) Themes() ([]Theme, error) {
	builtin, err := r.embedded.Themes()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return builtin, nil
	}

	custom, err := r.custom.Themes()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]Theme, len(builtin)+len(custom))
	for _, t := range builtin {
		byName[t.Name] = t
	}
	for _, t := range custom {
		byName[t.Name] = t
	}

	list := make([]Theme, 0, len(byName))
	for _, t := range byName {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Custom != list[j].Custom {
			return !list[i].Custom
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// Has reports whether name resolves to a theme.
func (r *ThemeResolver) Has(name string) bool {
	_, err := r.LoadTheme(name)
	return err == nil
}

// ThemeSetDir returns the absolute theme set directory, or "" when only
// built-in themes are used.
func (r *ThemeResolver) ThemeSetDir() string {
	if r.custom == nil {
		return ""
	}
	return r.custom.Dir()
}

// Compile-time interface check.
var _ ThemeLoader = (*ThemeResolver)(nil)
