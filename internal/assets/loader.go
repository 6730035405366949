package assets

// Theme describes an available slide theme.
type Theme struct {
	Name string `json:"name"`
	// Custom marks a theme read from a theme set directory.
	Custom bool `json:"custom"`
}

// ThemeLoader defines the contract for loading slide themes.
type ThemeLoader interface {
	// LoadTheme returns the CSS of a theme by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidThemeName if the name contains invalid characters.
	LoadTheme(name string) (string, error)

	// Themes lists the available themes, sorted by name.
	Themes() ([]Theme, error)
}
