package assets

import (
	"fmt"
	"regexp"
)

// themeNamePattern accepts the names Marp themes use in practice.
var themeNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)

// MaxThemeNameLength bounds theme names read from input.
const MaxThemeNameLength = 64

// ValidateThemeName checks that a theme name is safe for use as a filename
// and as a front matter value.
func ValidateThemeName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidThemeName)
	}
	if len(name) > MaxThemeNameLength || !themeNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidThemeName, name)
	}
	return nil
}
