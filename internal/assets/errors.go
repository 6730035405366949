package assets

import "errors"

// Sentinel errors for theme operations.
var (
	// ErrThemeNotFound indicates the requested theme does not exist.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidThemeName indicates the theme name contains characters
	// other than letters, digits, dashes and underscores.
	ErrInvalidThemeName = errors.New("invalid theme name")

	// ErrInvalidBasePath indicates the theme set path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid theme set directory")

	// ErrAssetRead indicates an I/O error occurred while reading a theme file.
	ErrAssetRead = errors.New("failed to read theme")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
