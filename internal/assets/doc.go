// Package assets provides slide themes.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in themes compiled into the binary
//	    ├── FilesystemLoader  - a theme set directory on disk
//	    └── ThemeResolver     - combines both with custom-first fallback
//
// The built-in themes mirror the names of Marp's bundled themes (default,
// gaia, uncover). Their CSS is only used by the builtin renderer; when Marp
// renders, it applies its own version of these themes.
//
// A theme set directory holds one {name}.css file per theme, the layout the
// Marp CLI expects for --theme-set. Themes found there are reported as
// custom and override a built-in theme of the same name.
//
// # Security
//
// Theme names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within the
// theme set directory.
package assets
