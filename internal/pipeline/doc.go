// Package pipeline implements the stages around the layout engine.
//
// Before pagination the source is normalized:
//   - line endings unified, front matter stripped and parsed
//   - manual slide breaks dropped when the document is split automatically
//   - headings glued to a previous line separated, LaTeX delimiters rewritten
//
// After pagination the body is assembled into a Marp deck with a directives
// header. The package also carries a goldmark-based slide renderer used when
// the Marp CLI is not installed, and the rewriting of relative paths in the
// rendered HTML so images resolve against the source directory.
//
// Measurement and browser work is handled by the root md2slides package.
package pipeline
