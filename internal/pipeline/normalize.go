package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Compress runs of blank lines to a single one
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)

	// A line holding only a slide separator
	manualBreakLine = regexp.MustCompile(`^[ \t]*---[ \t]*$`)

	// A heading line, allowing up to three spaces of indentation
	headingLine = regexp.MustCompile(`^ {0,3}#{1,6}[ \t]`)

	// LaTeX math delimiters \( \) and \[ \]
	inlineMath  = regexp.MustCompile(`\\\((.*?)\\\)`)
	displayMath = regexp.MustCompile(`(?s)\\\[(.*?)\\\]`)
)

// Document is a normalized Markdown source ready for pagination.
type Document struct {
	// Body is the Markdown without front matter.
	Body string
	// FrontMatter holds the directives found in the source, if any.
	FrontMatter FrontMatter
	// Split reports whether Body should go through the layout engine.
	// It is false when manual slide breaks are kept.
	Split bool
}

// Normalize prepares content for pagination.
//
// The document is split automatically when autoSplit is set or when it has
// no manual slide breaks. In that case manual breaks are removed, a blank
// line is inserted before headings glued to the previous line, LaTeX
// delimiters are rewritten to dollar math and blank runs are collapsed.
// Otherwise the body is kept as written, apart from line endings.
func Normalize(content string, autoSplit bool) Document {
	content = normalizeLineEndings(content)
	fm, body := SplitFrontMatter(strings.TrimSpace(content))
	body = strings.TrimSpace(body)

	if !autoSplit && HasManualBreaks(body) {
		return Document{Body: body, FrontMatter: fm}
	}

	body = rewriteLines(body)
	body = convertMathDelimiters(body)
	body = compressBlankLines(body)
	return Document{Body: strings.TrimSpace(body), FrontMatter: fm, Split: true}
}

// HasManualBreaks reports whether content contains a slide separator line
// outside fenced code.
func HasManualBreaks(content string) bool {
	inFence := false
	for _, line := range strings.Split(content, "\n") {
		if isFence(line) {
			inFence = !inFence
			continue
		}
		if !inFence && manualBreakLine.MatchString(line) {
			return true
		}
	}
	return false
}

// rewriteLines drops manual breaks and separates glued headings, leaving
// fenced code untouched.
func rewriteLines(content string) string {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	inFence := false

	for _, line := range lines {
		switch {
		case isFence(line):
			inFence = !inFence
		case inFence:
		case manualBreakLine.MatchString(line):
			line = ""
		case headingLine.MatchString(line) && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "":
			out = append(out, "")
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func isFence(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// compressBlankLines limits consecutive blank lines to one.
func compressBlankLines(content string) string {
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// convertMathDelimiters rewrites \( x \) to $x$ and \[ x \] to $$x$$, the
// delimiters Marp's math plugin understands.
func convertMathDelimiters(content string) string {
	content = inlineMath.ReplaceAllString(content, `$$$1$$`)
	return displayMath.ReplaceAllString(content, `$$$$$1$$$$`)
}
