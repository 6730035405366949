package layout

import (
	"regexp"
	"strings"
)

// tabWidth is the number of columns a tab counts for in list indentation.
const tabWidth = 4

// Precompiled line patterns.
var (
	headingPattern      = regexp.MustCompile(`^(#{1,6})\s`)
	chunkHeadingPattern = regexp.MustCompile(`^ {0,3}(#{1,6})\s`)
	listItemPattern     = regexp.MustCompile(`^([ \t]*)([-*+]|\d+\.)\s`)
	tableRowPattern     = regexp.MustCompile(`^\|.*\|$`)
	tableSepPattern     = regexp.MustCompile(`^\|[\s\-|:]+\|$`)
	leadingSpacePattern = regexp.MustCompile(`^[ \t]+`)
)

// LineKind is the structural shape of a single source line.
type LineKind int

// Line kinds, in the order the classifier tests them.
const (
	LineBlank LineKind = iota
	LineHeading
	LineListItem
	LineTableRow
	LineContinuation
)

func (k LineKind) String() string {
	switch k {
	case LineBlank:
		return "blank"
	case LineHeading:
		return "heading"
	case LineListItem:
		return "list-item"
	case LineTableRow:
		return "table-row"
	default:
		return "continuation"
	}
}

// Line is a classified source line. Only the fields relevant to Kind are set,
// except Fence and MathToggle which are independent of the shape because
// block delimiters are honored before anything else.
type Line struct {
	Kind LineKind
	Raw  string

	// Depth is the heading depth (1-6) for LineHeading.
	Depth int
	// Indent is the list marker column for LineListItem, tabs expanded.
	Indent int
	// Separator marks a LineTableRow made only of dashes, colons, pipes and spaces.
	Separator bool
	// Indented marks a line starting with whitespace.
	Indented bool

	// Fence marks a line opening or closing a fenced code block.
	Fence bool
	// MathToggle marks a line with an odd number of $$ delimiters.
	MathToggle bool
}

// ClassifyLine determines the structural kind of raw.
func ClassifyLine(raw string) Line {
	stripped := strings.TrimSpace(raw)
	ln := Line{
		Raw:        raw,
		Indented:   leadingSpacePattern.MatchString(raw),
		Fence:      strings.HasPrefix(stripped, "```"),
		MathToggle: strings.Count(raw, "$$")%2 != 0,
	}

	switch {
	case stripped == "":
		ln.Kind = LineBlank
	case tableRowPattern.MatchString(stripped):
		ln.Kind = LineTableRow
		ln.Separator = tableSepPattern.MatchString(stripped)
	case headingPattern.MatchString(raw):
		ln.Kind = LineHeading
		ln.Depth = len(headingPattern.FindStringSubmatch(raw)[1])
	case listItemPattern.MatchString(raw):
		ln.Kind = LineListItem
		ln.Indent = indentWidth(listItemPattern.FindStringSubmatch(raw)[1])
	default:
		ln.Kind = LineContinuation
	}
	return ln
}

// indentWidth counts leading columns with tabs expanded to tabWidth.
func indentWidth(prefix string) int {
	return len(strings.ReplaceAll(prefix, "\t", strings.Repeat(" ", tabWidth)))
}

// HeadingDepth returns the depth of a heading at the start of body, allowing
// up to three spaces of indentation, or 0 if body does not start with one.
func HeadingDepth(body string) int {
	m := chunkHeadingPattern.FindStringSubmatch(body)
	if m == nil {
		return 0
	}
	return len(m[1])
}
