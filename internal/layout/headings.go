package layout

import (
	"slices"
	"strings"
)

// DefaultSplitDepth is the number of heading depths that force a page break.
const DefaultSplitDepth = 2

// defaultLevels applies when a document has no headings at all.
var defaultLevels = HeadingLevels{1, 2}

// HeadingLevels is an ascending set of heading depths.
type HeadingLevels []int

// Contains reports whether depth is in the set.
func (l HeadingLevels) Contains(depth int) bool {
	return slices.Contains(l, depth)
}

// TargetLevels returns the splitDepth shallowest heading depths used in text.
// Documents do not always start at depth 1, so the levels are relative to
// what the document uses. Without headings it returns {1, 2}.
// A splitDepth below 1 is treated as DefaultSplitDepth.
func TargetLevels(text string, splitDepth int) HeadingLevels {
	if splitDepth < 1 {
		splitDepth = DefaultSplitDepth
	}

	var present [7]bool
	for _, line := range strings.Split(text, "\n") {
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			present[len(m[1])] = true
		}
	}

	levels := make(HeadingLevels, 0, splitDepth)
	for depth := 1; depth <= 6 && len(levels) < splitDepth; depth++ {
		if present[depth] {
			levels = append(levels, depth)
		}
	}
	if len(levels) == 0 {
		return slices.Clone(defaultLevels)
	}
	return levels
}
