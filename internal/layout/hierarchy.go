package layout

// listEntry is an open list item at a given indentation.
type listEntry struct {
	indent int
	line   string
}

// listHierarchy maps indentation to the most recent list item opened there.
// Values are never modified in place; every transition returns a new one.
type listHierarchy struct {
	entries []listEntry // sorted by indent, ascending
}

// shallowerThan returns the hierarchy without items at or deeper than indent.
func (h listHierarchy) shallowerThan(indent int) listHierarchy {
	kept := make([]listEntry, 0, len(h.entries))
	for _, e := range h.entries {
		if e.indent < indent {
			kept = append(kept, e)
		}
	}
	return listHierarchy{entries: kept}
}

// open records line as the item at indent, superseding anything at or deeper.
func (h listHierarchy) open(indent int, line string) listHierarchy {
	next := h.shallowerThan(indent)
	next.entries = append(next.entries, listEntry{indent: indent, line: line})
	return next
}

// lines returns the recorded item lines from outermost to innermost.
func (h listHierarchy) lines() []string {
	if len(h.entries) == 0 {
		return nil
	}
	out := make([]string, len(h.entries))
	for i, e := range h.entries {
		out[i] = e.line
	}
	return out
}
