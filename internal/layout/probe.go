package layout

import (
	"fmt"
	"strings"
)

// ProbeClass is the CSS class of the invisible markers in a probe document.
const ProbeClass = "m-probe"

// probeOverride lets a slide grow with its content so the full height of
// every chunk can be measured on a single canvas.
const probeOverride = "<style>section { height: auto !important; overflow: visible !important; }</style>\n"

// probeMarker renders the zero-size marker for chunk idx.
func probeMarker(idx int) string {
	return fmt.Sprintf(`<span class="%s" data-idx="%d" style="font-size:0; line-height:0; margin:0; padding:0; visibility:hidden;"></span>`, ProbeClass, idx)
}

// BuildProbe renders chunks as a single-slide Marp document in which every
// chunk ends with a marker carrying its index. Blank lines between chunks
// are kept so the measured spacing matches the final deck.
func BuildProbe(chunks []Chunk, theme string) string {
	lines := []string{
		"---",
		"marp: true",
		"theme: " + theme,
		"---",
		probeOverride,
	}

	for idx, c := range chunks {
		if c.BlankBefore && idx > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, instrument(c, probeMarker(idx)))
	}
	return strings.Join(lines, "\n")
}

// instrument places marker so it stays inside the chunk's rendered block.
func instrument(c Chunk, marker string) string {
	switch c.Kind {
	case KindTableRow:
		return insertBeforeLastPipe(c.Body, marker)
	case KindTableHeader:
		rows := strings.Split(c.Body, "\n")
		rows[0] = insertBeforeLastPipe(rows[0], marker)
		return strings.Join(rows, "\n")
	}

	if c.closesBlock() {
		// A marker on the closing line would be rendered as block content.
		return c.Body + "\n" + marker + "\n"
	}
	return c.Body + marker
}

// insertBeforeLastPipe keeps the marker inside the row's last cell.
func insertBeforeLastPipe(row, marker string) string {
	i := strings.LastIndex(row, "|")
	if i < 0 {
		return row + marker
	}
	return row[:i] + marker + row[i:]
}
