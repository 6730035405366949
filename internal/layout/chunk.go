package layout

import "strings"

// Kind identifies how a chunk participates in pagination.
type Kind string

// Chunk kinds.
const (
	KindText        Kind = "text"
	KindTableHeader Kind = "table_header"
	KindTableRow    Kind = "table_row"
)

// Chunk is the smallest unit the paginator places on a page.
type Chunk struct {
	Kind Kind
	// Body is the verbatim source text of the unit, lines joined by "\n".
	Body string
	// Context holds the ancestor list-item lines, outermost first, that were
	// open when the chunk began. Empty outside lists.
	Context []string
	// Header is the header and separator rows of the table a row belongs to.
	// Table header chunks carry their own text.
	Header string
	// BlankBefore records a blank line before the chunk in the source.
	BlankBefore bool
}

// IsTable reports whether the chunk is part of a table.
func (c Chunk) IsTable() bool {
	return c.Kind == KindTableHeader || c.Kind == KindTableRow
}

// closesBlock reports whether the body ends with a code fence or math
// delimiter, in which case inline markers would land inside the block.
func (c Chunk) closesBlock() bool {
	trimmed := strings.TrimSpace(c.Body)
	return strings.HasSuffix(trimmed, "```") || strings.HasSuffix(trimmed, "$$")
}
