package layout

import "strings"

// scanState is everything the chunker remembers between lines.
type scanState struct {
	inCode  bool
	inMath  bool
	inTable bool

	// tableHeader is the header and separator of the table being scanned.
	tableHeader string
	list        listHierarchy

	// open holds the lines of the chunk being built.
	open []string
	// context is the ancestor snapshot taken when the open chunk started.
	context      []string
	pendingBlank bool
}

// chunker is a single-pass line scanner producing chunks.
type chunker struct {
	st     scanState
	chunks []Chunk
}

// Chunks splits a Markdown document into pagination units.
//
// Fenced code and $$ math blocks are never split, including when they are
// unbalanced: everything after an unterminated opener stays in one chunk.
// Tables are only recognized once a header row is directly followed by a
// separator row; anything else shaped like a row is plain text.
func Chunks(text string) []Chunk {
	c := &chunker{}
	for _, raw := range strings.Split(text, "\n") {
		c.feed(ClassifyLine(raw))
	}
	c.closeChunk()
	return c.chunks
}

func (c *chunker) feed(ln Line) {
	if ln.Fence || ln.MathToggle || c.st.inCode || c.st.inMath {
		c.feedProtected(ln)
		return
	}
	if c.st.inTable {
		c.feedAfterTableRow(ln)
		return
	}

	switch ln.Kind {
	case LineBlank:
		c.closeChunk()
		c.st.pendingBlank = true
	case LineHeading:
		c.closeChunk()
		c.st.list = listHierarchy{}
		c.st.context = nil
		c.st.open = []string{ln.Raw}
	case LineListItem:
		c.closeChunk()
		c.st.list = c.st.list.shallowerThan(ln.Indent)
		c.st.context = c.st.list.lines()
		c.st.list = c.st.list.open(ln.Indent, ln.Raw)
		c.st.open = []string{ln.Raw}
	case LineTableRow:
		if ln.Separator && c.lastOpenIsRow() {
			c.startTable(ln)
			return
		}
		c.continueWith(ln)
	default:
		c.continueWith(ln)
	}
}

// feedProtected handles block delimiters and everything inside a block.
func (c *chunker) feedProtected(ln Line) {
	if c.st.inTable {
		c.leaveTable()
	}
	if ln.Fence {
		c.st.inCode = !c.st.inCode
	}
	if ln.MathToggle {
		c.st.inMath = !c.st.inMath
	}
	c.appendLine(ln.Raw)
}

// feedAfterTableRow handles the line following a confirmed table row.
func (c *chunker) feedAfterTableRow(ln Line) {
	if ln.Kind == LineTableRow {
		c.chunks = append(c.chunks, Chunk{
			Kind:   KindTableRow,
			Body:   ln.Raw,
			Header: c.st.tableHeader,
		})
		return
	}

	c.leaveTable()
	c.st.context = nil
	switch ln.Kind {
	case LineBlank:
		c.st.pendingBlank = true
	case LineListItem:
		c.st.list = c.st.list.open(ln.Indent, ln.Raw)
		c.st.open = []string{ln.Raw}
	default:
		c.st.open = append(c.st.open, ln.Raw)
	}
}

// continueWith appends a plain line, ending the current list when an
// unindented paragraph starts outside any open chunk.
func (c *chunker) continueWith(ln Line) {
	if !ln.Indented && len(c.st.open) == 0 {
		c.st.list = listHierarchy{}
	}
	c.appendLine(ln.Raw)
}

// appendLine adds raw to the open chunk, starting one if needed.
func (c *chunker) appendLine(raw string) {
	if len(c.st.open) == 0 {
		c.st.context = c.st.list.lines()
	}
	c.st.open = append(c.st.open, raw)
}

// lastOpenIsRow reports whether the last buffered line is shaped like a row.
func (c *chunker) lastOpenIsRow() bool {
	if len(c.st.open) == 0 {
		return false
	}
	last := strings.TrimSpace(c.st.open[len(c.st.open)-1])
	return tableRowPattern.MatchString(last)
}

// startTable turns the buffered header row and the separator ln into a
// table header chunk, flushing any text buffered before the header.
func (c *chunker) startTable(ln Line) {
	headerRow := c.st.open[len(c.st.open)-1]
	header := headerRow + "\n" + ln.Raw

	c.st.open = c.st.open[:len(c.st.open)-1]
	c.closeChunk()

	c.chunks = append(c.chunks, Chunk{
		Kind:        KindTableHeader,
		Body:        header,
		Header:      header,
		BlankBefore: c.st.pendingBlank,
	})
	c.st.pendingBlank = false
	c.st.inTable = true
	c.st.tableHeader = header
	c.st.list = listHierarchy{}
	c.st.context = nil
}

func (c *chunker) leaveTable() {
	c.st.inTable = false
	c.st.tableHeader = ""
	c.st.list = listHierarchy{}
}

// closeChunk emits the open chunk as text, if any.
func (c *chunker) closeChunk() {
	if len(c.st.open) == 0 {
		return
	}
	c.chunks = append(c.chunks, Chunk{
		Kind:        KindText,
		Body:        strings.Join(c.st.open, "\n"),
		Context:     c.st.context,
		BlankBefore: c.st.pendingBlank,
	})
	c.st.open = nil
	c.st.pendingBlank = false
}
