package layout

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Pagination defaults for a 1280x720 slide.
const (
	DefaultUsableHeight = 620.0
	DefaultSafetyMargin = 30.0
)

// PageBreak separates two slides in the output.
const PageBreak = "\n---\n"

// ErrProbeMismatch indicates measured probes do not line up with the chunks.
var ErrProbeMismatch = errors.New("probes do not match chunks")

// Probe is the measured bottom edge of one chunk.
type Probe struct {
	Idx int     `json:"idx"`
	Y   float64 `json:"y"`
}

// Measurement is what a layout measurer reports for a probe document.
type Measurement struct {
	UsableHeight float64 `json:"usableHeight"`
	Probes       []Probe `json:"probes"`
}

// Budget bounds the height of a single page.
type Budget struct {
	UsableHeight float64
	// SafetyMargin is subtracted from UsableHeight to absorb measurement
	// noise. It depends on the renderer's font metrics.
	SafetyMargin float64
}

// limit is the largest relative offset a chunk may end at.
func (b Budget) limit() float64 {
	return b.UsableHeight - b.SafetyMargin
}

// SortProbes returns probes ordered by index and checks there is exactly one
// per chunk, so probe i describes chunk i.
func SortProbes(probes []Probe, chunkCount int) ([]Probe, error) {
	if len(probes) != chunkCount {
		return nil, fmt.Errorf("%w: %d probes for %d chunks", ErrProbeMismatch, len(probes), chunkCount)
	}
	sorted := slices.Clone(probes)
	slices.SortFunc(sorted, func(a, b Probe) int { return a.Idx - b.Idx })
	for i, p := range sorted {
		if p.Idx != i {
			return nil, fmt.Errorf("%w: missing probe %d", ErrProbeMismatch, i)
		}
	}
	return sorted, nil
}

// Paginate inserts page breaks into the chunk sequence using the measured
// probes. probes must be sorted with one entry per chunk (see SortProbes).
//
// A page breaks before a chunk that would end past the budget, or that is a
// heading at one of levels, unless nothing else is on the page yet: an
// oversized chunk overflows rather than producing an empty page.
//
// The one exception to breaking before a target heading: a heading stays on
// a page that so far holds nothing but strictly shallower headings, so a
// title keeps its first section. Any body line, list or table on the page,
// or a heading of the same or a deeper level, restores the break.
//
// A page that starts with a table row gets the table header again, and one
// that starts inside a list gets the item's ancestors.
func Paginate(chunks []Chunk, probes []Probe, levels HeadingLevels, budget Budget) string {
	var out []string
	baseline := 0.0
	var page pageHeadings

	for i, p := range probes {
		c := chunks[p.Idx]
		depth := 0
		if c.Kind == KindText {
			depth = HeadingDepth(c.Body)
		}

		targetHeading := levels.Contains(depth) && !page.introduces(depth)
		overflow := p.Y-baseline > budget.limit()
		firstOnPage := i == 0 || probes[i-1].Y == baseline

		if (overflow || targetHeading) && !firstOnPage {
			out = append(out, PageBreak)
			baseline = probes[i-1].Y
			page = pageHeadings{}
			if c.Kind == KindTableRow {
				out = append(out, c.Header)
			}
			out = append(out, c.Context...)
		} else if c.BlankBefore && len(out) > 0 && out[len(out)-1] != PageBreak {
			out = append(out, "")
		}

		out = append(out, c.Body)
		page = page.place(c, depth)
	}

	return strings.Join(out, "\n")
}

// pageHeadings tracks whether the current page holds nothing but headings.
type pageHeadings struct {
	started bool
	content bool
	deepest int
}

// introduces reports whether a heading at depth would only follow shallower
// headings on the current page.
func (h pageHeadings) introduces(depth int) bool {
	return h.started && !h.content && depth > h.deepest
}

func (h pageHeadings) place(c Chunk, depth int) pageHeadings {
	h.started = true
	if depth == 0 || strings.Contains(c.Body, "\n") || len(c.Context) > 0 {
		h.content = true
		return h
	}
	h.deepest = max(h.deepest, depth)
	return h
}
