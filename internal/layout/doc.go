// Package layout implements the two-pass slide pagination engine.
//
// The engine never renders anything itself. It works in three pure stages
// around one external measurement:
//   - Chunks segments raw Markdown into atomic units (headings, list items,
//     paragraphs, table rows, whole code and math blocks) and records the list
//     ancestors and table header each unit needs if a page starts with it.
//   - BuildProbe instruments those units with invisible indexed markers so a
//     renderer can report where each unit ends on the canvas.
//   - Paginate turns the measured marker positions into page breaks, reprinting
//     list ancestors and table headers at the top of continued pages.
//
// TargetLevels picks the heading depths that always start a new page.
package layout
