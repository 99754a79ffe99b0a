package display

import (
	"strings"
	"unicode/utf8"
)

const (
	indent    = "  "
	columnGap = "  "
)

type cellPos struct{ row, col int }

// Table renders an aligned text table. Widths count runes, so place names
// such as "Tromsø" line up.
type Table struct {
	headers   []string
	rows      [][]string
	highlight int // -1 for none
	marked    map[cellPos]bool
	footnote  string
}

func NewTable(headers []string) *Table {
	return &Table{
		headers:   headers,
		highlight: -1,
		marked:    make(map[cellPos]bool),
	}
}

func (t *Table) AddRow(values []string) {
	t.rows = append(t.rows, values)
}

// SetHighlightRow renders row idx (0-based) in the accent style.
func (t *Table) SetHighlightRow(idx int) {
	t.highlight = idx
}

// MarkCell appends ApproxMarker to a cell and renders it in the approximation
// style.
func (t *Table) MarkCell(row, col int) {
	t.marked[cellPos{row, col}] = true
}

// SetFootnote sets the line printed under the table when any cell is marked.
func (t *Table) SetFootnote(text string) {
	t.footnote = text
}

func (t *Table) cell(row, col int) string {
	if col >= len(t.rows[row]) {
		return ""
	}
	text := t.rows[row][col]
	if t.marked[cellPos{row, col}] {
		text += ApproxMarker
	}
	return text
}

func (t *Table) widths() []int {
	w := make([]int, len(t.headers))
	for i, h := range t.headers {
		w[i] = utf8.RuneCountInString(h)
	}
	for r := range t.rows {
		for c := range w {
			if n := utf8.RuneCountInString(t.cell(r, c)); n > w[c] {
				w[c] = n
			}
		}
	}
	return w
}

func (t *Table) cellStyle(row, col int) Style {
	switch {
	case t.marked[cellPos{row, col}]:
		return StyleApprox
	case row == t.highlight:
		return StyleAccent
	}
	return ""
}

// Render returns the table with a two-space indent and a trailing newline.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}
	widths := t.widths()

	var sb strings.Builder
	sb.WriteString(indent + Bold(formatRow(t.headers, widths)) + "\n")

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("─", w)
	}
	sb.WriteString(Dim(indent+strings.Join(sep, columnGap)) + "\n")

	for r := range t.rows {
		cells := make([]string, len(widths))
		for c, w := range widths {
			cells[c] = t.cellStyle(r, c).Render(pad(t.cell(r, c), w))
		}
		sb.WriteString(indent + strings.Join(cells, columnGap) + "\n")
	}

	if len(t.marked) > 0 && t.footnote != "" {
		sb.WriteString("\n" + indent + Dim(ApproxMarker+" "+t.footnote) + "\n")
	}
	return sb.String()
}

func formatRow(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = pad(cell, w)
	}
	return strings.Join(parts, columnGap)
}

func pad(s string, width int) string {
	if n := width - utf8.RuneCountInString(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
