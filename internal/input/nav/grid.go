package nav

import "strings"

// CellCount is the number of cells in the grid.
const CellCount = 9

// GridContent is the text of the nine cells in row-major order.
// An empty (or whitespace-only) entry marks an inactive cell.
type GridContent [CellCount]string

// Cell returns the entry at i, or "" when i is out of range.
func (g GridContent) Cell(i int) string {
	if i < 0 || i >= CellCount {
		return ""
	}
	return g[i]
}

// Blank returns true if cell i is inactive.
func (g GridContent) Blank(i int) bool {
	return isBlank(g.Cell(i))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Index returns the first cell holding s, or -1.
func (g GridContent) Index(s string) int {
	for i, v := range g {
		if v == s {
			return i
		}
	}
	return -1
}

// Tables holds the static content the grid navigates.
type Tables struct {
	// Base is the top-level row selector grid.
	Base GridContent

	// Rows maps a base entry to the characters of its row.
	Rows map[string]GridContent

	// Categories is the template category grid.
	Categories GridContent

	// Details maps a category to its phrases.
	Details map[string]GridContent

	// FreeInputLabel is the category entry that returns to free input.
	FreeInputLabel string
}

// Row returns the detail row for a base entry.
func (t Tables) Row(base string) (GridContent, bool) {
	if isBlank(base) || t.Rows == nil {
		return GridContent{}, false
	}
	row, ok := t.Rows[base]
	return row, ok
}

// Detail returns the phrases for a category.
func (t Tables) Detail(category string) (GridContent, bool) {
	if isBlank(category) || t.Details == nil {
		return GridContent{}, false
	}
	d, ok := t.Details[category]
	return d, ok
}
