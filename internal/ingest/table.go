package ingest

import "strings"

// Table is the intermediate representation every format adapter produces:
// an ordered header list plus rows aligned to it. Every row has exactly
// len(Headers) cells by the time it leaves an adapter.
type Table struct {
	Headers []string
	Rows    [][]string
}

// headerIndex maps each header to its first column position. Duplicate
// headers keep the leftmost column.
func (t *Table) headerIndex() map[string]int {
	idx := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if _, seen := idx[h]; !seen {
			idx[h] = i
		}
	}
	return idx
}

// Preview returns at most n rows of the raw parsed table for user
// confirmation before commit.
func (t *Table) Preview(n int) [][]string {
	if n <= 0 || n >= len(t.Rows) {
		return t.Rows
	}
	return t.Rows[:n]
}

// IsEmpty reports whether the table has no usable columns.
func (t *Table) IsEmpty() bool {
	for _, h := range t.Headers {
		if strings.TrimSpace(h) != "" {
			return false
		}
	}
	return true
}

// alignRow pads a short row with empty cells or truncates a long one so it
// matches the header width. Returns the corrected row and whether a
// correction was needed.
func alignRow(row []string, width int) ([]string, bool) {
	if len(row) == width {
		return row, false
	}
	if len(row) > width {
		return row[:width], true
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded, true
}
