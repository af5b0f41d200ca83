package ingest

import (
	"fmt"
	"strings"
)

// ParsePastedText parses tab-separated text pasted straight out of a
// spreadsheet: first non-empty line is the header row, every following
// non-empty line is a data row. Short rows are padded to the header width
// rather than rejected; a pasted block without at least one data row fails.
func ParsePastedText(text string) (*Table, error) {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		return nil, fmt.Errorf("pasted text needs a header line and at least one data row")
	}

	headers := strings.Split(lines[0], "\t")

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		row, _ := alignRow(strings.Split(line, "\t"), len(headers))
		rows = append(rows, row)
	}

	t := &Table{Headers: headers, Rows: rows}
	if t.IsEmpty() {
		return nil, fmt.Errorf("pasted text has no column headers")
	}
	return t, nil
}
