package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// TableFromExtraction validates the raw JSON payload returned by the
// document-extraction service and converts it into a Table. The service is
// an untrusted collaborator: every level of the payload's shape is checked
// before any of it is used. A structured {"error": ...} payload is passed
// through to the user verbatim.
func TableFromExtraction(raw []byte, log *logger.Logger) (*Table, error) {
	if log == nil {
		log = logger.NewNop()
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("extraction service returned malformed JSON")
	}

	if errRaw, ok := payload["error"]; ok {
		var msg string
		if err := json.Unmarshal(errRaw, &msg); err == nil && msg != "" {
			return nil, fmt.Errorf("document extraction failed: %s", msg)
		}
	}

	dataRaw, ok := payload["data"]
	if !ok {
		return nil, fmt.Errorf("extraction service returned no table")
	}

	var rowsRaw []json.RawMessage
	if err := json.Unmarshal(dataRaw, &rowsRaw); err != nil {
		return nil, fmt.Errorf("extraction service returned a malformed table grid")
	}
	if len(rowsRaw) < 2 {
		return nil, fmt.Errorf("extracted table has no data rows")
	}

	grid := make([][]string, 0, len(rowsRaw))
	for i, rowRaw := range rowsRaw {
		var row []string
		if err := json.Unmarshal(rowRaw, &row); err != nil {
			return nil, fmt.Errorf("extraction service returned a malformed table grid (row %d)", i+1)
		}
		grid = append(grid, row)
	}

	headers := grid[0]
	if len(headers) == 0 {
		return nil, fmt.Errorf("extracted table has no columns")
	}

	rows := make([][]string, 0, len(grid)-1)
	corrected := 0
	for _, raw := range grid[1:] {
		row, fixed := alignRow(raw, len(headers))
		if fixed {
			corrected++
		}
		rows = append(rows, row)
	}
	if corrected > 0 {
		// Width drift is common in scanned tables; correct and continue.
		log.WithFields(map[string]interface{}{
			"corrected_rows": corrected,
			"header_width":   len(headers),
		}).Warn("Extracted rows did not match header width; padded or truncated")
	}

	t := &Table{Headers: headers, Rows: rows}
	if t.IsEmpty() {
		return nil, fmt.Errorf("extracted table has no column headers")
	}
	return t, nil
}
