package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// maxXLSCells bounds legacy .xls reads; the register sheets are thousands
// of rows, not hundreds of thousands.
const maxXLSCells = 100000

// ParseSpreadsheet decodes an uploaded workbook or CSV into a Table.
// Only the first sheet of a workbook is read; blank cells become empty
// strings. The grid is aligned to the header row width before returning.
func ParseSpreadsheet(data []byte, filename string) (*Table, error) {
	grid, err := readGrid(data, filename)
	if err != nil {
		return nil, err
	}
	if len(grid) == 0 || len(grid[0]) == 0 {
		return nil, fmt.Errorf("spreadsheet has no columns")
	}

	headers := grid[0]
	rows := make([][]string, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		row, _ := alignRow(raw, len(headers))
		rows = append(rows, row)
	}

	t := &Table{Headers: headers, Rows: rows}
	if t.IsEmpty() {
		return nil, fmt.Errorf("spreadsheet has no column headers")
	}
	return t, nil
}

// readGrid dispatches on file extension: csv, legacy xls, or xlsx/xlsm.
func readGrid(data []byte, filename string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return readCSV(data)
	case ".xls":
		return readXLS(data)
	default:
		return readXLSX(data)
	}
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // rows are aligned later, not rejected
	r.LazyQuotes = true

	grid, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return grid, nil
}

func readXLS(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("failed to open XLS workbook: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	grid := workbook.ReadAllCells(maxXLSCells)
	if len(grid) == 0 {
		return nil, fmt.Errorf("worksheet is empty")
	}
	return grid, nil
}

func readXLSX(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	// First sheet only
	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	grid, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheetName, err)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("worksheet %q is empty", sheetName)
	}
	return grid, nil
}
