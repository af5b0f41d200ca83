package ingest

import "testing"

func TestParsePastedText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantErr  bool
		wantCols int
		wantRows int
	}{
		{
			name:     "basic table",
			text:     "name\tdivision\ngrade\tAccounts",
			wantCols: 2,
			wantRows: 1,
		},
		{
			name:     "windows line endings",
			text:     "name\tdivision\r\nJane\tFinance\r\n",
			wantCols: 2,
			wantRows: 1,
		},
		{
			name:     "blank lines skipped",
			text:     "name\tdivision\n\n\nJane\tFinance\n\n",
			wantCols: 2,
			wantRows: 1,
		},
		{
			name:    "header only",
			text:    "name\tdivision",
			wantErr: true,
		},
		{
			name:    "empty input",
			text:    "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			text:    "\n  \n\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ParsePastedText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePastedText() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(table.Headers) != tt.wantCols {
				t.Errorf("headers = %d, want %d", len(table.Headers), tt.wantCols)
			}
			if len(table.Rows) != tt.wantRows {
				t.Errorf("rows = %d, want %d", len(table.Rows), tt.wantRows)
			}
		})
	}
}

func TestParsePastedTextPadsShortRows(t *testing.T) {
	table, err := ParsePastedText("name\tdivision\tgrade\nJane\tFinance")
	if err != nil {
		t.Fatalf("ParsePastedText() error = %v", err)
	}

	row := table.Rows[0]
	if len(row) != 3 {
		t.Fatalf("row width = %d, want 3", len(row))
	}
	if row[2] != "" {
		t.Errorf("padded cell = %q, want empty", row[2])
	}
}

func TestParsePastedTextTruncatesLongRows(t *testing.T) {
	table, err := ParsePastedText("name\tdivision\nJane\tFinance\tGrade 12\tExtra")
	if err != nil {
		t.Fatalf("ParsePastedText() error = %v", err)
	}

	if len(table.Rows[0]) != 2 {
		t.Errorf("row width = %d, want 2", len(table.Rows[0]))
	}
}
