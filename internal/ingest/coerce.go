package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

// Cell coercion functions. All of them are total: absent or unparseable
// input yields the documented default, never an error.

var listSplitRe = regexp.MustCompile(`[,;]`)

// ParseDelimitedList splits a raw cell on commas or semicolons, trimming
// each piece and dropping empties. Empty input yields an empty list.
func ParseDelimitedList(raw string) []string {
	out := []string{}
	if strings.TrimSpace(raw) == "" {
		return out
	}
	for _, piece := range listSplitRe.Split(raw, -1) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// ParseOptionalBool parses yes/no style cells. The result is three-valued:
// nil means the question was not answered, which is distinct from false.
func ParseOptionalBool(raw string) *bool {
	v := true
	f := false
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "true", "1":
		return &v
	case "no", "false", "0":
		return &f
	default:
		return nil
	}
}

// trainingEntryRe matches "<courseName> (<YYYY-MM-DD>)".
var trainingEntryRe = regexp.MustCompile(`^(.*?)\s*\((\d{4}-\d{2}-\d{2})\)$`)

// ParseTrainingHistory parses a comma-separated training-history cell.
// Entries that do not carry a parseable completion date are kept with
// "N/A" rather than dropped: a course name alone is still information.
func ParseTrainingHistory(raw string) []contracts.TrainingRecord {
	out := []contracts.TrainingRecord{}
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if m := trainingEntryRe.FindStringSubmatch(entry); m != nil {
			out = append(out, contracts.TrainingRecord{
				CourseName:     strings.TrimSpace(m[1]),
				CompletionDate: m[2],
			})
			continue
		}
		out = append(out, contracts.TrainingRecord{
			CourseName:     entry,
			CompletionDate: "N/A",
		})
	}
	return out
}

// ParseBoundedInt parses an integer constrained to [min, max]. ok=false
// means the cell is unusable and should be skipped.
func ParseBoundedInt(raw string, min, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, false
	}
	if n < min || n > max {
		return 0, false
	}
	return n, true
}

// ParseOptionalInt parses a non-negative integer cell (age, years of
// experience). Unparseable input is absent, not zero.
func ParseOptionalInt(raw string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}
