package ingest

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ResolveHeader returns the first source header containing one of the
// aliases as a whole word, case-insensitive. Aliases are tried in priority
// order, so "email address" beats "email" when both are listed. Returns
// ok=false when nothing matches; an unresolved header is not an error.
func ResolveHeader(headers []string, aliases []string) (string, bool) {
	for _, alias := range aliases {
		re, err := regexp.Compile(`(?i)\b` + alias + `\b`)
		if err != nil {
			// Malformed alias pattern: degrade to a plain substring match
			// instead of failing the import.
			lowerAlias := strings.ToLower(alias)
			for _, h := range headers {
				if strings.Contains(strings.ToLower(h), lowerAlias) {
					return h, true
				}
			}
			continue
		}

		for _, h := range headers {
			if re.MatchString(h) {
				return h, true
			}
		}
	}
	return "", false
}

// resolveFields maps every canonical field in the alias table to a source
// header. Fields with no matching header are simply absent from the result.
func resolveFields(headers []string, aliases AliasTable) map[Field]string {
	resolved := make(map[Field]string, len(aliases))
	for field, list := range aliases {
		if h, ok := ResolveHeader(headers, list); ok {
			resolved[field] = h
		}
	}
	return resolved
}

// checkRequiredFields fails with the full list of missing canonical names
// so the user can fix the sheet in one pass.
func checkRequiredFields(resolved map[Field]string, required []Field) error {
	var missing []string
	for _, f := range required {
		if _, ok := resolved[f]; !ok {
			missing = append(missing, string(f))
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ratingColumnRe matches CNA question codes: a letter A-G followed by one
// or two digits. H2, H5 and H6 are additional literal codes from the
// questionnaire's final section.
var ratingColumnRe = regexp.MustCompile(`^[A-G][0-9]{1,2}$`)

// IsRatingColumn reports whether a header is a capability-rating column.
func IsRatingColumn(header string) bool {
	code := strings.ToUpper(strings.TrimSpace(header))
	if ratingColumnRe.MatchString(code) {
		return true
	}
	switch code {
	case "H2", "H5", "H6":
		return true
	}
	return false
}

// ratingColumns returns the rating headers in source order.
func ratingColumns(headers []string) []string {
	var cols []string
	for _, h := range headers {
		if IsRatingColumn(h) {
			cols = append(cols, h)
		}
	}
	return cols
}
