package ingest

import (
	"strings"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

// dedupKey builds the identity key for an officer: the trimmed lowercase
// email when present, otherwise name + "-" + position. An empty key, or
// the bare "-" left by a record with neither name nor position, cannot be
// deduplicated safely.
func dedupKey(o *contracts.OfficerRecord) string {
	if email := strings.ToLower(strings.TrimSpace(o.Email)); email != "" {
		return email
	}
	name := strings.ToLower(strings.TrimSpace(o.Name))
	position := strings.ToLower(strings.TrimSpace(o.Position))
	return name + "-" + position
}

// DedupOfficers merges officer records by identity key. Output order
// follows the first appearance of each key; on collision the later record
// wins wholesale, matching "most recently imported or edited wins".
// Records whose key is unusable are dropped.
func DedupOfficers(in []contracts.OfficerRecord) []contracts.OfficerRecord {
	out := make([]contracts.OfficerRecord, 0, len(in))
	seen := make(map[string]int, len(in))

	for _, rec := range in {
		key := dedupKey(&rec)
		if key == "" || key == "-" {
			continue
		}
		if i, ok := seen[key]; ok {
			out[i] = rec
			continue
		}
		seen[key] = len(out)
		out = append(out, rec)
	}

	return out
}
