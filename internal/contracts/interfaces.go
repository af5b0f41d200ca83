package contracts

import "context"

// TableExtractor pulls a tabular grid out of a scanned or PDF document.
// Implementations submit the document once and return the service's raw JSON
// response; callers must treat that payload as untrusted and validate its
// shape before use. One request per document, no retries.
type TableExtractor interface {
	ExtractTable(ctx context.Context, document []byte, mimeType string) ([]byte, error)
}

// NarrativeGenerator synthesizes report prose (executive summaries,
// recommendations) from pre-aggregated statistics.
type NarrativeGenerator interface {
	GenerateNarrative(ctx context.Context, section string, stats any) (string, error)
}

// OfficerStore persists officer records.
type OfficerStore interface {
	ReplaceAll(ctx context.Context, officers []OfficerRecord) error
	List(ctx context.Context) ([]OfficerRecord, error)
}

// EstablishmentStore persists establishment records.
type EstablishmentStore interface {
	ReplaceAll(ctx context.Context, positions []EstablishmentRecord) error
	List(ctx context.Context) ([]EstablishmentRecord, error)
}
