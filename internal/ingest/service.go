package ingest

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// Dataset selects which register an import targets.
type Dataset string

const (
	DatasetOfficers      Dataset = "officers"
	DatasetEstablishment Dataset = "establishment"
)

// ImportResult summarizes one import run. Preview holds the leading raw rows
// so the user can confirm what was parsed; Committed reports whether the run
// was persisted.
type ImportResult struct {
	ImportID      string     `json:"importId"`
	Dataset       Dataset    `json:"dataset"`
	RowsRead      int        `json:"rowsRead"`
	RecordsValid  int        `json:"recordsValid"`
	RecordsStored int        `json:"recordsStored"`
	Committed     bool       `json:"committed"`
	Headers       []string   `json:"headers"`
	Preview       [][]string `json:"preview"`
}

// Service runs the import pipeline end to end: parse the source into a table,
// normalize it, and (on commit) merge it into the stores.
type Service struct {
	normalizer    *Normalizer
	extractor     contracts.TableExtractor
	officers      contracts.OfficerStore
	establishment contracts.EstablishmentStore
	logger        *logger.Logger
}

func NewService(
	normalizer *Normalizer,
	extractor contracts.TableExtractor,
	officers contracts.OfficerStore,
	establishment contracts.EstablishmentStore,
	log *logger.Logger,
) *Service {
	return &Service{
		normalizer:    normalizer,
		extractor:     extractor,
		officers:      officers,
		establishment: establishment,
		logger:        log,
	}
}

// ImportPaste imports tab-separated text pasted from a spreadsheet.
func (s *Service) ImportPaste(ctx context.Context, dataset Dataset, text string, commit bool) (*ImportResult, error) {
	table, err := ParsePastedText(text)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, dataset, table, commit)
}

// ImportSpreadsheet imports an uploaded .xlsx, .xls, or .csv file.
func (s *Service) ImportSpreadsheet(ctx context.Context, dataset Dataset, data []byte, filename string, commit bool) (*ImportResult, error) {
	table, err := ParseSpreadsheet(data, filename)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, dataset, table, commit)
}

// ImportDocument sends a scanned or exported document to the extraction
// service and imports the table it returns. The extraction payload is treated
// as untrusted and validated before use.
func (s *Service) ImportDocument(ctx context.Context, dataset Dataset, document []byte, mimeType string, commit bool) (*ImportResult, error) {
	if s.extractor == nil {
		return nil, fmt.Errorf("document extraction is not configured")
	}

	raw, err := s.extractor.ExtractTable(ctx, document, mimeType)
	if err != nil {
		return nil, fmt.Errorf("document extraction failed: %w", err)
	}

	table, err := TableFromExtraction(raw, s.logger)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, dataset, table, commit)
}

func (s *Service) run(ctx context.Context, dataset Dataset, table *Table, commit bool) (*ImportResult, error) {
	switch dataset {
	case DatasetOfficers:
		return s.runOfficers(ctx, table, commit)
	case DatasetEstablishment:
		return s.runEstablishment(ctx, table, commit)
	default:
		return nil, fmt.Errorf("unknown dataset %q", dataset)
	}
}

func (s *Service) runOfficers(ctx context.Context, table *Table, commit bool) (*ImportResult, error) {
	imported, err := s.normalizer.OfficersFromTable(table)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		ImportID:     uuid.NewString(),
		Dataset:      DatasetOfficers,
		RowsRead:     len(table.Rows),
		RecordsValid: len(imported.Officers),
		Headers:      imported.Headers,
		Preview:      imported.Preview,
	}

	if !commit {
		return result, nil
	}

	existing, err := s.officers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing officers: %w", err)
	}

	// New records come after existing ones so a re-imported officer
	// replaces the stored version.
	merged := DedupOfficers(append(existing, imported.Officers...))
	if err := s.officers.ReplaceAll(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to store officers: %w", err)
	}

	result.Committed = true
	result.RecordsStored = len(merged)

	s.logger.WithFields(map[string]interface{}{
		"import_id": result.ImportID,
		"rows_read": result.RowsRead,
		"valid":     result.RecordsValid,
		"stored":    result.RecordsStored,
	}).Info("Officer import committed")

	return result, nil
}

func (s *Service) runEstablishment(ctx context.Context, table *Table, commit bool) (*ImportResult, error) {
	imported, err := s.normalizer.EstablishmentFromTable(table)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		ImportID:     uuid.NewString(),
		Dataset:      DatasetEstablishment,
		RowsRead:     len(table.Rows),
		RecordsValid: len(imported.Positions),
		Headers:      imported.Headers,
		Preview:      imported.Preview,
	}

	if !commit {
		return result, nil
	}

	// The establishment register is authoritative, so each commit
	// replaces it wholesale.
	if err := s.establishment.ReplaceAll(ctx, imported.Positions); err != nil {
		return nil, fmt.Errorf("failed to store establishment positions: %w", err)
	}

	result.Committed = true
	result.RecordsStored = len(imported.Positions)

	s.logger.WithFields(map[string]interface{}{
		"import_id": result.ImportID,
		"rows_read": result.RowsRead,
		"stored":    result.RecordsStored,
	}).Info("Establishment import committed")

	return result, nil
}
