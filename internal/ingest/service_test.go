package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

type fakeOfficerStore struct {
	records  []contracts.OfficerRecord
	listErr  error
	storeErr error
}

func (f *fakeOfficerStore) ReplaceAll(_ context.Context, officers []contracts.OfficerRecord) error {
	if f.storeErr != nil {
		return f.storeErr
	}
	f.records = officers
	return nil
}

func (f *fakeOfficerStore) List(_ context.Context) ([]contracts.OfficerRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.records, nil
}

type fakeEstablishmentStore struct {
	records []contracts.EstablishmentRecord
}

func (f *fakeEstablishmentStore) ReplaceAll(_ context.Context, positions []contracts.EstablishmentRecord) error {
	f.records = positions
	return nil
}

func (f *fakeEstablishmentStore) List(_ context.Context) ([]contracts.EstablishmentRecord, error) {
	return f.records, nil
}

type fakeExtractor struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeExtractor) ExtractTable(_ context.Context, _ []byte, _ string) ([]byte, error) {
	f.calls++
	return f.payload, f.err
}

func newTestService(t *testing.T) (*Service, *fakeOfficerStore, *fakeEstablishmentStore, *fakeExtractor) {
	t.Helper()
	officers := &fakeOfficerStore{}
	establishment := &fakeEstablishmentStore{}
	extractor := &fakeExtractor{}
	norm := NewNormalizer(NormalizerConfig{AgencyType: "national"}, logger.NewNop())
	svc := NewService(norm, extractor, officers, establishment, logger.NewNop())
	return svc, officers, establishment, extractor
}

const officerPaste = "Name\tDivision\tGrade\tPosition\tEmail\tA1\tA2\n" +
	"Jane Doe\tFinance\tGrade 12\tAccountant\tjane@agency.gov.pg\t7\t4\n" +
	"John Kila\tFinance\tGrade 9\tClerk\tjohn@agency.gov.pg\t9\t8\n"

func TestService_ImportPaste_PreviewDoesNotStore(t *testing.T) {
	svc, officers, _, _ := newTestService(t)

	result, err := svc.ImportPaste(context.Background(), DatasetOfficers, officerPaste, false)
	require.NoError(t, err)

	assert.False(t, result.Committed)
	assert.Equal(t, 2, result.RowsRead)
	assert.Equal(t, 2, result.RecordsValid)
	assert.Equal(t, 0, result.RecordsStored)
	assert.Len(t, result.Preview, 2)
	assert.Empty(t, officers.records, "preview must not touch the store")
}

func TestService_ImportPaste_CommitMergesWithExisting(t *testing.T) {
	svc, officers, _, _ := newTestService(t)
	officers.records = []contracts.OfficerRecord{
		{Email: "jane@agency.gov.pg", Name: "Jane Doe", Position: "Accountant", Division: "Finance", Grade: "Grade 11"},
		{Email: "mary@agency.gov.pg", Name: "Mary Toa", Position: "Auditor", Division: "Audit", Grade: "Grade 13"},
	}

	result, err := svc.ImportPaste(context.Background(), DatasetOfficers, officerPaste, true)
	require.NoError(t, err)

	assert.True(t, result.Committed)
	// Jane is re-imported and replaces her old record; Mary survives; John is new.
	assert.Equal(t, 3, result.RecordsStored)
	require.Len(t, officers.records, 3)
	assert.Equal(t, "jane@agency.gov.pg", officers.records[0].Email)
	assert.Equal(t, "Grade 12", officers.records[0].Grade, "re-import must win")
	assert.Equal(t, "mary@agency.gov.pg", officers.records[1].Email)
	assert.Equal(t, "john@agency.gov.pg", officers.records[2].Email)
}

func TestService_ImportPaste_ListFailureAborts(t *testing.T) {
	svc, officers, _, _ := newTestService(t)
	officers.listErr = errors.New("connection refused")

	_, err := svc.ImportPaste(context.Background(), DatasetOfficers, officerPaste, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "existing officers")
}

func TestService_ImportPaste_Establishment(t *testing.T) {
	svc, _, establishment, _ := newTestService(t)
	establishment.records = []contracts.EstablishmentRecord{
		{PositionNumber: "OLD-001", Division: "Finance", Grade: "Grade 5", Designation: "Typist"},
	}

	paste := "Position Number\tDesignation\tGrade\tDivision\tStatus\n" +
		"FIN-001\tAccountant\tGrade 12\tFinance\tConfirmed\n" +
		"FIN-002\tClerk\tGrade 7\tFinance\tVacant\n"

	result, err := svc.ImportPaste(context.Background(), DatasetEstablishment, paste, true)
	require.NoError(t, err)

	assert.True(t, result.Committed)
	assert.Equal(t, 2, result.RecordsStored)
	require.Len(t, establishment.records, 2, "register replace must drop stale positions")
	assert.Equal(t, "FIN-001", establishment.records[0].PositionNumber)
	assert.Equal(t, contracts.StatusVacant, establishment.records[1].Status)
}

func TestService_ImportDocument(t *testing.T) {
	svc, officers, _, extractor := newTestService(t)
	payload, _ := json.Marshal(map[string]interface{}{
		"data": [][]string{
			{"Name", "Division", "Grade", "Position"},
			{"Jane Doe", "Finance", "Grade 12", "Accountant"},
		},
	})
	extractor.payload = payload

	result, err := svc.ImportDocument(context.Background(), DatasetOfficers, []byte("%PDF-"), "application/pdf", true)
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.calls, "extraction must be called exactly once, no retries")
	assert.Equal(t, 1, result.RecordsStored)
	assert.Len(t, officers.records, 1)
}

func TestService_ImportDocument_ExtractionErrorSurfaces(t *testing.T) {
	svc, _, _, extractor := newTestService(t)
	extractor.err = errors.New("model overloaded")

	_, err := svc.ImportDocument(context.Background(), DatasetOfficers, []byte("%PDF-"), "application/pdf", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document extraction failed")
	assert.Equal(t, 1, extractor.calls)
}

func TestService_ImportSpreadsheet_UnknownDataset(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	csv := "Name,Division,Grade,Position\nJane Doe,Finance,Grade 12,Accountant\n"
	_, err := svc.ImportSpreadsheet(context.Background(), Dataset("payroll"), []byte(csv), "staff.csv", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dataset")
}
