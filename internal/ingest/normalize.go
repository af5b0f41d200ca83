package ingest

import (
	"fmt"
	"strings"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
	"github.com/kumul-digital/capdash/backend/pkg/logger"
)

// OfficerImport is the result of a successful officer import: the validated
// records, plus the raw headers and a truncated preview for the user to
// confirm what was parsed.
type OfficerImport struct {
	Officers []contracts.OfficerRecord `json:"officers"`
	Headers  []string                  `json:"headers"`
	Preview  [][]string                `json:"preview"`
}

// EstablishmentImport is the establishment-side counterpart.
type EstablishmentImport struct {
	Positions []contracts.EstablishmentRecord `json:"positions"`
	Headers   []string                        `json:"headers"`
	Preview   [][]string                      `json:"preview"`
}

// NormalizerConfig carries the injected lookup tables. Zero-value fields
// fall back to the defaults, so tests can swap in synthetic tables while
// production code passes only the agency type.
type NormalizerConfig struct {
	OfficerAliases       AliasTable
	EstablishmentAliases AliasTable
	Taxonomy             *GradeTaxonomy
	AgencyType           string
	PreviewRows          int
}

// Normalizer converts adapter tables into validated records. It is the
// single row-to-record mapping all three format adapters funnel into.
type Normalizer struct {
	officerAliases       AliasTable
	establishmentAliases AliasTable
	taxonomy             GradeTaxonomy
	agencyType           string
	previewRows          int
	logger               *logger.Logger
}

// NewNormalizer creates a Normalizer, defaulting any unset config field.
func NewNormalizer(cfg NormalizerConfig, log *logger.Logger) *Normalizer {
	n := &Normalizer{
		officerAliases:       cfg.OfficerAliases,
		establishmentAliases: cfg.EstablishmentAliases,
		agencyType:           cfg.AgencyType,
		previewRows:          cfg.PreviewRows,
		logger:               log,
	}
	if n.officerAliases == nil {
		n.officerAliases = DefaultOfficerAliases()
	}
	if n.establishmentAliases == nil {
		n.establishmentAliases = DefaultEstablishmentAliases()
	}
	if cfg.Taxonomy != nil {
		n.taxonomy = *cfg.Taxonomy
	} else {
		n.taxonomy = DefaultGradeTaxonomy()
	}
	if n.agencyType == "" {
		n.agencyType = "national"
	}
	if n.previewRows <= 0 {
		n.previewRows = 60
	}
	if n.logger == nil {
		n.logger = logger.NewNop()
	}
	return n
}

// OfficersFromTable maps a parsed table to officer records. Rows missing
// any identity field are silently dropped; the import only fails when the
// schema is wrong or when no row at all survives, since a non-empty table
// with zero valid records is indistinguishable from a wrong-format upload.
func (n *Normalizer) OfficersFromTable(t *Table) (*OfficerImport, error) {
	if t.IsEmpty() {
		return nil, fmt.Errorf("table has no columns")
	}

	resolved := resolveFields(t.Headers, n.officerAliases)
	if err := checkRequiredFields(resolved, officerRequiredFields); err != nil {
		return nil, err
	}

	idx := t.headerIndex()
	cell := func(row []string, field Field) string {
		h, ok := resolved[field]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[idx[h]])
	}

	ratingCols := ratingColumns(t.Headers)

	officers := make([]contracts.OfficerRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := contracts.OfficerRecord{
			Email:    cell(row, FieldEmail),
			Name:     cell(row, FieldName),
			Division: cell(row, FieldDivision),
			Grade:    cell(row, FieldGrade),
			Position: cell(row, FieldPosition),
		}
		if !rec.HasRequiredIdentity() {
			continue
		}

		rec.GradingGroup = n.taxonomy.Classify(rec.Grade, n.agencyType)

		rec.Age = ParseOptionalInt(cell(row, FieldAge))
		rec.YearsOfExperience = ParseOptionalInt(cell(row, FieldYearsOfExperience))

		rec.SPARating = cell(row, FieldSPARating)
		rec.PerformanceLevel = PerformanceLevel(rec.SPARating)

		rec.CapabilityRatings = []contracts.CapabilityRating{}
		for _, col := range ratingCols {
			score, ok := ParseBoundedInt(row[idx[col]], 0, 10)
			if !ok {
				// Out-of-range or non-numeric rating cells are skipped,
				// not zeroed.
				continue
			}
			code := strings.ToUpper(strings.TrimSpace(col))
			rec.CapabilityRatings = append(rec.CapabilityRatings, NewCapabilityRating(code, score))
		}

		rec.MisalignmentFlag = MisalignmentFlag(rec.SPARating, rec.CapabilityRatings)

		rec.TechnicalCapabilityGaps = ParseDelimitedList(cell(row, FieldTechnicalGaps))
		rec.LeadershipCapabilityGaps = ParseDelimitedList(cell(row, FieldLeadershipGaps))
		rec.ICTSkills = ParseDelimitedList(cell(row, FieldICTSkills))
		rec.TrainingPreferences = ParseDelimitedList(cell(row, FieldTrainingPreferences))
		rec.TrainingHistory = ParseTrainingHistory(cell(row, FieldTrainingHistory))
		rec.InterestedInSecondment = ParseOptionalBool(cell(row, FieldSecondment))

		officers = append(officers, rec)
	}

	if len(officers) == 0 {
		return nil, fmt.Errorf("no valid officer records found; check that the file has the expected columns")
	}

	n.logger.WithFields(map[string]interface{}{
		"rows":     len(t.Rows),
		"officers": len(officers),
		"dropped":  len(t.Rows) - len(officers),
	}).Info("Officer import normalized")

	return &OfficerImport{
		Officers: officers,
		Headers:  t.Headers,
		Preview:  t.Preview(n.previewRows),
	}, nil
}

// EstablishmentFromTable maps a parsed table to establishment records.
func (n *Normalizer) EstablishmentFromTable(t *Table) (*EstablishmentImport, error) {
	if t.IsEmpty() {
		return nil, fmt.Errorf("table has no columns")
	}

	resolved := resolveFields(t.Headers, n.establishmentAliases)
	if err := checkRequiredFields(resolved, establishmentRequiredFields); err != nil {
		return nil, err
	}

	idx := t.headerIndex()
	cell := func(row []string, field Field) string {
		h, ok := resolved[field]
		if !ok {
			return ""
		}
		return strings.TrimSpace(row[idx[h]])
	}

	positions := make([]contracts.EstablishmentRecord, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := contracts.EstablishmentRecord{
			PositionNumber: cell(row, FieldPositionNumber),
			Division:       cell(row, FieldDivision),
			Grade:          cell(row, FieldGrade),
			Designation:    cell(row, FieldDesignation),
			Occupant:       cell(row, FieldOccupant),
			Status:         contracts.ParsePositionStatus(cell(row, FieldStatus)),
		}
		if rec.PositionNumber == "" || rec.Designation == "" || rec.Grade == "" || rec.Division == "" {
			continue
		}
		positions = append(positions, rec)
	}

	if len(positions) == 0 {
		return nil, fmt.Errorf("no valid establishment records found; check that the file has the expected columns")
	}

	n.logger.WithFields(map[string]interface{}{
		"rows":      len(t.Rows),
		"positions": len(positions),
		"dropped":   len(t.Rows) - len(positions),
	}).Info("Establishment import normalized")

	return &EstablishmentImport{
		Positions: positions,
		Headers:   t.Headers,
		Preview:   t.Preview(n.previewRows),
	}, nil
}
