package reports

import (
	"testing"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

func rating(code string, score int) contracts.CapabilityRating {
	gap := 10 - score
	r := contracts.CapabilityRating{QuestionCode: code, CurrentScore: score, GapScore: gap}
	switch {
	case gap <= 1:
		r.GapCategory = contracts.GapNone
	case gap == 2:
		r.GapCategory = contracts.GapMinor
	case gap <= 5:
		r.GapCategory = contracts.GapModerate
	default:
		r.GapCategory = contracts.GapCritical
	}
	switch {
	case score >= 8:
		r.CurrentScoreCategory = contracts.ScoreHigh
	case score >= 5:
		r.CurrentScoreCategory = contracts.ScoreModerate
	default:
		r.CurrentScoreCategory = contracts.ScoreLow
	}
	return r
}

func sampleOfficers() []contracts.OfficerRecord {
	yes := true
	return []contracts.OfficerRecord{
		{
			Name: "Jane Doe", Division: "Finance", Grade: "Grade 12", Position: "Accountant",
			GradingGroup:      contracts.GroupSeniorOfficer,
			CapabilityRatings: []contracts.CapabilityRating{rating("A1", 9), rating("A2", 7)},
			TechnicalCapabilityGaps: []string{"IPSAS", "Budgeting"},
			InterestedInSecondment:  &yes,
		},
		{
			Name: "John Kila", Division: "Finance", Grade: "Grade 7", Position: "Clerk",
			GradingGroup:       contracts.GroupJuniorOfficer,
			SPARating:          "5",
			CapabilityRatings:  []contracts.CapabilityRating{rating("A1", 3), rating("A2", 2)},
			MisalignmentFlag:   "Rated high performer but self-assessed capability is low",
			TechnicalCapabilityGaps: []string{"ipsas"},
			TrainingHistory:    []contracts.TrainingRecord{{CourseName: "PFM Basics", CompletionDate: "2023-02-01"}},
		},
		{
			Name: "Mary Toa", Division: "Policy", Grade: "Grade 14", Position: "Manager",
			GradingGroup:      contracts.GroupManager,
			CapabilityRatings: []contracts.CapabilityRating{rating("A1", 5)},
		},
	}
}

func samplePositions() []contracts.EstablishmentRecord {
	return []contracts.EstablishmentRecord{
		{PositionNumber: "FIN-001", Division: "Finance", Grade: "Grade 12", Designation: "Accountant", Status: contracts.StatusConfirmed},
		{PositionNumber: "FIN-002", Division: "Finance", Grade: "Grade 7", Designation: "Clerk", Status: contracts.StatusConfirmed},
		{PositionNumber: "FIN-003", Division: "finance", Grade: "Grade 9", Designation: "Analyst", Status: contracts.StatusVacant},
		{PositionNumber: "POL-001", Division: "Policy", Grade: "Grade 14", Designation: "Manager", Status: contracts.StatusProbation},
	}
}

func TestBuildSummary(t *testing.T) {
	s := BuildSummary(sampleOfficers(), samplePositions())

	if s.TotalOfficers != 3 {
		t.Errorf("TotalOfficers = %d, want 3", s.TotalOfficers)
	}
	if s.TotalPositions != 4 {
		t.Errorf("TotalPositions = %d, want 4", s.TotalPositions)
	}
	if s.VacantPositions != 1 {
		t.Errorf("VacantPositions = %d, want 1", s.VacantPositions)
	}
	if s.Divisions != 2 {
		t.Errorf("Divisions = %d, want 2", s.Divisions)
	}
	if s.GradingGroups[contracts.GroupSeniorOfficer] != 1 {
		t.Errorf("senior officers = %d, want 1", s.GradingGroups[contracts.GroupSeniorOfficer])
	}
	// John's scores of 3 and 2 both leave gaps of 7+ (critical)
	if s.CriticalGapCount != 2 {
		t.Errorf("CriticalGapCount = %d, want 2", s.CriticalGapCount)
	}
	if s.MisalignedOfficers != 1 {
		t.Errorf("MisalignedOfficers = %d, want 1", s.MisalignedOfficers)
	}
	if s.SecondmentInterested != 1 {
		t.Errorf("SecondmentInterested = %d, want 1", s.SecondmentInterested)
	}
	// averages: Jane 8.0, John 2.5, Mary 5.0 -> mean 5.1666...
	if s.AverageCapability < 5.16 || s.AverageCapability > 5.17 {
		t.Errorf("AverageCapability = %f, want ~5.167", s.AverageCapability)
	}
}

func TestBuildSummary_Empty(t *testing.T) {
	s := BuildSummary(nil, nil)
	if s.TotalOfficers != 0 || s.AverageCapability != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}

func TestBuildGapReport(t *testing.T) {
	r := BuildGapReport(sampleOfficers())

	if len(r.ByQuestion) != 2 {
		t.Fatalf("ByQuestion has %d entries, want 2", len(r.ByQuestion))
	}
	a1 := r.ByQuestion[0]
	if a1.QuestionCode != "A1" {
		t.Fatalf("questions not sorted: first is %q", a1.QuestionCode)
	}
	if a1.Responses != 3 {
		t.Errorf("A1 responses = %d, want 3", a1.Responses)
	}
	// A1 scores: 9, 3, 5 -> avg 5.666
	if a1.AverageScore < 5.66 || a1.AverageScore > 5.67 {
		t.Errorf("A1 average = %f", a1.AverageScore)
	}
	if a1.CriticalGaps != 1 {
		t.Errorf("A1 critical gaps = %d, want 1", a1.CriticalGaps)
	}

	if len(r.ByDivision) != 2 {
		t.Fatalf("ByDivision has %d entries, want 2", len(r.ByDivision))
	}
	fin := r.ByDivision[0]
	if fin.Division != "Finance" || fin.Officers != 2 {
		t.Errorf("finance division = %+v", fin)
	}
	if fin.CriticalGaps != 2 {
		t.Errorf("finance critical gaps = %d, want 2", fin.CriticalGaps)
	}

	if r.Distribution[contracts.GapCritical] != 2 {
		t.Errorf("critical distribution = %d, want 2", r.Distribution[contracts.GapCritical])
	}
}

func TestBuildMisalignmentReport(t *testing.T) {
	flagged := BuildMisalignmentReport(sampleOfficers())
	if len(flagged) != 1 {
		t.Fatalf("flagged %d officers, want 1", len(flagged))
	}
	if flagged[0].Name != "John Kila" {
		t.Errorf("flagged officer = %q", flagged[0].Name)
	}
	if flagged[0].AverageCapability != 2.5 {
		t.Errorf("average = %f, want 2.5", flagged[0].AverageCapability)
	}
}

func TestBuildTrainingReport(t *testing.T) {
	r := BuildTrainingReport(sampleOfficers())

	if len(r.TechnicalNeeds) != 2 {
		t.Fatalf("technical needs = %+v", r.TechnicalNeeds)
	}
	// "IPSAS" and "ipsas" are the same topic; reported with first spelling
	if r.TechnicalNeeds[0].Topic != "IPSAS" || r.TechnicalNeeds[0].Count != 2 {
		t.Errorf("top need = %+v, want IPSAS x2", r.TechnicalNeeds[0])
	}
	if len(r.CompletedCourses) != 1 || r.CompletedCourses[0].Topic != "PFM Basics" {
		t.Errorf("completed courses = %+v", r.CompletedCourses)
	}
}

func TestBuildCoverageReport(t *testing.T) {
	r := BuildCoverageReport(sampleOfficers(), samplePositions())

	if len(r.Divisions) != 2 {
		t.Fatalf("divisions = %+v", r.Divisions)
	}
	fin := r.Divisions[0]
	if fin.Division != "Finance" {
		t.Fatalf("first division = %q", fin.Division)
	}
	// "Finance" and "finance" merge: 3 positions, 2 filled, 2 assessed
	if fin.Positions != 3 || fin.Filled != 2 || fin.Assessed != 2 {
		t.Errorf("finance coverage = %+v", fin)
	}
	if fin.Coverage != 1.0 {
		t.Errorf("finance coverage ratio = %f, want 1.0", fin.Coverage)
	}
	// overall: 3 assessed / 3 filled
	if r.OverallCoverage != 1.0 {
		t.Errorf("overall coverage = %f, want 1.0", r.OverallCoverage)
	}
}
