package reports

import (
	"sort"
	"strings"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

// SummaryReport is the top-level dashboard aggregate.
type SummaryReport struct {
	TotalOfficers        int                            `json:"total_officers"`
	TotalPositions       int                            `json:"total_positions"`
	VacantPositions      int                            `json:"vacant_positions"`
	Divisions            int                            `json:"divisions"`
	GradingGroups        map[contracts.GradingGroup]int `json:"grading_groups"`
	AverageCapability    float64                        `json:"average_capability"`
	CriticalGapCount     int                            `json:"critical_gap_count"`
	MisalignedOfficers   int                            `json:"misaligned_officers"`
	SecondmentInterested int                            `json:"secondment_interested"`
}

// QuestionGap aggregates one questionnaire item across all officers who
// answered it.
type QuestionGap struct {
	QuestionCode string  `json:"question_code"`
	Responses    int     `json:"responses"`
	AverageScore float64 `json:"average_score"`
	AverageGap   float64 `json:"average_gap"`
	CriticalGaps int     `json:"critical_gaps"`
}

// DivisionGap aggregates capability scores within one division.
type DivisionGap struct {
	Division     string  `json:"division"`
	Officers     int     `json:"officers"`
	AverageScore float64 `json:"average_score"`
	CriticalGaps int     `json:"critical_gaps"`
}

// GapReport is the full gap-analysis view.
type GapReport struct {
	ByQuestion   []QuestionGap                 `json:"by_question"`
	ByDivision   []DivisionGap                 `json:"by_division"`
	Distribution map[contracts.GapCategory]int `json:"distribution"`
}

// MisalignedOfficer is one flagged officer in the misalignment report.
type MisalignedOfficer struct {
	Name              string  `json:"name"`
	Division          string  `json:"division"`
	Position          string  `json:"position"`
	SPARating         string  `json:"spa_rating"`
	AverageCapability float64 `json:"average_capability"`
	Flag              string  `json:"flag"`
}

// TrainingNeed is one named need with how often officers reported it.
type TrainingNeed struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// TrainingReport collects reported needs, preferences and completions.
type TrainingReport struct {
	TechnicalNeeds   []TrainingNeed `json:"technical_needs"`
	LeadershipNeeds  []TrainingNeed `json:"leadership_needs"`
	Preferences      []TrainingNeed `json:"preferences"`
	CompletedCourses []TrainingNeed `json:"completed_courses"`
}

// DivisionCoverage compares questionnaire returns against the establishment
// register for one division.
type DivisionCoverage struct {
	Division  string  `json:"division"`
	Positions int     `json:"positions"`
	Filled    int     `json:"filled"`
	Assessed  int     `json:"assessed"`
	Coverage  float64 `json:"coverage"` // assessed / filled, 0 when unfilled
}

// CoverageReport shows which parts of the agency have completed the
// questionnaire.
type CoverageReport struct {
	Divisions       []DivisionCoverage `json:"divisions"`
	OverallCoverage float64            `json:"overall_coverage"`
}

// BuildSummary computes the dashboard aggregate from both registers.
func BuildSummary(officers []contracts.OfficerRecord, positions []contracts.EstablishmentRecord) *SummaryReport {
	s := &SummaryReport{
		TotalOfficers:  len(officers),
		TotalPositions: len(positions),
		GradingGroups:  make(map[contracts.GradingGroup]int),
	}

	divisions := make(map[string]struct{})
	scoreTotal := 0.0
	scored := 0

	for i := range officers {
		o := &officers[i]
		divisions[strings.ToLower(o.Division)] = struct{}{}
		s.GradingGroups[o.GradingGroup]++

		if avg, ok := o.AverageCapabilityScore(); ok {
			scoreTotal += avg
			scored++
		}
		for _, r := range o.CapabilityRatings {
			if r.GapCategory == contracts.GapCritical {
				s.CriticalGapCount++
			}
		}
		if o.MisalignmentFlag != "" {
			s.MisalignedOfficers++
		}
		if o.InterestedInSecondment != nil && *o.InterestedInSecondment {
			s.SecondmentInterested++
		}
	}

	for i := range positions {
		if positions[i].IsVacant() {
			s.VacantPositions++
		}
	}

	s.Divisions = len(divisions)
	if scored > 0 {
		s.AverageCapability = scoreTotal / float64(scored)
	}
	return s
}

// BuildGapReport aggregates ratings per question and per division.
func BuildGapReport(officers []contracts.OfficerRecord) *GapReport {
	type acc struct {
		total    int
		count    int
		critical int
	}

	byQuestion := make(map[string]*acc)
	byDivision := make(map[string]*acc)
	distribution := make(map[contracts.GapCategory]int)

	for i := range officers {
		o := &officers[i]
		div := byDivision[o.Division]
		if div == nil {
			div = &acc{}
			byDivision[o.Division] = div
		}

		for _, r := range o.CapabilityRatings {
			q := byQuestion[r.QuestionCode]
			if q == nil {
				q = &acc{}
				byQuestion[r.QuestionCode] = q
			}
			q.total += r.CurrentScore
			q.count++
			div.total += r.CurrentScore
			div.count++
			distribution[r.GapCategory]++
			if r.GapCategory == contracts.GapCritical {
				q.critical++
				div.critical++
			}
		}
	}

	report := &GapReport{Distribution: distribution}

	for code, a := range byQuestion {
		report.ByQuestion = append(report.ByQuestion, QuestionGap{
			QuestionCode: code,
			Responses:    a.count,
			AverageScore: float64(a.total) / float64(a.count),
			AverageGap:   10 - float64(a.total)/float64(a.count),
			CriticalGaps: a.critical,
		})
	}
	sort.Slice(report.ByQuestion, func(i, j int) bool {
		return report.ByQuestion[i].QuestionCode < report.ByQuestion[j].QuestionCode
	})

	officersByDivision := make(map[string]int)
	for i := range officers {
		officersByDivision[officers[i].Division]++
	}
	for name, a := range byDivision {
		dg := DivisionGap{Division: name, Officers: officersByDivision[name], CriticalGaps: a.critical}
		if a.count > 0 {
			dg.AverageScore = float64(a.total) / float64(a.count)
		}
		report.ByDivision = append(report.ByDivision, dg)
	}
	sort.Slice(report.ByDivision, func(i, j int) bool {
		return report.ByDivision[i].Division < report.ByDivision[j].Division
	})

	return report
}

// BuildMisalignmentReport lists every officer whose appraisal and
// self-assessment disagree, worst average first.
func BuildMisalignmentReport(officers []contracts.OfficerRecord) []MisalignedOfficer {
	flagged := make([]MisalignedOfficer, 0)
	for i := range officers {
		o := &officers[i]
		if o.MisalignmentFlag == "" {
			continue
		}
		avg, _ := o.AverageCapabilityScore()
		flagged = append(flagged, MisalignedOfficer{
			Name:              o.Name,
			Division:          o.Division,
			Position:          o.Position,
			SPARating:         o.SPARating,
			AverageCapability: avg,
			Flag:              o.MisalignmentFlag,
		})
	}
	sort.Slice(flagged, func(i, j int) bool {
		if flagged[i].AverageCapability != flagged[j].AverageCapability {
			return flagged[i].AverageCapability < flagged[j].AverageCapability
		}
		return flagged[i].Name < flagged[j].Name
	})
	return flagged
}

// BuildTrainingReport tallies how often each need, preference and completed
// course appears. Topics are counted case-insensitively but reported with
// the spelling seen first.
func BuildTrainingReport(officers []contracts.OfficerRecord) *TrainingReport {
	return &TrainingReport{
		TechnicalNeeds: tally(officers, func(o *contracts.OfficerRecord) []string {
			return o.TechnicalCapabilityGaps
		}),
		LeadershipNeeds: tally(officers, func(o *contracts.OfficerRecord) []string {
			return o.LeadershipCapabilityGaps
		}),
		Preferences: tally(officers, func(o *contracts.OfficerRecord) []string {
			return o.TrainingPreferences
		}),
		CompletedCourses: tally(officers, func(o *contracts.OfficerRecord) []string {
			courses := make([]string, 0, len(o.TrainingHistory))
			for _, tr := range o.TrainingHistory {
				courses = append(courses, tr.CourseName)
			}
			return courses
		}),
	}
}

func tally(officers []contracts.OfficerRecord, pick func(*contracts.OfficerRecord) []string) []TrainingNeed {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for i := range officers {
		for _, topic := range pick(&officers[i]) {
			key := strings.ToLower(strings.TrimSpace(topic))
			if key == "" {
				continue
			}
			counts[key]++
			if _, seen := labels[key]; !seen {
				labels[key] = strings.TrimSpace(topic)
			}
		}
	}

	needs := make([]TrainingNeed, 0, len(counts))
	for key, n := range counts {
		needs = append(needs, TrainingNeed{Topic: labels[key], Count: n})
	}
	sort.Slice(needs, func(i, j int) bool {
		if needs[i].Count != needs[j].Count {
			return needs[i].Count > needs[j].Count
		}
		return needs[i].Topic < needs[j].Topic
	})
	return needs
}

// BuildCoverageReport matches completed questionnaires against the
// establishment register per division. Division names are compared
// case-insensitively since the two sources rarely agree on capitalization.
func BuildCoverageReport(officers []contracts.OfficerRecord, positions []contracts.EstablishmentRecord) *CoverageReport {
	type acc struct {
		label     string
		positions int
		filled    int
		assessed  int
	}

	divisions := make(map[string]*acc)
	get := func(name string) *acc {
		key := strings.ToLower(strings.TrimSpace(name))
		a := divisions[key]
		if a == nil {
			a = &acc{label: strings.TrimSpace(name)}
			divisions[key] = a
		}
		return a
	}

	for i := range positions {
		p := &positions[i]
		a := get(p.Division)
		a.positions++
		if !p.IsVacant() {
			a.filled++
		}
	}
	for i := range officers {
		get(officers[i].Division).assessed++
	}

	report := &CoverageReport{}
	totalFilled, totalAssessed := 0, 0
	for _, a := range divisions {
		dc := DivisionCoverage{
			Division:  a.label,
			Positions: a.positions,
			Filled:    a.filled,
			Assessed:  a.assessed,
		}
		if a.filled > 0 {
			dc.Coverage = float64(a.assessed) / float64(a.filled)
		}
		totalFilled += a.filled
		totalAssessed += a.assessed
		report.Divisions = append(report.Divisions, dc)
	}
	sort.Slice(report.Divisions, func(i, j int) bool {
		return report.Divisions[i].Division < report.Divisions[j].Division
	})
	if totalFilled > 0 {
		report.OverallCoverage = float64(totalAssessed) / float64(totalFilled)
	}
	return report
}
