package ingest

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

// Derived classification. Every function here is pure; all branch
// conditions for one concern live in one function.

// ClassifyGap bands a gap score (10 - currentScore).
func ClassifyGap(gapScore int) contracts.GapCategory {
	switch {
	case gapScore <= 1:
		return contracts.GapNone
	case gapScore == 2:
		return contracts.GapMinor
	case gapScore <= 5:
		return contracts.GapModerate
	default:
		return contracts.GapCritical
	}
}

// ClassifyScore bands a raw current score.
func ClassifyScore(currentScore int) contracts.ScoreCategory {
	switch {
	case currentScore >= 8:
		return contracts.ScoreHigh
	case currentScore >= 5:
		return contracts.ScoreModerate
	default:
		return contracts.ScoreLow
	}
}

// NewCapabilityRating builds a rating with all derived fields populated.
// This is the only place GapScore and the category fields are computed.
func NewCapabilityRating(questionCode string, currentScore int) contracts.CapabilityRating {
	gap := 10 - currentScore
	return contracts.CapabilityRating{
		QuestionCode:         questionCode,
		CurrentScore:         currentScore,
		GapScore:             gap,
		GapCategory:          ClassifyGap(gap),
		CurrentScoreCategory: ClassifyScore(currentScore),
	}
}

// PerformanceLevel maps a raw 1-5 SPA rating string to its label.
// Anything unparseable is Not Rated.
func PerformanceLevel(spaRating string) string {
	n, ok := parseSPA(spaRating)
	if !ok {
		return "Not Rated"
	}
	switch n {
	case 5:
		return "Well Above Required"
	case 4:
		return "Above Required"
	case 3:
		return "At Required Level"
	case 2:
		return "Below Required Level"
	default:
		return "Well Below Required Level"
	}
}

func parseSPA(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 5 {
		return 0, false
	}
	return n, true
}

// Misalignment thresholds. These are agency business rules; values are
// confirmed with the personnel agency, not derived.
const (
	misalignLowCapabilityAvg  = 5.0
	misalignHighCapabilityAvg = 7.0

	MisalignmentOvercompensation = "High SPA rating but low self-assessed capability: possible overcompensation or workload mismatch"
	MisalignmentUnderperformance = "Low SPA rating despite high self-assessed capability: possible underperformance or motivation issue"
)

// MisalignmentFlag compares the SPA appraisal against the average
// self-assessed capability score. It fires only when both inputs exist:
// a missing SPA rating or an empty ratings list never fabricates a flag.
func MisalignmentFlag(spaRating string, ratings []contracts.CapabilityRating) string {
	spa, ok := parseSPA(spaRating)
	if !ok || len(ratings) == 0 {
		return ""
	}

	total := 0
	for _, r := range ratings {
		total += r.CurrentScore
	}
	avg := float64(total) / float64(len(ratings))

	switch {
	case spa >= 4 && avg < misalignLowCapabilityAvg:
		return MisalignmentOvercompensation
	case spa <= 2 && avg > misalignHighCapabilityAvg:
		return MisalignmentUnderperformance
	default:
		return ""
	}
}

// GradeRule maps a grade-string prefix to a grading group.
type GradeRule struct {
	Prefix string
	Group  contracts.GradingGroup
}

// GradeBands buckets a numeric grade when no prefix rule matches.
type GradeBands struct {
	SeniorManagementMin int
	ManagerMin          int
	SeniorOfficerMin    int
}

// AgencyRules holds the grade taxonomy for one agency type.
type AgencyRules struct {
	Prefixes []GradeRule // ordered, most specific first
	Bands    GradeBands
}

// GradeTaxonomy maps free-text grades to grading groups per agency type.
// It is injected configuration: tests swap in synthetic tables, and the
// exact boundaries are owned by the personnel agency.
type GradeTaxonomy struct {
	Agencies      map[string]AgencyRules
	DefaultAgency string
}

// DefaultGradeTaxonomy returns the standard national/provincial taxonomy.
func DefaultGradeTaxonomy() GradeTaxonomy {
	nationalBands := GradeBands{SeniorManagementMin: 17, ManagerMin: 13, SeniorOfficerMin: 9}
	return GradeTaxonomy{
		DefaultAgency: "national",
		Agencies: map[string]AgencyRules{
			"national": {
				Prefixes: []GradeRule{
					{Prefix: "secretary", Group: contracts.GroupSeniorManagement},
					{Prefix: "deputy secretary", Group: contracts.GroupSeniorManagement},
					{Prefix: "fas", Group: contracts.GroupSeniorManagement},
					{Prefix: "das", Group: contracts.GroupManager},
				},
				Bands: nationalBands,
			},
			"provincial": {
				Prefixes: []GradeRule{
					{Prefix: "administrator", Group: contracts.GroupSeniorManagement},
					{Prefix: "advisor", Group: contracts.GroupManager},
				},
				Bands: GradeBands{SeniorManagementMin: 18, ManagerMin: 14, SeniorOfficerMin: 10},
			},
		},
	}
}

var gradeNumberRe = regexp.MustCompile(`\d+`)

// Classify maps a free-text grade plus agency type to a grading group.
// Prefix rules are tried first; otherwise the first number in the grade
// string is banded. A grade with neither is Other.
func (t GradeTaxonomy) Classify(grade, agencyType string) contracts.GradingGroup {
	rules, ok := t.Agencies[strings.ToLower(strings.TrimSpace(agencyType))]
	if !ok {
		rules, ok = t.Agencies[t.DefaultAgency]
		if !ok {
			return contracts.GroupOther
		}
	}

	g := strings.ToLower(strings.TrimSpace(grade))
	if g == "" {
		return contracts.GroupOther
	}

	for _, rule := range rules.Prefixes {
		if strings.HasPrefix(g, strings.ToLower(rule.Prefix)) {
			return rule.Group
		}
	}

	numStr := gradeNumberRe.FindString(g)
	if numStr == "" {
		return contracts.GroupOther
	}
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return contracts.GroupOther
	}

	switch {
	case n >= rules.Bands.SeniorManagementMin:
		return contracts.GroupSeniorManagement
	case n >= rules.Bands.ManagerMin:
		return contracts.GroupManager
	case n >= rules.Bands.SeniorOfficerMin:
		return contracts.GroupSeniorOfficer
	default:
		return contracts.GroupJuniorOfficer
	}
}
