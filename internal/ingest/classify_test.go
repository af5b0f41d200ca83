package ingest

import (
	"testing"

	"github.com/kumul-digital/capdash/backend/internal/contracts"
)

func TestClassifyGapBands(t *testing.T) {
	tests := []struct {
		gap  int
		want contracts.GapCategory
	}{
		{0, contracts.GapNone},
		{1, contracts.GapNone},
		{2, contracts.GapMinor},
		{3, contracts.GapModerate},
		{4, contracts.GapModerate},
		{5, contracts.GapModerate},
		{6, contracts.GapCritical},
		{10, contracts.GapCritical},
	}

	for _, tt := range tests {
		if got := ClassifyGap(tt.gap); got != tt.want {
			t.Errorf("ClassifyGap(%d) = %q, want %q", tt.gap, got, tt.want)
		}
	}
}

func TestNewCapabilityRatingRoundTrip(t *testing.T) {
	// For every legal score the derived fields must be a pure function of
	// the score, stable across repeated construction.
	for score := 0; score <= 10; score++ {
		first := NewCapabilityRating("A1", score)

		if first.GapScore != 10-score {
			t.Errorf("score %d: GapScore = %d, want %d", score, first.GapScore, 10-score)
		}
		if first.GapCategory != ClassifyGap(first.GapScore) {
			t.Errorf("score %d: GapCategory %q inconsistent with gap %d", score, first.GapCategory, first.GapScore)
		}
		if first.CurrentScoreCategory != ClassifyScore(score) {
			t.Errorf("score %d: CurrentScoreCategory %q inconsistent", score, first.CurrentScoreCategory)
		}

		for i := 0; i < 10; i++ {
			if again := NewCapabilityRating("A1", score); again != first {
				t.Fatalf("score %d: rating not deterministic: %+v vs %+v", score, again, first)
			}
		}
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score int
		want  contracts.ScoreCategory
	}{
		{10, contracts.ScoreHigh},
		{8, contracts.ScoreHigh},
		{7, contracts.ScoreModerate},
		{5, contracts.ScoreModerate},
		{4, contracts.ScoreLow},
		{0, contracts.ScoreLow},
	}

	for _, tt := range tests {
		if got := ClassifyScore(tt.score); got != tt.want {
			t.Errorf("ClassifyScore(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestPerformanceLevel(t *testing.T) {
	tests := []struct {
		spa  string
		want string
	}{
		{"5", "Well Above Required"},
		{"4", "Above Required"},
		{"3", "At Required Level"},
		{"2", "Below Required Level"},
		{"1", "Well Below Required Level"},
		{" 4 ", "Above Required"},
		{"", "Not Rated"},
		{"0", "Not Rated"},
		{"6", "Not Rated"},
		{"excellent", "Not Rated"},
	}

	for _, tt := range tests {
		if got := PerformanceLevel(tt.spa); got != tt.want {
			t.Errorf("PerformanceLevel(%q) = %q, want %q", tt.spa, got, tt.want)
		}
	}
}

func ratingsWithScores(scores ...int) []contracts.CapabilityRating {
	out := make([]contracts.CapabilityRating, 0, len(scores))
	for i, s := range scores {
		out = append(out, NewCapabilityRating(string(rune('A'+i))+"1", s))
	}
	return out
}

func TestMisalignmentFlag(t *testing.T) {
	tests := []struct {
		name    string
		spa     string
		ratings []contracts.CapabilityRating
		want    string
	}{
		{
			name:    "high SPA low capability",
			spa:     "4",
			ratings: ratingsWithScores(3, 4), // avg 3.5
			want:    MisalignmentOvercompensation,
		},
		{
			name:    "top SPA low capability",
			spa:     "5",
			ratings: ratingsWithScores(4, 4, 4),
			want:    MisalignmentOvercompensation,
		},
		{
			name:    "low SPA high capability",
			spa:     "2",
			ratings: ratingsWithScores(8, 8),
			want:    MisalignmentUnderperformance,
		},
		{
			name:    "aligned",
			spa:     "3",
			ratings: ratingsWithScores(6, 7),
			want:    "",
		},
		{
			name:    "high SPA high capability",
			spa:     "5",
			ratings: ratingsWithScores(9, 9),
			want:    "",
		},
		{
			name:    "boundary avg exactly 5 does not flag",
			spa:     "4",
			ratings: ratingsWithScores(5, 5),
			want:    "",
		},
		{
			name:    "boundary avg exactly 7 does not flag",
			spa:     "1",
			ratings: ratingsWithScores(7, 7),
			want:    "",
		},
		{
			name:    "no SPA rating never flags",
			spa:     "",
			ratings: ratingsWithScores(1, 1),
			want:    "",
		},
		{
			name:    "unparseable SPA never flags",
			spa:     "excellent",
			ratings: ratingsWithScores(1, 1),
			want:    "",
		},
		{
			name:    "no ratings never flags",
			spa:     "5",
			ratings: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MisalignmentFlag(tt.spa, tt.ratings); got != tt.want {
				t.Errorf("MisalignmentFlag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGradeTaxonomyClassify(t *testing.T) {
	taxonomy := DefaultGradeTaxonomy()

	tests := []struct {
		grade  string
		agency string
		want   contracts.GradingGroup
	}{
		{"Grade 18", "national", contracts.GroupSeniorManagement},
		{"Grade 17", "national", contracts.GroupSeniorManagement},
		{"Grade 15", "national", contracts.GroupManager},
		{"Grade 12", "national", contracts.GroupSeniorOfficer},
		{"Grade 9", "national", contracts.GroupSeniorOfficer},
		{"Grade 5", "national", contracts.GroupJuniorOfficer},
		{"GR10", "national", contracts.GroupSeniorOfficer},
		{"Secretary", "national", contracts.GroupSeniorManagement},
		{"DAS Corporate", "national", contracts.GroupManager},
		{"Contract", "national", contracts.GroupOther},
		{"", "national", contracts.GroupOther},
		// Provincial bands are shifted up by one grade
		{"Grade 13", "provincial", contracts.GroupSeniorOfficer},
		{"Grade 14", "provincial", contracts.GroupManager},
		{"Administrator", "provincial", contracts.GroupSeniorManagement},
		// Unknown agency types fall back to the national table
		{"Grade 17", "statutory", contracts.GroupSeniorManagement},
	}

	for _, tt := range tests {
		if got := taxonomy.Classify(tt.grade, tt.agency); got != tt.want {
			t.Errorf("Classify(%q, %q) = %q, want %q", tt.grade, tt.agency, got, tt.want)
		}
	}
}

func TestGradeTaxonomyInjected(t *testing.T) {
	// A synthetic taxonomy replaces the default entirely
	taxonomy := GradeTaxonomy{
		DefaultAgency: "test",
		Agencies: map[string]AgencyRules{
			"test": {
				Prefixes: []GradeRule{{Prefix: "x", Group: contracts.GroupManager}},
				Bands:    GradeBands{SeniorManagementMin: 3, ManagerMin: 2, SeniorOfficerMin: 1},
			},
		},
	}

	if got := taxonomy.Classify("X-9", "test"); got != contracts.GroupManager {
		t.Errorf("prefix rule: got %q", got)
	}
	if got := taxonomy.Classify("Grade 3", "test"); got != contracts.GroupSeniorManagement {
		t.Errorf("band rule: got %q", got)
	}
}
