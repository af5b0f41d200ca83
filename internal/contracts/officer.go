package contracts

// GradingGroup is a coarse seniority bucket derived from an agency's
// job-grade taxonomy.
type GradingGroup string

const (
	GroupJuniorOfficer    GradingGroup = "Junior Officer"
	GroupSeniorOfficer    GradingGroup = "Senior Officer"
	GroupManager          GradingGroup = "Manager"
	GroupSeniorManagement GradingGroup = "Senior Management"
	GroupOther            GradingGroup = "Other"
)

// GapCategory classifies the shortfall between a self-rated score and the
// target ceiling of 10.
type GapCategory string

const (
	GapNone     GapCategory = "No Gap"
	GapMinor    GapCategory = "Minor Gap"
	GapModerate GapCategory = "Moderate Gap"
	GapCritical GapCategory = "Critical Gap"
)

// ScoreCategory classifies a raw current-capability score.
type ScoreCategory string

const (
	ScoreHigh     ScoreCategory = "High"
	ScoreModerate ScoreCategory = "Moderate"
	ScoreLow      ScoreCategory = "Low"
)

// CapabilityRating is one answered question from the CNA questionnaire.
// GapScore and both category fields are derived from CurrentScore at
// construction time and are never edited independently.
type CapabilityRating struct {
	QuestionCode         string        `json:"question_code"`
	CurrentScore         int           `json:"current_score"` // 0-10
	GapScore             int           `json:"gap_score"`     // 10 - current
	GapCategory          GapCategory   `json:"gap_category"`
	CurrentScoreCategory ScoreCategory `json:"current_score_category"`
}

// TrainingRecord is one completed course from the training-history column.
type TrainingRecord struct {
	CourseName     string `json:"course_name"`
	CompletionDate string `json:"completion_date"` // YYYY-MM-DD or "N/A"
}

// OfficerRecord is one staff member's capability self-assessment.
// Records are created whole at import time; the only mutations afterwards
// are full replacement by re-import or deduplication.
type OfficerRecord struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Division string `json:"division"`
	Grade    string `json:"grade"`

	GradingGroup GradingGroup `json:"grading_group"`

	Age               *int `json:"age,omitempty"`
	YearsOfExperience *int `json:"years_of_experience,omitempty"`

	// SPARating is the raw 1-5 appraisal string as imported;
	// PerformanceLevel is derived from it.
	SPARating        string `json:"spa_rating"`
	PerformanceLevel string `json:"performance_level"`

	CapabilityRatings []CapabilityRating `json:"capability_ratings"`

	// MisalignmentFlag is empty when the capability average and the SPA
	// rating are consistent, or when either input is missing.
	MisalignmentFlag string `json:"misalignment_flag,omitempty"`

	TechnicalCapabilityGaps  []string `json:"technical_capability_gaps"`
	LeadershipCapabilityGaps []string `json:"leadership_capability_gaps"`
	ICTSkills                []string `json:"ict_skills"`
	TrainingPreferences      []string `json:"training_preferences"`

	TrainingHistory []TrainingRecord `json:"training_history"`

	// InterestedInSecondment is three-valued: the question may be absent
	// from the source form entirely.
	InterestedInSecondment *bool `json:"interested_in_secondment,omitempty"`
}

// AverageCapabilityScore returns the arithmetic mean of all current scores,
// and false when the officer has no ratings at all.
func (o *OfficerRecord) AverageCapabilityScore() (float64, bool) {
	if len(o.CapabilityRatings) == 0 {
		return 0, false
	}
	total := 0
	for _, r := range o.CapabilityRatings {
		total += r.CurrentScore
	}
	return float64(total) / float64(len(o.CapabilityRatings)), true
}

// HasRequiredIdentity reports whether the record carries the minimum
// identity fields every imported officer must have.
func (o *OfficerRecord) HasRequiredIdentity() bool {
	return o.Name != "" && o.Division != "" && o.Grade != "" && o.Position != ""
}
