package ingest

// Field is a canonical column name recognized by the import pipeline.
type Field string

// Officer import fields
const (
	FieldEmail               Field = "email"
	FieldName                Field = "name"
	FieldDivision            Field = "division"
	FieldGrade               Field = "grade"
	FieldPosition            Field = "position"
	FieldSPARating           Field = "spaRating"
	FieldAge                 Field = "age"
	FieldYearsOfExperience   Field = "yearsOfExperience"
	FieldTechnicalGaps       Field = "technicalCapabilityGaps"
	FieldLeadershipGaps      Field = "leadershipCapabilityGaps"
	FieldICTSkills           Field = "ictSkills"
	FieldTrainingPreferences Field = "trainingPreferences"
	FieldTrainingHistory     Field = "trainingHistory"
	FieldSecondment          Field = "interestedInSecondment"
)

// Establishment import fields
const (
	FieldPositionNumber Field = "positionNumber"
	FieldDesignation    Field = "designation"
	FieldOccupant       Field = "occupant"
	FieldStatus         Field = "status"
)

// AliasTable maps a canonical field to the header aliases that resolve to
// it, in priority order: the first alias that matches a header wins, so any
// reordering is a behavior change.
type AliasTable map[Field][]string

// officerRequiredFields must all resolve to a header or the officer import
// fails as a whole.
var officerRequiredFields = []Field{FieldName, FieldDivision, FieldGrade, FieldPosition}

// establishmentRequiredFields must all resolve for an establishment import.
var establishmentRequiredFields = []Field{FieldPositionNumber, FieldDesignation, FieldGrade, FieldDivision}

// DefaultOfficerAliases returns the alias table for officer CNA imports.
func DefaultOfficerAliases() AliasTable {
	return AliasTable{
		FieldEmail:    {"email address", "e-mail", "email"},
		FieldName:     {"full name", "officer name", "name", "occupant"},
		FieldDivision: {"business unit", "division", "department", "directorate"},
		FieldGrade:    {"position grade", "job grade", "grade", "level", "classification"},
		FieldPosition: {"job title", "position", "role", "designation"},

		FieldSPARating:         {"spa rating", "spa", "performance appraisal", "performance rating"},
		FieldAge:               {"age"},
		FieldYearsOfExperience: {"years of experience", "years in service", "experience"},

		FieldTechnicalGaps:       {"technical capability gaps", "technical gaps", "technical"},
		FieldLeadershipGaps:      {"leadership capability gaps", "leadership gaps", "leadership"},
		FieldICTSkills:           {"ict skills", "computer skills", "ict"},
		FieldTrainingPreferences: {"training preferences", "preferred training", "training needs"},
		FieldTrainingHistory:     {"training history", "courses completed", "training completed"},
		FieldSecondment:          {"interested in secondment", "secondment"},
	}
}

// DefaultEstablishmentAliases returns the alias table for establishment
// register imports.
func DefaultEstablishmentAliases() AliasTable {
	return AliasTable{
		FieldPositionNumber: {"position number", "position no", "pos no", "item number"},
		FieldDesignation:    {"designation", "job title", "position title"},
		FieldGrade:          {"position grade", "job grade", "grade", "level", "classification"},
		FieldDivision:       {"business unit", "division", "department", "directorate"},
		FieldOccupant:       {"occupant name", "occupant", "incumbent", "officer name"},
		FieldStatus:         {"occupancy status", "status"},
	}
}
