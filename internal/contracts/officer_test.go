package contracts

import (
	"encoding/json"
	"testing"
)

func TestAverageCapabilityScore(t *testing.T) {
	tests := []struct {
		name    string
		scores  []int
		want    float64
		wantOK  bool
	}{
		{"no ratings", nil, 0, false},
		{"single rating", []int{7}, 7, true},
		{"mixed ratings", []int{3, 4}, 3.5, true},
		{"all zero", []int{0, 0}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := OfficerRecord{}
			for _, s := range tt.scores {
				o.CapabilityRatings = append(o.CapabilityRatings, CapabilityRating{CurrentScore: s})
			}

			got, ok := o.AverageCapabilityScore()
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("avg = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHasRequiredIdentity(t *testing.T) {
	full := OfficerRecord{Name: "Jane", Division: "Finance", Grade: "Grade 12", Position: "Accountant"}
	if !full.HasRequiredIdentity() {
		t.Error("complete record should pass")
	}

	for _, clear := range []func(*OfficerRecord){
		func(o *OfficerRecord) { o.Name = "" },
		func(o *OfficerRecord) { o.Division = "" },
		func(o *OfficerRecord) { o.Grade = "" },
		func(o *OfficerRecord) { o.Position = "" },
	} {
		o := full
		clear(&o)
		if o.HasRequiredIdentity() {
			t.Errorf("record with a blank identity field should fail: %+v", o)
		}
	}
}

func TestParsePositionStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want PositionStatus
	}{
		{"Confirmed", StatusConfirmed},
		{"confirmed permanent", StatusConfirmed},
		{"PROBATION", StatusProbation},
		{"Vacant", StatusVacant},
		{"VACANT - funded", StatusVacant},
		{"acting", StatusOther},
		{"", StatusOther},
	}

	for _, tt := range tests {
		if got := ParsePositionStatus(tt.raw); got != tt.want {
			t.Errorf("ParsePositionStatus(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestOfficerRecordJSON(t *testing.T) {
	o := OfficerRecord{
		Email:    "jane@agency.gov.pg",
		Name:     "Jane Doe",
		Division: "Finance",
		Grade:    "Grade 12",
		Position: "Accountant",
		CapabilityRatings: []CapabilityRating{
			{QuestionCode: "A1", CurrentScore: 7, GapScore: 3, GapCategory: GapModerate, CurrentScoreCategory: ScoreModerate},
		},
	}

	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back OfficerRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if back.CapabilityRatings[0].GapCategory != GapModerate {
		t.Errorf("round trip lost gap category: %+v", back.CapabilityRatings[0])
	}
	if back.Age != nil || back.InterestedInSecondment != nil {
		t.Error("absent optional fields must stay nil after round trip")
	}
}
