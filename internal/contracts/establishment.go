package contracts

import "strings"

// PositionStatus is the occupancy state of a budgeted position.
type PositionStatus string

const (
	StatusConfirmed PositionStatus = "Confirmed"
	StatusProbation PositionStatus = "Probation"
	StatusVacant    PositionStatus = "Vacant"
	StatusOther     PositionStatus = "Other"
)

// ParsePositionStatus normalizes a free-text status cell. Matching is by
// case-insensitive prefix so "VACANT - funded" still classifies.
func ParsePositionStatus(raw string) PositionStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "confirm"):
		return StatusConfirmed
	case strings.HasPrefix(s, "probation"):
		return StatusProbation
	case strings.HasPrefix(s, "vacant"):
		return StatusVacant
	default:
		return StatusOther
	}
}

// EstablishmentRecord is one budgeted position on the agency's establishment
// register, whether or not its occupant has completed a CNA. It relates to
// OfficerRecord only informally, by division/grade aggregation.
type EstablishmentRecord struct {
	PositionNumber string         `json:"position_number"`
	Division       string         `json:"division"`
	Grade          string         `json:"grade"`
	Designation    string         `json:"designation"`
	Occupant       string         `json:"occupant"`
	Status         PositionStatus `json:"status"`
}

// IsVacant reports whether the position has no substantive occupant.
func (e *EstablishmentRecord) IsVacant() bool {
	return e.Status == StatusVacant
}
