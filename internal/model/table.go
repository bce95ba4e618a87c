package model

import "time"

// TableID uniquely identifies a kicker table location
type TableID string

// TableCondition grades the physical state of a table
type TableCondition string

const (
	ConditionPoor      TableCondition = "poor"
	ConditionAverage   TableCondition = "average"
	ConditionGood      TableCondition = "good"
	ConditionVeryGood  TableCondition = "very_good"
	ConditionExcellent TableCondition = "excellent"
)

// ValidCondition reports whether c is a known table condition
func ValidCondition(c TableCondition) bool {
	switch c {
	case ConditionPoor, ConditionAverage, ConditionGood, ConditionVeryGood, ConditionExcellent:
		return true
	}
	return false
}

// TableVerificationThreshold is how many distinct players must verify a
// table before it is listed as verified
const TableVerificationThreshold = 5

// Table represents a publicly listed kicker table location
type Table struct {
	ID         TableID
	Name       string
	Address    string
	Condition  TableCondition
	Paid       bool
	Fee        string // free-form, e.g. "1€ per game"; empty when not paid
	HasBalls   bool
	Notes      string
	AddedBy    PlayerID
	VerifiedBy []PlayerID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Verified returns true once enough distinct players have vouched for the table
func (t *Table) Verified() bool {
	return len(t.VerifiedBy) >= TableVerificationThreshold
}

// HasVerifier returns true if the player already verified this table
func (t *Table) HasVerifier(id PlayerID) bool {
	for _, p := range t.VerifiedBy {
		if p == id {
			return true
		}
	}
	return false
}
