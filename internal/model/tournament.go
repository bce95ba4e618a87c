package model

import "time"

// TournamentID uniquely identifies a tournament
type TournamentID string

// TournamentFormat is the competition format
type TournamentFormat string

const (
	FormatSingleElimination TournamentFormat = "single_elimination"
	FormatDoubleElimination TournamentFormat = "double_elimination"
	FormatRoundRobin        TournamentFormat = "round_robin"
	FormatSwiss             TournamentFormat = "swiss"
)

// ValidFormat reports whether f is a known tournament format
func ValidFormat(f TournamentFormat) bool {
	switch f {
	case FormatSingleElimination, FormatDoubleElimination, FormatRoundRobin, FormatSwiss:
		return true
	}
	return false
}

// TournamentStatus represents the lifecycle state of a tournament
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

// Capacity bounds for tournaments
const (
	MinTournamentCapacity = 4
	MaxTournamentCapacity = 64
)

// Tournament represents an organized competition owned by its creator
type Tournament struct {
	ID           TournamentID
	Name         string
	Description  string
	StartDate    time.Time
	EndDate      time.Time
	Location     string
	Capacity     int
	Format       TournamentFormat
	OwnerID      PlayerID
	Participants []PlayerID
	Status       TournamentStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasParticipant returns true if the player has joined
func (t *Tournament) HasParticipant(id PlayerID) bool {
	for _, p := range t.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Full returns true when the participant list has reached capacity
func (t *Tournament) Full() bool {
	return len(t.Participants) >= t.Capacity
}
