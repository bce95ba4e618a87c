package model

import "time"

// MatchID uniquely identifies a match
type MatchID string

// ResultID uniquely identifies a recorded match result
type ResultID string

// ResultStatus represents the confirmation state of a recorded result
type ResultStatus string

const (
	ResultPending   ResultStatus = "pending_confirmation" // awaiting an opponent's confirmation
	ResultConfirmed ResultStatus = "confirmed"            // terminal; ratings applied
	ResultDisputed  ResultStatus = "disputed"             // terminal; ratings untouched
)

// MatchStatus is the derived lifecycle state of a match
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"            // no result, scheduled time in the future
	MatchCompleted MatchStatus = "completed"            // no result, scheduled time has passed
	MatchPending   MatchStatus = "pending_confirmation" // a result awaits confirmation
	MatchConfirmed MatchStatus = "confirmed"
	MatchDisputed  MatchStatus = "disputed"
)

// Team sizes allowed per side
const (
	MinTeamSize = 1
	MaxTeamSize = 2
)

// MatchResult is the score record submitted by a participant.
// At most one result exists per match; its status transitions are monotonic.
type MatchResult struct {
	ID            ResultID
	Team1Score    int
	Team2Score    int
	SubmittedBy   PlayerID
	SubmittedAt   time.Time
	Status        ResultStatus
	ConfirmedBy   PlayerID // set when Status is confirmed
	DisputedBy    PlayerID // set when Status is disputed
	DisputeReason string   // mandatory for disputes
	ResolvedAt    time.Time
	RatingDeltas  map[PlayerID]int // per-player deltas applied on confirmation
}

// Terminal returns true once the result can no longer change
func (r *MatchResult) Terminal() bool {
	return r.Status == ResultConfirmed || r.Status == ResultDisputed
}

// Match represents a scheduled kicker match between two teams.
// Invariant: both teams have the same size and no player appears twice.
type Match struct {
	ID           MatchID
	Title        string
	Team1        []PlayerID
	Team2        []PlayerID
	ScheduledAt  time.Time
	Location     string
	TournamentID TournamentID // empty for friendly matches
	Result       *MatchResult // nil until a score is recorded
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsDoubles returns true for 2v2 matches
func (m *Match) IsDoubles() bool {
	return len(m.Team1) == 2
}

// Participants returns all players across both teams
func (m *Match) Participants() []PlayerID {
	out := make([]PlayerID, 0, len(m.Team1)+len(m.Team2))
	out = append(out, m.Team1...)
	out = append(out, m.Team2...)
	return out
}

// HasParticipant returns true if the player is on either team
func (m *Match) HasParticipant(id PlayerID) bool {
	return m.TeamOf(id) != 0
}

// TeamOf returns 1 or 2 for the player's team, or 0 if not a participant
func (m *Match) TeamOf(id PlayerID) int {
	for _, p := range m.Team1 {
		if p == id {
			return 1
		}
	}
	for _, p := range m.Team2 {
		if p == id {
			return 2
		}
	}
	return 0
}

// WinningTeam returns 1 or 2 based on the recorded scores, or 0 if no result
func (m *Match) WinningTeam() int {
	if m.Result == nil {
		return 0
	}
	if m.Result.Team1Score > m.Result.Team2Score {
		return 1
	}
	return 2
}

// StatusAt derives the lifecycle state of the match at the given time.
// "completed" is time-derived, never stored.
func (m *Match) StatusAt(now time.Time) MatchStatus {
	if m.Result != nil {
		switch m.Result.Status {
		case ResultConfirmed:
			return MatchConfirmed
		case ResultDisputed:
			return MatchDisputed
		default:
			return MatchPending
		}
	}
	if now.After(m.ScheduledAt) {
		return MatchCompleted
	}
	return MatchScheduled
}

// ValidateTeams checks the structural invariants of the two teams
func ValidateTeams(team1, team2 []PlayerID) error {
	if len(team1) != len(team2) {
		return ErrInvalidTeams
	}
	if len(team1) < MinTeamSize || len(team1) > MaxTeamSize {
		return ErrInvalidTeams
	}
	seen := make(map[PlayerID]bool, len(team1)+len(team2))
	for _, p := range append(append([]PlayerID{}, team1...), team2...) {
		if p == "" || seen[p] {
			return ErrInvalidTeams
		}
		seen[p] = true
	}
	return nil
}

// ValidateScore checks a submitted score pair: non-negative integers, no ties
func ValidateScore(team1Score, team2Score int) error {
	if team1Score < 0 || team2Score < 0 {
		return ErrInvalidScore
	}
	if team1Score == team2Score {
		return ErrInvalidScore
	}
	return nil
}
