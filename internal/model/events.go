package model

import "time"

// EventType identifies the type of change event
type EventType string

const (
	// Match lifecycle events
	EventMatchScheduled  EventType = "match_scheduled"
	EventResultRecorded  EventType = "result_recorded"
	EventResultConfirmed EventType = "result_confirmed"
	EventResultDisputed  EventType = "result_disputed"

	// Tournament events
	EventTournamentCreated   EventType = "tournament_created"
	EventTournamentJoined    EventType = "tournament_joined"
	EventTournamentLeft      EventType = "tournament_left"
	EventTournamentStarted   EventType = "tournament_started"
	EventTournamentCompleted EventType = "tournament_completed"

	// Table events
	EventTableAdded    EventType = "table_added"
	EventTableVerified EventType = "table_verified"

	// Player events
	EventPlayerDeleted EventType = "player_deleted"
)

// Event is the base structure for all change events. Consumers use these to
// invalidate cached reads; delivery is best-effort after the triggering
// operation returns.
type Event struct {
	Type         EventType
	Timestamp    time.Time
	MatchID      MatchID      // empty for non-match events
	TournamentID TournamentID // empty for non-tournament events
	TableID      TableID      // empty for non-table events
	PlayerID     PlayerID     // the player who triggered or is affected
	Payload      any          // type-specific data
}

// MatchScheduledPayload contains data for match scheduled events
type MatchScheduledPayload struct {
	Team1       []PlayerID
	Team2       []PlayerID
	ScheduledAt time.Time
	Location    string
}

// ResultRecordedPayload contains data for result recorded events
type ResultRecordedPayload struct {
	ResultID    ResultID
	Team1Score  int
	Team2Score  int
	SubmittedBy PlayerID
}

// ResultConfirmedPayload contains data for result confirmed events
type ResultConfirmedPayload struct {
	ResultID     ResultID
	ConfirmedBy  PlayerID
	RatingDeltas map[PlayerID]int
}

// ResultDisputedPayload contains data for result disputed events
type ResultDisputedPayload struct {
	ResultID   ResultID
	DisputedBy PlayerID
	Reason     string
}

// TournamentJoinedPayload contains data for tournament join/leave events
type TournamentJoinedPayload struct {
	ParticipantCount int
}

// TableVerifiedPayload contains data for table verified events
type TableVerifiedPayload struct {
	Verifications int
	Verified      bool
}
