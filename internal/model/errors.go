package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerDeleted  = errors.New("player account is closed")

	// Match errors
	ErrMatchNotFound = errors.New("match not found")
	ErrInvalidTeams  = errors.New("teams must be equal-sized (1v1 or 2v2) with distinct players")

	// Result errors
	ErrInvalidScore       = errors.New("scores must be non-negative and not tied")
	ErrNotParticipant     = errors.New("player is not a participant of this match")
	ErrAlreadyRecorded    = errors.New("a result has already been recorded for this match")
	ErrNoPendingResult    = errors.New("no result is awaiting confirmation")
	ErrSelfConfirmation   = errors.New("submitter cannot confirm or dispute their own result")
	ErrEmptyDisputeReason = errors.New("a dispute requires a non-empty reason")

	// Tournament errors
	ErrTournamentNotFound  = errors.New("tournament not found")
	ErrInvalidCapacity     = errors.New("capacity must be between 4 and 64")
	ErrInvalidFormat       = errors.New("unknown tournament format")
	ErrInvalidDateRange    = errors.New("end date must not be before start date")
	ErrTournamentFull      = errors.New("tournament is full")
	ErrTournamentStarted   = errors.New("tournament is no longer upcoming")
	ErrTournamentNotActive = errors.New("tournament is not active")
	ErrAlreadyJoined       = errors.New("player already joined this tournament")
	ErrNotJoined           = errors.New("player has not joined this tournament")
	ErrOwnerCannotLeave    = errors.New("owner cannot leave their own tournament")
	ErrNotEnoughPlayers    = errors.New("not enough participants to start")

	// Table errors
	ErrTableNotFound    = errors.New("table not found")
	ErrInvalidCondition = errors.New("unknown table condition")
	ErrAlreadyVerified  = errors.New("player already verified this table")
	ErrSelfVerification = errors.New("cannot verify a table you added")

	// Shared authorization errors
	ErrNotOwner = errors.New("player is not the owner")
)
