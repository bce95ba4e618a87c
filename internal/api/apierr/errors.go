package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodePlayerDeleted      = "PLAYER_DELETED"
	CodeMatchNotFound      = "MATCH_NOT_FOUND"
	CodeInvalidTeams       = "INVALID_TEAMS"
	CodeInvalidScore       = "INVALID_SCORE"
	CodeNotParticipant     = "NOT_PARTICIPANT"
	CodeAlreadyRecorded    = "RESULT_ALREADY_RECORDED"
	CodeNoPendingResult    = "NO_PENDING_RESULT"
	CodeSelfConfirmation   = "SELF_CONFIRMATION"
	CodeEmptyDisputeReason = "EMPTY_DISPUTE_REASON"
	CodeTournamentNotFound = "TOURNAMENT_NOT_FOUND"
	CodeInvalidCapacity    = "INVALID_CAPACITY"
	CodeInvalidFormat      = "INVALID_FORMAT"
	CodeInvalidDateRange   = "INVALID_DATE_RANGE"
	CodeTournamentFull     = "TOURNAMENT_FULL"
	CodeTournamentStarted  = "TOURNAMENT_STARTED"
	CodeTournamentInactive = "TOURNAMENT_NOT_ACTIVE"
	CodeAlreadyJoined      = "ALREADY_JOINED"
	CodeNotJoined          = "NOT_JOINED"
	CodeOwnerCannotLeave   = "OWNER_CANNOT_LEAVE"
	CodeNotEnoughPlayers   = "NOT_ENOUGH_PLAYERS"
	CodeTableNotFound      = "TABLE_NOT_FOUND"
	CodeInvalidCondition   = "INVALID_CONDITION"
	CodeAlreadyVerified    = "ALREADY_VERIFIED"
	CodeSelfVerification   = "SELF_VERIFICATION"
	CodeNotOwner           = "NOT_OWNER"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrPlayerDeleted):
		return &httpError{http.StatusGone, APIError{CodePlayerDeleted, "Player account is deleted"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}
	case errors.Is(err, model.ErrInvalidTeams):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeams, "Teams must be equal-sized with 1-2 distinct players"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Scores must be non-negative and not tied"}}
	case errors.Is(err, model.ErrNotParticipant):
		return &httpError{http.StatusForbidden, APIError{CodeNotParticipant, "Only match participants can perform this action"}}
	case errors.Is(err, model.ErrAlreadyRecorded):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyRecorded, "A result has already been recorded for this match"}}
	case errors.Is(err, model.ErrNoPendingResult):
		return &httpError{http.StatusConflict, APIError{CodeNoPendingResult, "No result is awaiting confirmation"}}
	case errors.Is(err, model.ErrSelfConfirmation):
		return &httpError{http.StatusForbidden, APIError{CodeSelfConfirmation, "The submitter cannot confirm or dispute their own result"}}
	case errors.Is(err, model.ErrEmptyDisputeReason):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeEmptyDisputeReason, "A dispute requires a reason"}}

	case errors.Is(err, model.ErrTournamentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTournamentNotFound, "Tournament not found"}}
	case errors.Is(err, model.ErrInvalidCapacity):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCapacity, "Capacity must be between 4 and 64"}}
	case errors.Is(err, model.ErrInvalidFormat):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFormat, "Unknown tournament format"}}
	case errors.Is(err, model.ErrInvalidDateRange):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDateRange, "End date must not precede start date"}}
	case errors.Is(err, model.ErrTournamentFull):
		return &httpError{http.StatusConflict, APIError{CodeTournamentFull, "Tournament is at capacity"}}
	case errors.Is(err, model.ErrTournamentStarted):
		return &httpError{http.StatusConflict, APIError{CodeTournamentStarted, "Tournament is no longer upcoming"}}
	case errors.Is(err, model.ErrTournamentNotActive):
		return &httpError{http.StatusConflict, APIError{CodeTournamentInactive, "Tournament is not active"}}
	case errors.Is(err, model.ErrAlreadyJoined):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyJoined, "Already joined this tournament"}}
	case errors.Is(err, model.ErrNotJoined):
		return &httpError{http.StatusNotFound, APIError{CodeNotJoined, "Not a participant of this tournament"}}
	case errors.Is(err, model.ErrOwnerCannotLeave):
		return &httpError{http.StatusForbidden, APIError{CodeOwnerCannotLeave, "The owner cannot leave their own tournament"}}
	case errors.Is(err, model.ErrNotEnoughPlayers):
		return &httpError{http.StatusConflict, APIError{CodeNotEnoughPlayers, "Not enough participants to start"}}

	case errors.Is(err, model.ErrTableNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTableNotFound, "Table not found"}}
	case errors.Is(err, model.ErrInvalidCondition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCondition, "Unknown table condition"}}
	case errors.Is(err, model.ErrAlreadyVerified):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyVerified, "Already verified this table"}}
	case errors.Is(err, model.ErrSelfVerification):
		return &httpError{http.StatusForbidden, APIError{CodeSelfVerification, "Cannot verify a table you added"}}
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "Only the owner can perform this action"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
