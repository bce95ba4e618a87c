package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuskicker/kicker-server/internal/api/middleware"
	"github.com/campuskicker/kicker-server/internal/api/request"
	"github.com/campuskicker/kicker-server/internal/api/response"
	"github.com/campuskicker/kicker-server/internal/dependencies/clock"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/services/match"
)

// MatchHandler handles match-related endpoints
type MatchHandler struct {
	matchController match.ControllerInterface
	clock           clock.Clock
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchController match.ControllerInterface, clock clock.Clock) *MatchHandler {
	return &MatchHandler{
		matchController: matchController,
		clock:           clock,
	}
}

// Schedule handles POST /api/v1/matches
func (h *MatchHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	var req request.ScheduleMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ScheduledAt.IsZero() {
		WriteError(w, NewInvalidRequestError("scheduled_at is required"))
		return
	}

	m, err := h.matchController.ScheduleMatch(r.Context(), match.ScheduleParams{
		Title:        req.Title,
		Team1:        toPlayerIDs(req.Team1),
		Team2:        toPlayerIDs(req.Team2),
		ScheduledAt:  req.ScheduledAt,
		Location:     req.Location,
		TournamentID: model.TournamentID(req.TournamentID),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchFromModel(m, h.clock.Now()))
}

// Get handles GET /api/v1/matches/{match_id}
func (h *MatchHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.MatchID(mux.Vars(r)["match_id"])

	m, err := h.matchController.GetMatch(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m, h.clock.Now()))
}

// ListMine handles GET /api/v1/matches
func (h *MatchHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	filter := match.Filter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = match.FilterAll
	}
	switch filter {
	case match.FilterAll, match.FilterUpcoming, match.FilterPending, match.FilterFinished:
	default:
		WriteError(w, NewInvalidRequestError("unknown filter"))
		return
	}

	matches, err := h.matchController.ListMatchesForPlayer(r.Context(), player.ID, filter)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchesFromModel(matches, h.clock.Now()))
}

// RecordResult handles POST /api/v1/matches/{match_id}/result
func (h *MatchHandler) RecordResult(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["match_id"])

	var req request.RecordResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.matchController.RecordResult(r.Context(), id, player.ID, req.Team1Score, req.Team2Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.MatchResultFromModel(result))
}

// ConfirmResult handles POST /api/v1/matches/{match_id}/result/confirm
func (h *MatchHandler) ConfirmResult(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["match_id"])

	m, err := h.matchController.ConfirmResult(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m, h.clock.Now()))
}

// DisputeResult handles POST /api/v1/matches/{match_id}/result/dispute
func (h *MatchHandler) DisputeResult(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.MatchID(mux.Vars(r)["match_id"])

	var req request.DisputeResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	m, err := h.matchController.DisputeResult(r.Context(), id, player.ID, req.Reason)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(m, h.clock.Now()))
}

func toPlayerIDs(ids []string) []model.PlayerID {
	out := make([]model.PlayerID, len(ids))
	for i, id := range ids {
		out[i] = model.PlayerID(id)
	}
	return out
}
