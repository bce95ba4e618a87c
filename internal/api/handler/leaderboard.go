package handler

import (
	"net/http"

	"github.com/campuskicker/kicker-server/internal/api/response"
	"github.com/campuskicker/kicker-server/internal/services/leaderboard"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	scope := leaderboard.Scope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = leaderboard.ScopePlayers
	}
	if !leaderboard.ValidScope(scope) {
		WriteError(w, NewInvalidRequestError("unknown scope"))
		return
	}

	rng := leaderboard.TimeRange(r.URL.Query().Get("range"))
	if rng == "" {
		rng = leaderboard.RangeAll
	}
	if !leaderboard.ValidTimeRange(rng) {
		WriteError(w, NewInvalidRequestError("unknown range"))
		return
	}

	entries, err := h.leaderboardService.Get(r.Context(), scope, rng)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Leaderboard{
		Scope:   string(scope),
		Range:   string(rng),
		Entries: entries,
	})
}
