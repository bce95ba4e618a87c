package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuskicker/kicker-server/internal/api/middleware"
	"github.com/campuskicker/kicker-server/internal/api/request"
	"github.com/campuskicker/kicker-server/internal/api/response"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/services/tournament"
)

// TournamentHandler handles tournament-related endpoints
type TournamentHandler struct {
	tournamentController *tournament.Controller
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(tournamentController *tournament.Controller) *TournamentHandler {
	return &TournamentHandler{
		tournamentController: tournamentController,
	}
}

// Create handles POST /api/v1/tournaments
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		WriteError(w, NewInvalidRequestError("start_date and end_date are required"))
		return
	}

	t, err := h.tournamentController.Create(r.Context(), player.ID, tournament.CreateParams{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Format:      model.TournamentFormat(req.Format),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TournamentFromModel(t))
}

// Get handles GET /api/v1/tournaments/{tournament_id}
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.TournamentID(mux.Vars(r)["tournament_id"])

	t, err := h.tournamentController.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// List handles GET /api/v1/tournaments
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	tournaments, err := h.tournamentController.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentsFromModel(tournaments))
}

// Join handles POST /api/v1/tournaments/{tournament_id}/join
func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TournamentID(mux.Vars(r)["tournament_id"])

	t, err := h.tournamentController.Join(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Leave handles POST /api/v1/tournaments/{tournament_id}/leave
func (h *TournamentHandler) Leave(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TournamentID(mux.Vars(r)["tournament_id"])

	t, err := h.tournamentController.Leave(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Start handles POST /api/v1/tournaments/{tournament_id}/start
func (h *TournamentHandler) Start(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TournamentID(mux.Vars(r)["tournament_id"])

	t, err := h.tournamentController.Start(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Complete handles POST /api/v1/tournaments/{tournament_id}/complete
func (h *TournamentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TournamentID(mux.Vars(r)["tournament_id"])

	t, err := h.tournamentController.Complete(r.Context(), id, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Delete handles DELETE /api/v1/tournaments/{tournament_id}
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	id := model.TournamentID(mux.Vars(r)["tournament_id"])

	if err := h.tournamentController.Delete(r.Context(), id, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
