package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/campuskicker/kicker-server/internal/api/handler"
	"github.com/campuskicker/kicker-server/internal/api/middleware"
	"github.com/campuskicker/kicker-server/internal/dependencies/clock"
	"github.com/campuskicker/kicker-server/internal/events"
	"github.com/campuskicker/kicker-server/internal/services/auth"
	"github.com/campuskicker/kicker-server/internal/services/leaderboard"
	"github.com/campuskicker/kicker-server/internal/services/match"
	"github.com/campuskicker/kicker-server/internal/services/table"
	"github.com/campuskicker/kicker-server/internal/services/tournament"
	"github.com/campuskicker/kicker-server/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger               *slog.Logger
	Storage              storage.Storage
	Clock                clock.Clock
	Bus                  *events.Bus
	AuthService          *auth.Service
	MatchController      match.ControllerInterface
	TournamentController *tournament.Controller
	LeaderboardService   *leaderboard.Service
	TableService         *table.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.Storage)
	matchHandler := handler.NewMatchHandler(cfg.MatchController, cfg.Clock)
	tournamentHandler := handler.NewTournamentHandler(cfg.TournamentController)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)
	tableHandler := handler.NewTableHandler(cfg.TableService)
	eventsHandler := handler.NewEventsHandler(cfg.Bus)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/logout", playerHandler.Logout).Methods(http.MethodPost)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/me", playerHandler.DeleteMe).Methods(http.MethodDelete)
	playerProtected.HandleFunc("/{player_id}", playerHandler.Get).Methods(http.MethodGet)

	// Match routes (all require auth)
	matches := api.PathPrefix("/matches").Subrouter()
	matches.Use(authMiddleware)
	matches.HandleFunc("", matchHandler.Schedule).Methods(http.MethodPost)
	matches.HandleFunc("", matchHandler.ListMine).Methods(http.MethodGet)
	matches.HandleFunc("/{match_id}", matchHandler.Get).Methods(http.MethodGet)
	matches.HandleFunc("/{match_id}/result", matchHandler.RecordResult).Methods(http.MethodPost)
	matches.HandleFunc("/{match_id}/result/confirm", matchHandler.ConfirmResult).Methods(http.MethodPost)
	matches.HandleFunc("/{match_id}/result/dispute", matchHandler.DisputeResult).Methods(http.MethodPost)

	// Tournament routes
	tournaments := api.PathPrefix("/tournaments").Subrouter()
	tournaments.Use(authMiddleware)
	tournaments.HandleFunc("", tournamentHandler.Create).Methods(http.MethodPost)
	tournaments.HandleFunc("", tournamentHandler.List).Methods(http.MethodGet)
	tournaments.HandleFunc("/{tournament_id}", tournamentHandler.Get).Methods(http.MethodGet)
	tournaments.HandleFunc("/{tournament_id}", tournamentHandler.Delete).Methods(http.MethodDelete)
	tournaments.HandleFunc("/{tournament_id}/join", tournamentHandler.Join).Methods(http.MethodPost)
	tournaments.HandleFunc("/{tournament_id}/leave", tournamentHandler.Leave).Methods(http.MethodPost)
	tournaments.HandleFunc("/{tournament_id}/start", tournamentHandler.Start).Methods(http.MethodPost)
	tournaments.HandleFunc("/{tournament_id}/complete", tournamentHandler.Complete).Methods(http.MethodPost)

	// Table directory routes
	tables := api.PathPrefix("/tables").Subrouter()
	tables.Use(authMiddleware)
	tables.HandleFunc("", tableHandler.Add).Methods(http.MethodPost)
	tables.HandleFunc("", tableHandler.List).Methods(http.MethodGet)
	tables.HandleFunc("/{table_id}", tableHandler.Get).Methods(http.MethodGet)
	tables.HandleFunc("/{table_id}", tableHandler.Update).Methods(http.MethodPatch)
	tables.HandleFunc("/{table_id}", tableHandler.Delete).Methods(http.MethodDelete)
	tables.HandleFunc("/{table_id}/verify", tableHandler.Verify).Methods(http.MethodPost)

	// Leaderboard (read-only, requires auth)
	leaderboards := api.PathPrefix("/leaderboard").Subrouter()
	leaderboards.Use(authMiddleware)
	leaderboards.HandleFunc("", leaderboardHandler.Get).Methods(http.MethodGet)

	// Event stream (requires auth)
	eventStream := api.PathPrefix("/events").Subrouter()
	eventStream.Use(authMiddleware)
	eventStream.HandleFunc("", eventsHandler.Stream).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
