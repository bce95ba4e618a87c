package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/campuskicker/kicker-server/internal/dependencies/clock"
	"github.com/campuskicker/kicker-server/internal/dependencies/random"
	"github.com/campuskicker/kicker-server/internal/events"
	"github.com/campuskicker/kicker-server/internal/services/auth"
	"github.com/campuskicker/kicker-server/internal/services/leaderboard"
	"github.com/campuskicker/kicker-server/internal/services/match"
	"github.com/campuskicker/kicker-server/internal/services/rating"
	"github.com/campuskicker/kicker-server/internal/services/table"
	"github.com/campuskicker/kicker-server/internal/services/tournament"
	"github.com/campuskicker/kicker-server/internal/storage"
	"github.com/campuskicker/kicker-server/internal/storage/memory"
	redisstorage "github.com/campuskicker/kicker-server/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Event bus
	Bus *events.Bus

	// Services
	RatingService        *rating.Service
	AuthService          *auth.Service
	MatchController      *match.Controller
	TournamentController *tournament.Controller
	LeaderboardService   *leaderboard.Service
	TableService         *table.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// RatingConfig holds the rating model parameters (optional)
	// Zero-valued fields default per rating.DefaultConfig()
	RatingConfig rating.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default configs if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	// rating.New defaults zero-valued fields itself
	return newWithDependencies(store, clk, rnd, authCfg, cfg.RatingConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	ratingCfg rating.Config,
	logger *slog.Logger,
) *App {
	bus := events.NewBus(logger)

	// Create services
	ratingService := rating.New(ratingCfg)
	authService := auth.New(store, ratingService, bus, clk, logger, authCfg)
	matchController := match.NewController(store, ratingService, bus, clk, rnd, logger)
	tournamentController := tournament.NewController(store, bus, clk, rnd, logger)
	leaderboardService := leaderboard.New(store, bus, clk, logger)
	tableService := table.New(store, bus, clk, rnd, logger)

	// The leaderboard listens for confirmed results to drop stale boards
	leaderboardService.Start()

	return &App{
		Storage:              store,
		Clock:                clk,
		Random:               rnd,
		Bus:                  bus,
		RatingService:        ratingService,
		AuthService:          authService,
		MatchController:      matchController,
		TournamentController: tournamentController,
		LeaderboardService:   leaderboardService,
		TableService:         tableService,
	}
}

// Close releases background resources held by the app
func (a *App) Close() {
	a.LeaderboardService.Stop()
	a.Bus.Close()
}
