package storage

import (
	"context"

	"github.com/campuskicker/kicker-server/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Match operations
	SaveMatch(ctx context.Context, match *model.Match) error
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListMatches(ctx context.Context) ([]*model.Match, error)
	ListMatchesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Match, error)

	// SaveMatchAndPlayers persists a match together with updated player
	// records as one atomic write. Used when confirming a result so rating
	// application cannot be observed without the confirmed transition.
	SaveMatchAndPlayers(ctx context.Context, match *model.Match, players []*model.Player) error

	// Tournament operations
	SaveTournament(ctx context.Context, t *model.Tournament) error
	GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error)
	ListTournaments(ctx context.Context) ([]*model.Tournament, error)
	DeleteTournament(ctx context.Context, id model.TournamentID) error

	// Table operations
	SaveTable(ctx context.Context, table *model.Table) error
	GetTable(ctx context.Context, id model.TableID) (*model.Table, error)
	ListTables(ctx context.Context) ([]*model.Table, error)
	DeleteTable(ctx context.Context, id model.TableID) error
}
