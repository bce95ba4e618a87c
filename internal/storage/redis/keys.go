package redis

import (
	"fmt"

	"github.com/campuskicker/kicker-server/internal/model"
)

// Key prefix for all kicker data
const keyPrefix = "kicker"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player ids
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// matchKey returns the Redis key for a Match
func matchKey(id model.MatchID) string {
	return fmt.Sprintf("%s:match:%s", keyPrefix, id)
}

// matchesIndexKey returns the Redis key for the SET of all match ids
func matchesIndexKey() string {
	return fmt.Sprintf("%s:idx:matches", keyPrefix)
}

// playerMatchesIndexKey returns the Redis key for the SET of match ids a
// player participates in
func playerMatchesIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:player_matches:%s", keyPrefix, playerID)
}

// tournamentKey returns the Redis key for a Tournament
func tournamentKey(id model.TournamentID) string {
	return fmt.Sprintf("%s:tournament:%s", keyPrefix, id)
}

// tournamentsIndexKey returns the Redis key for the SET of all tournament ids
func tournamentsIndexKey() string {
	return fmt.Sprintf("%s:idx:tournaments", keyPrefix)
}

// tableKey returns the Redis key for a Table
func tableKey(id model.TableID) string {
	return fmt.Sprintf("%s:table:%s", keyPrefix, id)
}

// tablesIndexKey returns the Redis key for the SET of all table ids
func tablesIndexKey() string {
	return fmt.Sprintf("%s:idx:tables", keyPrefix)
}
