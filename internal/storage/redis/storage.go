package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, playerKey(player.ID), data, ttl)
	pipe.SAdd(ctx, playersIndexKey(), string(player.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Player{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = playerKey(model.PlayerID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // guest account may have expired
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue // skip invalid data
		}
		players = append(players, &player)
	}
	return players, nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	data, err := json.Marshal(match)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	s.queueMatchWrite(ctx, pipe, match, data)
	_, err = pipe.Exec(ctx)
	return err
}

// queueMatchWrite adds the match value and its index updates to a pipeline
func (s *Storage) queueMatchWrite(ctx context.Context, pipe redis.Pipeliner, match *model.Match, data []byte) {
	pipe.Set(ctx, matchKey(match.ID), data, 0)
	pipe.SAdd(ctx, matchesIndexKey(), string(match.ID))
	for _, pid := range match.Participants() {
		pipe.SAdd(ctx, playerMatchesIndexKey(pid), string(match.ID))
	}
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	data, err := s.client.Get(ctx, matchKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrMatchNotFound
		}
		return nil, err
	}

	var match model.Match
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.Match, error) {
	ids, err := s.client.SMembers(ctx, matchesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchMatches(ctx, ids)
}

func (s *Storage) ListMatchesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Match, error) {
	ids, err := s.client.SMembers(ctx, playerMatchesIndexKey(playerID)).Result()
	if err != nil {
		return nil, err
	}
	return s.fetchMatches(ctx, ids)
}

// fetchMatches loads the given match ids with a single MGET
func (s *Storage) fetchMatches(ctx context.Context, ids []string) ([]*model.Match, error) {
	if len(ids) == 0 {
		return []*model.Match{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = matchKey(model.MatchID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	matches := make([]*model.Match, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var match model.Match
		if err := json.Unmarshal([]byte(val.(string)), &match); err != nil {
			continue
		}
		matches = append(matches, &match)
	}
	return matches, nil
}

func (s *Storage) SaveMatchAndPlayers(ctx context.Context, match *model.Match, players []*model.Player) error {
	matchData, err := json.Marshal(match)
	if err != nil {
		return err
	}

	playerData := make(map[model.PlayerID][]byte, len(players))
	for _, p := range players {
		data, err := json.Marshal(p)
		if err != nil {
			return err
		}
		playerData[p.ID] = data
	}

	// Transactional pipeline: the confirmed match and the updated ratings
	// become visible together or not at all.
	pipe := s.client.TxPipeline()
	s.queueMatchWrite(ctx, pipe, match, matchData)
	for _, p := range players {
		var ttl time.Duration
		if p.IsGuest {
			ttl = s.cfg.GuestPlayerTTL
		}
		pipe.Set(ctx, playerKey(p.ID), playerData[p.ID], ttl)
		pipe.SAdd(ctx, playersIndexKey(), string(p.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, tournamentKey(t.ID), data, 0)
	pipe.SAdd(ctx, tournamentsIndexKey(), string(t.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	data, err := s.client.Get(ctx, tournamentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTournamentNotFound
		}
		return nil, err
	}

	var t model.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	ids, err := s.client.SMembers(ctx, tournamentsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Tournament{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = tournamentKey(model.TournamentID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	tournaments := make([]*model.Tournament, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var t model.Tournament
		if err := json.Unmarshal([]byte(val.(string)), &t); err != nil {
			continue
		}
		tournaments = append(tournaments, &t)
	}
	return tournaments, nil
}

func (s *Storage) DeleteTournament(ctx context.Context, id model.TournamentID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, tournamentKey(id))
	pipe.SRem(ctx, tournamentsIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// Table operations

func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	data, err := json.Marshal(table)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, tableKey(table.ID), data, 0)
	pipe.SAdd(ctx, tablesIndexKey(), string(table.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	data, err := s.client.Get(ctx, tableKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrTableNotFound
		}
		return nil, err
	}

	var table model.Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (s *Storage) ListTables(ctx context.Context) ([]*model.Table, error) {
	ids, err := s.client.SMembers(ctx, tablesIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Table{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = tableKey(model.TableID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	tables := make([]*model.Table, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var table model.Table
		if err := json.Unmarshal([]byte(val.(string)), &table); err != nil {
			continue
		}
		tables = append(tables, &table)
	}
	return tables, nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, tableKey(id))
	pipe.SRem(ctx, tablesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}
