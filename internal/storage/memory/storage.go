package memory

import (
	"context"
	"sync"

	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface. Entities
// are copied on both save and read so callers never share pointers with the
// store or with each other.
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	matches           map[model.MatchID]*model.Match
	playerMatchIndex  map[model.PlayerID][]model.MatchID
	tournaments       map[model.TournamentID]*model.Tournament
	tables            map[model.TableID]*model.Table
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		matches:           make(map[model.MatchID]*model.Match),
		playerMatchIndex:  make(map[model.PlayerID][]model.MatchID),
		tournaments:       make(map[model.TournamentID]*model.Tournament),
		tables:            make(map[model.TableID]*model.Table),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, copyPlayer(p))
	}
	return players, nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rp
	s.registeredPlayers[rp.PlayerID] = &cp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *rp
	return &cp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	cp := *rp
	return &cp, nil
}

// Match operations

func (s *Storage) SaveMatch(ctx context.Context, match *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveMatchLocked(match)
	return nil
}

// saveMatchLocked stores a copy of the match and maintains the per-player
// index. Caller must hold the write lock.
func (s *Storage) saveMatchLocked(match *model.Match) {
	if _, exists := s.matches[match.ID]; !exists {
		for _, pid := range match.Participants() {
			s.playerMatchIndex[pid] = append(s.playerMatchIndex[pid], match.ID)
		}
	}
	s.matches[match.ID] = copyMatch(match)
}

func (s *Storage) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	match, ok := s.matches[id]
	if !ok {
		return nil, model.ErrMatchNotFound
	}
	return copyMatch(match), nil
}

func (s *Storage) ListMatches(ctx context.Context) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	matches := make([]*model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, copyMatch(m))
	}
	return matches, nil
}

func (s *Storage) ListMatchesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := s.playerMatchIndex[playerID]
	matches := make([]*model.Match, 0, len(ids))
	for _, id := range ids {
		if m, ok := s.matches[id]; ok {
			matches = append(matches, copyMatch(m))
		}
	}
	return matches, nil
}

func (s *Storage) SaveMatchAndPlayers(ctx context.Context, match *model.Match, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveMatchLocked(match)
	for _, p := range players {
		s.players[p.ID] = copyPlayer(p)
	}
	return nil
}

// Tournament operations

func (s *Storage) SaveTournament(ctx context.Context, t *model.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[t.ID] = copyTournament(t)
	return nil
}

func (s *Storage) GetTournament(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tournaments[id]
	if !ok {
		return nil, model.ErrTournamentNotFound
	}
	return copyTournament(t), nil
}

func (s *Storage) ListTournaments(ctx context.Context) ([]*model.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tournaments := make([]*model.Tournament, 0, len(s.tournaments))
	for _, t := range s.tournaments {
		tournaments = append(tournaments, copyTournament(t))
	}
	return tournaments, nil
}

func (s *Storage) DeleteTournament(ctx context.Context, id model.TournamentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tournaments, id)
	return nil
}

// Table operations

func (s *Storage) SaveTable(ctx context.Context, table *model.Table) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table.ID] = copyTable(table)
	return nil
}

func (s *Storage) GetTable(ctx context.Context, id model.TableID) (*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.tables[id]
	if !ok {
		return nil, model.ErrTableNotFound
	}
	return copyTable(table), nil
}

func (s *Storage) ListTables(ctx context.Context) ([]*model.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tables := make([]*model.Table, 0, len(s.tables))
	for _, t := range s.tables {
		tables = append(tables, copyTable(t))
	}
	return tables, nil
}

func (s *Storage) DeleteTable(ctx context.Context, id model.TableID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tables, id)
	return nil
}

// Copy helpers. Readers outside the lock must never alias stored state, or a
// controller mutating its working copy mid-transition becomes visible to them.

func copyPlayer(p *model.Player) *model.Player {
	cp := *p
	if p.DeletedAt != nil {
		t := *p.DeletedAt
		cp.DeletedAt = &t
	}
	return &cp
}

func copyMatch(m *model.Match) *model.Match {
	cm := *m
	cm.Team1 = append([]model.PlayerID(nil), m.Team1...)
	cm.Team2 = append([]model.PlayerID(nil), m.Team2...)
	if m.Result != nil {
		r := *m.Result
		if m.Result.RatingDeltas != nil {
			r.RatingDeltas = make(map[model.PlayerID]int, len(m.Result.RatingDeltas))
			for pid, delta := range m.Result.RatingDeltas {
				r.RatingDeltas[pid] = delta
			}
		}
		cm.Result = &r
	}
	return &cm
}

func copyTournament(t *model.Tournament) *model.Tournament {
	ct := *t
	ct.Participants = append([]model.PlayerID(nil), t.Participants...)
	return &ct
}

func copyTable(t *model.Table) *model.Table {
	ct := *t
	ct.VerifiedBy = append([]model.PlayerID(nil), t.VerifiedBy...)
	return &ct
}
