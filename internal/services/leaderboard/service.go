package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/campuskicker/kicker-server/internal/dependencies/clock"
	"github.com/campuskicker/kicker-server/internal/events"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/storage"
)

// Scope selects what kind of competitor the leaderboard ranks
type Scope string

const (
	ScopePlayers Scope = "players"
	ScopeTeams   Scope = "teams"
)

// TimeRange restricts which confirmed results count towards win/loss tallies
type TimeRange string

const (
	RangeAll   TimeRange = "all"
	RangeMonth TimeRange = "month"
	RangeWeek  TimeRange = "week"
)

// ValidScope reports whether s is a known leaderboard scope
func ValidScope(s Scope) bool {
	return s == ScopePlayers || s == ScopeTeams
}

// ValidTimeRange reports whether r is a known time range
func ValidTimeRange(r TimeRange) bool {
	return r == RangeAll || r == RangeMonth || r == RangeWeek
}

// Entry is one row of a leaderboard
type Entry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

type cacheKey struct {
	scope Scope
	rng   TimeRange
}

// Service computes leaderboards from confirmed results. Boards are cached
// until an event on the bus signals that the underlying data changed.
type Service struct {
	storage storage.Storage
	bus     *events.Bus
	clock   clock.Clock
	logger  *slog.Logger

	mu    sync.RWMutex
	cache map[cacheKey][]Entry

	cancel func()
}

// New creates a new leaderboard service
func New(storage storage.Storage, bus *events.Bus, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		bus:     bus,
		clock:   clock,
		logger:  logger.With(slog.String("component", "leaderboard")),
		cache:   make(map[cacheKey][]Entry),
	}
}

// Start subscribes to the event bus and invalidates the cache whenever a
// result or player changes
func (s *Service) Start() {
	ch, cancel := s.bus.Subscribe()
	s.cancel = cancel
	go func() {
		for evt := range ch {
			switch evt.Type {
			case model.EventResultConfirmed, model.EventPlayerDeleted:
				s.invalidate()
			}
		}
	}()
}

// Stop cancels the bus subscription
func (s *Service) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Service) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) > 0 {
		s.cache = make(map[cacheKey][]Entry)
		s.logger.Debug("leaderboard cache invalidated")
	}
}

// Get returns the leaderboard for the given scope and time range, sorted by
// rating descending with wins as the tiebreaker
func (s *Service) Get(ctx context.Context, scope Scope, rng TimeRange) ([]Entry, error) {
	key := cacheKey{scope: scope, rng: rng}

	s.mu.RLock()
	cached, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	var entries []Entry
	var err error
	switch scope {
	case ScopeTeams:
		entries, err = s.buildTeams(ctx, rng)
	default:
		entries, err = s.buildPlayers(ctx, rng)
	}
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[key] = entries
	s.mu.Unlock()

	return entries, nil
}

// cutoff returns the earliest ResolvedAt a result may have to count towards
// the given range, or the zero time for RangeAll
func (s *Service) cutoff(rng TimeRange) time.Time {
	now := s.clock.Now()
	switch rng {
	case RangeWeek:
		return now.AddDate(0, 0, -7)
	case RangeMonth:
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}

func (s *Service) buildPlayers(ctx context.Context, rng TimeRange) ([]Entry, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	wins := make(map[model.PlayerID]int)
	losses := make(map[model.PlayerID]int)
	cutoff := s.cutoff(rng)

	for _, m := range matches {
		if !confirmedWithin(m, cutoff) {
			continue
		}
		winners, losers := splitByOutcome(m)
		for _, p := range winners {
			wins[p]++
		}
		for _, p := range losers {
			losses[p]++
		}
	}

	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		if p.Deleted() {
			continue
		}
		entries = append(entries, Entry{
			ID:     string(p.ID),
			Name:   p.DisplayName,
			Rating: p.Rating,
			Wins:   wins[p.ID],
			Losses: losses[p.ID],
		})
	}
	sortEntries(entries)
	return entries, nil
}

func (s *Service) buildTeams(ctx context.Context, rng TimeRange) ([]Entry, error) {
	matches, err := s.storage.ListMatches(ctx)
	if err != nil {
		return nil, err
	}

	type teamStats struct {
		members [2]model.PlayerID
		wins    int
		losses  int
	}
	stats := make(map[string]*teamStats)
	cutoff := s.cutoff(rng)

	record := func(team []model.PlayerID, won bool) {
		key, members := teamKey(team)
		ts, ok := stats[key]
		if !ok {
			ts = &teamStats{members: members}
			stats[key] = ts
		}
		if won {
			ts.wins++
		} else {
			ts.losses++
		}
	}

	for _, m := range matches {
		if !m.IsDoubles() || !confirmedWithin(m, cutoff) {
			continue
		}
		winners, losers := splitByOutcome(m)
		record(winners, true)
		record(losers, false)
	}

	entries := make([]Entry, 0, len(stats))
	for key, ts := range stats {
		var names [2]string
		sum := 0
		skip := false
		for i, id := range ts.members {
			p, err := s.storage.GetPlayer(ctx, id)
			if err != nil || p.Deleted() {
				skip = true
				break
			}
			names[i] = p.DisplayName
			sum += p.Rating
		}
		if skip {
			continue
		}
		entries = append(entries, Entry{
			ID:     key,
			Name:   fmt.Sprintf("%s & %s", names[0], names[1]),
			Rating: sum / 2,
			Wins:   ts.wins,
			Losses: ts.losses,
		})
	}
	sortEntries(entries)
	return entries, nil
}

// confirmedWithin reports whether the match carries a confirmed result
// resolved at or after the cutoff
func confirmedWithin(m *model.Match, cutoff time.Time) bool {
	r := m.Result
	if r == nil || r.Status != model.ResultConfirmed {
		return false
	}
	return !r.ResolvedAt.Before(cutoff)
}

// splitByOutcome returns the winning and losing lineups of a confirmed match
func splitByOutcome(m *model.Match) (winners, losers []model.PlayerID) {
	if m.WinningTeam() == 1 {
		return m.Team1, m.Team2
	}
	return m.Team2, m.Team1
}

// teamKey builds a stable identifier for a doubles pairing regardless of the
// order the lineup was submitted in
func teamKey(team []model.PlayerID) (string, [2]model.PlayerID) {
	a, b := team[0], team[1]
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s:%s", a, b), [2]model.PlayerID{a, b}
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		if entries[i].Wins != entries[j].Wins {
			return entries[i].Wins > entries[j].Wins
		}
		return entries[i].Name < entries[j].Name
	})
}
