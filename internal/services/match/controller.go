package match

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campuskicker/kicker-server/internal/dependencies/clock"
	"github.com/campuskicker/kicker-server/internal/dependencies/random"
	"github.com/campuskicker/kicker-server/internal/events"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/services/rating"
	"github.com/campuskicker/kicker-server/internal/storage"
)

// Filter selects which of a player's matches to list
type Filter string

const (
	FilterAll      Filter = "all"
	FilterUpcoming Filter = "upcoming" // scheduled, not yet played
	FilterPending  Filter = "pending"  // a result awaits confirmation
	FilterFinished Filter = "finished" // confirmed or disputed
)

// ScheduleParams holds the inputs for scheduling a match
type ScheduleParams struct {
	Title        string
	Team1        []model.PlayerID
	Team2        []model.PlayerID
	ScheduledAt  time.Time
	Location     string
	TournamentID model.TournamentID // optional
}

// Controller orchestrates the match result lifecycle: schedule, record,
// confirm/dispute, and rating application. All transitions on a given match
// are serialized through a per-match lock, so concurrent submissions cannot
// race into an inconsistent state.
type Controller struct {
	storage       storage.Storage
	ratingService *rating.Service
	bus           *events.Bus
	clock         clock.Clock
	random        random.Random
	logger        *slog.Logger

	mu    sync.Mutex
	locks map[model.MatchID]*sync.Mutex
}

// NewController creates a new match Controller
func NewController(
	storage storage.Storage,
	ratingService *rating.Service,
	bus *events.Bus,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:       storage,
		ratingService: ratingService,
		bus:           bus,
		clock:         clock,
		random:        random,
		logger:        logger,
		locks:         make(map[model.MatchID]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing writes to the given match
func (c *Controller) lockFor(id model.MatchID) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.locks[id]
	if !ok {
		l = &sync.Mutex{}
		c.locks[id] = l
	}
	return l
}

// ScheduleMatch creates a new match between two teams
func (c *Controller) ScheduleMatch(ctx context.Context, params ScheduleParams) (*model.Match, error) {
	if err := model.ValidateTeams(params.Team1, params.Team2); err != nil {
		return nil, err
	}

	// Every participant must exist and be active
	for _, pid := range append(append([]model.PlayerID{}, params.Team1...), params.Team2...) {
		player, err := c.storage.GetPlayer(ctx, pid)
		if err != nil {
			return nil, err
		}
		if player.Deleted() {
			return nil, model.ErrPlayerDeleted
		}
	}

	now := c.clock.Now()
	match := &model.Match{
		ID:           model.MatchID(c.random.UUID()),
		Title:        params.Title,
		Team1:        params.Team1,
		Team2:        params.Team2,
		ScheduledAt:  params.ScheduledAt,
		Location:     params.Location,
		TournamentID: params.TournamentID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		c.logger.Error("failed to save match",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:      model.EventMatchScheduled,
		Timestamp: now,
		MatchID:   match.ID,
		Payload: model.MatchScheduledPayload{
			Team1:       match.Team1,
			Team2:       match.Team2,
			ScheduledAt: match.ScheduledAt,
			Location:    match.Location,
		},
	})

	c.logger.Info("match scheduled",
		slog.String("match_id", string(match.ID)),
		slog.Int("team_size", len(match.Team1)),
		slog.Time("scheduled_at", match.ScheduledAt),
	)

	return match, nil
}

// GetMatch retrieves a match by ID
func (c *Controller) GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error) {
	return c.storage.GetMatch(ctx, id)
}

// ListMatchesForPlayer returns a player's matches, newest first
func (c *Controller) ListMatchesForPlayer(ctx context.Context, playerID model.PlayerID, filter Filter) ([]*model.Match, error) {
	matches, err := c.storage.ListMatchesForPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	filtered := make([]*model.Match, 0, len(matches))
	for _, m := range matches {
		if matchesFilter(m, filter, now) {
			filtered = append(filtered, m)
		}
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].ScheduledAt.After(filtered[j].ScheduledAt)
	})
	return filtered, nil
}

func matchesFilter(m *model.Match, filter Filter, now time.Time) bool {
	switch filter {
	case FilterUpcoming:
		return m.StatusAt(now) == model.MatchScheduled
	case FilterPending:
		return m.StatusAt(now) == model.MatchPending
	case FilterFinished:
		status := m.StatusAt(now)
		return status == model.MatchConfirmed || status == model.MatchDisputed
	default:
		return true
	}
}

// RecordResult submits a score for a match. Only participants may submit,
// and at most one result may ever be recorded per match.
func (c *Controller) RecordResult(ctx context.Context, matchID model.MatchID, submitterID model.PlayerID, team1Score, team2Score int) (*model.MatchResult, error) {
	lock := c.lockFor(matchID)
	lock.Lock()
	defer lock.Unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(submitterID) {
		return nil, model.ErrNotParticipant
	}
	if err := model.ValidateScore(team1Score, team2Score); err != nil {
		return nil, err
	}
	if match.Result != nil {
		return nil, model.ErrAlreadyRecorded
	}

	now := c.clock.Now()
	result := &model.MatchResult{
		ID:          model.ResultID(c.random.UUID()),
		Team1Score:  team1Score,
		Team2Score:  team2Score,
		SubmittedBy: submitterID,
		SubmittedAt: now,
		Status:      model.ResultPending,
	}

	match.Result = result
	match.UpdatedAt = now

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:      model.EventResultRecorded,
		Timestamp: now,
		MatchID:   match.ID,
		PlayerID:  submitterID,
		Payload: model.ResultRecordedPayload{
			ResultID:    result.ID,
			Team1Score:  result.Team1Score,
			Team2Score:  result.Team2Score,
			SubmittedBy: submitterID,
		},
	})

	c.logger.Info("result recorded",
		slog.String("match_id", string(match.ID)),
		slog.String("result_id", string(result.ID)),
		slog.String("submitted_by", string(submitterID)),
		slog.Int("team1_score", team1Score),
		slog.Int("team2_score", team2Score),
	)

	return result, nil
}

// ConfirmResult confirms a pending result. The confirmer must be a
// participant other than the submitter. Rating deltas for every participant
// are computed and persisted atomically with the confirmed transition.
func (c *Controller) ConfirmResult(ctx context.Context, matchID model.MatchID, confirmerID model.PlayerID) (*model.Match, error) {
	lock := c.lockFor(matchID)
	lock.Lock()
	defer lock.Unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(confirmerID) {
		return nil, model.ErrNotParticipant
	}
	if match.Result == nil || match.Result.Status != model.ResultPending {
		return nil, model.ErrNoPendingResult
	}
	if match.Result.SubmittedBy == confirmerID {
		return nil, model.ErrSelfConfirmation
	}

	winners, losers, err := c.loadTeams(ctx, match)
	if err != nil {
		return nil, err
	}

	deltas := c.ratingService.MatchDeltas(winners, losers)
	players := append(winners, losers...)
	for _, p := range players {
		p.Rating = c.ratingService.Apply(p.Rating, deltas[p.ID])
	}

	now := c.clock.Now()
	match.Result.Status = model.ResultConfirmed
	match.Result.ConfirmedBy = confirmerID
	match.Result.ResolvedAt = now
	match.Result.RatingDeltas = deltas
	match.UpdatedAt = now

	// One atomic write: the confirmed transition and all rating updates
	// become visible together or not at all.
	if err := c.storage.SaveMatchAndPlayers(ctx, match, players); err != nil {
		c.logger.Error("failed to confirm result",
			slog.String("match_id", string(match.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:      model.EventResultConfirmed,
		Timestamp: now,
		MatchID:   match.ID,
		PlayerID:  confirmerID,
		Payload: model.ResultConfirmedPayload{
			ResultID:     match.Result.ID,
			ConfirmedBy:  confirmerID,
			RatingDeltas: deltas,
		},
	})

	c.logger.Info("result confirmed",
		slog.String("match_id", string(match.ID)),
		slog.String("confirmed_by", string(confirmerID)),
		slog.Int("winning_team", match.WinningTeam()),
	)

	return match, nil
}

// DisputeResult disputes a pending result with a mandatory reason. Ratings
// are left untouched.
func (c *Controller) DisputeResult(ctx context.Context, matchID model.MatchID, disputerID model.PlayerID, reason string) (*model.Match, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, model.ErrEmptyDisputeReason
	}

	lock := c.lockFor(matchID)
	lock.Lock()
	defer lock.Unlock()

	match, err := c.storage.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	if !match.HasParticipant(disputerID) {
		return nil, model.ErrNotParticipant
	}
	if match.Result == nil || match.Result.Status != model.ResultPending {
		return nil, model.ErrNoPendingResult
	}
	if match.Result.SubmittedBy == disputerID {
		return nil, model.ErrSelfConfirmation
	}

	now := c.clock.Now()
	match.Result.Status = model.ResultDisputed
	match.Result.DisputedBy = disputerID
	match.Result.DisputeReason = reason
	match.Result.ResolvedAt = now
	match.UpdatedAt = now

	if err := c.storage.SaveMatch(ctx, match); err != nil {
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:      model.EventResultDisputed,
		Timestamp: now,
		MatchID:   match.ID,
		PlayerID:  disputerID,
		Payload: model.ResultDisputedPayload{
			ResultID:   match.Result.ID,
			DisputedBy: disputerID,
			Reason:     reason,
		},
	})

	c.logger.Info("result disputed",
		slog.String("match_id", string(match.ID)),
		slog.String("disputed_by", string(disputerID)),
	)

	return match, nil
}

// loadTeams loads the winning and losing side's player records
func (c *Controller) loadTeams(ctx context.Context, match *model.Match) (winners, losers []*model.Player, err error) {
	winningTeam := match.WinningTeam()

	load := func(ids []model.PlayerID) ([]*model.Player, error) {
		players := make([]*model.Player, 0, len(ids))
		for _, pid := range ids {
			p, err := c.storage.GetPlayer(ctx, pid)
			if err != nil {
				return nil, err
			}
			players = append(players, p)
		}
		return players, nil
	}

	team1, err := load(match.Team1)
	if err != nil {
		return nil, nil, err
	}
	team2, err := load(match.Team2)
	if err != nil {
		return nil, nil, err
	}

	if winningTeam == 1 {
		return team1, team2, nil
	}
	return team2, team1, nil
}

// Interface for dependency injection
type ControllerInterface interface {
	ScheduleMatch(ctx context.Context, params ScheduleParams) (*model.Match, error)
	GetMatch(ctx context.Context, id model.MatchID) (*model.Match, error)
	ListMatchesForPlayer(ctx context.Context, playerID model.PlayerID, filter Filter) ([]*model.Match, error)
	RecordResult(ctx context.Context, matchID model.MatchID, submitterID model.PlayerID, team1Score, team2Score int) (*model.MatchResult, error)
	ConfirmResult(ctx context.Context, matchID model.MatchID, confirmerID model.PlayerID) (*model.Match, error)
	DisputeResult(ctx context.Context, matchID model.MatchID, disputerID model.PlayerID, reason string) (*model.Match, error)
}

var _ ControllerInterface = (*Controller)(nil)
