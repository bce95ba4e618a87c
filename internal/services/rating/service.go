package rating

import (
	"math"

	"github.com/campuskicker/kicker-server/internal/model"
)

// Outcome is the result of a match from one side's perspective
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeLoss Outcome = "loss"
)

// Config holds tuning parameters for the rating model
type Config struct {
	// KFactor scales how much a single result moves a rating
	KFactor int
	// InitialRating is assigned to every new player
	InitialRating int
	// Floor is the lowest rating a player can be assigned
	Floor int
}

// DefaultConfig returns the standard rating configuration
func DefaultConfig() Config {
	return Config{
		KFactor:       32,
		InitialRating: 1200,
		Floor:         0,
	}
}

// Service computes ELO-style rating adjustments. All methods are pure; rating
// persistence belongs to the caller.
type Service struct {
	cfg Config
}

// New creates a new rating service. Zero-valued fields fall back to their
// defaults independently, so a partial config cannot zero out the baseline.
func New(cfg Config) *Service {
	def := DefaultConfig()
	if cfg.KFactor == 0 {
		cfg.KFactor = def.KFactor
	}
	if cfg.InitialRating == 0 {
		cfg.InitialRating = def.InitialRating
	}
	return &Service{cfg: cfg}
}

// InitialRating returns the rating assigned to new players
func (s *Service) InitialRating() int {
	return s.cfg.InitialRating
}

// ComputeDelta returns the signed rating change for a player with the given
// rating against an opponent, for a decisive outcome. Deltas are zero-sum
// across the two sides of a 1v1 match: rounding half away from zero keeps
// round(K*(1-E)) and -round(K*E) equal in magnitude because the expected
// scores of the two sides sum to 1.
func (s *Service) ComputeDelta(playerRating, opponentRating int, outcome Outcome) int {
	actual := 0.0
	if outcome == OutcomeWin {
		actual = 1.0
	}
	return s.delta(float64(playerRating), float64(opponentRating), actual)
}

// MatchDeltas computes the per-player deltas for a decisive team result.
// Each team's effective rating is the arithmetic mean of its members'
// ratings, and every member receives the delta computed for their team.
func (s *Service) MatchDeltas(winners, losers []*model.Player) map[model.PlayerID]int {
	winnerRating := meanRating(winners)
	loserRating := meanRating(losers)

	winnerDelta := s.delta(winnerRating, loserRating, 1.0)
	loserDelta := s.delta(loserRating, winnerRating, 0.0)

	deltas := make(map[model.PlayerID]int, len(winners)+len(losers))
	for _, p := range winners {
		deltas[p.ID] = winnerDelta
	}
	for _, p := range losers {
		deltas[p.ID] = loserDelta
	}
	return deltas
}

// Apply adds a delta to a rating, clamping at the configured floor
func (s *Service) Apply(rating, delta int) int {
	next := rating + delta
	if next < s.cfg.Floor {
		return s.cfg.Floor
	}
	return next
}

// delta implements the logistic expected-score formula
func (s *Service) delta(own, opponent, actual float64) int {
	expected := 1.0 / (1.0 + math.Pow(10, (opponent-own)/400.0))
	return int(math.Round(float64(s.cfg.KFactor) * (actual - expected)))
}

func meanRating(players []*model.Player) float64 {
	if len(players) == 0 {
		return 0
	}
	sum := 0
	for _, p := range players {
		sum += p.Rating
	}
	return float64(sum) / float64(len(players))
}
