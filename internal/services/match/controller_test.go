package match

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/campuskicker/kicker-server/internal/dependencies/mocks"
	"github.com/campuskicker/kicker-server/internal/events"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/services/rating"
	"github.com/campuskicker/kicker-server/internal/storage/memory"
	"github.com/campuskicker/kicker-server/internal/testutil"
)

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	bus        *events.Bus
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.bus = events.NewBus(testutil.NopLogger())
	s.controller = NewController(
		s.storage,
		rating.New(rating.DefaultConfig()),
		s.bus,
		s.clock,
		s.random,
		testutil.NopLogger(),
	)
	s.ctx = context.Background()
}

func (s *ControllerSuite) TearDownTest() {
	s.bus.Close()
}

func (s *ControllerSuite) addPlayer(id model.PlayerID, ratingValue int) *model.Player {
	player := &model.Player{
		ID:          id,
		DisplayName: string(id),
		Rating:      ratingValue,
		CreatedAt:   s.clock.Now(),
	}
	s.Require().NoError(s.storage.SavePlayer(s.ctx, player))
	return player
}

func (s *ControllerSuite) scheduleSingles(p1, p2 model.PlayerID) *model.Match {
	match, err := s.controller.ScheduleMatch(s.ctx, ScheduleParams{
		Title:       "Lunch match",
		Team1:       []model.PlayerID{p1},
		Team2:       []model.PlayerID{p2},
		ScheduledAt: s.clock.Now().Add(time.Hour),
	})
	s.Require().NoError(err)
	return match
}

// Scheduling

func (s *ControllerSuite) TestScheduleMatch() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)

	match := s.scheduleSingles("alice", "bob")

	s.NotEmpty(match.ID)
	s.Equal([]model.PlayerID{"alice"}, match.Team1)
	s.Equal(model.MatchScheduled, match.StatusAt(s.clock.Now()))

	stored, err := s.storage.GetMatch(s.ctx, match.ID)
	s.Require().NoError(err)
	s.Equal(match.ID, stored.ID)
}

func (s *ControllerSuite) TestScheduleMatchUnevenTeams() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	s.addPlayer("carol", 1200)

	_, err := s.controller.ScheduleMatch(s.ctx, ScheduleParams{
		Team1:       []model.PlayerID{"alice", "carol"},
		Team2:       []model.PlayerID{"bob"},
		ScheduledAt: s.clock.Now().Add(time.Hour),
	})
	s.ErrorIs(err, model.ErrInvalidTeams)
}

func (s *ControllerSuite) TestScheduleMatchDuplicatePlayer() {
	s.addPlayer("alice", 1200)

	_, err := s.controller.ScheduleMatch(s.ctx, ScheduleParams{
		Team1:       []model.PlayerID{"alice"},
		Team2:       []model.PlayerID{"alice"},
		ScheduledAt: s.clock.Now().Add(time.Hour),
	})
	s.ErrorIs(err, model.ErrInvalidTeams)
}

func (s *ControllerSuite) TestScheduleMatchUnknownPlayer() {
	s.addPlayer("alice", 1200)

	_, err := s.controller.ScheduleMatch(s.ctx, ScheduleParams{
		Team1:       []model.PlayerID{"alice"},
		Team2:       []model.PlayerID{"ghost"},
		ScheduledAt: s.clock.Now().Add(time.Hour),
	})
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *ControllerSuite) TestScheduleMatchDeletedPlayer() {
	s.addPlayer("alice", 1200)
	bob := s.addPlayer("bob", 1200)
	deletedAt := s.clock.Now()
	bob.DeletedAt = &deletedAt
	s.Require().NoError(s.storage.SavePlayer(s.ctx, bob))

	_, err := s.controller.ScheduleMatch(s.ctx, ScheduleParams{
		Team1:       []model.PlayerID{"alice"},
		Team2:       []model.PlayerID{"bob"},
		ScheduledAt: s.clock.Now().Add(time.Hour),
	})
	s.ErrorIs(err, model.ErrPlayerDeleted)
}

// Recording results

func (s *ControllerSuite) TestRecordResult() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	result, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	s.Equal(model.ResultPending, result.Status)
	s.Equal(model.PlayerID("alice"), result.SubmittedBy)
	s.Equal(10, result.Team1Score)

	stored, err := s.storage.GetMatch(s.ctx, match.ID)
	s.Require().NoError(err)
	s.Equal(model.MatchPending, stored.StatusAt(s.clock.Now()))
}

func (s *ControllerSuite) TestRecordResultNotParticipant() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	s.addPlayer("carol", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "carol", 10, 7)
	s.ErrorIs(err, model.ErrNotParticipant)
}

func (s *ControllerSuite) TestRecordResultTiedScore() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 7, 7)
	s.ErrorIs(err, model.ErrInvalidScore)
}

func (s *ControllerSuite) TestRecordResultNegativeScore() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", -1, 7)
	s.ErrorIs(err, model.ErrInvalidScore)
}

func (s *ControllerSuite) TestRecordResultTwice() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	_, err = s.controller.RecordResult(s.ctx, match.ID, "bob", 7, 10)
	s.ErrorIs(err, model.ErrAlreadyRecorded)
}

func (s *ControllerSuite) TestRecordResultMatchNotFound() {
	_, err := s.controller.RecordResult(s.ctx, "nonexistent", "alice", 10, 7)
	s.ErrorIs(err, model.ErrMatchNotFound)
}

func (s *ControllerSuite) TestRecordResultConcurrent() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	submitters := []model.PlayerID{"alice", "bob"}
	for i := range submitters {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.controller.RecordResult(s.ctx, match.ID, submitters[i], 10, 7)
		}(i)
	}
	wg.Wait()

	// Exactly one submission wins, the other observes the recorded result
	if errs[0] == nil {
		s.ErrorIs(errs[1], model.ErrAlreadyRecorded)
	} else {
		s.Require().NoError(errs[1])
		s.ErrorIs(errs[0], model.ErrAlreadyRecorded)
	}
}

// Confirming

func (s *ControllerSuite) TestConfirmResultAppliesRatings() {
	s.addPlayer("alice", 1850)
	s.addPlayer("bob", 1795)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	confirmed, err := s.controller.ConfirmResult(s.ctx, match.ID, "bob")
	s.Require().NoError(err)

	s.Equal(model.ResultConfirmed, confirmed.Result.Status)
	s.Equal(model.PlayerID("bob"), confirmed.Result.ConfirmedBy)
	s.Equal(13, confirmed.Result.RatingDeltas["alice"])
	s.Equal(-13, confirmed.Result.RatingDeltas["bob"])

	alice, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1863, alice.Rating)

	bob, err := s.storage.GetPlayer(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1782, bob.Rating)
}

func (s *ControllerSuite) TestConfirmResultDoubles() {
	s.addPlayer("alice", 1300)
	s.addPlayer("bob", 1100)
	s.addPlayer("carol", 1250)
	s.addPlayer("dave", 1150)

	match, err := s.controller.ScheduleMatch(s.ctx, ScheduleParams{
		Team1:       []model.PlayerID{"alice", "bob"},
		Team2:       []model.PlayerID{"carol", "dave"},
		ScheduledAt: s.clock.Now().Add(time.Hour),
	})
	s.Require().NoError(err)

	_, err = s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 4)
	s.Require().NoError(err)

	confirmed, err := s.controller.ConfirmResult(s.ctx, match.ID, "carol")
	s.Require().NoError(err)

	// Both teams average 1200, so every member moves by 16
	s.Equal(16, confirmed.Result.RatingDeltas["alice"])
	s.Equal(16, confirmed.Result.RatingDeltas["bob"])
	s.Equal(-16, confirmed.Result.RatingDeltas["carol"])
	s.Equal(-16, confirmed.Result.RatingDeltas["dave"])

	bob, err := s.storage.GetPlayer(s.ctx, "bob")
	s.Require().NoError(err)
	s.Equal(1116, bob.Rating)
}

func (s *ControllerSuite) TestConfirmResultBySubmitter() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	_, err = s.controller.ConfirmResult(s.ctx, match.ID, "alice")
	s.ErrorIs(err, model.ErrSelfConfirmation)
}

func (s *ControllerSuite) TestConfirmResultNotParticipant() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	s.addPlayer("carol", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	_, err = s.controller.ConfirmResult(s.ctx, match.ID, "carol")
	s.ErrorIs(err, model.ErrNotParticipant)
}

func (s *ControllerSuite) TestConfirmResultNoPendingResult() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.ConfirmResult(s.ctx, match.ID, "bob")
	s.ErrorIs(err, model.ErrNoPendingResult)
}

func (s *ControllerSuite) TestConfirmResultAlreadyConfirmed() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)
	_, err = s.controller.ConfirmResult(s.ctx, match.ID, "bob")
	s.Require().NoError(err)

	_, err = s.controller.ConfirmResult(s.ctx, match.ID, "bob")
	s.ErrorIs(err, model.ErrNoPendingResult)
}

// Disputing

func (s *ControllerSuite) TestDisputeResult() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	disputed, err := s.controller.DisputeResult(s.ctx, match.ID, "bob", "score was 10-8")
	s.Require().NoError(err)

	s.Equal(model.ResultDisputed, disputed.Result.Status)
	s.Equal(model.PlayerID("bob"), disputed.Result.DisputedBy)
	s.Equal("score was 10-8", disputed.Result.DisputeReason)

	// Ratings stay untouched on a dispute
	alice, err := s.storage.GetPlayer(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(1200, alice.Rating)
}

func (s *ControllerSuite) TestDisputeResultEmptyReason() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	_, err = s.controller.DisputeResult(s.ctx, match.ID, "bob", "   ")
	s.ErrorIs(err, model.ErrEmptyDisputeReason)
}

func (s *ControllerSuite) TestDisputeResultBySubmitter() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)

	_, err = s.controller.DisputeResult(s.ctx, match.ID, "alice", "changed my mind")
	s.ErrorIs(err, model.ErrSelfConfirmation)
}

func (s *ControllerSuite) TestDisputeResultAfterConfirmation() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	_, err := s.controller.RecordResult(s.ctx, match.ID, "alice", 10, 7)
	s.Require().NoError(err)
	_, err = s.controller.ConfirmResult(s.ctx, match.ID, "bob")
	s.Require().NoError(err)

	_, err = s.controller.DisputeResult(s.ctx, match.ID, "bob", "too late")
	s.ErrorIs(err, model.ErrNoPendingResult)
}

// Listing

func (s *ControllerSuite) TestListMatchesForPlayerFilters() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	s.addPlayer("carol", 1200)

	upcoming := s.scheduleSingles("alice", "bob")

	pending := s.scheduleSingles("alice", "carol")
	_, err := s.controller.RecordResult(s.ctx, pending.ID, "alice", 10, 7)
	s.Require().NoError(err)

	finished := s.scheduleSingles("alice", "bob")
	_, err = s.controller.RecordResult(s.ctx, finished.ID, "alice", 10, 7)
	s.Require().NoError(err)
	_, err = s.controller.ConfirmResult(s.ctx, finished.ID, "bob")
	s.Require().NoError(err)

	all, err := s.controller.ListMatchesForPlayer(s.ctx, "alice", FilterAll)
	s.Require().NoError(err)
	s.Len(all, 3)

	got, err := s.controller.ListMatchesForPlayer(s.ctx, "alice", FilterUpcoming)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(upcoming.ID, got[0].ID)

	got, err = s.controller.ListMatchesForPlayer(s.ctx, "alice", FilterPending)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(pending.ID, got[0].ID)

	got, err = s.controller.ListMatchesForPlayer(s.ctx, "alice", FilterFinished)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(finished.ID, got[0].ID)
}

func (s *ControllerSuite) TestCompletedIsTimeDerived() {
	s.addPlayer("alice", 1200)
	s.addPlayer("bob", 1200)
	match := s.scheduleSingles("alice", "bob")

	s.Equal(model.MatchScheduled, match.StatusAt(s.clock.Now()))

	s.clock.Advance(2 * time.Hour)
	s.Equal(model.MatchCompleted, match.StatusAt(s.clock.Now()))
}
