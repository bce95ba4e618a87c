package tournament

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/campuskicker/kicker-server/internal/dependencies/clock"
	"github.com/campuskicker/kicker-server/internal/dependencies/random"
	"github.com/campuskicker/kicker-server/internal/events"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/storage"
)

// CreateParams holds the inputs for creating a tournament
type CreateParams struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Location    string
	Capacity    int
	Format      model.TournamentFormat
}

// Controller manages tournament lifecycle and membership
type Controller struct {
	storage storage.Storage
	bus     *events.Bus
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// NewController creates a new tournament Controller
func NewController(
	storage storage.Storage,
	bus *events.Bus,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage: storage,
		bus:     bus,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Create validates and stores a new tournament. The creator becomes owner
// and first participant.
func (c *Controller) Create(ctx context.Context, ownerID model.PlayerID, params CreateParams) (*model.Tournament, error) {
	if params.Capacity < model.MinTournamentCapacity || params.Capacity > model.MaxTournamentCapacity {
		return nil, model.ErrInvalidCapacity
	}
	if !model.ValidFormat(params.Format) {
		return nil, model.ErrInvalidFormat
	}
	if params.EndDate.Before(params.StartDate) {
		return nil, model.ErrInvalidDateRange
	}

	now := c.clock.Now()
	t := &model.Tournament{
		ID:           model.TournamentID(c.random.UUID()),
		Name:         strings.TrimSpace(params.Name),
		Description:  params.Description,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		Location:     params.Location,
		Capacity:     params.Capacity,
		Format:       params.Format,
		OwnerID:      ownerID,
		Participants: []model.PlayerID{ownerID},
		Status:       model.TournamentUpcoming,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		c.logger.Error("failed to save tournament",
			slog.String("tournament_id", string(t.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:         model.EventTournamentCreated,
		Timestamp:    now,
		TournamentID: t.ID,
		PlayerID:     ownerID,
	})

	c.logger.Info("tournament created",
		slog.String("tournament_id", string(t.ID)),
		slog.String("format", string(t.Format)),
		slog.Int("capacity", t.Capacity),
	)

	return t, nil
}

// Get retrieves a tournament by ID
func (c *Controller) Get(ctx context.Context, id model.TournamentID) (*model.Tournament, error) {
	return c.storage.GetTournament(ctx, id)
}

// List returns all tournaments ordered by start date, soonest first
func (c *Controller) List(ctx context.Context) ([]*model.Tournament, error) {
	tournaments, err := c.storage.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(tournaments, func(i, j int) bool {
		return tournaments[i].StartDate.Before(tournaments[j].StartDate)
	})
	return tournaments, nil
}

// Join adds a player to an upcoming tournament
func (c *Controller) Join(ctx context.Context, id model.TournamentID, playerID model.PlayerID) (*model.Tournament, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Status != model.TournamentUpcoming {
		return nil, model.ErrTournamentStarted
	}
	if t.HasParticipant(playerID) {
		return nil, model.ErrAlreadyJoined
	}
	if t.Full() {
		return nil, model.ErrTournamentFull
	}

	t.Participants = append(t.Participants, playerID)
	t.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:         model.EventTournamentJoined,
		Timestamp:    t.UpdatedAt,
		TournamentID: t.ID,
		PlayerID:     playerID,
		Payload:      model.TournamentJoinedPayload{ParticipantCount: len(t.Participants)},
	})

	return t, nil
}

// Leave removes a player from an upcoming tournament. The owner cannot
// leave their own tournament; they delete it instead.
func (c *Controller) Leave(ctx context.Context, id model.TournamentID, playerID model.PlayerID) (*model.Tournament, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Status != model.TournamentUpcoming {
		return nil, model.ErrTournamentStarted
	}
	if playerID == t.OwnerID {
		return nil, model.ErrOwnerCannotLeave
	}
	if !t.HasParticipant(playerID) {
		return nil, model.ErrNotJoined
	}

	for i, p := range t.Participants {
		if p == playerID {
			t.Participants = append(t.Participants[:i], t.Participants[i+1:]...)
			break
		}
	}
	t.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:         model.EventTournamentLeft,
		Timestamp:    t.UpdatedAt,
		TournamentID: t.ID,
		PlayerID:     playerID,
		Payload:      model.TournamentJoinedPayload{ParticipantCount: len(t.Participants)},
	})

	return t, nil
}

// Start moves an upcoming tournament to active. Owner only; requires at
// least the minimum viable field of participants.
func (c *Controller) Start(ctx context.Context, id model.TournamentID, callerID model.PlayerID) (*model.Tournament, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerID != t.OwnerID {
		return nil, model.ErrNotOwner
	}
	if t.Status != model.TournamentUpcoming {
		return nil, model.ErrTournamentStarted
	}
	if len(t.Participants) < model.MinTournamentCapacity {
		return nil, model.ErrNotEnoughPlayers
	}

	t.Status = model.TournamentActive
	t.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:         model.EventTournamentStarted,
		Timestamp:    t.UpdatedAt,
		TournamentID: t.ID,
		PlayerID:     callerID,
	})

	c.logger.Info("tournament started",
		slog.String("tournament_id", string(t.ID)),
		slog.Int("participants", len(t.Participants)),
	)

	return t, nil
}

// Complete moves an active tournament to completed. Owner only.
func (c *Controller) Complete(ctx context.Context, id model.TournamentID, callerID model.PlayerID) (*model.Tournament, error) {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerID != t.OwnerID {
		return nil, model.ErrNotOwner
	}
	if t.Status != model.TournamentActive {
		return nil, model.ErrTournamentNotActive
	}

	t.Status = model.TournamentCompleted
	t.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return nil, err
	}

	c.bus.Publish(model.Event{
		Type:         model.EventTournamentCompleted,
		Timestamp:    t.UpdatedAt,
		TournamentID: t.ID,
		PlayerID:     callerID,
	})

	return t, nil
}

// Delete removes an upcoming tournament. Owner only.
func (c *Controller) Delete(ctx context.Context, id model.TournamentID, callerID model.PlayerID) error {
	t, err := c.storage.GetTournament(ctx, id)
	if err != nil {
		return err
	}

	if callerID != t.OwnerID {
		return model.ErrNotOwner
	}
	if t.Status != model.TournamentUpcoming {
		return model.ErrTournamentStarted
	}

	if err := c.storage.DeleteTournament(ctx, id); err != nil {
		return err
	}

	c.logger.Info("tournament deleted",
		slog.String("tournament_id", string(t.ID)),
		slog.String("deleted_by", string(callerID)),
	)

	return nil
}
