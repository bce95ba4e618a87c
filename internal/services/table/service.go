package table

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/campuskicker/kicker-server/internal/dependencies/clock"
	"github.com/campuskicker/kicker-server/internal/dependencies/random"
	"github.com/campuskicker/kicker-server/internal/events"
	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/storage"
)

// AddParams holds the inputs for registering a table
type AddParams struct {
	Name      string
	Address   string
	Condition model.TableCondition
	Paid      bool
	Fee       string
	HasBalls  bool
	Notes     string
}

// UpdateParams holds the mutable fields of a table. Nil fields are left
// unchanged.
type UpdateParams struct {
	Name      *string
	Address   *string
	Condition *model.TableCondition
	Paid      *bool
	Fee       *string
	HasBalls  *bool
	Notes     *string
}

// Service manages the community table directory
type Service struct {
	storage storage.Storage
	bus     *events.Bus
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new table service
func New(
	storage storage.Storage,
	bus *events.Bus,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		bus:     bus,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// Add registers a new table submitted by the given player
func (s *Service) Add(ctx context.Context, addedBy model.PlayerID, params AddParams) (*model.Table, error) {
	if !model.ValidCondition(params.Condition) {
		return nil, model.ErrInvalidCondition
	}

	now := s.clock.Now()
	t := &model.Table{
		ID:        model.TableID(s.random.UUID()),
		Name:      strings.TrimSpace(params.Name),
		Address:   params.Address,
		Condition: params.Condition,
		Paid:      params.Paid,
		Fee:       params.Fee,
		HasBalls:  params.HasBalls,
		Notes:     params.Notes,
		AddedBy:   addedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.storage.SaveTable(ctx, t); err != nil {
		return nil, err
	}

	s.bus.Publish(model.Event{
		Type:      model.EventTableAdded,
		Timestamp: now,
		TableID:   t.ID,
		PlayerID:  addedBy,
	})

	s.logger.Info("table added",
		slog.String("table_id", string(t.ID)),
		slog.String("added_by", string(addedBy)),
	)

	return t, nil
}

// Get retrieves a table by ID
func (s *Service) Get(ctx context.Context, id model.TableID) (*model.Table, error) {
	return s.storage.GetTable(ctx, id)
}

// List returns all tables ordered by name. When verifiedOnly is set, tables
// below the verification threshold are filtered out.
func (s *Service) List(ctx context.Context, verifiedOnly bool) ([]*model.Table, error) {
	tables, err := s.storage.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	if verifiedOnly {
		filtered := tables[:0]
		for _, t := range tables {
			if t.Verified() {
				filtered = append(filtered, t)
			}
		}
		tables = filtered
	}
	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Name < tables[j].Name
	})
	return tables, nil
}

// Verify records a community verification of a table. Submitters cannot
// verify their own table, and each player verifies at most once.
func (s *Service) Verify(ctx context.Context, id model.TableID, playerID model.PlayerID) (*model.Table, error) {
	t, err := s.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if playerID == t.AddedBy {
		return nil, model.ErrSelfVerification
	}
	if t.HasVerifier(playerID) {
		return nil, model.ErrAlreadyVerified
	}

	t.VerifiedBy = append(t.VerifiedBy, playerID)
	t.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveTable(ctx, t); err != nil {
		return nil, err
	}

	s.bus.Publish(model.Event{
		Type:      model.EventTableVerified,
		Timestamp: t.UpdatedAt,
		TableID:   t.ID,
		PlayerID:  playerID,
		Payload: model.TableVerifiedPayload{
			Verifications: len(t.VerifiedBy),
			Verified:      t.Verified(),
		},
	})

	return t, nil
}

// Update modifies a table's details. Only the player who added the table may
// change it.
func (s *Service) Update(ctx context.Context, id model.TableID, callerID model.PlayerID, params UpdateParams) (*model.Table, error) {
	t, err := s.storage.GetTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if callerID != t.AddedBy {
		return nil, model.ErrNotOwner
	}
	if params.Condition != nil && !model.ValidCondition(*params.Condition) {
		return nil, model.ErrInvalidCondition
	}

	if params.Name != nil {
		t.Name = strings.TrimSpace(*params.Name)
	}
	if params.Address != nil {
		t.Address = *params.Address
	}
	if params.Condition != nil {
		t.Condition = *params.Condition
	}
	if params.Paid != nil {
		t.Paid = *params.Paid
	}
	if params.Fee != nil {
		t.Fee = *params.Fee
	}
	if params.HasBalls != nil {
		t.HasBalls = *params.HasBalls
	}
	if params.Notes != nil {
		t.Notes = *params.Notes
	}
	t.UpdatedAt = s.clock.Now()

	if err := s.storage.SaveTable(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// Delete removes a table. Only the player who added the table may delete it.
func (s *Service) Delete(ctx context.Context, id model.TableID, callerID model.PlayerID) error {
	t, err := s.storage.GetTable(ctx, id)
	if err != nil {
		return err
	}

	if callerID != t.AddedBy {
		return model.ErrNotOwner
	}

	if err := s.storage.DeleteTable(ctx, id); err != nil {
		return err
	}

	s.logger.Info("table deleted",
		slog.String("table_id", string(t.ID)),
		slog.String("deleted_by", string(callerID)),
	)

	return nil
}
