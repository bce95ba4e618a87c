package response

import (
	"time"

	"github.com/campuskicker/kicker-server/internal/model"
	"github.com/campuskicker/kicker-server/internal/services/auth"
	"github.com/campuskicker/kicker-server/internal/services/leaderboard"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	Premium     bool   `json:"premium"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Rating:      p.Rating,
		Premium:     p.Premium,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// MatchResult represents a recorded result in API responses
type MatchResult struct {
	ID            string         `json:"id"`
	Team1Score    int            `json:"team1_score"`
	Team2Score    int            `json:"team2_score"`
	SubmittedBy   string         `json:"submitted_by"`
	SubmittedAt   time.Time      `json:"submitted_at"`
	Status        string         `json:"status"`
	ConfirmedBy   *string        `json:"confirmed_by,omitempty"`
	DisputedBy    *string        `json:"disputed_by,omitempty"`
	DisputeReason string         `json:"dispute_reason,omitempty"`
	ResolvedAt    *time.Time     `json:"resolved_at,omitempty"`
	RatingDeltas  map[string]int `json:"rating_deltas,omitempty"`
}

// MatchResultFromModel converts model.MatchResult
func MatchResultFromModel(r *model.MatchResult) *MatchResult {
	if r == nil {
		return nil
	}

	resp := &MatchResult{
		ID:            string(r.ID),
		Team1Score:    r.Team1Score,
		Team2Score:    r.Team2Score,
		SubmittedBy:   string(r.SubmittedBy),
		SubmittedAt:   r.SubmittedAt,
		Status:        string(r.Status),
		DisputeReason: r.DisputeReason,
	}
	if !r.ResolvedAt.IsZero() {
		t := r.ResolvedAt
		resp.ResolvedAt = &t
	}
	if r.ConfirmedBy != "" {
		c := string(r.ConfirmedBy)
		resp.ConfirmedBy = &c
	}
	if r.DisputedBy != "" {
		d := string(r.DisputedBy)
		resp.DisputedBy = &d
	}
	if len(r.RatingDeltas) > 0 {
		deltas := make(map[string]int, len(r.RatingDeltas))
		for pid, delta := range r.RatingDeltas {
			deltas[string(pid)] = delta
		}
		resp.RatingDeltas = deltas
	}
	return resp
}

// Match represents a match in API responses
type Match struct {
	ID           string       `json:"id"`
	Title        string       `json:"title,omitempty"`
	Team1        []string     `json:"team1"`
	Team2        []string     `json:"team2"`
	ScheduledAt  time.Time    `json:"scheduled_at"`
	Location     string       `json:"location,omitempty"`
	TournamentID string       `json:"tournament_id,omitempty"`
	Status       string       `json:"status"`
	Result       *MatchResult `json:"result,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

// MatchFromModel converts model.Match. The status is derived relative to now
// because a scheduled match becomes completed purely by time passing.
func MatchFromModel(m *model.Match, now time.Time) Match {
	return Match{
		ID:           string(m.ID),
		Title:        m.Title,
		Team1:        playerIDs(m.Team1),
		Team2:        playerIDs(m.Team2),
		ScheduledAt:  m.ScheduledAt,
		Location:     m.Location,
		TournamentID: string(m.TournamentID),
		Status:       string(m.StatusAt(now)),
		Result:       MatchResultFromModel(m.Result),
		CreatedAt:    m.CreatedAt,
	}
}

// MatchesFromModel converts a slice of matches
func MatchesFromModel(matches []*model.Match, now time.Time) []Match {
	out := make([]Match, len(matches))
	for i, m := range matches {
		out[i] = MatchFromModel(m, now)
	}
	return out
}

// Tournament represents a tournament in API responses
type Tournament struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Location     string    `json:"location,omitempty"`
	Capacity     int       `json:"capacity"`
	Format       string    `json:"format"`
	OwnerID      string    `json:"owner_id"`
	Participants []string  `json:"participants"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// TournamentFromModel converts model.Tournament
func TournamentFromModel(t *model.Tournament) Tournament {
	return Tournament{
		ID:           string(t.ID),
		Name:         t.Name,
		Description:  t.Description,
		StartDate:    t.StartDate,
		EndDate:      t.EndDate,
		Location:     t.Location,
		Capacity:     t.Capacity,
		Format:       string(t.Format),
		OwnerID:      string(t.OwnerID),
		Participants: playerIDs(t.Participants),
		Status:       string(t.Status),
		CreatedAt:    t.CreatedAt,
	}
}

// TournamentsFromModel converts a slice of tournaments
func TournamentsFromModel(tournaments []*model.Tournament) []Tournament {
	out := make([]Tournament, len(tournaments))
	for i, t := range tournaments {
		out[i] = TournamentFromModel(t)
	}
	return out
}

// Table represents a table in API responses
type Table struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Condition     string    `json:"condition"`
	Paid          bool      `json:"paid"`
	Fee           string    `json:"fee,omitempty"`
	HasBalls      bool      `json:"has_balls"`
	Notes         string    `json:"notes,omitempty"`
	AddedBy       string    `json:"added_by"`
	Verifications int       `json:"verifications"`
	Verified      bool      `json:"verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableFromModel converts model.Table
func TableFromModel(t *model.Table) Table {
	return Table{
		ID:            string(t.ID),
		Name:          t.Name,
		Address:       t.Address,
		Condition:     string(t.Condition),
		Paid:          t.Paid,
		Fee:           t.Fee,
		HasBalls:      t.HasBalls,
		Notes:         t.Notes,
		AddedBy:       string(t.AddedBy),
		Verifications: len(t.VerifiedBy),
		Verified:      t.Verified(),
		CreatedAt:     t.CreatedAt,
	}
}

// TablesFromModel converts a slice of tables
func TablesFromModel(tables []*model.Table) []Table {
	out := make([]Table, len(tables))
	for i, t := range tables {
		out[i] = TableFromModel(t)
	}
	return out
}

// Leaderboard is the response for leaderboard endpoints
type Leaderboard struct {
	Scope   string              `json:"scope"`
	Range   string              `json:"range"`
	Entries []leaderboard.Entry `json:"entries"`
}

func playerIDs(ids []model.PlayerID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}
