package request

import "time"

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ScheduleMatchRequest is the request body for scheduling a match
type ScheduleMatchRequest struct {
	Title        string    `json:"title,omitempty"`
	Team1        []string  `json:"team1"`
	Team2        []string  `json:"team2"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	Location     string    `json:"location,omitempty"`
	TournamentID string    `json:"tournament_id,omitempty"`
}

// RecordResultRequest is the request body for recording a match result
type RecordResultRequest struct {
	Team1Score int `json:"team1_score"`
	Team2Score int `json:"team2_score"`
}

// DisputeResultRequest is the request body for disputing a result
type DisputeResultRequest struct {
	Reason string `json:"reason"`
}

// CreateTournamentRequest is the request body for creating a tournament
type CreateTournamentRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Location    string    `json:"location,omitempty"`
	Capacity    int       `json:"capacity"`
	Format      string    `json:"format"`
}

// AddTableRequest is the request body for registering a table
type AddTableRequest struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Condition string `json:"condition"`
	Paid      bool   `json:"paid"`
	Fee       string `json:"fee,omitempty"`
	HasBalls  bool   `json:"has_balls"`
	Notes     string `json:"notes,omitempty"`
}

// UpdateTableRequest is the request body for updating a table. Omitted
// fields are left unchanged.
type UpdateTableRequest struct {
	Name      *string `json:"name,omitempty"`
	Address   *string `json:"address,omitempty"`
	Condition *string `json:"condition,omitempty"`
	Paid      *bool   `json:"paid,omitempty"`
	Fee       *string `json:"fee,omitempty"`
	HasBalls  *bool   `json:"has_balls,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}
