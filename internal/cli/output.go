package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Match:
		o.printMatch(v)
	case []Match:
		o.printMatches(v)
	case MatchResult:
		o.printMatchResult(v)
	case Tournament:
		o.printTournament(v)
	case []Tournament:
		o.printTournaments(v)
	case Table:
		o.printTable(v)
	case []Table:
		o.printTables(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	Premium     bool   `json:"premium"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// MatchResult response type
type MatchResult struct {
	ID            string         `json:"id"`
	Team1Score    int            `json:"team1_score"`
	Team2Score    int            `json:"team2_score"`
	SubmittedBy   string         `json:"submitted_by"`
	Status        string         `json:"status"`
	ConfirmedBy   *string        `json:"confirmed_by,omitempty"`
	DisputedBy    *string        `json:"disputed_by,omitempty"`
	DisputeReason string         `json:"dispute_reason,omitempty"`
	RatingDeltas  map[string]int `json:"rating_deltas,omitempty"`
}

// Match response type
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
}

// Tournament response type
type Tournament struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Location     string    `json:"location,omitempty"`
	Capacity     int       `json:"capacity"`
	Format       string    `json:"format"`
	OwnerID      string    `json:"owner_id"`
	Participants []string  `json:"participants"`
	Status       string    `json:"status"`
}

// Table response type
type Table struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Condition     string `json:"condition"`
	Paid          bool   `json:"paid"`
	Fee           string `json:"fee,omitempty"`
	HasBalls      bool   `json:"has_balls"`
	Notes         string `json:"notes,omitempty"`
	AddedBy       string `json:"added_by"`
	Verifications int    `json:"verifications"`
	Verified      bool   `json:"verified"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Leaderboard response type
type Leaderboard struct {
	Scope   string             `json:"scope"`
	Range   string             `json:"range"`
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Rating: %d\n", p.Rating)
	if p.Premium {
		fmt.Println("Premium: yes")
	}
	if p.IsGuest {
		fmt.Println("Guest: yes")
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printMatch(m Match) {
	fmt.Printf("Match: %s\n", m.ID)
	if m.Title != "" {
		fmt.Printf("Title: %s\n", m.Title)
	}
	fmt.Printf("Status: %s\n", m.Status)
	fmt.Printf("Teams: %s vs %s\n", strings.Join(m.Team1, " & "), strings.Join(m.Team2, " & "))
	fmt.Printf("Scheduled: %s\n", m.ScheduledAt.Format("2006-01-02 15:04"))
	if m.Location != "" {
		fmt.Printf("Location: %s\n", m.Location)
	}
	if m.TournamentID != "" {
		fmt.Printf("Tournament: %s\n", m.TournamentID)
	}
	if m.Result != nil {
		fmt.Println("Result:")
		o.printMatchResultIndented(*m.Result, "  ")
	}
}

func (o *Output) printMatches(matches []Match) {
	if len(matches) == 0 {
		fmt.Println("No matches")
		return
	}
	for _, m := range matches {
		score := ""
		if m.Result != nil {
			score = fmt.Sprintf(" %d-%d", m.Result.Team1Score, m.Result.Team2Score)
		}
		fmt.Printf("%s  %s  %s vs %s%s  [%s]\n",
			m.ID,
			m.ScheduledAt.Format("2006-01-02 15:04"),
			strings.Join(m.Team1, "&"),
			strings.Join(m.Team2, "&"),
			score,
			m.Status,
		)
	}
}

func (o *Output) printMatchResult(r MatchResult) {
	o.printMatchResultIndented(r, "")
}

func (o *Output) printMatchResultIndented(r MatchResult, indent string) {
	fmt.Printf("%sScore: %d - %d\n", indent, r.Team1Score, r.Team2Score)
	fmt.Printf("%sStatus: %s\n", indent, r.Status)
	fmt.Printf("%sSubmitted by: %s\n", indent, r.SubmittedBy)
	if r.ConfirmedBy != nil {
		fmt.Printf("%sConfirmed by: %s\n", indent, *r.ConfirmedBy)
	}
	if r.DisputedBy != nil {
		fmt.Printf("%sDisputed by: %s (%s)\n", indent, *r.DisputedBy, r.DisputeReason)
	}
	if len(r.RatingDeltas) > 0 {
		fmt.Printf("%sRating changes:\n", indent)
		for pid, delta := range r.RatingDeltas {
			fmt.Printf("%s  %s: %+d\n", indent, pid, delta)
		}
	}
}

func (o *Output) printTournament(t Tournament) {
	fmt.Printf("Tournament: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("Status: %s\n", t.Status)
	fmt.Printf("Format: %s\n", t.Format)
	fmt.Printf("Dates: %s to %s\n", t.StartDate.Format("2006-01-02"), t.EndDate.Format("2006-01-02"))
	if t.Location != "" {
		fmt.Printf("Location: %s\n", t.Location)
	}
	fmt.Printf("Participants: %d/%d\n", len(t.Participants), t.Capacity)
	fmt.Printf("Owner: %s\n", t.OwnerID)
}

func (o *Output) printTournaments(tournaments []Tournament) {
	if len(tournaments) == 0 {
		fmt.Println("No tournaments")
		return
	}
	for _, t := range tournaments {
		fmt.Printf("%s  %s  %s  %d/%d  [%s]\n",
			t.ID,
			t.StartDate.Format("2006-01-02"),
			t.Name,
			len(t.Participants),
			t.Capacity,
			t.Status,
		)
	}
}

func (o *Output) printTable(t Table) {
	fmt.Printf("Table: %s (%s)\n", t.Name, t.ID)
	fmt.Printf("Address: %s\n", t.Address)
	fmt.Printf("Condition: %s\n", t.Condition)
	if t.Paid {
		fmt.Printf("Paid: yes (%s)\n", t.Fee)
	}
	if t.HasBalls {
		fmt.Println("Balls available: yes")
	}
	if t.Notes != "" {
		fmt.Printf("Notes: %s\n", t.Notes)
	}
	verifiedStr := "no"
	if t.Verified {
		verifiedStr = "yes"
	}
	fmt.Printf("Verified: %s (%d verifications)\n", verifiedStr, t.Verifications)
}

func (o *Output) printTables(tables []Table) {
	if len(tables) == 0 {
		fmt.Println("No tables")
		return
	}
	for _, t := range tables {
		marker := " "
		if t.Verified {
			marker = "*"
		}
		fmt.Printf("%s %s  %s  %s  (%s)\n", marker, t.ID, t.Name, t.Address, t.Condition)
	}
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard (%s, %s):\n", l.Scope, l.Range)
	if len(l.Entries) == 0 {
		fmt.Println("  No entries")
		return
	}
	for i, e := range l.Entries {
		fmt.Printf("%3d. %-24s %5d  %dW/%dL\n", i+1, e.Name, e.Rating, e.Wins, e.Losses)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
