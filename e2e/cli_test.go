package e2e_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuskicker/kicker-server/internal/api"
	"github.com/campuskicker/kicker-server/internal/factory"
)

// cliRunner manages CLI binary execution
type cliRunner struct {
	binaryPath string
	serverURL  string
	tokenFile  string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	// Find project root (where go.mod is)
	projectRoot := findProjectRoot(t)

	// Build the CLI binary
	binaryPath := filepath.Join(projectRoot, "bin", "kicker-test")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/kicker")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build CLI: %s", string(output))

	// Create temp token file
	tokenFile := filepath.Join(t.TempDir(), "token")

	return &cliRunner{
		binaryPath: binaryPath,
		serverURL:  serverURL,
		tokenFile:  tokenFile,
	}
}

func (r *cliRunner) run(args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func (r *cliRunner) runWithToken(token string, args ...string) (string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--token", token,
		"--output", "json",
	}, args...)

	cmd := exec.Command(r.binaryPath, fullArgs...)
	output, err := cmd.CombinedOutput()
	return string(output), err
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// testServer manages a real HTTP server for e2e tests
type testServer struct {
	server   *http.Server
	addr     string
	shutdown func()
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	// Create application with in-memory storage and the real clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	t.Cleanup(app.Close)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	router := api.NewRouter(api.RouterConfig{
		Logger:               logger,
		Storage:              app.Storage,
		Clock:                app.Clock,
		Bus:                  app.Bus,
		AuthService:          app.AuthService,
		MatchController:      app.MatchController,
		TournamentController: app.TournamentController,
		LeaderboardService:   app.LeaderboardService,
		TableService:         app.TableService,
	})

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	// Wait for server to be ready
	serverURL := "http://" + addr
	waitForServer(t, serverURL+"/api/v1/health")

	return &testServer{
		server: server,
		addr:   serverURL,
		shutdown: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(ctx)
		},
	}
}

func waitForServer(t *testing.T, url string) {
	t.Helper()

	client := &http.Client{Timeout: 100 * time.Millisecond}
	deadline := time.Now().Add(5 * time.Second)

	for time.Now().Before(deadline) {
		resp, err := client.Get(url)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("server did not become ready in time")
}

// Response types for JSON parsing
type playerResponse struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	IsGuest     bool   `json:"is_guest"`
}

type authResponse struct {
	Player       playerResponse `json:"player"`
	SessionToken string         `json:"session_token"`
}

type resultResponse struct {
	Team1Score   int            `json:"team1_score"`
	Team2Score   int            `json:"team2_score"`
	SubmittedBy  string         `json:"submitted_by"`
	Status       string         `json:"status"`
	RatingDeltas map[string]int `json:"rating_deltas"`
}

type matchResponse struct {
	ID     string          `json:"id"`
	Team1  []string        `json:"team1"`
	Team2  []string        `json:"team2"`
	Status string          `json:"status"`
	Result *resultResponse `json:"result"`
}

type tournamentResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`
	Format       string   `json:"format"`
	OwnerID      string   `json:"owner_id"`
	Participants []string `json:"participants"`
	Status       string   `json:"status"`
}

type tableResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Condition     string `json:"condition"`
	Verifications int    `json:"verifications"`
	Verified      bool   `json:"verified"`
}

type leaderboardResponse struct {
	Scope   string `json:"scope"`
	Range   string `json:"range"`
	Entries []struct {
		Name   string `json:"name"`
		Rating int    `json:"rating"`
		Wins   int    `json:"wins"`
		Losses int    `json:"losses"`
	} `json:"entries"`
}

type healthResponse struct {
	Status string `json:"status"`
}

// guest creates a guest player and returns its auth response.
func guest(t *testing.T, cli *cliRunner, name string) authResponse {
	t.Helper()

	output, err := cli.run("player", "guest", "--name", name)
	require.NoError(t, err, "output: %s", output)

	var resp authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	return resp
}

// Tests

func TestCLI_HealthCheck(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("health")
	require.NoError(t, err, "output: %s", output)

	var resp healthResponse
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestCLI_PlayerCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Create guest
	authResp := guest(t, cli, "Alice")
	assert.Equal(t, "Alice", authResp.Player.DisplayName)
	assert.True(t, authResp.Player.IsGuest)
	assert.Equal(t, 1200, authResp.Player.Rating)
	assert.NotEmpty(t, authResp.SessionToken)

	// Get me (token should be saved in token file)
	output, err := cli.run("player", "me")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Alice", player.DisplayName)
	assert.Equal(t, authResp.Player.ID, player.ID)

	// Look up another player's public profile
	bob := guest(t, newCLIRunner(t, ts.addr), "Bob")

	output, err = cli.runWithToken(authResp.SessionToken, "player", "show", bob.Player.ID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, "Bob", player.DisplayName)
}

func TestCLI_RegisterAndLogin(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	output, err := cli.run("player", "register", "--name", "Alice", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)

	var registered authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &registered))
	assert.False(t, registered.Player.IsGuest)

	output, err = cli.run("player", "login", "--user", "alice", "--pass", "hunter22")
	require.NoError(t, err, "output: %s", output)

	var loggedIn authResponse
	require.NoError(t, json.Unmarshal([]byte(output), &loggedIn))
	assert.Equal(t, registered.Player.ID, loggedIn.Player.ID)
	assert.NotEmpty(t, loggedIn.SessionToken)
}

func TestCLI_MatchResultFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli1 := newCLIRunner(t, ts.addr)
	cli2 := &cliRunner{
		binaryPath: cli1.binaryPath,
		serverURL:  cli1.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}

	alice := guest(t, cli1, "Alice")
	bob := guest(t, cli2, "Bob")

	// Schedule a match that has already been played
	playedAt := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	output, err := cli1.runWithToken(alice.SessionToken, "match", "schedule",
		"--team1", alice.Player.ID,
		"--team2", bob.Player.ID,
		"--at", playedAt,
	)
	require.NoError(t, err, "output: %s", output)

	var m matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &m))
	assert.Equal(t, "completed", m.Status)
	matchID := m.ID
	t.Logf("Scheduled match: %s", matchID)

	// Alice records the score
	output, err = cli1.runWithToken(alice.SessionToken, "match", "result", matchID, "--score", "10-7")
	require.NoError(t, err, "output: %s", output)

	var result resultResponse
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, "pending_confirmation", result.Status)

	// Alice cannot confirm her own submission
	output, err = cli1.runWithToken(alice.SessionToken, "match", "confirm", matchID)
	assert.Error(t, err, "submitter should not confirm their own result")
	assert.Contains(t, strings.ToLower(output), "cannot confirm")

	// Bob confirms and the ratings move
	output, err = cli1.runWithToken(bob.SessionToken, "match", "confirm", matchID)
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &m))
	assert.Equal(t, "confirmed", m.Status)
	require.NotNil(t, m.Result)
	assert.Equal(t, 16, m.Result.RatingDeltas[alice.Player.ID])
	assert.Equal(t, -16, m.Result.RatingDeltas[bob.Player.ID])

	output, err = cli1.runWithToken(alice.SessionToken, "player", "me")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, 1216, player.Rating)

	// The confirmed result shows up on the leaderboard
	output, err = cli1.runWithToken(alice.SessionToken, "leaderboard", "--scope", "players", "--range", "all")
	require.NoError(t, err, "output: %s", output)

	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.NotEmpty(t, board.Entries)
	assert.Equal(t, "Alice", board.Entries[0].Name)
	assert.Equal(t, 1, board.Entries[0].Wins)
}

func TestCLI_DisputeFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)
	alice := guest(t, cli, "Alice")
	bob := guest(t, &cliRunner{
		binaryPath: cli.binaryPath,
		serverURL:  cli.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}, "Bob")

	playedAt := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	output, err := cli.runWithToken(alice.SessionToken, "match", "schedule",
		"--team1", alice.Player.ID,
		"--team2", bob.Player.ID,
		"--at", playedAt,
	)
	require.NoError(t, err, "output: %s", output)

	var m matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &m))

	_, err = cli.runWithToken(alice.SessionToken, "match", "result", m.ID, "--score", "10-7")
	require.NoError(t, err)

	output, err = cli.runWithToken(bob.SessionToken, "match", "dispute", m.ID, "--reason", "we stopped at 8-7")
	require.NoError(t, err, "output: %s", output)

	require.NoError(t, json.Unmarshal([]byte(output), &m))
	assert.Equal(t, "disputed", m.Status)

	// A disputed result leaves ratings untouched
	output, err = cli.runWithToken(alice.SessionToken, "player", "me")
	require.NoError(t, err, "output: %s", output)

	var player playerResponse
	require.NoError(t, json.Unmarshal([]byte(output), &player))
	assert.Equal(t, 1200, player.Rating)
}

func TestCLI_TournamentFlow(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	alice := guest(t, cli, "Alice")
	start := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	end := time.Now().AddDate(0, 0, 9).Format("2006-01-02")

	output, err := cli.runWithToken(alice.SessionToken, "tournament", "create",
		"--name", "Winter Cup",
		"--start", start,
		"--end", end,
		"--capacity", "8",
		"--format", "round_robin",
	)
	require.NoError(t, err, "output: %s", output)

	var tournament tournamentResponse
	require.NoError(t, json.Unmarshal([]byte(output), &tournament))
	assert.Equal(t, "upcoming", tournament.Status)
	assert.Equal(t, alice.Player.ID, tournament.OwnerID)
	assert.Len(t, tournament.Participants, 1) // owner auto-joins
	tournamentID := tournament.ID

	// Three more players join
	for _, name := range []string{"Bob", "Carol", "Dave"} {
		p := guest(t, &cliRunner{
			binaryPath: cli.binaryPath,
			serverURL:  cli.serverURL,
			tokenFile:  filepath.Join(t.TempDir(), "token-"+name),
		}, name)

		output, err = cli.runWithToken(p.SessionToken, "tournament", "join", tournamentID)
		require.NoError(t, err, "output: %s", output)
	}

	output, err = cli.runWithToken(alice.SessionToken, "tournament", "show", tournamentID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &tournament))
	assert.Len(t, tournament.Participants, 4)

	// Owner starts and later completes the tournament
	output, err = cli.runWithToken(alice.SessionToken, "tournament", "start", tournamentID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &tournament))
	assert.Equal(t, "active", tournament.Status)

	output, err = cli.runWithToken(alice.SessionToken, "tournament", "complete", tournamentID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &tournament))
	assert.Equal(t, "completed", tournament.Status)
}

func TestCLI_TableCommands(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	alice := guest(t, cli, "Alice")
	bob := guest(t, &cliRunner{
		binaryPath: cli.binaryPath,
		serverURL:  cli.serverURL,
		tokenFile:  filepath.Join(t.TempDir(), "token2"),
	}, "Bob")

	output, err := cli.runWithToken(alice.SessionToken, "table", "add",
		"--name", "Mensa Basement",
		"--address", "Campus Center 1",
		"--condition", "good",
		"--has-balls",
	)
	require.NoError(t, err, "output: %s", output)

	var table tableResponse
	require.NoError(t, json.Unmarshal([]byte(output), &table))
	assert.Equal(t, "Mensa Basement", table.Name)
	assert.False(t, table.Verified)
	tableID := table.ID

	// Alice cannot vouch for her own table
	output, err = cli.runWithToken(alice.SessionToken, "table", "verify", tableID)
	assert.Error(t, err, "creator should not verify their own table")
	assert.Contains(t, strings.ToLower(output), "cannot verify")

	// Bob can
	output, err = cli.runWithToken(bob.SessionToken, "table", "verify", tableID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &table))
	assert.Equal(t, 1, table.Verifications)

	// The table shows up in the directory
	output, err = cli.runWithToken(alice.SessionToken, "table", "list")
	require.NoError(t, err, "output: %s", output)

	var tables []tableResponse
	require.NoError(t, json.Unmarshal([]byte(output), &tables))
	require.Len(t, tables, 1)
	assert.Equal(t, tableID, tables[0].ID)
}

func TestCLI_ErrorHandling(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Get player without auth
	output, err := cli.run("player", "me")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "authentication required")

	// Get non-existent match
	alice := guest(t, cli, "Alice")

	output, err = cli.runWithToken(alice.SessionToken, "match", "show", "nonexistent")
	assert.Error(t, err)
	assert.Contains(t, strings.ToLower(output), "not found")
}

func TestCLI_FullGameDay(t *testing.T) {
	ts := startTestServer(t)
	defer ts.shutdown()

	cli := newCLIRunner(t, ts.addr)

	// Four players for a doubles match
	players := make([]authResponse, 0, 4)
	for i, name := range []string{"Alice", "Bob", "Carol", "Dave"} {
		players = append(players, guest(t, &cliRunner{
			binaryPath: cli.binaryPath,
			serverURL:  cli.serverURL,
			tokenFile:  filepath.Join(t.TempDir(), fmt.Sprintf("token%d", i)),
		}, name))
	}

	playedAt := time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)
	output, err := cli.runWithToken(players[0].SessionToken, "match", "schedule",
		"--title", "Friday doubles",
		"--team1", players[0].Player.ID+","+players[1].Player.ID,
		"--team2", players[2].Player.ID+","+players[3].Player.ID,
		"--at", playedAt,
	)
	require.NoError(t, err, "output: %s", output)

	var m matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &m))
	assert.Len(t, m.Team1, 2)
	assert.Len(t, m.Team2, 2)

	_, err = cli.runWithToken(players[0].SessionToken, "match", "result", m.ID, "--score", "10-5")
	require.NoError(t, err)

	// An opponent confirms; every participant's rating moves by 16
	output, err = cli.runWithToken(players[3].SessionToken, "match", "confirm", m.ID)
	require.NoError(t, err, "output: %s", output)
	require.NoError(t, json.Unmarshal([]byte(output), &m))
	require.NotNil(t, m.Result)
	require.Len(t, m.Result.RatingDeltas, 4)

	// The teams leaderboard pairs the doubles partners
	output, err = cli.runWithToken(players[0].SessionToken, "leaderboard", "--scope", "teams")
	require.NoError(t, err, "output: %s", output)

	var board leaderboardResponse
	require.NoError(t, json.Unmarshal([]byte(output), &board))
	require.Len(t, board.Entries, 2)
	assert.Equal(t, 1, board.Entries[0].Wins)

	// The player list shows the match as finished
	output, err = cli.runWithToken(players[0].SessionToken, "match", "list", "--filter", "finished")
	require.NoError(t, err, "output: %s", output)

	var matches []matchResponse
	require.NoError(t, json.Unmarshal([]byte(output), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "confirmed", matches[0].Status)
}
