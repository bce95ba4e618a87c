package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match scheduling and result commands",
	}

	cmd.AddCommand(newMatchScheduleCmd())
	cmd.AddCommand(newMatchShowCmd())
	cmd.AddCommand(newMatchListCmd())
	cmd.AddCommand(newMatchResultCmd())
	cmd.AddCommand(newMatchConfirmCmd())
	cmd.AddCommand(newMatchDisputeCmd())

	return cmd
}

func newMatchScheduleCmd() *cobra.Command {
	var title, team1, team2, at, location, tournamentID string

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Schedule a new match",
		RunE: func(cmd *cobra.Command, args []string) error {
			scheduledAt, err := time.Parse(time.RFC3339, at)
			if err != nil {
				return fmt.Errorf("--at must be RFC3339 (e.g. 2026-09-01T18:00:00Z): %w", err)
			}

			req := map[string]any{
				"title":         title,
				"team1":         splitIDs(team1),
				"team2":         splitIDs(team2),
				"scheduled_at":  scheduledAt,
				"location":      location,
				"tournament_id": tournamentID,
			}
			var result Match

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Match title")
	cmd.Flags().StringVar(&team1, "team1", "", "Team 1 player IDs, comma-separated (required)")
	cmd.Flags().StringVar(&team2, "team2", "", "Team 2 player IDs, comma-separated (required)")
	cmd.Flags().StringVar(&at, "at", "", "Scheduled time, RFC3339 (required)")
	cmd.Flags().StringVar(&location, "location", "", "Where the match is played")
	cmd.Flags().StringVar(&tournamentID, "tournament", "", "Tournament ID")
	_ = cmd.MarkFlagRequired("team1")
	_ = cmd.MarkFlagRequired("team2")
	_ = cmd.MarkFlagRequired("at")

	return cmd
}

func newMatchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show a match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Get("/api/v1/matches/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchListCmd() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/matches"
			if filter != "" {
				path += "?filter=" + filter
			}

			var result []Match
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Filter: all, upcoming, pending, finished")

	return cmd
}

func newMatchResultCmd() *cobra.Command {
	var score string

	cmd := &cobra.Command{
		Use:   "result <match-id>",
		Short: "Record a match result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t1, t2 int
			if _, err := fmt.Sscanf(score, "%d-%d", &t1, &t2); err != nil {
				return fmt.Errorf("--score must look like 10-7: %w", err)
			}

			req := map[string]int{
				"team1_score": t1,
				"team2_score": t2,
			}
			var result MatchResult

			if err := client.Post("/api/v1/matches/"+args[0]+"/result", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&score, "score", "", "Score as team1-team2, e.g. 10-7 (required)")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newMatchConfirmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "confirm <match-id>",
		Short: "Confirm a pending result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Match

			if err := client.Post("/api/v1/matches/"+args[0]+"/result/confirm", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newMatchDisputeCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "dispute <match-id>",
		Short: "Dispute a pending result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"reason": reason}
			var result Match

			if err := client.Post("/api/v1/matches/"+args[0]+"/result/dispute", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the result is wrong (required)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func splitIDs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
