package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTournamentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tournament",
		Short: "Tournament commands",
	}

	cmd.AddCommand(newTournamentCreateCmd())
	cmd.AddCommand(newTournamentListCmd())
	cmd.AddCommand(newTournamentShowCmd())
	cmd.AddCommand(newTournamentJoinCmd())
	cmd.AddCommand(newTournamentLeaveCmd())
	cmd.AddCommand(newTournamentStartCmd())
	cmd.AddCommand(newTournamentCompleteCmd())
	cmd.AddCommand(newTournamentDeleteCmd())

	return cmd
}

func newTournamentCreateCmd() *cobra.Command {
	var name, description, start, end, location, format string
	var capacity int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a tournament",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.Parse("2006-01-02", start)
			if err != nil {
				return fmt.Errorf("--start must be YYYY-MM-DD: %w", err)
			}
			endDate, err := time.Parse("2006-01-02", end)
			if err != nil {
				return fmt.Errorf("--end must be YYYY-MM-DD: %w", err)
			}

			req := map[string]any{
				"name":        name,
				"description": description,
				"start_date":  startDate,
				"end_date":    endDate,
				"location":    location,
				"capacity":    capacity,
				"format":      format,
			}
			var result Tournament

			if err := client.Post("/api/v1/tournaments", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Tournament name (required)")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	cmd.Flags().StringVar(&start, "start", "", "Start date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&end, "end", "", "End date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&location, "location", "", "Venue")
	cmd.Flags().IntVar(&capacity, "capacity", 16, "Maximum participants (4-64)")
	cmd.Flags().StringVar(&format, "format", "single_elimination", "Format: single_elimination, double_elimination, round_robin, swiss")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTournamentListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tournaments",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Tournament

			if err := client.Get("/api/v1/tournaments", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTournamentShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <tournament-id>",
		Short: "Show a tournament",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Tournament

			if err := client.Get("/api/v1/tournaments/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTournamentJoinCmd() *cobra.Command {
	return newTournamentActionCmd("join", "Join a tournament")
}

func newTournamentLeaveCmd() *cobra.Command {
	return newTournamentActionCmd("leave", "Leave a tournament")
}

func newTournamentStartCmd() *cobra.Command {
	return newTournamentActionCmd("start", "Start a tournament (owner only)")
}

func newTournamentCompleteCmd() *cobra.Command {
	return newTournamentActionCmd("complete", "Complete a tournament (owner only)")
}

func newTournamentActionCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <tournament-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Tournament

			if err := client.Post("/api/v1/tournaments/"+args[0]+"/"+action, nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTournamentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <tournament-id>",
		Short: "Delete an upcoming tournament (owner only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/tournaments/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Tournament deleted")
			return nil
		},
	}
}
