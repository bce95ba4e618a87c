package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var scope, timeRange string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if scope != "" {
				q.Set("scope", scope)
			}
			if timeRange != "" {
				q.Set("range", timeRange)
			}
			path := "/api/v1/leaderboard"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var result Leaderboard
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "", "Scope: players, teams")
	cmd.Flags().StringVar(&timeRange, "range", "", "Time range: all, month, week")

	return cmd
}
