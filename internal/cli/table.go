package cli

import (
	"github.com/spf13/cobra"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Table directory commands",
	}

	cmd.AddCommand(newTableAddCmd())
	cmd.AddCommand(newTableListCmd())
	cmd.AddCommand(newTableShowCmd())
	cmd.AddCommand(newTableVerifyCmd())
	cmd.AddCommand(newTableDeleteCmd())

	return cmd
}

func newTableAddCmd() *cobra.Command {
	var name, address, condition, fee, notes string
	var paid, hasBalls bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a table",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"name":      name,
				"address":   address,
				"condition": condition,
				"paid":      paid,
				"fee":       fee,
				"has_balls": hasBalls,
				"notes":     notes,
			}
			var result Table

			if err := client.Post("/api/v1/tables", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Table name (required)")
	cmd.Flags().StringVar(&address, "address", "", "Where the table is (required)")
	cmd.Flags().StringVar(&condition, "condition", "average", "Condition: poor, average, good, very_good, excellent")
	cmd.Flags().BoolVar(&paid, "paid", false, "Table costs money to play")
	cmd.Flags().StringVar(&fee, "fee", "", "Fee description, e.g. '1 euro per game'")
	cmd.Flags().BoolVar(&hasBalls, "has-balls", false, "Balls are available at the table")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("address")

	return cmd
}

func newTableListCmd() *cobra.Command {
	var verifiedOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/tables"
			if verifiedOnly {
				path += "?verified=true"
			}

			var result []Table
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verifiedOnly, "verified", false, "Only show verified tables")

	return cmd
}

func newTableShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <table-id>",
		Short: "Show a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table

			if err := client.Get("/api/v1/tables/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <table-id>",
		Short: "Verify a table exists",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Table

			if err := client.Post("/api/v1/tables/"+args[0]+"/verify", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newTableDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <table-id>",
		Short: "Delete a table you added",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/tables/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Table deleted")
			return nil
		},
	}
}
