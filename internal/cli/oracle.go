package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newOracleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "oracle",
		Short: "Deduction game commands",
	}

	cmd.AddCommand(newOracleStatusCmd())
	cmd.AddCommand(newOracleAskCmd())
	cmd.AddCommand(newOracleResetCmd())

	return cmd
}

func newOracleStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your current round and question history",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result OracleStatus

			if err := client.Get("/api/v1/oracle", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newOracleAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the oracle a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"question": strings.Join(args, " ")}
			var result OracleAnswer

			if err := client.Post("/api/v1/oracle/ask", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newOracleResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Abandon the current round's questions and start it fresh",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/oracle/reset", nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Oracle round reset")
			return nil
		},
	}
}
