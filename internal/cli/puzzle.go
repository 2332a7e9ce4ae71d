package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPuzzleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Puzzle commands",
	}

	cmd.AddCommand(newPuzzleBranchCmd())
	cmd.AddCommand(newPuzzleStartCmd())
	cmd.AddCommand(newPuzzleSubmitCmd())
	cmd.AddCommand(newPuzzleKeypadCmd())

	return cmd
}

func newPuzzleBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch",
		Short: "Show which branch puzzle your faction is routed to",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result struct {
				PuzzleID string `json:"puzzleId"`
			}

			if err := client.Get("/api/v1/puzzles/branch", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(result.PuzzleID)
			return nil
		},
	}
}

func newPuzzleStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <puzzle-id>",
		Short: "Start a puzzle (begins the timer for timed puzzles)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/puzzles/%s/start", args[0])
			if err := client.Post(path, nil, nil); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Puzzle started")
			return nil
		},
	}
}

func newPuzzleSubmitCmd() *cobra.Command {
	var answer string

	cmd := &cobra.Command{
		Use:   "submit <puzzle-id>",
		Short: "Submit an answer to a puzzle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"answer": answer}
			var result PuzzleResult

			path := fmt.Sprintf("/api/v1/puzzles/%s/submit", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&answer, "answer", "", "Answer text (required)")
	_ = cmd.MarkFlagRequired("answer")

	return cmd
}

func newPuzzleKeypadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keypad",
		Short: "Show the current keypad layout",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result KeypadLayout

			if err := client.Get("/api/v1/puzzles/keypad/layout", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
