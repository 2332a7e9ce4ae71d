package cli

import (
	"github.com/spf13/cobra"
)

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Progress ledger commands",
	}

	cmd.AddCommand(newProgressScoreCmd())
	cmd.AddCommand(newProgressRoundTokenCmd())

	return cmd
}

func newProgressScoreCmd() *cobra.Command {
	var score int
	var stage int

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Add score to the current user, optionally moving their stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"scoreToAdd": score}
			if cmd.Flags().Changed("stage") {
				req["nextStage"] = stage
			}

			var result ScoreResult
			if err := client.Post("/api/v1/progress/score", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&score, "add", 0, "Score delta to apply")
	cmd.Flags().IntVar(&stage, "stage", 0, "Stage to transition to")

	return cmd
}

func newProgressRoundTokenCmd() *cobra.Command {
	var gameType string

	cmd := &cobra.Command{
		Use:   "round-token",
		Short: "Mint a one-shot round token to hand to a partner game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"gameType": gameType}

			var result struct {
				Token    string `json:"token"`
				GameType string `json:"gameType"`
			}
			if err := client.Post("/api/v1/progress/round-token", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage(result.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameType, "game", "", "Game type the token is for (required)")
	_ = cmd.MarkFlagRequired("game")

	return cmd
}

func newLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the individual and faction leaderboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard

			if err := client.Get("/api/v1/leaderboard", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
