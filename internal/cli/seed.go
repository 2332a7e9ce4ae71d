package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
	redisstorage "github.com/shadowhunt/shadowhunt-go/internal/storage/redis"
)

// seedUser is one record in the seed file
type seedUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Faction  string `json:"faction"`
}

// newSeedCmd provisions event accounts directly into storage. Accounts are
// created in bulk before the event; there is no self-service signup.
func newSeedCmd() *cobra.Command {
	var redisURL string

	cmd := &cobra.Command{
		Use:   "seed <users.json>",
		Short: "Provision user accounts from a JSON file into Redis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if redisURL == "" {
				redisURL = os.Getenv("REDIS_URL")
			}
			if redisURL == "" {
				return fmt.Errorf("--redis-url or REDIS_URL is required")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}

			var users []seedUser
			if err := json.Unmarshal(data, &users); err != nil {
				return fmt.Errorf("failed to parse seed file: %w", err)
			}

			storeCfg := redisstorage.DefaultConfig()
			storeCfg.URL = redisURL
			store, err := redisstorage.New(storeCfg)
			if err != nil {
				return err
			}

			ctx := context.Background()
			out := NewOutput(cfg.Output)

			for _, u := range users {
				faction := model.Faction(u.Faction)
				if !faction.Valid() {
					return fmt.Errorf("user %q: unknown faction %q", u.Username, u.Faction)
				}

				hash, err := auth.HashPassword(u.Password)
				if err != nil {
					return fmt.Errorf("user %q: %w", u.Username, err)
				}

				user := &model.User{
					ID:           model.UserID(uuid.NewString()),
					Username:     u.Username,
					PasswordHash: hash,
					Faction:      faction,
					Stage:        1,
					CreatedAt:    time.Now(),
				}
				if err := store.SaveUser(ctx, user); err != nil {
					return fmt.Errorf("user %q: %w", u.Username, err)
				}

				out.PrintMessage(fmt.Sprintf("Seeded %s (%s)", u.Username, u.Faction))
			}

			out.PrintMessage(fmt.Sprintf("Seeded %d users", len(users)))
			return nil
		},
	}

	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis connection URL (env: REDIS_URL)")

	return cmd
}
