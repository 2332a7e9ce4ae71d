package oracle

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/clock"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/ledger"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

// Config holds configuration for the deduction game
type Config struct {
	// TotalRounds is how many characters a user must guess
	TotalRounds int
	// RoundWinDelta is the score credited per won round
	RoundWinDelta int
}

// DefaultConfig returns default deduction game configuration
func DefaultConfig() Config {
	return Config{
		TotalRounds:   4,
		RoundWinDelta: 20,
	}
}

// AskOutcome is the result of forwarding one question to the oracle
type AskOutcome struct {
	Answer      string
	Hint        string
	RoundWon    bool
	Round       int
	TotalRounds int
	Completed   bool
	// NewScore and Stage are only meaningful when RoundWon
	NewScore int
	Stage    int
}

// Service runs the oracle-backed deduction game. Round state is keyed per
// user, so concurrent players never see each other's history.
type Service struct {
	storage storage.Storage
	ledger  *ledger.Service
	client  Client
	clock   clock.Clock
	logger  *slog.Logger

	totalRounds   int
	roundWinDelta int
}

// New creates a new oracle service
func New(
	storage storage.Storage,
	ledgerService *ledger.Service,
	client Client,
	clock clock.Clock,
	cfg Config,
	logger *slog.Logger,
) *Service {
	def := DefaultConfig()
	if cfg.TotalRounds == 0 {
		cfg.TotalRounds = def.TotalRounds
	}
	if cfg.RoundWinDelta == 0 {
		cfg.RoundWinDelta = def.RoundWinDelta
	}
	return &Service{
		storage:       storage,
		ledger:        ledgerService,
		client:        client,
		clock:         clock,
		logger:        logger,
		totalRounds:   cfg.TotalRounds,
		roundWinDelta: cfg.RoundWinDelta,
	}
}

// Status returns a user's current round, starting round 1 on first contact
func (s *Service) Status(ctx context.Context, userID model.UserID) (*model.OracleRound, error) {
	round, err := s.storage.GetOracleRound(ctx, userID)
	if err == nil {
		return round, nil
	}
	if !errors.Is(err, model.ErrOracleRoundNotFound) {
		return nil, err
	}

	round = &model.OracleRound{
		UserID:      userID,
		Round:       1,
		TotalRounds: s.totalRounds,
		UpdatedAt:   s.clock.Now(),
	}
	if err := s.storage.SaveOracleRound(ctx, round); err != nil {
		return nil, err
	}
	return round, nil
}

// Ask forwards a question to the oracle against the user's round history.
// A winning verdict credits the ledger, bumps the stage by one, and rolls
// the user into the next round (or completion after the last).
func (s *Service) Ask(ctx context.Context, userID model.UserID, question string) (*AskOutcome, error) {
	round, err := s.Status(ctx, userID)
	if err != nil {
		return nil, err
	}
	if round.Completed {
		return nil, model.ErrAllRoundsPlayed
	}

	resp, err := s.client.Ask(ctx, &AskRequest{
		Question:    question,
		PastAnswers: round.PastAnswers,
	})
	if err != nil {
		return nil, err
	}

	outcome := &AskOutcome{
		Answer:      resp.Answer,
		Hint:        resp.Hint,
		Round:       round.Round,
		TotalRounds: round.TotalRounds,
	}

	round.PastAnswers = append(round.PastAnswers, model.OracleQA{
		Question: question,
		Answer:   resp.Answer,
	})
	round.UpdatedAt = s.clock.Now()

	if resp.GameOver {
		outcome.RoundWon = true

		progress, err := s.ledger.GetProgress(ctx, userID)
		if err != nil {
			return nil, err
		}
		nextStage := progress.Stage + 1
		newScore, stage, err := s.ledger.Apply(ctx, userID, s.roundWinDelta, &nextStage)
		if err != nil {
			return nil, err
		}
		outcome.NewScore = newScore
		outcome.Stage = stage

		if round.Round >= round.TotalRounds {
			round.Completed = true
			outcome.Completed = true
		} else {
			round.Round++
			round.PastAnswers = nil
		}

		s.logger.Info("oracle round won",
			slog.String("user_id", string(userID)),
			slog.Int("round", outcome.Round),
			slog.Bool("completed", round.Completed),
		)
	}

	if err := s.storage.SaveOracleRound(ctx, round); err != nil {
		return nil, err
	}
	return outcome, nil
}

// Reset abandons the current round's question history. The round counter
// and completion flag stay put: won rounds were already credited to the
// ledger and never replay.
func (s *Service) Reset(ctx context.Context, userID model.UserID) error {
	round, err := s.storage.GetOracleRound(ctx, userID)
	if errors.Is(err, model.ErrOracleRoundNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	round.PastAnswers = nil
	round.UpdatedAt = s.clock.Now()
	return s.storage.SaveOracleRound(ctx, round)
}
