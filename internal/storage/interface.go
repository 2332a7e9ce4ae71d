package storage

import (
	"context"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]*model.User, error)

	// AddScore applies an additive score delta atomically and stamps the
	// score-updated time. Concurrent deltas must never be lost.
	AddScore(ctx context.Context, id model.UserID, delta int, at time.Time) (int, error)

	// SetStage overwrites the stage marker (last writer wins)
	SetStage(ctx context.Context, id model.UserID, stage int) error

	// Hunt session operations
	SaveHuntSession(ctx context.Context, session *model.HuntSession) error
	GetHuntSession(ctx context.Context, id model.HuntID) (*model.HuntSession, error)
	DeleteHuntSession(ctx context.Context, id model.HuntID) error

	// Hunt progress (room-unlock high-water-mark per device)
	SaveHuntProgress(ctx context.Context, progress *model.HuntProgress) error
	GetHuntProgress(ctx context.Context, deviceID string) (*model.HuntProgress, error)

	// Oracle round state (per user)
	SaveOracleRound(ctx context.Context, round *model.OracleRound) error
	GetOracleRound(ctx context.Context, userID model.UserID) (*model.OracleRound, error)
	DeleteOracleRound(ctx context.Context, userID model.UserID) error

	// Timed puzzle state
	SavePuzzleState(ctx context.Context, state *model.PuzzleState) error
	GetPuzzleState(ctx context.Context, userID model.UserID, puzzleID model.PuzzleID) (*model.PuzzleState, error)

	// RedeemToken records a round-token ID as spent. It returns
	// model.ErrTokenRedeemed if the ID was already recorded.
	RedeemToken(ctx context.Context, tokenID string, ttl time.Duration) error
}
