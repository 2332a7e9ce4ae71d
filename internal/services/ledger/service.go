package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/clock"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

// Errors
var (
	ErrInvalidRoundToken = errors.New("invalid or expired round token")
	ErrGameTypeMismatch  = errors.New("round token was issued for a different game")
)

// RoundClaims is the signed content of a one-shot score-submission token.
// The jti (RegisteredClaims.ID) is burned in storage on redemption so a
// token can never credit a score twice.
type RoundClaims struct {
	UserID   string `json:"userId"`
	GameType string `json:"gameType"`
	jwt.RegisteredClaims
}

// StagePolicy controls how stage transitions are validated
type StagePolicy struct {
	// AllowRegression permits moving a user to a lower stage. The event
	// flow only ever moves forward, but replays during testing need to
	// rewind, so this defaults to true.
	AllowRegression bool
}

// Config holds configuration for the ledger service
type Config struct {
	// Secret signs round tokens (HS256). Shared with the auth service
	// so one server secret covers both token kinds.
	Secret string
	// RoundTokenTTL bounds how long a minted round token stays redeemable
	RoundTokenTTL time.Duration
	// Stage controls stage transition validation
	Stage StagePolicy
}

// DefaultConfig returns default ledger configuration
func DefaultConfig() Config {
	return Config{
		RoundTokenTTL: 15 * time.Minute,
		Stage:         StagePolicy{AllowRegression: true},
	}
}

// Service is the single authority over user score and stage. All score
// mutation goes through it as additive deltas so concurrent awards sum
// rather than clobber.
type Service struct {
	storage storage.Storage
	clock   clock.Clock

	secret        []byte
	roundTokenTTL time.Duration
	stagePolicy   StagePolicy
}

// New creates a new ledger service
func New(storage storage.Storage, clock clock.Clock, cfg Config) *Service {
	if cfg.RoundTokenTTL == 0 {
		cfg.RoundTokenTTL = DefaultConfig().RoundTokenTTL
	}
	return &Service{
		storage:       storage,
		clock:         clock,
		secret:        []byte(cfg.Secret),
		roundTokenTTL: cfg.RoundTokenTTL,
		stagePolicy:   cfg.Stage,
	}
}

// GetProgress returns a user's current score, faction, and stage
func (s *Service) GetProgress(ctx context.Context, userID model.UserID) (*model.Progress, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &model.Progress{
		Score:   user.Score,
		Faction: user.Faction,
		Stage:   user.Stage,
	}, nil
}

// IncrementScore applies an additive score delta and returns the new total
func (s *Service) IncrementScore(ctx context.Context, userID model.UserID, delta int) (int, error) {
	return s.storage.AddScore(ctx, userID, delta, s.clock.Now())
}

// TransitionStage moves a user to the given stage. Setting the stage the
// user is already at is a no-op, not an error.
func (s *Service) TransitionStage(ctx context.Context, userID model.UserID, stage int) error {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if stage < user.Stage && !s.stagePolicy.AllowRegression {
		return model.ErrStageRegression
	}
	if stage == user.Stage {
		return nil
	}
	return s.storage.SetStage(ctx, userID, stage)
}

// Apply credits a score delta and optionally transitions stage in one call.
// A nil nextStage leaves the stage untouched. Returns the new total score
// and the stage after the call.
func (s *Service) Apply(ctx context.Context, userID model.UserID, delta int, nextStage *int) (int, int, error) {
	newScore, err := s.IncrementScore(ctx, userID, delta)
	if err != nil {
		return 0, 0, err
	}
	if nextStage != nil {
		if err := s.TransitionStage(ctx, userID, *nextStage); err != nil {
			return 0, 0, err
		}
		return newScore, *nextStage, nil
	}
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return newScore, user.Stage, nil
}

// IssueRoundToken mints a signed token authorizing exactly one external
// score submission for the given user and game type.
func (s *Service) IssueRoundToken(userID model.UserID, gameType string) (string, error) {
	now := s.clock.Now()
	claims := &RoundClaims{
		UserID:   string(userID),
		GameType: gameType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.roundTokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// parseRoundToken verifies a token's signature and expiry without spending
// it
func (s *Service) parseRoundToken(token string) (*RoundClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &RoundClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidRoundToken
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidRoundToken
	}
	claims, ok := parsed.Claims.(*RoundClaims)
	if !ok || claims.ID == "" {
		return nil, ErrInvalidRoundToken
	}
	return claims, nil
}

// RedeemRoundToken validates a round token and burns its jti. A second
// redemption of the same token returns model.ErrTokenRedeemed.
func (s *Service) RedeemRoundToken(ctx context.Context, token string) (*RoundClaims, error) {
	claims, err := s.parseRoundToken(token)
	if err != nil {
		return nil, err
	}

	// Hold the spent marker slightly past token expiry; after that the
	// signature check alone rejects replays.
	if err := s.storage.RedeemToken(ctx, claims.ID, s.roundTokenTTL+time.Minute); err != nil {
		return nil, err
	}
	return claims, nil
}

// SubmitExternalScore redeems a round token and credits its score, returning
// the new total. A non-empty gameType must match the token's claim; the
// check runs before the token is spent, so a mismatched submission leaves
// both the token and the score untouched.
func (s *Service) SubmitExternalScore(ctx context.Context, token, gameType string, score int) (*RoundClaims, int, error) {
	claims, err := s.parseRoundToken(token)
	if err != nil {
		return nil, 0, err
	}
	if gameType != "" && claims.GameType != gameType {
		return nil, 0, ErrGameTypeMismatch
	}
	if err := s.storage.RedeemToken(ctx, claims.ID, s.roundTokenTTL+time.Minute); err != nil {
		return nil, 0, err
	}
	newScore, err := s.IncrementScore(ctx, model.UserID(claims.UserID), score)
	if err != nil {
		return nil, 0, err
	}
	return claims, newScore, nil
}
