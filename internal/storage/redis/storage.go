package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations
//
// Users live in hashes so the score field can be incremented with HINCRBY;
// every other entity is a JSON blob keyed by ID.

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, userKey(user.ID), map[string]any{
		"id":               string(user.ID),
		"username":         user.Username,
		"password_hash":    user.PasswordHash,
		"score":            user.Score,
		"faction":          string(user.Faction),
		"stage":            user.Stage,
		"score_updated_at": user.ScoreUpdatedAt.Format(time.RFC3339Nano),
		"created_at":       user.CreatedAt.Format(time.RFC3339Nano),
	})
	pipe.Set(ctx, usernameIndexKey(user.Username), string(user.ID), 0)
	pipe.SAdd(ctx, usersIndexKey(), string(user.ID))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	fields, err := s.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, model.ErrUserNotFound
	}
	return userFromHash(fields)
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	id, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return s.GetUser(ctx, model.UserID(id))
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	ids, err := s.client.SMembers(ctx, usersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := s.GetUser(ctx, model.UserID(id))
		if err != nil {
			if errors.Is(err, model.ErrUserNotFound) {
				continue
			}
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Storage) AddScore(ctx context.Context, id model.UserID, delta int, at time.Time) (int, error) {
	key := userKey(id)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if exists == 0 {
		return 0, model.ErrUserNotFound
	}

	newScore, err := s.client.HIncrBy(ctx, key, "score", int64(delta)).Result()
	if err != nil {
		return 0, err
	}
	if err := s.client.HSet(ctx, key, "score_updated_at", at.Format(time.RFC3339Nano)).Err(); err != nil {
		return 0, err
	}
	return int(newScore), nil
}

func (s *Storage) SetStage(ctx context.Context, id model.UserID, stage int) error {
	key := userKey(id)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrUserNotFound
	}

	return s.client.HSet(ctx, key, "stage", stage).Err()
}

func userFromHash(fields map[string]string) (*model.User, error) {
	score, err := strconv.Atoi(fields["score"])
	if err != nil {
		return nil, err
	}
	stage, err := strconv.Atoi(fields["stage"])
	if err != nil {
		return nil, err
	}
	scoreUpdatedAt, _ := time.Parse(time.RFC3339Nano, fields["score_updated_at"])
	createdAt, _ := time.Parse(time.RFC3339Nano, fields["created_at"])

	return &model.User{
		ID:             model.UserID(fields["id"]),
		Username:       fields["username"],
		PasswordHash:   fields["password_hash"],
		Score:          score,
		Faction:        model.Faction(fields["faction"]),
		Stage:          stage,
		ScoreUpdatedAt: scoreUpdatedAt,
		CreatedAt:      createdAt,
	}, nil
}

// Hunt session operations

func (s *Storage) SaveHuntSession(ctx context.Context, session *model.HuntSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, huntSessionKey(session.ID), data, s.cfg.HuntSessionTTL).Err()
}

func (s *Storage) GetHuntSession(ctx context.Context, id model.HuntID) (*model.HuntSession, error) {
	data, err := s.client.Get(ctx, huntSessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrHuntNotFound
		}
		return nil, err
	}
	var session model.HuntSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteHuntSession(ctx context.Context, id model.HuntID) error {
	return s.client.Del(ctx, huntSessionKey(id)).Err()
}

// Hunt progress operations

func (s *Storage) SaveHuntProgress(ctx context.Context, progress *model.HuntProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	// Unlock markers survive the event window
	return s.client.Set(ctx, huntProgressKey(progress.DeviceID), data, 0).Err()
}

func (s *Storage) GetHuntProgress(ctx context.Context, deviceID string) (*model.HuntProgress, error) {
	data, err := s.client.Get(ctx, huntProgressKey(deviceID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProgressNotFound
		}
		return nil, err
	}
	var progress model.HuntProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// Oracle round operations

func (s *Storage) SaveOracleRound(ctx context.Context, round *model.OracleRound) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, oracleRoundKey(round.UserID), data, s.cfg.OracleRoundTTL).Err()
}

func (s *Storage) GetOracleRound(ctx context.Context, userID model.UserID) (*model.OracleRound, error) {
	data, err := s.client.Get(ctx, oracleRoundKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrOracleRoundNotFound
		}
		return nil, err
	}
	var round model.OracleRound
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *Storage) DeleteOracleRound(ctx context.Context, userID model.UserID) error {
	return s.client.Del(ctx, oracleRoundKey(userID)).Err()
}

// Puzzle state operations

func (s *Storage) SavePuzzleState(ctx context.Context, state *model.PuzzleState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, puzzleStateKey(state.UserID, state.PuzzleID), data, s.cfg.PuzzleStateTTL).Err()
}

func (s *Storage) GetPuzzleState(ctx context.Context, userID model.UserID, puzzleID model.PuzzleID) (*model.PuzzleState, error) {
	data, err := s.client.Get(ctx, puzzleStateKey(userID, puzzleID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPuzzleStateNotFound
		}
		return nil, err
	}
	var state model.PuzzleState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Round token operations

func (s *Storage) RedeemToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	ok, err := s.client.SetNX(ctx, spentTokenKey(tokenID), "1", ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrTokenRedeemed
	}
	return nil
}
