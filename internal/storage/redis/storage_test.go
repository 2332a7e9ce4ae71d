package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.HuntSessionTTL = time.Hour
	cfg.OracleRoundTTL = time.Hour
	cfg.PuzzleStateTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) seedUser(id model.UserID, username string) *model.User {
	user := &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: "hash123",
		Faction:      model.FactionHeirs,
		Stage:        1,
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))
	return user
}

// User tests

func (s *StorageSuite) TestSaveAndGetUser() {
	user := s.seedUser("user-1", "alice")

	retrieved, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(user.Username, retrieved.Username)
	s.Equal(user.PasswordHash, retrieved.PasswordHash)
	s.Equal(user.Faction, retrieved.Faction)
	s.Equal(user.Stage, retrieved.Stage)
	s.True(user.CreatedAt.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestGetUserByUsername() {
	s.seedUser("user-1", "alice")

	retrieved, err := s.storage.GetUserByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal(model.UserID("user-1"), retrieved.ID)

	_, err = s.storage.GetUserByUsername(s.ctx, "bob")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestListUsers() {
	s.seedUser("user-1", "alice")
	s.seedUser("user-2", "bob")

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)
}

func (s *StorageSuite) TestAddScore() {
	s.seedUser("user-1", "alice")

	total, err := s.storage.AddScore(s.ctx, "user-1", 20, time.Now())
	s.Require().NoError(err)
	s.Equal(20, total)

	total, err = s.storage.AddScore(s.ctx, "user-1", -2, time.Now())
	s.Require().NoError(err)
	s.Equal(18, total)

	user, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(18, user.Score)
}

func (s *StorageSuite) TestAddScoreUnknownUser() {
	_, err := s.storage.AddScore(s.ctx, "nonexistent", 20, time.Now())
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestSetStage() {
	s.seedUser("user-1", "alice")

	s.Require().NoError(s.storage.SetStage(s.ctx, "user-1", 4))

	user, err := s.storage.GetUser(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(4, user.Stage)
}

// Hunt session tests

func (s *StorageSuite) TestSaveAndGetHuntSession() {
	session := &model.HuntSession{
		ID:        "hunt-1",
		UserID:    "user-1",
		DeviceID:  "dev-1",
		Phase:     model.HuntPhaseRoomActive,
		Found:     map[string]bool{"Cross": true},
		Animating: map[string]time.Time{},
	}

	s.Require().NoError(s.storage.SaveHuntSession(s.ctx, session))

	retrieved, err := s.storage.GetHuntSession(s.ctx, "hunt-1")
	s.Require().NoError(err)
	s.Equal(session.DeviceID, retrieved.DeviceID)
	s.True(retrieved.Found["Cross"])
}

func (s *StorageSuite) TestHuntSessionExpires() {
	s.Require().NoError(s.storage.SaveHuntSession(s.ctx, &model.HuntSession{ID: "hunt-1"}))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetHuntSession(s.ctx, "hunt-1")
	s.ErrorIs(err, model.ErrHuntNotFound)
}

func (s *StorageSuite) TestDeleteHuntSession() {
	s.Require().NoError(s.storage.SaveHuntSession(s.ctx, &model.HuntSession{ID: "hunt-1"}))

	s.Require().NoError(s.storage.DeleteHuntSession(s.ctx, "hunt-1"))

	_, err := s.storage.GetHuntSession(s.ctx, "hunt-1")
	s.ErrorIs(err, model.ErrHuntNotFound)
}

// Hunt progress tests

func (s *StorageSuite) TestSaveAndGetHuntProgress() {
	progress := &model.HuntProgress{
		DeviceID:      "dev-1",
		RoomsUnlocked: 3,
		UpdatedAt:     time.Now(),
	}

	s.Require().NoError(s.storage.SaveHuntProgress(s.ctx, progress))

	retrieved, err := s.storage.GetHuntProgress(s.ctx, "dev-1")
	s.Require().NoError(err)
	s.Equal(3, retrieved.RoomsUnlocked)
}

func (s *StorageSuite) TestGetHuntProgressNotFound() {
	_, err := s.storage.GetHuntProgress(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrProgressNotFound)
}

// Oracle round tests

func (s *StorageSuite) TestSaveAndGetOracleRound() {
	round := &model.OracleRound{
		UserID:      "user-1",
		Round:       2,
		TotalRounds: 4,
		PastAnswers: []model.OracleQA{{Question: "Is it red?", Answer: "No."}},
	}

	s.Require().NoError(s.storage.SaveOracleRound(s.ctx, round))

	retrieved, err := s.storage.GetOracleRound(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(2, retrieved.Round)
	s.Len(retrieved.PastAnswers, 1)
}

func (s *StorageSuite) TestDeleteOracleRound() {
	s.Require().NoError(s.storage.SaveOracleRound(s.ctx, &model.OracleRound{UserID: "user-1", Round: 1}))

	s.Require().NoError(s.storage.DeleteOracleRound(s.ctx, "user-1"))

	_, err := s.storage.GetOracleRound(s.ctx, "user-1")
	s.ErrorIs(err, model.ErrOracleRoundNotFound)
}

// Puzzle state tests

func (s *StorageSuite) TestSaveAndGetPuzzleState() {
	state := &model.PuzzleState{
		UserID:    "user-1",
		PuzzleID:  model.PuzzleResearch,
		StartedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	s.Require().NoError(s.storage.SavePuzzleState(s.ctx, state))

	retrieved, err := s.storage.GetPuzzleState(s.ctx, "user-1", model.PuzzleResearch)
	s.Require().NoError(err)
	s.True(state.StartedAt.Equal(retrieved.StartedAt))

	_, err = s.storage.GetPuzzleState(s.ctx, "user-1", model.PuzzleRiddle)
	s.ErrorIs(err, model.ErrPuzzleStateNotFound)
}

// Round token tests

func (s *StorageSuite) TestRedeemTokenOnce() {
	s.Require().NoError(s.storage.RedeemToken(s.ctx, "token-1", time.Hour))

	err := s.storage.RedeemToken(s.ctx, "token-1", time.Hour)
	s.ErrorIs(err, model.ErrTokenRedeemed)
}

func (s *StorageSuite) TestRedeemTokenMarkerExpires() {
	s.Require().NoError(s.storage.RedeemToken(s.ctx, "token-1", time.Minute))

	// Once the marker expires the signed token is expired too, so reuse
	// is blocked by signature validation rather than the marker
	s.mini.FastForward(2 * time.Minute)

	s.NoError(s.storage.RedeemToken(s.ctx, "token-1", time.Minute))
}
