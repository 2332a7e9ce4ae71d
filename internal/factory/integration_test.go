package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
	"github.com/shadowhunt/shadowhunt-go/internal/services/oracle"
)

// stubOracleClient answers every question, winning the round whenever
// winAlways is set
type stubOracleClient struct {
	winAlways bool
}

func (c *stubOracleClient) Ask(_ context.Context, req *oracle.AskRequest) (*oracle.AskResponse, error) {
	return &oracle.AskResponse{
		Answer:   "Yes.",
		GameOver: c.winAlways,
	}, nil
}

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp(&stubOracleClient{winAlways: true})
	s.ctx = context.Background()
}

func (s *IntegrationSuite) seedUser(username string, faction model.Faction) *model.User {
	hash, err := auth.HashPassword("hunter2")
	s.Require().NoError(err)

	user := &model.User{
		ID:           model.UserID("u-" + username),
		Username:     username,
		PasswordHash: hash,
		Faction:      faction,
		Stage:        1,
		CreatedAt:    s.app.MockClock.Now(),
	}
	s.Require().NoError(s.app.Storage.SaveUser(s.ctx, user))
	return user
}

// Test: a user plays the whole on-site sequence and ends at 130 points
func (s *IntegrationSuite) TestCompleteEventFlow() {
	user := s.seedUser("ada", model.FactionHeirs)

	// Log in
	session, err := s.app.AuthService.Login(s.ctx, "ada", "hunter2")
	s.Require().NoError(err)
	s.NotEmpty(session.Token)

	// Stage 1: the riddle
	result, err := s.app.PuzzleService.Submit(s.ctx, user.ID, model.PuzzleRiddle, "shadow")
	s.Require().NoError(err)
	s.Equal(20, result.NewScore)
	s.Equal(2, result.Stage)

	// Stage 2: four oracle rounds, each worth 20 and a stage step
	for i := 0; i < 4; i++ {
		outcome, err := s.app.OracleService.Ask(s.ctx, user.ID, "Is it a key?")
		s.Require().NoError(err)
		s.True(outcome.RoundWon)
	}

	progress, err := s.app.LedgerService.GetProgress(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(100, progress.Score)
	s.Equal(6, progress.Stage)

	// The keypad checkpoint awards nothing and drops the stage back down
	result, err = s.app.PuzzleService.Submit(s.ctx, user.ID, model.PuzzleKeypad, "2234")
	s.Require().NoError(err)
	s.Equal(100, result.NewScore)
	s.Equal(3, result.Stage)

	// Faction branch puzzle
	branchID, err := s.app.PuzzleService.RouteForFaction(user.Faction)
	s.Require().NoError(err)

	result, err = s.app.PuzzleService.Submit(s.ctx, user.ID, branchID, "27")
	s.Require().NoError(err)
	s.Equal(130, result.NewScore)
	s.Equal(4, result.Stage)

	// The leaderboard reflects the final tally
	top, err := s.app.LeaderboardService.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(top, 1)
	s.Equal("ada", top[0].Username)
	s.Equal(130, top[0].Score)
}

// Test: a timed branch submission lands in the right tier
func (s *IntegrationSuite) TestTimedBranchTier() {
	user := s.seedUser("bert", model.FactionResearchers)

	branchID, err := s.app.PuzzleService.RouteForFaction(user.Faction)
	s.Require().NoError(err)

	s.Require().NoError(s.app.PuzzleService.Start(s.ctx, user.ID, branchID))
	s.app.MockClock.Advance(7 * time.Minute)

	result, err := s.app.PuzzleService.Submit(s.ctx, user.ID, branchID, "27")
	s.Require().NoError(err)
	s.Equal(model.TierMid, result.Tier)
	s.Equal(20, result.NewScore)
}

// Test: the hunt summary token feeds back into the ledger exactly once
func (s *IntegrationSuite) TestHuntTokenRoundTrip() {
	user := s.seedUser("cleo", model.FactionTreasurers)

	token, err := s.app.LedgerService.IssueRoundToken(user.ID, "shadow-hunt")
	s.Require().NoError(err)

	claims, newScore, err := s.app.LedgerService.SubmitExternalScore(s.ctx, token, "shadow-hunt", 42)
	s.Require().NoError(err)
	s.Equal("shadow-hunt", claims.GameType)
	s.Equal(42, newScore)

	_, _, err = s.app.LedgerService.SubmitExternalScore(s.ctx, token, "shadow-hunt", 42)
	s.ErrorIs(err, model.ErrTokenRedeemed)
}
