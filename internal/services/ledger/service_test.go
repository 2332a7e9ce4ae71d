package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/mocks"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	cfg := DefaultConfig()
	cfg.Secret = "test-secret"
	s.service = New(s.storage, s.clock, cfg)
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedUser(id model.UserID, score, stage int) {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{
		ID:       id,
		Username: string(id),
		Score:    score,
		Faction:  model.FactionResearchers,
		Stage:    stage,
	}))
}

func intPtr(v int) *int { return &v }

// IncrementScore tests

func (s *ServiceSuite) TestIncrementScoreAddsDelta() {
	s.seedUser("u1", 50, 2)

	newScore, err := s.service.IncrementScore(s.ctx, "u1", 20)
	s.Require().NoError(err)
	s.Equal(70, newScore)
}

func (s *ServiceSuite) TestIncrementScoreAcceptsNegativeDelta() {
	s.seedUser("u1", 50, 2)

	newScore, err := s.service.IncrementScore(s.ctx, "u1", -2)
	s.Require().NoError(err)
	s.Equal(48, newScore)
}

func (s *ServiceSuite) TestIncrementScoreFailsForUnknownUser() {
	_, err := s.service.IncrementScore(s.ctx, "nobody", 20)
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *ServiceSuite) TestConcurrentIncrementsSum() {
	s.seedUser("u1", 0, 1)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.service.IncrementScore(s.ctx, "u1", 5)
			s.NoError(err)
		}()
	}
	wg.Wait()

	progress, err := s.service.GetProgress(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(250, progress.Score)
}

// TransitionStage tests

func (s *ServiceSuite) TestTransitionStageAdvances() {
	s.seedUser("u1", 0, 1)

	s.Require().NoError(s.service.TransitionStage(s.ctx, "u1", 2))

	progress, _ := s.service.GetProgress(s.ctx, "u1")
	s.Equal(2, progress.Stage)
}

func (s *ServiceSuite) TestTransitionStageSameStageIsNoop() {
	s.seedUser("u1", 0, 2)

	s.Require().NoError(s.service.TransitionStage(s.ctx, "u1", 2))

	progress, _ := s.service.GetProgress(s.ctx, "u1")
	s.Equal(2, progress.Stage)
}

func (s *ServiceSuite) TestTransitionStageAllowsRegressionByDefault() {
	s.seedUser("u1", 0, 3)

	s.Require().NoError(s.service.TransitionStage(s.ctx, "u1", 1))

	progress, _ := s.service.GetProgress(s.ctx, "u1")
	s.Equal(1, progress.Stage)
}

func (s *ServiceSuite) TestTransitionStageRejectsRegressionWhenDisallowed() {
	s.seedUser("u1", 0, 3)

	cfg := DefaultConfig()
	cfg.Secret = "test-secret"
	cfg.Stage.AllowRegression = false
	strict := New(s.storage, s.clock, cfg)

	err := strict.TransitionStage(s.ctx, "u1", 1)
	s.ErrorIs(err, model.ErrStageRegression)

	progress, _ := s.service.GetProgress(s.ctx, "u1")
	s.Equal(3, progress.Stage)
}

// Apply tests

func (s *ServiceSuite) TestApplyWithStage() {
	s.seedUser("u1", 20, 2)

	newScore, stage, err := s.service.Apply(s.ctx, "u1", 30, intPtr(4))
	s.Require().NoError(err)
	s.Equal(50, newScore)
	s.Equal(4, stage)
}

func (s *ServiceSuite) TestApplyWithoutStageKeepsCurrent() {
	s.seedUser("u1", 20, 2)

	newScore, stage, err := s.service.Apply(s.ctx, "u1", 10, nil)
	s.Require().NoError(err)
	s.Equal(30, newScore)
	s.Equal(2, stage)
}

// Round token tests

func (s *ServiceSuite) TestRoundTokenRedeemsOnce() {
	s.seedUser("u1", 0, 4)

	token, err := s.service.IssueRoundToken("u1", "shadow-hunt")
	s.Require().NoError(err)

	claims, err := s.service.RedeemRoundToken(s.ctx, token)
	s.Require().NoError(err)
	s.Equal("u1", claims.UserID)
	s.Equal("shadow-hunt", claims.GameType)

	_, err = s.service.RedeemRoundToken(s.ctx, token)
	s.ErrorIs(err, model.ErrTokenRedeemed)
}

func (s *ServiceSuite) TestRoundTokenExpires() {
	token, err := s.service.IssueRoundToken("u1", "shadow-hunt")
	s.Require().NoError(err)

	s.clock.Advance(16 * time.Minute)

	_, err = s.service.RedeemRoundToken(s.ctx, token)
	s.ErrorIs(err, ErrInvalidRoundToken)
}

func (s *ServiceSuite) TestRoundTokenRejectsGarbage() {
	_, err := s.service.RedeemRoundToken(s.ctx, "not-a-token")
	s.ErrorIs(err, ErrInvalidRoundToken)
}

func (s *ServiceSuite) TestRoundTokenRejectsForeignSignature() {
	other := New(s.storage, s.clock, Config{Secret: "other-secret"})
	token, err := other.IssueRoundToken("u1", "shadow-hunt")
	s.Require().NoError(err)

	_, err = s.service.RedeemRoundToken(s.ctx, token)
	s.ErrorIs(err, ErrInvalidRoundToken)
}

func (s *ServiceSuite) TestSubmitExternalScoreCredits() {
	s.seedUser("u1", 130, 4)

	token, _ := s.service.IssueRoundToken("u1", "shadow-hunt")

	claims, newScore, err := s.service.SubmitExternalScore(s.ctx, token, "shadow-hunt", 42)
	s.Require().NoError(err)
	s.Equal("u1", claims.UserID)
	s.Equal(172, newScore)

	_, _, err = s.service.SubmitExternalScore(s.ctx, token, "shadow-hunt", 42)
	s.ErrorIs(err, model.ErrTokenRedeemed)
}

func (s *ServiceSuite) TestSubmitExternalScoreChecksGameType() {
	s.seedUser("u1", 130, 4)

	token, _ := s.service.IssueRoundToken("u1", "shadow-hunt")

	// A mismatch spends nothing: no credit, token still live
	_, _, err := s.service.SubmitExternalScore(s.ctx, token, "twenty-questions", 42)
	s.ErrorIs(err, ErrGameTypeMismatch)

	progress, err := s.service.GetProgress(s.ctx, "u1")
	s.Require().NoError(err)
	s.Equal(130, progress.Score)

	_, newScore, err := s.service.SubmitExternalScore(s.ctx, token, "shadow-hunt", 42)
	s.Require().NoError(err)
	s.Equal(172, newScore)
}

func (s *ServiceSuite) TestSubmitExternalScoreSkipsCheckWhenUntyped() {
	s.seedUser("u1", 0, 4)

	token, _ := s.service.IssueRoundToken("u1", "shadow-hunt")

	_, newScore, err := s.service.SubmitExternalScore(s.ctx, token, "", 7)
	s.Require().NoError(err)
	s.Equal(7, newScore)
}
