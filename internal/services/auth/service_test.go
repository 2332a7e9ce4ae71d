package auth

import (
	"context"
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

func (s *ServiceSuite) seedUser(username, password string) *model.User {
	hash, err := HashPassword(password)
	s.Require().NoError(err)
	user := &model.User{
		ID:           model.UserID("user-" + username),
		Username:     username,
		PasswordHash: hash,
		Score:        0,
		Faction:      model.FactionHeirs,
		Stage:        1,
		CreatedAt:    s.clock.Now(),
	}
	s.Require().NoError(s.storage.SaveUser(s.ctx, user))
	return user
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	s.seedUser("alice", "password123")

	session, err := s.service.Login(s.ctx, "alice", "password123")
	s.Require().NoError(err)

	s.NotEmpty(session.Token)
	s.Equal("alice", session.User.Username)
	s.Equal(s.clock.Now().Add(7*24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	s.seedUser("alice", "password123")

	_, err := s.service.Login(s.ctx, "alice", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownUser() {
	_, err := s.service.Login(s.ctx, "nobody", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

// ValidateToken tests

func (s *ServiceSuite) TestValidateTokenSucceeds() {
	user := s.seedUser("alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")

	claims, err := s.service.ValidateToken(session.Token)
	s.Require().NoError(err)
	s.Equal(string(user.ID), claims.UserID)
	s.Equal("alice", claims.Username)
}

func (s *ServiceSuite) TestValidateTokenFailsWithGarbage() {
	_, err := s.service.ValidateToken("not-a-token")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateTokenFailsWithEmptyToken() {
	_, err := s.service.ValidateToken("")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateTokenFailsWhenExpired() {
	s.seedUser("alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")

	s.clock.Advance(7*24*time.Hour + time.Minute)

	_, err := s.service.ValidateToken(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateTokenFailsWithWrongSecret() {
	s.seedUser("alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")

	cfg := DefaultConfig()
	cfg.Secret = "different-secret"
	other := New(s.storage, s.clock, cfg)

	_, err := other.ValidateToken(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidTokenSurvivesRestart() {
	// Tokens are stateless: a new service instance with the same secret
	// accepts tokens minted before it existed.
	s.seedUser("alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")

	cfg := DefaultConfig()
	cfg.Secret = "test-secret"
	restarted := New(memory.New(), s.clock, cfg)

	claims, err := restarted.ValidateToken(session.Token)
	s.Require().NoError(err)
	s.Equal("alice", claims.Username)
}

// GetUser tests

func (s *ServiceSuite) TestGetUserResolvesClaims() {
	user := s.seedUser("alice", "password123")
	session, _ := s.service.Login(s.ctx, "alice", "password123")
	claims, _ := s.service.ValidateToken(session.Token)

	got, err := s.service.GetUser(s.ctx, claims)
	s.Require().NoError(err)
	s.Equal(user.ID, got.ID)
	s.Equal(model.FactionHeirs, got.Faction)
}
