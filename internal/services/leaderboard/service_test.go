package leaderboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) seedUser(username string, score int, faction model.Faction) {
	s.Require().NoError(s.storage.SaveUser(s.ctx, &model.User{
		ID:       model.UserID("user-" + username),
		Username: username,
		Score:    score,
		Faction:  faction,
		Stage:    1,
	}))
}

// Top tests

func (s *ServiceSuite) TestTopOrdersByScoreDescending() {
	s.seedUser("alice", 130, model.FactionHeirs)
	s.seedUser("bob", 150, model.FactionResearchers)
	s.seedUser("carol", 90, model.FactionTreasurers)

	entries, err := s.service.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 3)

	s.Equal("bob", entries[0].Username)
	s.Equal(1, entries[0].Rank)
	s.Equal("alice", entries[1].Username)
	s.Equal("carol", entries[2].Username)
	s.Equal(3, entries[2].Rank)
}

func (s *ServiceSuite) TestTopTruncatesToLimit() {
	for i := 0; i < 15; i++ {
		s.seedUser(fmt.Sprintf("player%02d", i), i*10, model.FactionHeirs)
	}

	entries, err := s.service.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(entries, 10)
	s.Equal(140, entries[0].Score)
}

func (s *ServiceSuite) TestTopBreaksTiesByUsername() {
	s.seedUser("zara", 100, model.FactionHeirs)
	s.seedUser("adam", 100, model.FactionHeirs)

	entries, err := s.service.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Equal("adam", entries[0].Username)
	s.Equal("zara", entries[1].Username)
}

func (s *ServiceSuite) TestTopDefaultsLimit() {
	for i := 0; i < 12; i++ {
		s.seedUser(fmt.Sprintf("player%02d", i), i, model.FactionHeirs)
	}

	entries, err := s.service.Top(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(entries, DefaultLimit)
}

func (s *ServiceSuite) TestTopEmptyStorage() {
	entries, err := s.service.Top(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(entries)
}

// Factions tests

func (s *ServiceSuite) TestFactionsAggregates() {
	s.seedUser("alice", 100, model.FactionHeirs)
	s.seedUser("bob", 50, model.FactionHeirs)
	s.seedUser("carol", 120, model.FactionResearchers)

	standings, err := s.service.Factions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 4)

	s.Equal(model.FactionHeirs, standings[0].Faction)
	s.Equal(150, standings[0].TotalScore)
	s.Equal(2, standings[0].MemberCount)
	s.Equal(75.0, standings[0].AverageScore)

	s.Equal(model.FactionResearchers, standings[1].Faction)
	s.Equal(120, standings[1].TotalScore)
	s.Equal(1, standings[1].MemberCount)
}

func (s *ServiceSuite) TestFactionsIncludeEmptyFactions() {
	s.seedUser("alice", 100, model.FactionHeirs)

	standings, err := s.service.Factions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(standings, 4)

	for _, standing := range standings[1:] {
		s.Equal(0, standing.MemberCount)
		s.Equal(0, standing.TotalScore)
		s.Equal(0.0, standing.AverageScore)
	}
}
