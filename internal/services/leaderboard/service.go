package leaderboard

import (
	"context"
	"sort"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

// DefaultLimit is how many players the top board shows
const DefaultLimit = 10

// Entry is a single row on the player leaderboard
type Entry struct {
	Rank     int           `json:"rank"`
	Username string        `json:"username"`
	Score    int           `json:"score"`
	Faction  model.Faction `json:"faction"`
}

// FactionStanding aggregates a faction's members into one row
type FactionStanding struct {
	Faction      model.Faction `json:"faction"`
	TotalScore   int           `json:"totalScore"`
	MemberCount  int           `json:"memberCount"`
	AverageScore float64       `json:"averageScore"`
}

// Service computes read-only leaderboard views over the user set
type Service struct {
	storage storage.Storage
}

// New creates a new leaderboard service
func New(storage storage.Storage) *Service {
	return &Service{storage: storage}
}

// Top returns the highest-scoring players, best first. Ties break on
// username so the ordering is stable across refreshes.
func (s *Service) Top(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		if users[i].Score != users[j].Score {
			return users[i].Score > users[j].Score
		}
		return users[i].Username < users[j].Username
	})

	if len(users) > limit {
		users = users[:limit]
	}

	entries := make([]Entry, len(users))
	for i, u := range users {
		entries[i] = Entry{
			Rank:     i + 1,
			Username: u.Username,
			Score:    u.Score,
			Faction:  u.Faction,
		}
	}
	return entries, nil
}

// Factions returns one standing per faction, highest total first. Every
// known faction appears even with zero members.
func (s *Service) Factions(ctx context.Context) ([]FactionStanding, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	byFaction := make(map[model.Faction]*FactionStanding, len(model.Factions))
	standings := make([]FactionStanding, 0, len(model.Factions))
	for _, f := range model.Factions {
		standings = append(standings, FactionStanding{Faction: f})
	}
	for i := range standings {
		byFaction[standings[i].Faction] = &standings[i]
	}

	for _, u := range users {
		standing, ok := byFaction[u.Faction]
		if !ok {
			continue
		}
		standing.TotalScore += u.Score
		standing.MemberCount++
	}
	for i := range standings {
		if standings[i].MemberCount > 0 {
			standings[i].AverageScore = float64(standings[i].TotalScore) / float64(standings[i].MemberCount)
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].TotalScore != standings[j].TotalScore {
			return standings[i].TotalScore > standings[j].TotalScore
		}
		return standings[i].Faction < standings[j].Faction
	})
	return standings, nil
}
