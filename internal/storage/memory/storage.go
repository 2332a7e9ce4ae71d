package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	users         map[model.UserID]*model.User
	usernameIndex map[string]model.UserID
	userOrder     []model.UserID

	huntSessions map[model.HuntID]*model.HuntSession
	huntProgress map[string]*model.HuntProgress
	oracleRounds map[model.UserID]*model.OracleRound
	puzzleStates map[puzzleKey]*model.PuzzleState
	spentTokens  map[string]bool
}

type puzzleKey struct {
	userID   model.UserID
	puzzleID model.PuzzleID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:         make(map[model.UserID]*model.User),
		usernameIndex: make(map[string]model.UserID),
		huntSessions:  make(map[model.HuntID]*model.HuntSession),
		huntProgress:  make(map[string]*model.HuntProgress),
		oracleRounds:  make(map[model.UserID]*model.OracleRound),
		puzzleStates:  make(map[puzzleKey]*model.PuzzleState),
		spentTokens:   make(map[string]bool),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// User operations

func (s *Storage) SaveUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.ID]; !exists {
		s.userOrder = append(s.userOrder, user.ID)
	}
	s.users[user.ID] = user
	s.usernameIndex[user.Username] = user.ID
	return nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]*model.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		if user, ok := s.users[id]; ok {
			copied := *user
			users = append(users, &copied)
		}
	}
	return users, nil
}

func (s *Storage) AddScore(ctx context.Context, id model.UserID, delta int, at time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return 0, model.ErrUserNotFound
	}
	user.Score += delta
	user.ScoreUpdatedAt = at
	return user.Score, nil
}

func (s *Storage) SetStage(ctx context.Context, id model.UserID, stage int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	user.Stage = stage
	return nil
}

// Hunt session operations

func (s *Storage) SaveHuntSession(ctx context.Context, session *model.HuntSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.huntSessions[session.ID] = copyHuntSession(session)
	return nil
}

func (s *Storage) GetHuntSession(ctx context.Context, id model.HuntID) (*model.HuntSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.huntSessions[id]
	if !ok {
		return nil, model.ErrHuntNotFound
	}
	return copyHuntSession(session), nil
}

// copyHuntSession deep-copies the session's mutable internals so callers
// never share maps or slices with the stored copy
func copyHuntSession(session *model.HuntSession) *model.HuntSession {
	copied := *session
	copied.RoomScores = append([]int(nil), session.RoomScores...)
	copied.Found = make(map[string]bool, len(session.Found))
	for name, found := range session.Found {
		copied.Found[name] = found
	}
	copied.Animating = make(map[string]time.Time, len(session.Animating))
	for name, end := range session.Animating {
		copied.Animating[name] = end
	}
	return &copied
}

func (s *Storage) DeleteHuntSession(ctx context.Context, id model.HuntID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.huntSessions, id)
	return nil
}

// Hunt progress operations

func (s *Storage) SaveHuntProgress(ctx context.Context, progress *model.HuntProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.huntProgress[progress.DeviceID] = progress
	return nil
}

func (s *Storage) GetHuntProgress(ctx context.Context, deviceID string) (*model.HuntProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	progress, ok := s.huntProgress[deviceID]
	if !ok {
		return nil, model.ErrProgressNotFound
	}
	copied := *progress
	return &copied, nil
}

// Oracle round operations

func (s *Storage) SaveOracleRound(ctx context.Context, round *model.OracleRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.oracleRounds[round.UserID] = copyOracleRound(round)
	return nil
}

func (s *Storage) GetOracleRound(ctx context.Context, userID model.UserID) (*model.OracleRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	round, ok := s.oracleRounds[userID]
	if !ok {
		return nil, model.ErrOracleRoundNotFound
	}
	return copyOracleRound(round), nil
}

func copyOracleRound(round *model.OracleRound) *model.OracleRound {
	copied := *round
	copied.PastAnswers = append([]model.OracleQA(nil), round.PastAnswers...)
	return &copied
}

func (s *Storage) DeleteOracleRound(ctx context.Context, userID model.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.oracleRounds, userID)
	return nil
}

// Puzzle state operations

func (s *Storage) SavePuzzleState(ctx context.Context, state *model.PuzzleState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puzzleStates[puzzleKey{state.UserID, state.PuzzleID}] = state
	return nil
}

func (s *Storage) GetPuzzleState(ctx context.Context, userID model.UserID, puzzleID model.PuzzleID) (*model.PuzzleState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.puzzleStates[puzzleKey{userID, puzzleID}]
	if !ok {
		return nil, model.ErrPuzzleStateNotFound
	}
	copied := *state
	return &copied, nil
}

// Round token operations

func (s *Storage) RedeemToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.spentTokens[tokenID] {
		return model.ErrTokenRedeemed
	}
	s.spentTokens[tokenID] = true
	return nil
}
