package hunt

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/clock"
	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/random"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/ledger"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

const (
	huntIDLength   = 16
	huntIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

	fakeMessage = "This object is not what you seek..."
)

// GameType tags round tokens minted for finished hunts
const GameType = "shadow-hunt"

// Config holds tunables for the hunt engine. Every countdown is a deadline
// checked lazily on the next operation, not a running timer.
type Config struct {
	RoomTimeLimit      time.Duration
	FoundAnimation     time.Duration
	FakeMessageFor     time.Duration
	JumpscareAfter     time.Duration
	TransitionFallback time.Duration

	FoundDelta   int
	MissDelta    int
	DragPixels   float64
	SummaryRoute string
}

// DefaultConfig returns default hunt engine configuration
func DefaultConfig() Config {
	return Config{
		RoomTimeLimit:      5 * time.Minute,
		FoundAnimation:     2 * time.Second,
		FakeMessageFor:     1500 * time.Millisecond,
		JumpscareAfter:     60 * time.Second,
		TransitionFallback: 10 * time.Second,
		FoundDelta:         5,
		MissDelta:          -2,
		DragPixels:         5,
		SummaryRoute:       "/game/escape_room",
	}
}

// ClickInput is one pointer press/release pair in viewport pixels
type ClickInput struct {
	DownX, DownY float64
	UpX, UpY     float64
	ViewportW    float64
	ViewportH    float64
}

// ClickResult reports what a click did
type ClickResult struct {
	Verdict    model.ClickVerdict
	ObjectName string
	Delta      int
	Score      int
	Clue       string
	Phase      model.HuntPhase
	RoomIndex  int
}

// StateView is the renderable snapshot of a session
type StateView struct {
	SessionID     model.HuntID
	Phase         model.HuntPhase
	RoomIndex     int
	RoomName      string
	Background    string
	Clue          string
	TargetIndex   int
	TotalTargets  int
	Score         int
	RoomScores    []int
	Camera        model.Camera
	TimeRemaining time.Duration
	RoomsUnlocked int
	Jumpscare     bool
	Items         []model.SceneItem
}

// Service is the server-authoritative hidden-object hunt engine. Sessions
// hold all mutable state; rooms and items are static content shared by
// every session through the arena.
type Service struct {
	storage storage.Storage
	ledger  *ledger.Service
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger

	cfg   Config
	rooms []model.Room
	arena *Arena

	// Per-session locks serialize click/pan/timer evaluation so two
	// concurrent requests never interleave a read-modify-write.
	mu    sync.Mutex
	locks map[model.HuntID]*sync.Mutex
}

// New creates a new hunt service over the built-in room content
func New(
	storage storage.Storage,
	ledgerService *ledger.Service,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Service {
	def := DefaultConfig()
	if cfg.RoomTimeLimit == 0 {
		cfg = def
	}
	svc := &Service{
		storage: storage,
		ledger:  ledgerService,
		clock:   clock,
		random:  random,
		logger:  logger,
		cfg:     cfg,
		rooms:   Rooms(),
		arena:   NewArena(Items()),
		locks:   make(map[model.HuntID]*sync.Mutex),
	}

	// A room target missing from the scene makes that room impossible to
	// finish by discovery; surface every content mismatch at startup
	for _, gap := range missingSceneItems(svc.rooms, svc.arena) {
		logger.Warn("room references an item missing from the scene",
			slog.String("room", gap.room),
			slog.String("item", gap.item),
		)
	}

	return svc
}

type contentGap struct {
	room string
	item string
}

// missingSceneItems cross-checks room targets and decoys against the arena
func missingSceneItems(rooms []model.Room, arena *Arena) []contentGap {
	var gaps []contentGap
	for _, room := range rooms {
		for _, name := range room.Objects {
			if !arena.Has(name) {
				gaps = append(gaps, contentGap{room: room.Name, item: name})
			}
		}
		for _, name := range room.FakeObjects {
			if !arena.Has(name) {
				gaps = append(gaps, contentGap{room: room.Name, item: name})
			}
		}
	}
	return gaps
}

// sessionLock returns the mutex serializing operations on one session
func (s *Service) sessionLock(id model.HuntID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = &sync.Mutex{}
		s.locks[id] = l
	}
	return l
}

// getOwnedSession loads a session, hiding other users' sessions behind
// not-found so session IDs cannot be enumerated
func (s *Service) getOwnedSession(ctx context.Context, userID model.UserID, id model.HuntID) (*model.HuntSession, error) {
	session, err := s.storage.GetHuntSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.UserID != userID {
		return nil, model.ErrHuntNotFound
	}
	return session, nil
}

// Start opens a new hunt session. requestedRoom lets a device resume at
// any room it has already unlocked; asking for a locked room is an error
// rather than a silent fallback.
func (s *Service) Start(ctx context.Context, userID model.UserID, deviceID string, requestedRoom int) (*StateView, error) {
	now := s.clock.Now()

	progress, err := s.deviceProgress(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	startRoom := 0
	if requestedRoom > 0 {
		if requestedRoom >= progress.RoomsUnlocked || requestedRoom >= len(s.rooms) {
			return nil, model.ErrRoomLocked
		}
		startRoom = requestedRoom
	}

	session := &model.HuntSession{
		ID:          model.HuntID(s.random.String(huntIDLength, huntIDAlphabet)),
		UserID:      userID,
		DeviceID:    deviceID,
		Phase:       model.HuntPhaseRoomActive,
		RoomScores:  make([]int, len(s.rooms)),
		StartedAt:   now,
		JumpscareAt: now.Add(s.cfg.JumpscareAfter),
	}
	s.loadRoom(session, startRoom, now)

	if err := s.storage.SaveHuntSession(ctx, session); err != nil {
		return nil, err
	}

	s.logger.Info("hunt started",
		slog.String("session_id", string(session.ID)),
		slog.String("user_id", string(userID)),
		slog.Int("room", startRoom),
	)
	return s.view(session, progress, now), nil
}

// State returns the current session snapshot, advancing any expired
// deadlines first. The jumpscare flag is reported exactly once.
func (s *Service) State(ctx context.Context, userID model.UserID, id model.HuntID) (*StateView, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getOwnedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()

	changed, err := s.advance(ctx, session, now)
	if err != nil {
		return nil, err
	}

	jumpscare := false
	if session.Phase != model.HuntPhaseEnded && !session.JumpscareFired && !now.Before(session.JumpscareAt) {
		session.JumpscareFired = true
		jumpscare = true
		changed = true
	}

	if changed {
		session.UpdatedAt = now
		if err := s.storage.SaveHuntSession(ctx, session); err != nil {
			return nil, err
		}
	}

	progress, err := s.deviceProgress(ctx, session.DeviceID)
	if err != nil {
		return nil, err
	}
	view := s.view(session, progress, now)
	view.Jumpscare = jumpscare
	return view, nil
}

// Pan orients the session camera. Latitude is clamped so the view never
// flips over the poles.
func (s *Service) Pan(ctx context.Context, userID model.UserID, id model.HuntID, lon, lat float64) error {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getOwnedSession(ctx, userID, id)
	if err != nil {
		return err
	}
	if session.Phase == model.HuntPhaseEnded {
		return model.ErrHuntEnded
	}
	session.Camera = model.Camera{Lon: lon, Lat: clampLat(lat)}
	session.UpdatedAt = s.clock.Now()
	return s.storage.SaveHuntSession(ctx, session)
}

// Click resolves one pointer release. A pointer that travelled past the
// drag threshold was a camera pan and is never scored.
func (s *Service) Click(ctx context.Context, userID model.UserID, id model.HuntID, input ClickInput) (*ClickResult, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getOwnedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if session.Phase == model.HuntPhaseEnded {
		return nil, model.ErrHuntEnded
	}

	now := s.clock.Now()
	changed, err := s.advance(ctx, session, now)
	if err != nil {
		return nil, err
	}

	result := &ClickResult{
		Verdict:   model.ClickVerdictIgnored,
		Phase:     session.Phase,
		Score:     session.Score,
		RoomIndex: session.RoomIndex,
		Clue:      s.currentClue(session, now),
	}

	defer func() {
		result.Phase = session.Phase
		result.Score = session.Score
		result.RoomIndex = session.RoomIndex
	}()

	save := func() (*ClickResult, error) {
		if changed {
			session.UpdatedAt = now
			if err := s.storage.SaveHuntSession(ctx, session); err != nil {
				return nil, err
			}
		}
		return result, nil
	}

	if session.Phase != model.HuntPhaseRoomActive {
		return save()
	}

	if math.Abs(input.UpX-input.DownX) > s.cfg.DragPixels || math.Abs(input.UpY-input.DownY) > s.cfg.DragPixels {
		result.Verdict = model.ClickVerdictDrag
		return save()
	}

	if input.ViewportW <= 0 || input.ViewportH <= 0 {
		result.Verdict = model.ClickVerdictMiss
		changed = s.penalize(session, result) || changed
		return save()
	}

	ndcX := (input.UpX/input.ViewportW)*2 - 1
	ndcY := -(input.UpY/input.ViewportH)*2 + 1
	aspect := input.ViewportW / input.ViewportH

	// Found objects leave the scene once their animation ends; while it
	// plays they are still clickable and score as a miss.
	room := &s.rooms[session.RoomIndex]
	visible := s.arena.computeVisibility(room)
	candidates := s.arena.visibleObjects(visible, func(name string) bool {
		return session.Found[name] && session.Animating[name].IsZero()
	})

	items := make([]*model.SceneItem, len(candidates))
	for i, obj := range candidates {
		items[i] = &obj.Item
	}

	idx, hit := hitTest(items, session.Camera, ndcX, ndcY, aspect)
	if !hit {
		result.Verdict = model.ClickVerdictMiss
		changed = s.penalize(session, result) || changed
		return save()
	}

	name := candidates[idx].Item.Name
	result.ObjectName = name

	// Objects mid found-animation still occupy the scene but score as a
	// miss, which also swallows double-clicks on a fresh find.
	if end, animating := session.Animating[name]; animating && now.Before(end) {
		result.Verdict = model.ClickVerdictMiss
		changed = s.penalize(session, result) || changed
		return save()
	}

	expected := room.Objects[session.TargetIndex]
	switch {
	case name == expected:
		result.Verdict = model.ClickVerdictFound
		result.Delta = s.cfg.FoundDelta
		session.Score += s.cfg.FoundDelta
		session.RoomScores[session.RoomIndex] += s.cfg.FoundDelta
		session.Found[name] = true
		// The cursor and clue hold while the found animation plays;
		// advance resolves both at its deadline, so the next target
		// does not become clickable early
		session.Animating[name] = now.Add(s.cfg.FoundAnimation)
		changed = true
		result.Clue = s.currentClue(session, now)

	case room.HasFake(name):
		result.Verdict = model.ClickVerdictFake
		changed = s.penalize(session, result) || changed
		session.FakeMessageUntil = now.Add(s.cfg.FakeMessageFor)
		result.Clue = fakeMessage

	default:
		result.Verdict = model.ClickVerdictMiss
		changed = s.penalize(session, result) || changed
	}

	return save()
}

// FinishTransition moves a session through its door into the next room.
// Clients call it when the door sequence finishes playing; sessions that
// sit in the transition past the fallback deadline advance on their own.
func (s *Service) FinishTransition(ctx context.Context, userID model.UserID, id model.HuntID) (*StateView, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getOwnedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if _, err := s.advance(ctx, session, now); err != nil {
		return nil, err
	}
	if session.Phase == model.HuntPhaseEnded {
		return nil, model.ErrHuntEnded
	}
	if session.Phase != model.HuntPhaseDoor {
		return nil, model.ErrNotTransitioning
	}

	if err := s.enterNextRoom(ctx, session, now); err != nil {
		return nil, err
	}
	session.UpdatedAt = now
	if err := s.storage.SaveHuntSession(ctx, session); err != nil {
		return nil, err
	}

	progress, err := s.deviceProgress(ctx, session.DeviceID)
	if err != nil {
		return nil, err
	}
	return s.view(session, progress, now), nil
}

// Restart resets a session to room one with a clean score. The device's
// unlock high-water-mark is left alone; restarting play does not re-lock
// rooms.
func (s *Service) Restart(ctx context.Context, userID model.UserID, id model.HuntID) (*StateView, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getOwnedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	session.Phase = model.HuntPhaseRoomActive
	session.Score = 0
	session.RoomScores = make([]int, len(s.rooms))
	session.TimedOut = false
	session.JumpscareFired = false
	session.JumpscareAt = now.Add(s.cfg.JumpscareAfter)
	s.loadRoom(session, 0, now)

	session.UpdatedAt = now
	if err := s.storage.SaveHuntSession(ctx, session); err != nil {
		return nil, err
	}

	progress, err := s.deviceProgress(ctx, session.DeviceID)
	if err != nil {
		return nil, err
	}
	return s.view(session, progress, now), nil
}

// Summary freezes a finished session into its result, including a fresh
// one-shot token for the external score submission that follows.
func (s *Service) Summary(ctx context.Context, userID model.UserID, id model.HuntID) (*model.HuntSummary, error) {
	lock := s.sessionLock(id)
	lock.Lock()
	defer lock.Unlock()

	session, err := s.getOwnedSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	changed, err := s.advance(ctx, session, now)
	if err != nil {
		return nil, err
	}
	if changed {
		session.UpdatedAt = now
		if err := s.storage.SaveHuntSession(ctx, session); err != nil {
			return nil, err
		}
	}
	if session.Phase != model.HuntPhaseEnded {
		return nil, model.ErrHuntNotFound
	}

	token, err := s.ledger.IssueRoundToken(session.UserID, GameType)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(s.rooms))
	for i, room := range s.rooms {
		names[i] = room.Name
	}
	scores := make([]int, len(session.RoomScores))
	copy(scores, session.RoomScores)

	return &model.HuntSummary{
		FinalScore: session.Score,
		RoomScores: scores,
		RoomNames:  names,
		NextRoute:  s.cfg.SummaryRoute,
		RoundToken: token,
	}, nil
}

// advance applies every deadline that has passed. Reports whether the
// session changed.
func (s *Service) advance(ctx context.Context, session *model.HuntSession, now time.Time) (bool, error) {
	changed := false

	for name, end := range session.Animating {
		if !now.Before(end) {
			delete(session.Animating, name)
			s.resolveFind(session, name, now)
			changed = true
		}
	}

	if session.Phase == model.HuntPhaseRoomActive && !now.Before(session.RoomDeadline) {
		session.TimedOut = true
		changed = true
		if session.RoomIndex >= len(s.rooms)-1 {
			session.Phase = model.HuntPhaseEnded
		} else {
			session.Phase = model.HuntPhaseDoor
			session.TransitionDeadline = now.Add(s.cfg.TransitionFallback)
		}
	}

	if session.Phase == model.HuntPhaseDoor && !now.Before(session.TransitionDeadline) {
		// The client never reported the door sequence ending; force it
		if err := s.enterNextRoom(ctx, session, now); err != nil {
			return changed, err
		}
		changed = true
	}

	return changed, nil
}

// resolveFind advances the target cursor once a found object's animation
// has played out. The old target stays current until then, so clicking the
// next object during the animation is still out of order.
func (s *Service) resolveFind(session *model.HuntSession, name string, now time.Time) {
	if session.Phase != model.HuntPhaseRoomActive || !session.Found[name] {
		return
	}
	room := &s.rooms[session.RoomIndex]
	if session.TargetIndex >= len(room.Objects) || room.Objects[session.TargetIndex] != name {
		return
	}

	session.TargetIndex++
	if session.TargetIndex >= len(room.Objects) {
		s.completeRoom(session, now)
	} else {
		session.Clue = ClueFor(room.Objects[session.TargetIndex])
	}
}

// completeRoom transitions out of a fully-solved room
func (s *Service) completeRoom(session *model.HuntSession, now time.Time) {
	if session.RoomIndex >= len(s.rooms)-1 {
		session.Phase = model.HuntPhaseEnded
		session.Clue = ""
		return
	}
	session.Phase = model.HuntPhaseDoor
	session.TransitionDeadline = now.Add(s.cfg.TransitionFallback)
	session.Clue = "Room Complete! Moving to next room..."
}

// enterNextRoom advances a transitioning session and pushes the device's
// unlock high-water-mark forward when new ground is reached
func (s *Service) enterNextRoom(ctx context.Context, session *model.HuntSession, now time.Time) error {
	next := session.RoomIndex + 1
	if next >= len(s.rooms) {
		session.Phase = model.HuntPhaseEnded
		return nil
	}

	progress, err := s.deviceProgress(ctx, session.DeviceID)
	if err != nil {
		return err
	}
	if next >= progress.RoomsUnlocked {
		progress.RoomsUnlocked = next + 1
		progress.UpdatedAt = now
		if err := s.storage.SaveHuntProgress(ctx, progress); err != nil {
			return err
		}
	}

	s.loadRoom(session, next, now)
	session.Phase = model.HuntPhaseRoomActive
	return nil
}

// loadRoom points the session at a room and restarts its countdown
func (s *Service) loadRoom(session *model.HuntSession, roomIndex int, now time.Time) {
	room := &s.rooms[roomIndex]
	session.RoomIndex = roomIndex
	session.TargetIndex = 0
	session.Clue = ClueFor(room.Objects[0])
	session.Found = make(map[string]bool)
	session.Animating = make(map[string]time.Time)
	session.FakeMessageUntil = time.Time{}
	session.RoomDeadline = now.Add(s.cfg.RoomTimeLimit)
	session.TimedOut = false
	session.Phase = model.HuntPhaseRoomActive
}

func (s *Service) penalize(session *model.HuntSession, result *ClickResult) bool {
	result.Delta = s.cfg.MissDelta
	session.Score += s.cfg.MissDelta
	session.RoomScores[session.RoomIndex] += s.cfg.MissDelta
	return true
}

func (s *Service) currentClue(session *model.HuntSession, now time.Time) string {
	if now.Before(session.FakeMessageUntil) {
		return fakeMessage
	}
	return session.Clue
}

// Progress reports the persisted room unlocks for a device, so clients can
// gate direct room selection before starting a session. Devices that have
// never played have a single room unlocked.
func (s *Service) Progress(ctx context.Context, deviceID string) (*model.HuntProgress, error) {
	return s.deviceProgress(ctx, deviceID)
}

func (s *Service) deviceProgress(ctx context.Context, deviceID string) (*model.HuntProgress, error) {
	progress, err := s.storage.GetHuntProgress(ctx, deviceID)
	if err == nil {
		return progress, nil
	}
	if !errors.Is(err, model.ErrProgressNotFound) {
		return nil, err
	}
	return &model.HuntProgress{DeviceID: deviceID, RoomsUnlocked: 1}, nil
}

// view builds the renderable snapshot for a session
func (s *Service) view(session *model.HuntSession, progress *model.HuntProgress, now time.Time) *StateView {
	room := &s.rooms[session.RoomIndex]

	remaining := session.RoomDeadline.Sub(now)
	if remaining < 0 || session.Phase == model.HuntPhaseEnded {
		remaining = 0
	}

	visible := s.arena.computeVisibility(room)
	objects := s.arena.visibleObjects(visible, func(name string) bool {
		return session.Found[name] && session.Animating[name].IsZero()
	})
	items := make([]model.SceneItem, len(objects))
	for i, obj := range objects {
		items[i] = obj.Item
	}

	scores := make([]int, len(session.RoomScores))
	copy(scores, session.RoomScores)

	return &StateView{
		SessionID:     session.ID,
		Phase:         session.Phase,
		RoomIndex:     session.RoomIndex,
		RoomName:      room.Name,
		Background:    room.Background,
		Clue:          s.currentClue(session, now),
		TargetIndex:   session.TargetIndex,
		TotalTargets:  len(room.Objects),
		Score:         session.Score,
		RoomScores:    scores,
		Camera:        session.Camera,
		TimeRemaining: remaining,
		RoomsUnlocked: progress.RoomsUnlocked,
		Jumpscare:     false,
		Items:         items,
	}
}
