package puzzle

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/clock"
	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/random"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/ledger"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
)

// keypadSymbols is the fixed symbol set; only the arrangement changes
var keypadSymbols = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "*", "#"}

// Service runs every answer-checked puzzle off one shared table. A win is
// the only path that touches the ledger; wrong answers change nothing.
type Service struct {
	storage storage.Storage
	ledger  *ledger.Service
	clock   clock.Clock
	random  random.Random

	table           map[model.PuzzleID]PuzzleConfig
	shuffleInterval time.Duration

	mu           sync.Mutex
	layout       []string
	layoutWindow int64
}

// New creates a new puzzle service. The returned warnings describe stage
// anomalies in the configured table; callers should log them.
func New(
	storage storage.Storage,
	ledgerService *ledger.Service,
	clock clock.Clock,
	random random.Random,
	cfg Config,
) (*Service, []string, error) {
	def := DefaultConfig()
	if cfg.RiddleAnswer == "" {
		cfg.RiddleAnswer = def.RiddleAnswer
	}
	if cfg.KeypadPassphrase == "" {
		cfg.KeypadPassphrase = def.KeypadPassphrase
	}
	if cfg.KeypadShuffleInterval == 0 {
		cfg.KeypadShuffleInterval = def.KeypadShuffleInterval
	}

	table := buildTable(cfg)
	warnings, err := validateTable(table)
	if err != nil {
		return nil, nil, err
	}

	return &Service{
		storage:         storage,
		ledger:          ledgerService,
		clock:           clock,
		random:          random,
		table:           table,
		shuffleInterval: cfg.KeypadShuffleInterval,
	}, warnings, nil
}

// Get returns the configuration for a puzzle, without its answer exposed
// to callers that shouldn't see it; handlers decide what to serialize.
func (s *Service) Get(puzzleID model.PuzzleID) (PuzzleConfig, error) {
	cfg, ok := s.table[puzzleID]
	if !ok {
		return PuzzleConfig{}, model.ErrPuzzleNotFound
	}
	return cfg, nil
}

// RouteForFaction returns the branch puzzle a faction plays after the
// shared checkpoint
func (s *Service) RouteForFaction(faction model.Faction) (model.PuzzleID, error) {
	id, ok := factionRoutes[faction]
	if !ok {
		return "", model.ErrUnknownFaction
	}
	return id, nil
}

// Start marks the moment a user loaded a puzzle. Only timed puzzles read
// it back, but recording it is harmless for the rest.
func (s *Service) Start(ctx context.Context, userID model.UserID, puzzleID model.PuzzleID) error {
	if _, ok := s.table[puzzleID]; !ok {
		return model.ErrPuzzleNotFound
	}
	return s.storage.SavePuzzleState(ctx, &model.PuzzleState{
		UserID:    userID,
		PuzzleID:  puzzleID,
		StartedAt: s.clock.Now(),
	})
}

// Submit checks an answer. A wrong answer returns model.ErrWrongAnswer and
// leaves every piece of state untouched; a win credits the ledger and
// returns the post-win progress plus where to go next.
func (s *Service) Submit(ctx context.Context, userID model.UserID, puzzleID model.PuzzleID, answer string) (*model.PuzzleResult, error) {
	cfg, ok := s.table[puzzleID]
	if !ok {
		return nil, model.ErrPuzzleNotFound
	}

	if Normalize(answer) != Normalize(cfg.Answer) {
		return nil, model.ErrWrongAnswer
	}

	delta := cfg.Delta
	var tier model.TimeTier
	if cfg.Timed {
		tier = s.tierFor(ctx, userID, puzzleID)
		if tier != "" {
			delta = cfg.Tiers[tier]
		}
	}

	nextStage := cfg.NextStage
	newScore, stage, err := s.ledger.Apply(ctx, userID, delta, &nextStage)
	if err != nil {
		return nil, err
	}

	return &model.PuzzleResult{
		Won:       true,
		Tier:      tier,
		NewScore:  newScore,
		Stage:     stage,
		NextRoute: cfg.NextRoute,
	}, nil
}

// tierFor computes the elapsed-time tier for a timed puzzle. A submit with
// no recorded start can't be timed, so it gets the flat delta instead.
func (s *Service) tierFor(ctx context.Context, userID model.UserID, puzzleID model.PuzzleID) model.TimeTier {
	state, err := s.storage.GetPuzzleState(ctx, userID, puzzleID)
	if err != nil {
		if !errors.Is(err, model.ErrPuzzleStateNotFound) {
			// Storage trouble shouldn't block a correct answer; treat
			// it like an untimed submit.
			return ""
		}
		return ""
	}
	elapsed := s.clock.Now().Sub(state.StartedAt)
	switch {
	case elapsed <= tierHighWithin:
		return model.TierHigh
	case elapsed <= tierMidWithin:
		return model.TierMid
	default:
		return model.TierLow
	}
}

// KeypadLayout returns the keypad's current symbol arrangement. The layout
// holds still within each shuffle window and rearranges at the boundary,
// independent of any user's input.
func (s *Service) KeypadLayout() []string {
	window := s.clock.Now().UnixNano() / int64(s.shuffleInterval)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.layout == nil || window != s.layoutWindow {
		layout := make([]string, len(keypadSymbols))
		copy(layout, keypadSymbols)
		s.random.Shuffle(len(layout), func(i, j int) {
			layout[i], layout[j] = layout[j], layout[i]
		})
		s.layout = layout
		s.layoutWindow = window
	}

	out := make([]string, len(s.layout))
	copy(out, s.layout)
	return out
}

// Normalize is the comparison form for puzzle answers: surrounding
// whitespace and letter case never matter.
func Normalize(answer string) string {
	return strings.ToLower(strings.TrimSpace(answer))
}
