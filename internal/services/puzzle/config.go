package puzzle

import (
	"fmt"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
)

// TierDelta maps a time tier to the score it awards
type TierDelta map[model.TimeTier]int

// PuzzleConfig describes one answer-checked puzzle. All mini-game variants
// share this shape; behavior differences are data, not code.
type PuzzleConfig struct {
	ID     model.PuzzleID
	Answer string
	// Delta is the flat score awarded on a win. Ignored when Timed.
	Delta     int
	NextStage int
	NextRoute string
	// Timed enables the elapsed-time score tiers instead of the flat delta
	Timed bool
	Tiers TierDelta
}

// Config holds configuration for the puzzle service
type Config struct {
	// RiddleAnswer overrides the shared riddle's expected answer. Event
	// content, so it is deployment configuration rather than code.
	RiddleAnswer string
	// KeypadPassphrase overrides the cipher keypad's passphrase
	KeypadPassphrase string
	// KeypadShuffleInterval is how often the keypad layout rearranges
	KeypadShuffleInterval time.Duration
}

// DefaultConfig returns default puzzle configuration
func DefaultConfig() Config {
	return Config{
		RiddleAnswer:          "shadow",
		KeypadPassphrase:      "2234",
		KeypadShuffleInterval: 3 * time.Second,
	}
}

// Time tier thresholds for timed puzzles
const (
	tierHighWithin = 5 * time.Minute
	tierMidWithin  = 10 * time.Minute
)

var defaultTiers = TierDelta{
	model.TierHigh: 30,
	model.TierMid:  20,
	model.TierLow:  10,
}

// factionRoutes maps each faction to its branch puzzle after the shared
// checkpoint. Unknown factions are a routing error, not a default branch.
var factionRoutes = map[model.Faction]model.PuzzleID{
	model.FactionHeirs:         model.PuzzleHeirs,
	model.FactionResearchers:   model.PuzzleResearch,
	model.FactionTreasurers:    model.PuzzleTreasure,
	model.FactionInvestigators: model.PuzzleInvest,
}

// buildTable constructs the puzzle table from config. The stage values are
// the event's literal content, mismatches included: the deduction game
// walks the stage up past 3 before the keypad sets it back to 3. Validate
// reports that rather than anything here rewriting history.
func buildTable(cfg Config) map[model.PuzzleID]PuzzleConfig {
	branch := func(id model.PuzzleID, timed bool) PuzzleConfig {
		return PuzzleConfig{
			ID:        id,
			Answer:    "27",
			Delta:     30,
			NextStage: 4,
			NextRoute: "/game/hunt",
			Timed:     timed,
			Tiers:     defaultTiers,
		}
	}
	return map[model.PuzzleID]PuzzleConfig{
		model.PuzzleRiddle: {
			ID:        model.PuzzleRiddle,
			Answer:    cfg.RiddleAnswer,
			Delta:     20,
			NextStage: 2,
			NextRoute: "/game/oracle",
		},
		model.PuzzleKeypad: {
			ID:        model.PuzzleKeypad,
			Answer:    cfg.KeypadPassphrase,
			Delta:     0,
			NextStage: 3,
			NextRoute: "/game/branch",
		},
		model.PuzzleHeirs: branch(model.PuzzleHeirs, false),
		model.PuzzleResearch: branch(model.PuzzleResearch, true),
		model.PuzzleTreasure: branch(model.PuzzleTreasure, true),
		model.PuzzleInvest: branch(model.PuzzleInvest, false),
	}
}

// Validate checks the puzzle table for structural problems and returns
// human-readable warnings for stage-ordering anomalies. Warnings are
// surfaced at startup, not fixed: the content numbers are what they are.
func validateTable(table map[model.PuzzleID]PuzzleConfig) ([]string, error) {
	var warnings []string
	for id, cfg := range table {
		if cfg.Answer == "" {
			return nil, fmt.Errorf("puzzle %q has an empty expected answer", id)
		}
		if cfg.NextStage < 1 {
			return nil, fmt.Errorf("puzzle %q has next stage %d below 1", id, cfg.NextStage)
		}
		if cfg.NextRoute == "" {
			return nil, fmt.Errorf("puzzle %q has no next route", id)
		}
		if cfg.Timed && len(cfg.Tiers) == 0 {
			return nil, fmt.Errorf("puzzle %q is timed but has no tiers", id)
		}
	}
	for _, id := range []model.PuzzleID{model.PuzzleRiddle, model.PuzzleKeypad} {
		if _, ok := table[id]; !ok {
			return nil, fmt.Errorf("puzzle table missing %q", id)
		}
	}
	for faction, id := range factionRoutes {
		if _, ok := table[id]; !ok {
			return nil, fmt.Errorf("faction %q routes to unknown puzzle %q", faction, id)
		}
	}

	// The deduction game leaves the user past stage 3 before the keypad
	// is reached, then the keypad moves them back.
	if keypad := table[model.PuzzleKeypad]; keypad.NextStage <= table[model.PuzzleRiddle].NextStage+1 {
		warnings = append(warnings, fmt.Sprintf(
			"keypad next stage %d is below where the deduction rounds leave players; stage will regress at the keypad",
			keypad.NextStage))
	}
	return warnings, nil
}
