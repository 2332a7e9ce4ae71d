package model

import "time"

// PuzzleID identifies an answer-checked puzzle in the configuration table
type PuzzleID string

const (
	PuzzleRiddle   PuzzleID = "riddle"
	PuzzleKeypad   PuzzleID = "keypad"
	PuzzleHeirs    PuzzleID = "game3a"
	PuzzleResearch PuzzleID = "game3b"
	PuzzleTreasure PuzzleID = "game3c"
	PuzzleInvest   PuzzleID = "game3d"
)

// TimeTier is a discrete speed band for timed puzzles
type TimeTier string

const (
	TierHigh TimeTier = "high" // solved within 5 minutes
	TierMid  TimeTier = "mid"  // within 10 minutes
	TierLow  TimeTier = "low"
)

// PuzzleState records when a user opened a timed puzzle, for tier scoring
type PuzzleState struct {
	UserID    UserID
	PuzzleID  PuzzleID
	StartedAt time.Time
}

// PuzzleResult is what a submission returns to the caller
type PuzzleResult struct {
	Won       bool
	Tier      TimeTier
	NewScore  int
	Stage     int
	NextRoute string
}

// OracleQA is one question/answer exchange with the external oracle
type OracleQA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// OracleRound is the per-user deduction game state. Keyed by user so that
// concurrent players never share a round.
type OracleRound struct {
	UserID      UserID
	Round       int // 1-based current round
	TotalRounds int
	PastAnswers []OracleQA
	Won         bool // current round won, waiting for NextRound
	Completed   bool // all rounds exhausted
	UpdatedAt   time.Time
}
