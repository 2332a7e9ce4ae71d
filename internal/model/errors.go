package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameExists  = errors.New("username already exists")
	ErrUnknownFaction  = errors.New("unknown faction")
	ErrStageRegression = errors.New("stage regression not permitted")

	// Puzzle errors
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrWrongAnswer    = errors.New("wrong answer")

	// Oracle errors
	ErrRoundComplete       = errors.New("round is already complete")
	ErrAllRoundsPlayed     = errors.New("all rounds have been played")
	ErrOracleUpstream      = errors.New("oracle backend unreachable")
	ErrOracleRoundNotFound = errors.New("oracle round not found")

	// Hunt errors
	ErrHuntNotFound     = errors.New("hunt session not found")
	ErrHuntEnded        = errors.New("hunt has ended")
	ErrRoomLocked       = errors.New("room is locked")
	ErrNotTransitioning = errors.New("no door transition in progress")
	ErrProgressNotFound = errors.New("hunt progress not found")

	// Puzzle state
	ErrPuzzleStateNotFound = errors.New("puzzle state not found")

	// Round token errors
	ErrTokenRedeemed = errors.New("round token already redeemed")
	ErrInvalidToken  = errors.New("invalid round token")
)
