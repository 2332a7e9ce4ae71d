package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
	"github.com/shadowhunt/shadowhunt-go/internal/services/ledger"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeUnknownFaction      = "UNKNOWN_FACTION"
	CodeStageRegression     = "STAGE_REGRESSION"
	CodePuzzleNotFound      = "PUZZLE_NOT_FOUND"
	CodeWrongAnswer         = "WRONG_ANSWER"
	CodeRoundComplete       = "ROUND_COMPLETE"
	CodeAllRoundsPlayed     = "ALL_ROUNDS_PLAYED"
	CodeOracleUnavailable   = "ORACLE_UNAVAILABLE"
	CodeOracleRoundNotFound = "ORACLE_ROUND_NOT_FOUND"
	CodeHuntNotFound        = "HUNT_NOT_FOUND"
	CodeHuntEnded           = "HUNT_ENDED"
	CodeRoomLocked          = "ROOM_LOCKED"
	CodeNotTransitioning    = "NOT_TRANSITIONING"
	CodeTokenRedeemed       = "TOKEN_REDEEMED"
	CodeInvalidToken        = "INVALID_TOKEN"
	CodeGameTypeMismatch    = "GAME_TYPE_MISMATCH"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, model.ErrUnknownFaction):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownFaction, "Unknown faction"}}
	case errors.Is(err, model.ErrStageRegression):
		return &httpError{http.StatusConflict, APIError{CodeStageRegression, "Stage transition would move the user backwards"}}
	case errors.Is(err, model.ErrPuzzleNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePuzzleNotFound, "Puzzle not found"}}
	case errors.Is(err, model.ErrPuzzleStateNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePuzzleNotFound, "Puzzle has not been started"}}
	case errors.Is(err, model.ErrWrongAnswer):
		return &httpError{http.StatusBadRequest, APIError{CodeWrongAnswer, "Wrong answer"}}
	case errors.Is(err, model.ErrRoundComplete):
		return &httpError{http.StatusConflict, APIError{CodeRoundComplete, "Round is already complete"}}
	case errors.Is(err, model.ErrAllRoundsPlayed):
		return &httpError{http.StatusConflict, APIError{CodeAllRoundsPlayed, "All rounds have been played"}}
	case errors.Is(err, model.ErrOracleUpstream):
		return &httpError{http.StatusBadGateway, APIError{CodeOracleUnavailable, "Oracle backend unavailable"}}
	case errors.Is(err, model.ErrOracleRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeOracleRoundNotFound, "Oracle round not found"}}
	case errors.Is(err, model.ErrHuntNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeHuntNotFound, "Hunt session not found"}}
	case errors.Is(err, model.ErrHuntEnded):
		return &httpError{http.StatusConflict, APIError{CodeHuntEnded, "Hunt has already ended"}}
	case errors.Is(err, model.ErrRoomLocked):
		return &httpError{http.StatusForbidden, APIError{CodeRoomLocked, "Room is locked"}}
	case errors.Is(err, model.ErrNotTransitioning):
		return &httpError{http.StatusConflict, APIError{CodeNotTransitioning, "No door transition in progress"}}
	case errors.Is(err, model.ErrProgressNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeHuntNotFound, "Hunt progress not found"}}
	case errors.Is(err, model.ErrTokenRedeemed):
		return &httpError{http.StatusConflict, APIError{CodeTokenRedeemed, "Round token already redeemed"}}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidToken, "Invalid round token"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, ledger.ErrInvalidRoundToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidToken, "Invalid round token"}}
	case errors.Is(err, ledger.ErrGameTypeMismatch):
		return &httpError{http.StatusBadRequest, APIError{CodeGameTypeMismatch, "Round token was issued for a different game"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenOriginError creates an error for cross-origin submissions
// from origins outside the allow-list
func NewForbiddenOriginError() error {
	return &httpError{http.StatusForbidden, APIError{CodeUnauthorized, "Origin not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
