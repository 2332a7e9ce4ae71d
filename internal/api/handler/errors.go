package handler

import (
	"net/http"

	"github.com/shadowhunt/shadowhunt-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeUnauthorized        = apierr.CodeUnauthorized
	CodeInvalidCredentials  = apierr.CodeInvalidCredentials
	CodeUserNotFound        = apierr.CodeUserNotFound
	CodeUsernameExists      = apierr.CodeUsernameExists
	CodeUnknownFaction      = apierr.CodeUnknownFaction
	CodeStageRegression     = apierr.CodeStageRegression
	CodePuzzleNotFound      = apierr.CodePuzzleNotFound
	CodeWrongAnswer         = apierr.CodeWrongAnswer
	CodeRoundComplete       = apierr.CodeRoundComplete
	CodeAllRoundsPlayed     = apierr.CodeAllRoundsPlayed
	CodeOracleUnavailable   = apierr.CodeOracleUnavailable
	CodeOracleRoundNotFound = apierr.CodeOracleRoundNotFound
	CodeHuntNotFound        = apierr.CodeHuntNotFound
	CodeHuntEnded           = apierr.CodeHuntEnded
	CodeRoomLocked          = apierr.CodeRoomLocked
	CodeNotTransitioning    = apierr.CodeNotTransitioning
	CodeTokenRedeemed       = apierr.CodeTokenRedeemed
	CodeInvalidToken        = apierr.CodeInvalidToken
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewForbiddenOriginError creates an error for disallowed cross-origin calls
func NewForbiddenOriginError() error {
	return apierr.NewForbiddenOriginError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
