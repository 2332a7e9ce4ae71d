package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shadowhunt/shadowhunt-go/internal/api/middleware"
	"github.com/shadowhunt/shadowhunt-go/internal/api/request"
	"github.com/shadowhunt/shadowhunt-go/internal/api/response"
	"github.com/shadowhunt/shadowhunt-go/internal/services/ledger"
)

// GameHandler handles the progress ledger endpoints
type GameHandler struct {
	ledgerService *ledger.Service

	// externalOrigin is the single partner-game origin allowed to call the
	// external score endpoint cross-origin. Empty disables CORS handling.
	externalOrigin string
}

// NewGameHandler creates a new game handler
func NewGameHandler(ledgerService *ledger.Service, externalOrigin string) *GameHandler {
	return &GameHandler{
		ledgerService:  ledgerService,
		externalOrigin: externalOrigin,
	}
}

// UpdateScore handles POST /api/v1/progress/score
func (h *GameHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.UpdateScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	newScore, stage, err := h.ledgerService.Apply(r.Context(), user.ID, req.ScoreToAdd, req.NextStage)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.UpdateScoreResponse{
		OK:       true,
		NewScore: newScore,
		Stage:    stage,
	})
}

// IssueRoundToken handles POST /api/v1/progress/round-token. The signed
// token is what the browser hands to the partner game before redirecting.
func (h *GameHandler) IssueRoundToken(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.IssueRoundTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.GameType == "" {
		WriteError(w, NewInvalidRequestError("gameType is required"))
		return
	}

	token, err := h.ledgerService.IssueRoundToken(user.ID, req.GameType)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoundTokenResponse{
		Token:    token,
		GameType: req.GameType,
	})
}

// SubmitExternalScore handles POST /api/v1/scores/external.
// The caller authenticates with a one-shot round token instead of a
// session, so the partner game never holds user credentials.
func (h *GameHandler) SubmitExternalScore(w http.ResponseWriter, r *http.Request) {
	if !h.applyCORS(w, r) {
		return
	}

	var req request.SubmitExternalScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Token == "" {
		WriteError(w, NewInvalidRequestError("token is required"))
		return
	}
	if req.Score < 0 {
		WriteError(w, NewInvalidRequestError("score must not be negative"))
		return
	}

	// The ledger checks gameType against the token's claim before spending
	// it, so a mismatch never burns the token or credits the score
	_, newScore, err := h.ledgerService.SubmitExternalScore(r.Context(), req.Token, req.GameType, req.Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitExternalScoreResponse{
		Success:       true,
		ScoreAdded:    req.Score,
		NewTotalScore: newScore,
	})
}

// PreflightExternalScore handles OPTIONS /api/v1/scores/external
func (h *GameHandler) PreflightExternalScore(w http.ResponseWriter, r *http.Request) {
	if !h.applyCORS(w, r) {
		return
	}
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	response.NoContent(w)
}

// applyCORS validates the Origin header against the configured partner
// origin. Same-origin requests carry no Origin header and always pass.
func (h *GameHandler) applyCORS(w http.ResponseWriter, r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if h.externalOrigin == "" || origin != h.externalOrigin {
		WriteError(w, NewForbiddenOriginError())
		return false
	}

	w.Header().Set("Access-Control-Allow-Origin", h.externalOrigin)
	w.Header().Set("Vary", "Origin")
	return true
}
