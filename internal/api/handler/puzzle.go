package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shadowhunt/shadowhunt-go/internal/api/middleware"
	"github.com/shadowhunt/shadowhunt-go/internal/api/request"
	"github.com/shadowhunt/shadowhunt-go/internal/api/response"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/puzzle"
)

// PuzzleHandler handles the answer-checked mini-game endpoints
type PuzzleHandler struct {
	puzzleService *puzzle.Service
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(puzzleService *puzzle.Service) *PuzzleHandler {
	return &PuzzleHandler{
		puzzleService: puzzleService,
	}
}

// Branch handles GET /api/v1/puzzles/branch.
// It resolves which branch puzzle the authenticated user's faction is
// routed to.
func (h *PuzzleHandler) Branch(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	puzzleID, err := h.puzzleService.RouteForFaction(user.Faction)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.FactionRouteResponse{
		PuzzleID: string(puzzleID),
	})
}

// KeypadLayout handles GET /api/v1/puzzles/keypad/layout
func (h *PuzzleHandler) KeypadLayout(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.KeypadLayoutResponse{
		Symbols: h.puzzleService.KeypadLayout(),
	})
}

// Get handles GET /api/v1/puzzles/{puzzle_id}
func (h *PuzzleHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.puzzleService.Get(puzzleID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PuzzleResponse{
		ID:    string(cfg.ID),
		Timed: cfg.Timed,
	})
}

// Start handles POST /api/v1/puzzles/{puzzle_id}/start.
// For timed puzzles this records the moment the timer starts counting.
func (h *PuzzleHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	if err := h.puzzleService.Start(r.Context(), user.ID, puzzleID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Submit handles POST /api/v1/puzzles/{puzzle_id}/submit
func (h *PuzzleHandler) Submit(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.puzzleService.Submit(r.Context(), user.ID, puzzleID(r), req.Answer)
	if err != nil {
		// A wrong answer is a normal outcome, not an error response
		if errors.Is(err, model.ErrWrongAnswer) {
			response.JSON(w, http.StatusOK, response.PuzzleResultResponse{Correct: false})
			return
		}
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PuzzleResultFromModel(result))
}

func puzzleID(r *http.Request) model.PuzzleID {
	return model.PuzzleID(mux.Vars(r)["puzzle_id"])
}
