package handler

import (
	"net/http"

	"github.com/shadowhunt/shadowhunt-go/internal/api/response"
	"github.com/shadowhunt/shadowhunt-go/internal/services/leaderboard"
)

// LeaderboardHandler handles the read-only leaderboard endpoint
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Get handles GET /api/v1/leaderboard
func (h *LeaderboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	individual, err := h.leaderboardService.Top(r.Context(), leaderboard.DefaultLimit)
	if err != nil {
		WriteError(w, err)
		return
	}

	factions, err := h.leaderboardService.Factions(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardResponse{
		Success:               true,
		IndividualLeaderboard: individual,
		FactionLeaderboard:    factions,
	})
}
