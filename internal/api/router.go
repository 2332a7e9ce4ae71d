package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shadowhunt/shadowhunt-go/internal/api/handler"
	"github.com/shadowhunt/shadowhunt-go/internal/api/middleware"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
	"github.com/shadowhunt/shadowhunt-go/internal/services/hunt"
	"github.com/shadowhunt/shadowhunt-go/internal/services/leaderboard"
	"github.com/shadowhunt/shadowhunt-go/internal/services/ledger"
	"github.com/shadowhunt/shadowhunt-go/internal/services/oracle"
	"github.com/shadowhunt/shadowhunt-go/internal/services/puzzle"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	LedgerService      *ledger.Service
	PuzzleService      *puzzle.Service
	OracleService      *oracle.Service
	HuntService        *hunt.Service
	LeaderboardService *leaderboard.Service

	// ExternalOrigin is the partner-game origin allowed to post external
	// scores cross-origin
	ExternalOrigin string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	gameHandler := handler.NewGameHandler(cfg.LedgerService, cfg.ExternalOrigin)
	puzzleHandler := handler.NewPuzzleHandler(cfg.PuzzleService)
	oracleHandler := handler.NewOracleHandler(cfg.OracleService)
	huntHandler := handler.NewHuntHandler(cfg.HuntService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for logging in)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)

	// Identity is resolved when a valid session is present, but the
	// endpoint answers loggedIn=false rather than 401 without one
	me := api.PathPrefix("/auth/me").Subrouter()
	me.Use(optionalAuthMiddleware)
	me.HandleFunc("", authHandler.Me).Methods(http.MethodGet)

	// Progress ledger routes
	progress := api.PathPrefix("/progress").Subrouter()
	progress.Use(authMiddleware)
	progress.HandleFunc("/score", gameHandler.UpdateScore).Methods(http.MethodPost)
	progress.HandleFunc("/round-token", gameHandler.IssueRoundToken).Methods(http.MethodPost)

	// External score submission authenticates with a round token, not a
	// session
	api.HandleFunc("/scores/external", gameHandler.SubmitExternalScore).Methods(http.MethodPost)
	api.HandleFunc("/scores/external", gameHandler.PreflightExternalScore).Methods(http.MethodOptions)

	// Puzzle routes (all require auth)
	puzzles := api.PathPrefix("/puzzles").Subrouter()
	puzzles.Use(authMiddleware)
	puzzles.HandleFunc("/branch", puzzleHandler.Branch).Methods(http.MethodGet)
	puzzles.HandleFunc("/keypad/layout", puzzleHandler.KeypadLayout).Methods(http.MethodGet)
	puzzles.HandleFunc("/{puzzle_id}", puzzleHandler.Get).Methods(http.MethodGet)
	puzzles.HandleFunc("/{puzzle_id}/start", puzzleHandler.Start).Methods(http.MethodPost)
	puzzles.HandleFunc("/{puzzle_id}/submit", puzzleHandler.Submit).Methods(http.MethodPost)

	// Oracle routes (all require auth)
	oracleRoutes := api.PathPrefix("/oracle").Subrouter()
	oracleRoutes.Use(authMiddleware)
	oracleRoutes.HandleFunc("", oracleHandler.Status).Methods(http.MethodGet)
	oracleRoutes.HandleFunc("/ask", oracleHandler.Ask).Methods(http.MethodPost)
	oracleRoutes.HandleFunc("/reset", oracleHandler.Reset).Methods(http.MethodPost)

	// Hunt routes (all require auth)
	huntRoutes := api.PathPrefix("/hunt").Subrouter()
	huntRoutes.Use(authMiddleware)
	huntRoutes.HandleFunc("/sessions", huntHandler.Start).Methods(http.MethodPost)
	huntRoutes.HandleFunc("/sessions/{session_id}", huntHandler.State).Methods(http.MethodGet)
	huntRoutes.HandleFunc("/sessions/{session_id}/pan", huntHandler.Pan).Methods(http.MethodPost)
	huntRoutes.HandleFunc("/sessions/{session_id}/click", huntHandler.Click).Methods(http.MethodPost)
	huntRoutes.HandleFunc("/sessions/{session_id}/transition", huntHandler.FinishTransition).Methods(http.MethodPost)
	huntRoutes.HandleFunc("/sessions/{session_id}/restart", huntHandler.Restart).Methods(http.MethodPost)
	huntRoutes.HandleFunc("/sessions/{session_id}/summary", huntHandler.Summary).Methods(http.MethodGet)
	huntRoutes.HandleFunc("/progress/{device_id}", huntHandler.Progress).Methods(http.MethodGet)

	// Leaderboard is public
	api.HandleFunc("/leaderboard", leaderboardHandler.Get).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
