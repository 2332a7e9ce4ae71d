package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/clock"
	"github.com/shadowhunt/shadowhunt-go/internal/dependencies/random"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
	"github.com/shadowhunt/shadowhunt-go/internal/services/hunt"
	"github.com/shadowhunt/shadowhunt-go/internal/services/leaderboard"
	"github.com/shadowhunt/shadowhunt-go/internal/services/ledger"
	"github.com/shadowhunt/shadowhunt-go/internal/services/oracle"
	"github.com/shadowhunt/shadowhunt-go/internal/services/puzzle"
	"github.com/shadowhunt/shadowhunt-go/internal/storage"
	"github.com/shadowhunt/shadowhunt-go/internal/storage/memory"
	redisstorage "github.com/shadowhunt/shadowhunt-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	AuthService        *auth.Service
	LedgerService      *ledger.Service
	PuzzleService      *puzzle.Service
	OracleService      *oracle.Service
	HuntService        *hunt.Service
	LeaderboardService *leaderboard.Service
}

// Config holds configuration for the application factory
type Config struct {
	// TokenSecret signs session and round tokens (required in production)
	TokenSecret string
	// OracleURL is the base URL of the external oracle backend
	OracleURL string
	// ExternalOrigin is the partner-game origin allowed to post scores
	// cross-origin (informational here; the router consumes it)
	ExternalOrigin string
	// PuzzleConfig overrides the built-in puzzle table values (optional)
	PuzzleConfig puzzle.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	oracleClient := oracle.NewHTTPClient(cfg.OracleURL, 10*time.Second)

	return newWithDependencies(store, clk, rnd, oracleClient, cfg, logger)
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	oracleClient oracle.Client,
	cfg Config,
	logger *slog.Logger,
) (*App, error) {
	authService := auth.New(store, clk, auth.Config{Secret: cfg.TokenSecret})
	ledgerService := ledger.New(store, clk, ledger.Config{Secret: cfg.TokenSecret})

	puzzleService, warnings, err := puzzle.New(store, ledgerService, clk, rnd, cfg.PuzzleConfig)
	if err != nil {
		return nil, err
	}
	for _, warning := range warnings {
		logger.Warn("puzzle table anomaly", slog.String("warning", warning))
	}

	oracleService := oracle.New(store, ledgerService, oracleClient, clk, oracle.Config{}, logger)
	huntService := hunt.New(store, ledgerService, clk, rnd, hunt.Config{}, logger)
	leaderboardService := leaderboard.New(store)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		AuthService:        authService,
		LedgerService:      ledgerService,
		PuzzleService:      puzzleService,
		OracleService:      oracleService,
		HuntService:        huntService,
		LeaderboardService: leaderboardService,
	}, nil
}
