package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/shadowhunt/shadowhunt-go/internal/api"
	"github.com/shadowhunt/shadowhunt-go/internal/factory"
	"github.com/shadowhunt/shadowhunt-go/internal/services/puzzle"
	redisstorage "github.com/shadowhunt/shadowhunt-go/internal/storage/redis"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		logger.Error("TOKEN_SECRET is required")
		os.Exit(1)
	}

	// Build factory config from environment
	cfg := factory.Config{
		TokenSecret:    secret,
		OracleURL:      os.Getenv("ORACLE_URL"),
		ExternalOrigin: os.Getenv("EXTERNAL_ORIGIN"),
		PuzzleConfig: puzzle.Config{
			RiddleAnswer:     os.Getenv("RIDDLE_ANSWER"),
			KeypadPassphrase: os.Getenv("KEYPAD_PASSPHRASE"),
		},
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		LedgerService:      app.LedgerService,
		PuzzleService:      app.PuzzleService,
		OracleService:      app.OracleService,
		HuntService:        app.HuntService,
		LeaderboardService: app.LeaderboardService,
		ExternalOrigin:     cfg.ExternalOrigin,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("invalid PORT", slog.String("port", port))
			os.Exit(1)
		}
		serverConfig.Port = p
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
