package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Users are permanent event records and carry no TTL;
	// runtime game state expires after the event window.
	HuntSessionTTL time.Duration
	OracleRoundTTL time.Duration
	PuzzleStateTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		HuntSessionTTL: 24 * time.Hour,
		OracleRoundTTL: 24 * time.Hour,
		PuzzleStateTTL: 24 * time.Hour,
	}
}
