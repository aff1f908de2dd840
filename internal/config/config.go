package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string

	// Database
	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	// Redis
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Simulation
	TickRateHz           int
	HistoryWindowSeconds int
	SnapshotCacheTTLMin  int

	// Matchmaking
	RatingTolerance int
	DefaultRating   int

	// Security
	JWTSecret string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", "postgres://localhost:5432/playday?sslmode=disable"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		// Redis
		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379/0"),

		// Server
		Port:        getEnv("APP_PORT", "8081"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Simulation
		TickRateHz:           getEnvInt("TICK_RATE_HZ", 60),
		HistoryWindowSeconds: getEnvInt("HISTORY_WINDOW_SECONDS", 3),
		SnapshotCacheTTLMin:  getEnvInt("SNAPSHOT_CACHE_TTL_MINUTES", 60),

		// Matchmaking
		RatingTolerance: getEnvInt("RATING_TOLERANCE", 150),
		DefaultRating:   getEnvInt("DEFAULT_RATING", 1200),

		// Security
		JWTSecret: getEnv("JWT_SECRET", "change-me-in-production"),
	}

	// The scheduler divides by the tick rate; never let it through at zero.
	if cfg.TickRateHz < 1 {
		log.Printf("[CONFIG] TICK_RATE_HZ %d out of range, using 60", cfg.TickRateHz)
		cfg.TickRateHz = 60
	}
	if cfg.HistoryWindowSeconds < 1 {
		log.Printf("[CONFIG] HISTORY_WINDOW_SECONDS %d out of range, using 3", cfg.HistoryWindowSeconds)
		cfg.HistoryWindowSeconds = 3
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
