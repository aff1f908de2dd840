package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/playday/gameserver/internal/api"
	"github.com/playday/gameserver/internal/config"
	"github.com/playday/gameserver/internal/database"
	"github.com/playday/gameserver/internal/identity"
	"github.com/playday/gameserver/internal/match"
	"github.com/playday/gameserver/internal/middleware"
	"github.com/playday/gameserver/internal/migrations"
	"github.com/playday/gameserver/internal/redis"
	"github.com/playday/gameserver/internal/results"
	"github.com/playday/gameserver/internal/ws"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if os.Getenv("MIGRATE_ON_START") == "true" {
		log.Println("↗ Running DB migrations on startup...")
		if err := migrations.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	rdb, err := redis.Connect(cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	recorder := results.NewPostgresRecorder(db, rdb)
	registry := match.NewRegistry(cfg, rdb, recorder)
	matchmaker := match.NewMatchmaker(registry, cfg.RatingTolerance)
	provider := identity.NewJWTProvider(db, cfg.JWTSecret, cfg.DefaultRating)
	wsServer := ws.NewServer(registry, matchmaker, provider)

	// One scheduler drives every match at the fixed tick rate.
	scheduler := match.NewScheduler(registry, cfg.TickRateHz)
	go scheduler.Run(context.Background())

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg))

	api.SetupRoutes(router, db, rdb, registry, matchmaker, wsServer)

	port := cfg.Port
	if port == "" {
		port = "8081"
	}

	log.Printf("Starting game server on port %s (tick rate %d Hz)", port, cfg.TickRateHz)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
