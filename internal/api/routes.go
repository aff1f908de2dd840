package api

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/playday/gameserver/internal/api/handlers"
	"github.com/playday/gameserver/internal/match"
	"github.com/playday/gameserver/internal/ws"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *sqlx.DB, rdb *redis.Client,
	reg *match.Registry, mm *match.Matchmaker, wsServer *ws.Server) {

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)
		v1.GET("/stats", handlers.GetStats(db, reg, mm))
		v1.GET("/match/:id/state", handlers.GetMatchState(rdb))
	}

	// Gameplay happens over a single WebSocket session per player.
	router.GET("/ws", wsServer.HandleWebSocket)
}
