package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/playday/gameserver/internal/match"
)

// GetStats reports live server load plus the all-time completed match count.
func GetStats(db *sqlx.DB, reg *match.Registry, mm *match.Matchmaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := gin.H{
			"activeMatches":  reg.ActiveCount(),
			"waitingPlayers": mm.WaitingCount(),
		}

		if db != nil {
			var total int
			if err := db.Get(&total, `SELECT COUNT(*) FROM match_results`); err != nil {
				log.Printf("[API] Failed to count match results: %v", err)
			} else {
				stats["completedMatches"] = total
			}
		}

		c.JSON(http.StatusOK, stats)
	}
}

// GetMatchState serves the last cached snapshot for a match. Backed by the
// Redis cache the registry refreshes whenever a shot settles, so spectators
// and reconnecting clients never touch the live simulation.
func GetMatchState(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "state cache not configured"})
			return
		}

		matchID := c.Param("id")
		data, err := rdb.Get(c.Request.Context(), "match:"+matchID+":state").Result()
		if err == redis.Nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
			return
		}
		if err != nil {
			log.Printf("[API] State cache read failed for match %s: %v", matchID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "state cache unavailable"})
			return
		}

		c.Data(http.StatusOK, "application/json", []byte(data))
	}
}
