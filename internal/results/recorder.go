package results

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Outcome is the durable record of a finished match.
type Outcome struct {
	MatchID    string        `json:"matchId" db:"match_id"`
	WinnerID   string        `json:"winnerId" db:"winner_id"`
	LoserID    string        `json:"loserId" db:"loser_id"`
	EndReason  string        `json:"endReason" db:"end_reason"`
	ShotsTaken int           `json:"shotsTaken" db:"shots_taken"`
	Duration   time.Duration `json:"duration" db:"-"`
}

// Recorder persists match outcomes.
type Recorder interface {
	Record(ctx context.Context, o Outcome) error
}

// PostgresRecorder writes outcomes to the match_results table and publishes
// them on a Redis channel for downstream consumers (leaderboards, analytics).
type PostgresRecorder struct {
	db  *sqlx.DB
	rdb *redis.Client
}

func NewPostgresRecorder(db *sqlx.DB, rdb *redis.Client) *PostgresRecorder {
	return &PostgresRecorder{db: db, rdb: rdb}
}

func (r *PostgresRecorder) Record(ctx context.Context, o Outcome) error {
	if r.db != nil {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO match_results (match_id, winner_id, loser_id, end_reason, shots_taken, duration_ms, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
			o.MatchID, o.WinnerID, o.LoserID, o.EndReason, o.ShotsTaken, o.Duration.Milliseconds())
		if err != nil {
			log.Printf("[RESULTS] Failed to insert result for match %s: %v", o.MatchID, err)
			return err
		}
	}

	// Best-effort publish; the row above is the source of truth.
	if r.rdb != nil {
		if data, err := json.Marshal(o); err == nil {
			if err := r.rdb.Publish(ctx, "match_results", data).Err(); err != nil {
				log.Printf("[RESULTS] Failed to publish result for match %s: %v", o.MatchID, err)
			}
		}
	}
	return nil
}

// Noop discards outcomes. Used in tests and when running without a database.
type Noop struct{}

func (Noop) Record(ctx context.Context, o Outcome) error { return nil }
