package models

import (
	"database/sql"
	"time"
)

// Player is a registered account. Connections without one play as guests and
// never touch this table.
type Player struct {
	ID          int          `db:"id" json:"id"`
	PlayerID    string       `db:"player_id" json:"player_id"`
	DisplayName string       `db:"display_name" json:"display_name"`
	Rating      int          `db:"rating" json:"rating"`
	GamesPlayed int          `db:"games_played" json:"games_played"`
	GamesWon    int          `db:"games_won" json:"games_won"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	LastActive  sql.NullTime `db:"last_active" json:"last_active,omitempty"`
}

// MatchResult is one finished match.
type MatchResult struct {
	ID         int       `db:"id" json:"id"`
	MatchID    string    `db:"match_id" json:"match_id"`
	WinnerID   string    `db:"winner_id" json:"winner_id"`
	LoserID    string    `db:"loser_id" json:"loser_id"`
	EndReason  string    `db:"end_reason" json:"end_reason"`
	ShotsTaken int       `db:"shots_taken" json:"shots_taken"`
	DurationMs int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
