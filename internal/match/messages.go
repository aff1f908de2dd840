package match

import "github.com/playday/gameserver/internal/game"

// Outbound message shapes. Every server-to-client message carries a "type"
// discriminator.
type PlayerIDMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type WaitingMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type GameStartMessage struct {
	Type       string `json:"type"`
	GameID     string `json:"gameId"`
	OpponentID string `json:"opponentId"`
}

type StateUpdateMessage struct {
	Type  string          `json:"type"`
	Tick  uint64          `json:"tick"`
	State *game.GameState `json:"state"`
}

type GameEndMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

const (
	TypePlayerID    = "playerID"
	TypeWaiting     = "waiting"
	TypeGameStart   = "gameStart"
	TypeStateUpdate = "stateUpdate"
	TypeGameEnd     = "gameEnd"
	TypeError       = "error"
)
