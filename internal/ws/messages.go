package ws

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Inbound protocol. Every client message is an envelope tagged by "action";
// the set of actions is closed, and anything outside it is a decode error
// rather than a silently ignored message.
const (
	actionMatchFind = "matchFind"
	actionInput     = "input"
)

var ErrMalformedMessage = errors.New("malformed message")

type envelope struct {
	Action     string          `json:"action"`
	PlayerID   string          `json:"playerId"`
	ClientTick uint64          `json:"clientTick"`
	Payload    json.RawMessage `json:"payload"`
}

// MatchFindRequest asks to be queued for an opponent.
type MatchFindRequest struct{}

// InputRequest carries one gameplay action aimed at a client-observed tick.
type InputRequest struct {
	ClientTick uint64
	Action     string
	Force      float64
	Angle      float64
}

type inputPayload struct {
	Action string  `json:"action"`
	Force  float64 `json:"force"`
	Angle  float64 `json:"angle"`
}

// decodeInbound parses a client frame into one of the known request types.
func decodeInbound(data []byte) (interface{}, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrMalformedMessage
	}

	switch env.Action {
	case actionMatchFind:
		return MatchFindRequest{}, nil

	case actionInput:
		if len(env.Payload) == 0 {
			return nil, ErrMalformedMessage
		}
		var p inputPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			return nil, ErrMalformedMessage
		}
		return InputRequest{
			ClientTick: env.ClientTick,
			Action:     p.Action,
			Force:      p.Force,
			Angle:      p.Angle,
		}, nil

	default:
		return nil, fmt.Errorf("%w: action %q", ErrMalformedMessage, env.Action)
	}
}
