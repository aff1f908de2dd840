package game

import (
	"errors"
	"math"
)

// ActionKind enumerates the closed set of input actions.
type ActionKind string

const (
	ActionHit ActionKind = "hit"
)

// Input is one player action, tagged with the tick the server accepted it at.
type Input struct {
	Tick     uint64
	PlayerID string
	Kind     ActionKind
	Force    float64
	Angle    float64
}

// Validation rejections. These are policy outcomes, not failures: the caller
// answers them with a forced state resync, never with a dropped connection.
var (
	ErrGameEnded       = errors.New("game has ended")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrUnknownAction   = errors.New("unknown action kind")
	ErrForceOutOfRange = errors.New("force out of range")
	ErrInvalidAngle    = errors.New("angle is not finite")
	ErrBallsInMotion   = errors.New("balls are still in motion")
)

// ValidateInput checks a proposed action against the canonical state. It
// never mutates state. Out-of-turn actions are rejected before anything else,
// regardless of physical plausibility.
func ValidateInput(s *GameState, playerID string, in Input) error {
	if s.Phase == PhaseEnded {
		return ErrGameEnded
	}
	if playerID != s.CurrentPlayerID {
		return ErrNotYourTurn
	}
	if in.Kind != ActionHit {
		return ErrUnknownAction
	}
	if in.Force < MinForce || in.Force > MaxForce {
		return ErrForceOutOfRange
	}
	if math.IsNaN(in.Angle) || math.IsInf(in.Angle, 0) {
		return ErrInvalidAngle
	}
	if s.Phase != PhaseIdle || s.CueBall().Speed != 0 {
		return ErrBallsInMotion
	}
	return nil
}
