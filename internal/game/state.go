package game

// Phase is the per-match shot cycle marker.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseBallsInMotion Phase = "balls_in_motion"
	PhaseResolving     Phase = "resolving"
	PhaseEnded         Phase = "ended"
)

// GameState is the canonical state of one match. It is a plain value: the
// engine mutates it, the registry owns it, and it marshals directly into the
// stateUpdate payload clients consume.
type GameState struct {
	Balls           [NumBalls]Ball       `json:"balls"`
	PlayerA         string               `json:"playerA"`
	PlayerB         string               `json:"playerB"`
	CurrentPlayerID string               `json:"currentPlayerId"`
	Phase           Phase                `json:"phase"`
	Groups          map[string]BallClass `json:"groups"`
	Scores          map[string]int       `json:"scores"`
	ShotNumber      int                  `json:"shotNumber"`

	// PocketedThisShot lists ball IDs pocketed since the last strike, in
	// capture order. Cleared when the next strike is applied.
	PocketedThisShot []int `json:"pocketedThisShot"`

	Winner    string `json:"winner,omitempty"`
	EndReason string `json:"endReason,omitempty"`
}

// Opponent returns the other player's ID.
func (s *GameState) Opponent(playerID string) string {
	if playerID == s.PlayerA {
		return s.PlayerB
	}
	return s.PlayerA
}

// CueBall returns the cue ball.
func (s *GameState) CueBall() *Ball {
	return &s.Balls[0]
}

// AllStopped reports whether every non-pocketed ball is at rest.
func (s *GameState) AllStopped() bool {
	for i := range s.Balls {
		b := &s.Balls[i]
		if !b.Pocketed && b.Speed > 0 {
			return false
		}
	}
	return true
}

// GroupCleared reports whether a player's assigned group has no balls left on
// the table. False while the player has no assigned group.
func (s *GameState) GroupCleared(playerID string) bool {
	class, ok := s.Groups[playerID]
	if !ok {
		return false
	}
	for i := range s.Balls {
		b := &s.Balls[i]
		if !b.Pocketed && b.Class == class {
			return false
		}
	}
	return true
}

// Clone returns a deep copy, used for tick-keyed history snapshots.
func (s *GameState) Clone() *GameState {
	c := *s
	c.Groups = make(map[string]BallClass, len(s.Groups))
	for k, v := range s.Groups {
		c.Groups[k] = v
	}
	c.Scores = make(map[string]int, len(s.Scores))
	for k, v := range s.Scores {
		c.Scores[k] = v
	}
	c.PocketedThisShot = append([]int(nil), s.PocketedThisShot...)
	return &c
}
