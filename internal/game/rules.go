package game

// Foul describes a rule violation detected when a shot resolves.
type Foul struct {
	Type    string `json:"type"` // "scratch", "illegal_8ball"
	Message string `json:"message"`
}

// End reasons reported to clients and the results recorder.
const (
	EndReasonScratch      = "scratch"
	EndReasonIllegalEight = "illegal_8ball"
	EndReasonEightBall    = "pocket_8"
)

// resolveShot applies the 8-ball rules once the table is quiescent. The turn
// holder during the shot is still CurrentPlayerID: the turn never changes
// while balls are in motion.
func resolveShot(s *GameState) StepOutcome {
	striker := s.CurrentPlayerID
	opponent := s.Opponent(striker)

	out := StepOutcome{Quiescent: true}

	cuePocketed := false
	eightPocketed := false
	for _, id := range s.PocketedThisShot {
		switch id {
		case 0:
			cuePocketed = true
		case 8:
			eightPocketed = true
		}
	}

	// The eight ball is only legal once the striker's own group was already
	// off the table before this shot began.
	wasOnEight := s.GroupCleared(striker) && !pocketedOwnGroup(s, striker)

	switch {
	case eightPocketed && wasOnEight && !cuePocketed:
		endGame(s, &out, striker, opponent, EndReasonEightBall)
		return out

	case eightPocketed:
		out.Foul = &Foul{Type: "illegal_8ball", Message: "8-ball pocketed illegally"}
		endGame(s, &out, opponent, striker, EndReasonIllegalEight)
		return out

	case cuePocketed:
		out.Foul = &Foul{Type: "scratch", Message: "Cue ball pocketed"}
		endGame(s, &out, opponent, striker, EndReasonScratch)
		return out
	}

	// Group assignment on the first pocketed object ball of the match.
	if len(s.Groups) == 0 {
		for _, id := range s.PocketedThisShot {
			class := classOf(id)
			if class != ClassSolid && class != ClassStripe {
				continue
			}
			s.Groups[striker] = class
			if class == ClassSolid {
				s.Groups[opponent] = ClassStripe
			} else {
				s.Groups[opponent] = ClassSolid
			}
			out.GroupAssigned = true
			break
		}
	}

	// Score credit: every object ball that went down this shot counts for the
	// striker.
	for _, id := range s.PocketedThisShot {
		if id != 0 && id != 8 {
			s.Scores[striker]++
		}
	}

	// Turn retention: keep the table only after legally pocketing a ball of
	// the assigned group.
	if !pocketedOwnGroup(s, striker) {
		s.CurrentPlayerID = opponent
		out.TurnChanged = true
	}

	s.Phase = PhaseIdle
	return out
}

// pocketedOwnGroup reports whether the striker pocketed at least one ball of
// their assigned group this shot. Counts the ball that caused assignment.
func pocketedOwnGroup(s *GameState, striker string) bool {
	class, ok := s.Groups[striker]
	if !ok {
		return false
	}
	for _, id := range s.PocketedThisShot {
		if classOf(id) == class {
			return true
		}
	}
	return false
}

func endGame(s *GameState, out *StepOutcome, winner, loser, reason string) {
	s.Phase = PhaseEnded
	s.Winner = winner
	s.EndReason = reason
	out.GameOver = true
	out.Winner = winner
	out.Loser = loser
}
