package game

import "testing"

// shotState fabricates a just-settled shot: every listed ball is marked
// pocketed and the table is otherwise at rest, so the next Step resolves
// the rules immediately.
func shotState(pocketed ...int) *GameState {
	s := Initialize("alice", "bob")
	s.Phase = PhaseBallsInMotion
	s.ShotNumber = 1
	for _, id := range pocketed {
		s.Balls[id].Pocketed = true
		s.Balls[id].stop()
		s.PocketedThisShot = append(s.PocketedThisShot, id)
	}
	return s
}

func resolve(t *testing.T, s *GameState) StepOutcome {
	t.Helper()
	out := Step(s, BaseDT)
	if !out.Quiescent && s.Phase != PhaseEnded {
		t.Fatal("expected the shot to resolve on a quiescent table")
	}
	return out
}

func TestTurnAlternatesWhenNothingPocketed(t *testing.T) {
	s := shotState()
	out := resolve(t, s)

	if !out.TurnChanged {
		t.Error("turn should pass after a dry shot")
	}
	if s.CurrentPlayerID != "bob" {
		t.Errorf("turn holder = %s, want bob", s.CurrentPlayerID)
	}
	if s.Phase != PhaseIdle {
		t.Errorf("phase = %s, want idle", s.Phase)
	}
}

func TestGroupAssignedOnFirstPocket(t *testing.T) {
	s := shotState(9) // a stripe
	out := resolve(t, s)

	if !out.GroupAssigned {
		t.Fatal("first pocketed object ball should assign groups")
	}
	if s.Groups["alice"] != ClassStripe {
		t.Errorf("alice group = %s, want stripe", s.Groups["alice"])
	}
	if s.Groups["bob"] != ClassSolid {
		t.Errorf("bob group = %s, want solid", s.Groups["bob"])
	}
	// The assigning pocket counts as pocketing your own group: turn retained.
	if out.TurnChanged || s.CurrentPlayerID != "alice" {
		t.Errorf("turn should be retained, holder = %s", s.CurrentPlayerID)
	}
	if s.Scores["alice"] != 1 {
		t.Errorf("alice score = %d, want 1", s.Scores["alice"])
	}
}

func TestTurnRetainedAfterPocketingOwnGroup(t *testing.T) {
	s := shotState(3)
	s.Groups["alice"] = ClassSolid
	s.Groups["bob"] = ClassStripe
	out := resolve(t, s)

	if out.TurnChanged {
		t.Error("turn passed despite pocketing own group")
	}
	if s.CurrentPlayerID != "alice" {
		t.Errorf("turn holder = %s, want alice", s.CurrentPlayerID)
	}
}

func TestTurnPassesAfterPocketingOpponentBall(t *testing.T) {
	s := shotState(9) // stripe, but alice is solids
	s.Groups["alice"] = ClassSolid
	s.Groups["bob"] = ClassStripe
	out := resolve(t, s)

	if !out.TurnChanged || s.CurrentPlayerID != "bob" {
		t.Errorf("turn should pass to bob, holder = %s", s.CurrentPlayerID)
	}
	// The striker still gets score credit for the ball that went down.
	if s.Scores["alice"] != 1 {
		t.Errorf("alice score = %d, want 1", s.Scores["alice"])
	}
}

func TestScratchEndsMatchAsLoss(t *testing.T) {
	s := shotState(0)
	out := resolve(t, s)

	if !out.GameOver {
		t.Fatal("scratch should end the match")
	}
	if out.Winner != "bob" || out.Loser != "alice" {
		t.Errorf("winner=%s loser=%s, want bob/alice", out.Winner, out.Loser)
	}
	if out.Foul == nil || out.Foul.Type != "scratch" {
		t.Errorf("foul = %+v, want scratch", out.Foul)
	}
	if s.Phase != PhaseEnded || s.EndReason != EndReasonScratch {
		t.Errorf("phase=%s reason=%s", s.Phase, s.EndReason)
	}
}

func TestIllegalEightEndsMatchAsLoss(t *testing.T) {
	s := shotState(8)
	s.Groups["alice"] = ClassSolid
	s.Groups["bob"] = ClassStripe
	out := resolve(t, s)

	if !out.GameOver || out.Winner != "bob" {
		t.Errorf("early 8-ball should lose: winner=%s", out.Winner)
	}
	if s.EndReason != EndReasonIllegalEight {
		t.Errorf("reason = %s, want %s", s.EndReason, EndReasonIllegalEight)
	}
}

func TestLegalEightWinsMatch(t *testing.T) {
	s := shotState(8)
	s.Groups["alice"] = ClassSolid
	s.Groups["bob"] = ClassStripe
	// Alice cleared her solids on earlier shots.
	for id := 1; id <= 7; id++ {
		s.Balls[id].Pocketed = true
	}
	out := resolve(t, s)

	if !out.GameOver || out.Winner != "alice" {
		t.Errorf("clean 8-ball should win: winner=%s", out.Winner)
	}
	if s.EndReason != EndReasonEightBall {
		t.Errorf("reason = %s, want %s", s.EndReason, EndReasonEightBall)
	}
}

func TestEightWithLastGroupBallIsIllegal(t *testing.T) {
	s := shotState(7, 8)
	s.Groups["alice"] = ClassSolid
	s.Groups["bob"] = ClassStripe
	for id := 1; id <= 6; id++ {
		s.Balls[id].Pocketed = true
	}
	out := resolve(t, s)

	if !out.GameOver || out.Winner != "bob" {
		t.Errorf("8-ball on the clearing shot should lose: winner=%s", out.Winner)
	}
	if s.EndReason != EndReasonIllegalEight {
		t.Errorf("reason = %s, want %s", s.EndReason, EndReasonIllegalEight)
	}
}

func TestScratchWhileShootingEightLoses(t *testing.T) {
	s := shotState(0, 8)
	s.Groups["alice"] = ClassSolid
	s.Groups["bob"] = ClassStripe
	for id := 1; id <= 7; id++ {
		s.Balls[id].Pocketed = true
	}
	out := resolve(t, s)

	if !out.GameOver || out.Winner != "bob" {
		t.Errorf("8-ball with a scratch should lose: winner=%s", out.Winner)
	}
}
