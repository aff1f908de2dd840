package game

import (
	"math"
	"testing"
)

// isolateCueBall pockets every ball except the cue so single-ball motion can
// be observed without collisions.
func isolateCueBall(s *GameState) {
	for i := 1; i < NumBalls; i++ {
		s.Balls[i].Pocketed = true
		s.Balls[i].stop()
	}
}

// stepUntilStopped runs the engine until quiescence or the tick budget runs
// out, returning the number of ticks taken and the final outcome.
func stepUntilStopped(t *testing.T, s *GameState, maxTicks int) (int, StepOutcome) {
	t.Helper()
	for tick := 1; tick <= maxTicks; tick++ {
		out := Step(s, BaseDT)
		if out.Quiescent || s.Phase == PhaseEnded {
			return tick, out
		}
	}
	t.Fatalf("table did not settle within %d ticks", maxTicks)
	return maxTicks, StepOutcome{}
}

func TestInitializeRacksSixteenStoppedBalls(t *testing.T) {
	s := Initialize("alice", "bob")

	if len(s.Balls) != NumBalls {
		t.Fatalf("expected %d balls, got %d", NumBalls, len(s.Balls))
	}
	if s.CurrentPlayerID != "alice" {
		t.Errorf("expected alice to break, got %s", s.CurrentPlayerID)
	}
	if s.Phase != PhaseIdle {
		t.Errorf("expected idle phase, got %s", s.Phase)
	}

	for i := range s.Balls {
		b := &s.Balls[i]
		if b.Speed != 0 || !b.Velocity.IsZero() {
			t.Errorf("ball %d not at rest: speed=%v velocity=%v", i, b.Speed, b.Velocity)
		}
		if b.Pocketed {
			t.Errorf("ball %d racked as pocketed", i)
		}
		if b.Class != classOf(i) {
			t.Errorf("ball %d has class %s, want %s", i, b.Class, classOf(i))
		}
	}

	// No two balls may overlap in the rack.
	for i := 0; i < NumBalls; i++ {
		for j := i + 1; j < NumBalls; j++ {
			dist := s.Balls[j].Position.Minus(s.Balls[i].Position).Magnitude()
			if dist < 2*BallRadius {
				t.Errorf("balls %d and %d racked overlapping (dist=%.4f)", i, j, dist)
			}
		}
	}
}

func TestApplyStrikeSetsVelocityFromForceAndAngle(t *testing.T) {
	s := Initialize("alice", "bob")
	in := Input{PlayerID: "alice", Kind: ActionHit, Force: 3.0, Angle: math.Pi / 2}

	if !ApplyStrike(s, in) {
		t.Fatal("strike on a quiescent cue ball was not applied")
	}

	cue := s.CueBall()
	if math.Abs(cue.Velocity.X) > 1e-4 {
		t.Errorf("vx = %v, want ~0", cue.Velocity.X)
	}
	if math.Abs(cue.Velocity.Y-3.0) > 1e-4 {
		t.Errorf("vy = %v, want ~3", cue.Velocity.Y)
	}
	if cue.Speed != 3.0 {
		t.Errorf("speed cache = %v, want 3", cue.Speed)
	}
	if s.Phase != PhaseBallsInMotion {
		t.Errorf("phase = %s, want %s", s.Phase, PhaseBallsInMotion)
	}
}

func TestStrikeIgnoredWhileCueMoving(t *testing.T) {
	s := Initialize("alice", "bob")
	ApplyStrike(s, Input{PlayerID: "alice", Kind: ActionHit, Force: 2.0, Angle: 0})
	before := s.CueBall().Velocity

	if ApplyStrike(s, Input{PlayerID: "alice", Kind: ActionHit, Force: 9.0, Angle: math.Pi}) {
		t.Error("strike applied while cue ball was moving")
	}
	if s.CueBall().Velocity != before {
		t.Errorf("velocity changed by rejected strike: %v -> %v", before, s.CueBall().Velocity)
	}
}

func TestFrictionBringsBreakToRest(t *testing.T) {
	s := Initialize("alice", "bob")
	ApplyStrike(s, Input{PlayerID: "alice", Kind: ActionHit, Force: MaxForce, Angle: 0})

	ticks, _ := stepUntilStopped(t, s, 5000)

	if !s.AllStopped() {
		t.Fatal("table not quiescent after settle")
	}
	for i := range s.Balls {
		b := &s.Balls[i]
		if b.Speed == 0 && !b.Velocity.IsZero() {
			t.Errorf("ball %d has zero speed but nonzero velocity %v", i, b.Velocity)
		}
	}
	t.Logf("break settled after %d ticks", ticks)
}

func TestCushionReflectsAndDamps(t *testing.T) {
	s := Initialize("alice", "bob")
	isolateCueBall(s)

	cue := s.CueBall()
	cue.Position = NewVec2(1.0, 0)
	cue.setVelocity(NewVec2(5, 0))
	s.Phase = PhaseBallsInMotion

	bounced := false
	for tick := 0; tick < 600; tick++ {
		Step(s, BaseDT)
		if cue.Velocity.X < 0 {
			bounced = true
			break
		}
	}
	if !bounced {
		t.Fatal("cue ball never reflected off the right cushion")
	}
	if -cue.Velocity.X >= 5 {
		t.Errorf("reflection not damped: |vx| = %v", -cue.Velocity.X)
	}
	if cue.Position.X > TableWidth/2-BallRadius {
		t.Errorf("ball escaped the table: x = %v", cue.Position.X)
	}
}

func TestPocketCaptureStopsBall(t *testing.T) {
	s := Initialize("alice", "bob")
	isolateCueBall(s)

	// Ride the top rail straight into the top-right corner pocket.
	cue := s.CueBall()
	cue.Position = NewVec2(1.0, TableHeight/2-BallRadius)
	cue.setVelocity(NewVec2(4, 0))
	s.Phase = PhaseBallsInMotion

	for tick := 0; tick < 600 && !cue.Pocketed; tick++ {
		Step(s, BaseDT)
	}

	if !cue.Pocketed {
		t.Fatal("ball aimed at the corner pocket was not captured")
	}
	if cue.Speed != 0 || !cue.Velocity.IsZero() {
		t.Errorf("pocketed ball still moving: speed=%v velocity=%v", cue.Speed, cue.Velocity)
	}
	if len(s.PocketedThisShot) != 1 || s.PocketedThisShot[0] != 0 {
		t.Errorf("pocketed list = %v, want [0]", s.PocketedThisShot)
	}

	// A pocketed ball must not move or collide on later ticks.
	at := cue.Position
	for tick := 0; tick < 10; tick++ {
		Step(s, BaseDT)
	}
	if cue.Position != at {
		t.Errorf("pocketed ball moved: %v -> %v", at, cue.Position)
	}
}

func TestBallBallCollisionTransfersMomentum(t *testing.T) {
	s := Initialize("alice", "bob")
	isolateCueBall(s)
	s.Balls[1].Pocketed = false

	cue := s.CueBall()
	cue.Position = NewVec2(-0.3, 0)
	s.Balls[1].Position = NewVec2(0, 0)
	cue.setVelocity(NewVec2(3, 0))
	s.Phase = PhaseBallsInMotion

	hit := false
	for tick := 0; tick < 600; tick++ {
		Step(s, BaseDT)
		if s.Balls[1].Speed > 0 {
			hit = true
			break
		}
	}
	if !hit {
		t.Fatal("object ball never set in motion by head-on hit")
	}
	if s.Balls[1].Velocity.X <= 0 {
		t.Errorf("object ball moving the wrong way: vx = %v", s.Balls[1].Velocity.X)
	}
	// Head on, the cue ball gives up most of its speed.
	if cue.Speed > s.Balls[1].Speed {
		t.Errorf("cue retained more speed than it transferred: cue=%v object=%v", cue.Speed, s.Balls[1].Speed)
	}
}

func TestBreakIsDeterministic(t *testing.T) {
	run := func() [NumBalls]Vec2 {
		s := Initialize("alice", "bob")
		ApplyStrike(s, Input{PlayerID: "alice", Kind: ActionHit, Force: MaxForce, Angle: 0.01})
		for tick := 0; tick < 5000; tick++ {
			if out := Step(s, BaseDT); out.Quiescent || s.Phase == PhaseEnded {
				break
			}
		}
		var result [NumBalls]Vec2
		for i, b := range s.Balls {
			result[i] = b.Position
		}
		return result
	}

	first := run()
	second := run()
	for i := 0; i < NumBalls; i++ {
		if first[i] != second[i] {
			t.Errorf("ball %d diverged between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestQuiescencePassesTurn(t *testing.T) {
	s := Initialize("alice", "bob")
	isolateCueBall(s)

	// Gentle shot away from everything: nothing pocketed, so the turn must
	// pass to the opponent exactly once.
	ApplyStrike(s, Input{PlayerID: "alice", Kind: ActionHit, Force: 0.5, Angle: math.Pi})

	changes := 0
	last := s.CurrentPlayerID
	var final StepOutcome
	for tick := 0; tick < 2000; tick++ {
		out := Step(s, BaseDT)
		if s.CurrentPlayerID != last {
			changes++
			last = s.CurrentPlayerID
		}
		if out.Quiescent {
			final = out
			break
		}
		// Invariant: the turn never changes while balls are in motion.
		if s.Phase == PhaseBallsInMotion && changes != 0 {
			t.Fatal("turn changed while balls were in motion")
		}
	}

	if changes != 1 {
		t.Errorf("turn changed %d times, want exactly 1", changes)
	}
	if s.CurrentPlayerID != "bob" {
		t.Errorf("turn holder = %s, want bob", s.CurrentPlayerID)
	}
	if !final.TurnChanged {
		t.Error("outcome did not report the turn change")
	}
	if s.Phase != PhaseIdle {
		t.Errorf("phase = %s, want idle", s.Phase)
	}
}
