package game

import "math"

// pocketCenters are the six pocket positions: four corners plus the two side
// pockets on the long rails. Table origin is the center of the playing field.
var pocketCenters = [6]Vec2{
	{X: -TableWidth / 2, Y: -TableHeight / 2},
	{X: 0, Y: -TableHeight / 2},
	{X: TableWidth / 2, Y: -TableHeight / 2},
	{X: -TableWidth / 2, Y: TableHeight / 2},
	{X: 0, Y: TableHeight / 2},
	{X: TableWidth / 2, Y: TableHeight / 2},
}

// rackPositions returns the break layout: cue ball on the head spot, the
// fifteen object balls in a triangle on the foot spot, eight ball centered in
// the third row. Fixed offsets, no jitter, so every break is reproducible.
func rackPositions() [NumBalls]Vec2 {
	var pos [NumBalls]Vec2

	apex := TableWidth / 4
	dx := rackRowPitch * BallRadius
	dy := rackColPitch * BallRadius

	// Cue ball on the opposite side of the table
	pos[0] = NewVec2(-TableWidth/4, 0)

	// Apex ball
	pos[1] = NewVec2(apex, 0)

	// Row 2
	pos[2] = NewVec2(apex+dx, dy)
	pos[15] = NewVec2(apex+dx, -dy)

	// Row 3 (8-ball in the middle)
	pos[8] = NewVec2(apex+2*dx, 0)
	pos[5] = NewVec2(apex+2*dx, 2*dy)
	pos[10] = NewVec2(apex+2*dx, -2*dy)

	// Row 4
	pos[7] = NewVec2(apex+3*dx, dy)
	pos[4] = NewVec2(apex+3*dx, 3*dy)
	pos[9] = NewVec2(apex+3*dx, -dy)
	pos[6] = NewVec2(apex+3*dx, -3*dy)

	// Row 5
	pos[11] = NewVec2(apex+4*dx, 0)
	pos[12] = NewVec2(apex+4*dx, 2*dy)
	pos[13] = NewVec2(apex+4*dx, -2*dy)
	pos[14] = NewVec2(apex+4*dx, 4*dy)
	pos[3] = NewVec2(apex+4*dx, -4*dy)

	return pos
}

// Initialize racks a fresh game. playerA breaks.
func Initialize(playerA, playerB string) *GameState {
	s := &GameState{
		PlayerA:         playerA,
		PlayerB:         playerB,
		CurrentPlayerID: playerA,
		Phase:           PhaseIdle,
		Groups:          make(map[string]BallClass),
		Scores:          map[string]int{playerA: 0, playerB: 0},
	}

	rack := rackPositions()
	for i := 0; i < NumBalls; i++ {
		s.Balls[i] = Ball{
			ID:       i,
			Class:    classOf(i),
			Position: rack[i],
		}
	}
	return s
}

// ApplyStrike converts a validated hit into cue-ball velocity. A strike only
// lands on a stationary cue ball; anything else is a no-op so that callers
// racing the simulation can never double-hit.
func ApplyStrike(s *GameState, in Input) bool {
	if s.Phase != PhaseIdle {
		return false
	}
	cue := s.CueBall()
	if cue.Pocketed || cue.Speed != 0 {
		return false
	}

	cue.Velocity = NewVec2(math.Cos(in.Angle)*in.Force, math.Sin(in.Angle)*in.Force)
	cue.Speed = in.Force
	s.Phase = PhaseBallsInMotion
	s.ShotNumber++
	s.PocketedThisShot = s.PocketedThisShot[:0]
	return true
}

// StepOutcome reports what a single tick did beyond moving balls.
type StepOutcome struct {
	Quiescent     bool // the table came to rest this tick
	TurnChanged   bool
	GroupAssigned bool
	Foul          *Foul
	GameOver      bool
	Winner        string
	Loser         string
}

// Step advances the simulation by one fixed dt: integrate every moving ball,
// resolve ball-ball and ball-cushion collisions, capture pocketed balls,
// damp speeds, and, once everything is at rest, apply the shot rules.
//
// Motion and collision run in substeps sized so that no ball travels more
// than a radius at a time, which keeps fast shots from tunneling through
// balls or rails. Friction is applied once per tick regardless.
func Step(s *GameState, dt float64) StepOutcome {
	if s.Phase == PhaseEnded {
		return StepOutcome{}
	}

	steps := substeps(s, dt)
	sub := dt / float64(steps)
	for k := 0; k < steps; k++ {
		integrate(s, sub)
		collideBalls(s)
		collideCushions(s)
		capturePockets(s)
	}
	applyFriction(s)

	if s.Phase == PhaseBallsInMotion && s.AllStopped() {
		s.Phase = PhaseResolving
		return resolveShot(s)
	}
	return StepOutcome{}
}

// substeps returns how many collision passes this tick needs, based on the
// fastest ball on the table.
func substeps(s *GameState, dt float64) int {
	var maxSpeed float64
	for i := range s.Balls {
		if b := &s.Balls[i]; !b.Pocketed && b.Speed > maxSpeed {
			maxSpeed = b.Speed
		}
	}
	n := int(math.Ceil(maxSpeed * dt / BallRadius))
	if n < 1 {
		n = 1
	}
	return n
}

func integrate(s *GameState, dt float64) {
	for i := range s.Balls {
		b := &s.Balls[i]
		if b.Pocketed || b.Speed == 0 {
			continue
		}
		b.Position = b.Position.Plus(b.Velocity.Times(dt))
	}
}

func applyFriction(s *GameState) {
	for i := range s.Balls {
		b := &s.Balls[i]
		if b.Pocketed || b.Speed == 0 {
			continue
		}

		speed := fix(b.Speed * FrictionDamping)
		if speed < StopSpeed {
			b.stop()
		} else {
			b.Velocity = b.Velocity.Normalize().Times(speed)
			b.Speed = speed
		}
	}
}

// collideBalls resolves every overlapping, converging pair with an impulse
// along the line of centers: tangential components pass through, normal
// components exchange scaled by the restitution coefficient, which preserves
// total momentum and bleeds a little kinetic energy.
func collideBalls(s *GameState) {
	for i := 0; i < NumBalls; i++ {
		a := &s.Balls[i]
		if a.Pocketed {
			continue
		}
		for j := i + 1; j < NumBalls; j++ {
			b := &s.Balls[j]
			if b.Pocketed {
				continue
			}

			delta := b.Position.Minus(a.Position)
			dist := delta.Magnitude()
			if dist == 0 || dist >= 2*BallRadius {
				continue
			}
			// Skip pairs already separating so one overlap is resolved once.
			if b.Velocity.Minus(a.Velocity).Dot(delta) >= 0 {
				continue
			}

			n := delta.Normalize()
			aN := a.Velocity.Dot(n)
			bN := b.Velocity.Dot(n)
			aT := a.Velocity.Minus(n.Times(aN))
			bT := b.Velocity.Minus(n.Times(bN))

			a.setVelocity(aT.Plus(n.Times(fix(bN*BallRestitution + aN*(1-BallRestitution)))))
			b.setVelocity(bT.Plus(n.Times(fix(aN*BallRestitution + bN*(1-BallRestitution)))))

			// Push the pair apart so they are no longer overlapping.
			overlap := fix(2*BallRadius - dist)
			a.Position = a.Position.Minus(n.Times(overlap / 2))
			b.Position = b.Position.Plus(n.Times(overlap / 2))
		}
	}
}

// collideCushions reflects the velocity component normal to a rail, damped by
// the cushion restitution coefficient.
func collideCushions(s *GameState) {
	maxX := fix(TableWidth/2 - BallRadius)
	maxY := fix(TableHeight/2 - BallRadius)

	for i := range s.Balls {
		b := &s.Balls[i]
		if b.Pocketed || b.Speed == 0 {
			continue
		}

		v := b.Velocity
		bounced := false

		if b.Position.X < -maxX && v.X < 0 {
			b.Position.X = -maxX
			v.X = fix(-v.X * CushionRestitution)
			bounced = true
		} else if b.Position.X > maxX && v.X > 0 {
			b.Position.X = maxX
			v.X = fix(-v.X * CushionRestitution)
			bounced = true
		}

		if b.Position.Y < -maxY && v.Y < 0 {
			b.Position.Y = -maxY
			v.Y = fix(-v.Y * CushionRestitution)
			bounced = true
		} else if b.Position.Y > maxY && v.Y > 0 {
			b.Position.Y = maxY
			v.Y = fix(-v.Y * CushionRestitution)
			bounced = true
		}

		if bounced {
			b.setVelocity(v)
			if b.Speed < StopSpeed {
				b.stop()
			}
		}
	}
}

// capturePockets marks any ball whose center is inside a pocket's capture
// radius as pocketed, zeroing its motion and excluding it from all further
// collision tests.
func capturePockets(s *GameState) {
	for i := range s.Balls {
		b := &s.Balls[i]
		if b.Pocketed {
			continue
		}
		for _, p := range pocketCenters {
			if b.Position.Minus(p).MagnitudeSquared() <= PocketCaptureRadius*PocketCaptureRadius {
				b.Pocketed = true
				b.stop()
				s.PocketedThisShot = append(s.PocketedThisShot, b.ID)
				break
			}
		}
	}
}
