package game

// BallClass identifies which group a ball belongs to.
type BallClass string

const (
	ClassCue    BallClass = "cue"
	ClassSolid  BallClass = "solid"
	ClassStripe BallClass = "stripe"
	ClassEight  BallClass = "eight"
)

// Ball is a single ball's simulation state. Speed is a cached copy of the
// velocity magnitude; the engine keeps the two consistent at all times.
type Ball struct {
	ID       int       `json:"id"`
	Class    BallClass `json:"class"`
	Position Vec2      `json:"position"`
	Velocity Vec2      `json:"velocity"`
	Speed    float64   `json:"speed"`
	Pocketed bool      `json:"pocketed"`
}

// setVelocity updates velocity and the speed cache together.
func (b *Ball) setVelocity(v Vec2) {
	b.Velocity = v
	b.Speed = v.Magnitude()
}

// stop zeroes the ball's motion.
func (b *Ball) stop() {
	b.Velocity = Vec2{}
	b.Speed = 0
}

// classOf returns the class for a ball ID under the standard numbering.
func classOf(id int) BallClass {
	switch {
	case id == 0:
		return ClassCue
	case id == 8:
		return ClassEight
	case id >= 1 && id <= 7:
		return ClassSolid
	default:
		return ClassStripe
	}
}
