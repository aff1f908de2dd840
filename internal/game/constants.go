package game

// Physics and table constants for 8-ball pool. The table is modeled in
// meters (standard 9-foot playing field) so that strike force maps directly
// to cue-ball speed in m/s.

const (
	NumBalls = 16 // 0=cue, 1-7=solids, 8=eight, 9-15=stripes

	TableWidth  = 2.84
	TableHeight = 1.42
	BallRadius  = 0.0286

	// PocketCaptureRadius is the distance from a pocket center within which a
	// ball's center is considered captured.
	PocketCaptureRadius = 0.064

	// FrictionDamping is the multiplicative speed decay applied once per tick.
	FrictionDamping = 0.995

	// StopSpeed is the quiescence threshold: any speed below it snaps to zero
	// so the table always settles in a bounded number of ticks.
	StopSpeed = 0.01

	BallRestitution    = 0.94
	CushionRestitution = 0.6

	// Cue strike force bounds, inclusive. Force equals cue-ball speed in m/s.
	MinForce = 0.1
	MaxForce = 10.0

	// TickRate is the nominal simulation rate; BaseDT the matching fixed step.
	TickRate = 60
	BaseDT   = 1.0 / 60.0
)

// Rack geometry: row pitch and lateral spacing as multiples of the ball
// radius. Fixed values (no jitter) keep the break deterministic.
const (
	rackRowPitch = 1.782
	rackColPitch = 1.05
)
