package match

import "testing"

func TestSchedulerTickRateFloor(t *testing.T) {
	s := NewScheduler(newTestRegistry(), 0)

	if s.interval <= 0 {
		t.Errorf("interval = %v, want positive", s.interval)
	}
	if s.dt <= 0 {
		t.Errorf("dt = %v, want positive", s.dt)
	}
}
