package match

import (
	"context"
	"log"
	"time"
)

// Scheduler drives the registry at a fixed tick rate. One ticker serves every
// match; a slow tick is logged rather than compensated, so simulation time
// stretches instead of ticks being dropped.
type Scheduler struct {
	reg      *Registry
	interval time.Duration
	dt       float64
}

func NewScheduler(reg *Registry, tickRateHz int) *Scheduler {
	if tickRateHz < 1 {
		tickRateHz = 60
	}
	return &Scheduler{
		reg:      reg,
		interval: time.Second / time.Duration(tickRateHz),
		dt:       1.0 / float64(tickRateHz),
	}
}

// Run ticks until the context is cancelled. Blocks; callers run it in a
// goroutine.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[SCHEDULER] Running at %v per tick", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Printf("[SCHEDULER] Stopped")
			return
		case <-ticker.C:
			start := time.Now()
			s.reg.Tick(s.dt)
			if elapsed := time.Since(start); elapsed > s.interval {
				log.Printf("[SCHEDULER] Tick overran: %v (budget %v)", elapsed, s.interval)
			}
		}
	}
}
