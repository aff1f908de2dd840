package match

import (
	"log"
	"sync"
	"time"
)

// Matchmaker pairs waiting players by rating. The queue is ordered by
// arrival; each new request is matched against the closest-rated waiter
// within the configured tolerance.
type Matchmaker struct {
	mu        sync.Mutex
	queue     []queueEntry
	reg       *Registry
	tolerance int
}

type queueEntry struct {
	seat     Seat
	joinedAt time.Time
}

func NewMatchmaker(reg *Registry, tolerance int) *Matchmaker {
	return &Matchmaker{reg: reg, tolerance: tolerance}
}

// RequestMatch either pairs the player with the best-fitting waiter or adds
// them to the queue. Requests from players already in a match or already
// queued are answered idempotently, never queued twice.
func (mm *Matchmaker) RequestMatch(seat Seat) bool {
	if _, inMatch := mm.reg.MatchForPlayer(seat.PlayerID()); inMatch {
		seat.Send(ErrorMessage{Type: TypeError, Message: "already in a match"})
		return false
	}

	mm.mu.Lock()

	for _, e := range mm.queue {
		if e.seat.PlayerID() == seat.PlayerID() {
			mm.mu.Unlock()
			seat.Send(WaitingMessage{Type: TypeWaiting, Message: "waiting for an opponent"})
			return false
		}
	}

	// Closest rating wins; arrival order breaks ties.
	best := -1
	bestDiff := 0
	for i, e := range mm.queue {
		diff := seat.Rating() - e.seat.Rating()
		if diff < 0 {
			diff = -diff
		}
		if diff > mm.tolerance {
			continue
		}
		if best == -1 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}

	if best == -1 {
		mm.queue = append(mm.queue, queueEntry{seat: seat, joinedAt: time.Now()})
		mm.mu.Unlock()
		log.Printf("[MATCHMAKER] Player %s queued (rating %d)", seat.PlayerID(), seat.Rating())
		seat.Send(WaitingMessage{Type: TypeWaiting, Message: "waiting for an opponent"})
		return false
	}

	opponent := mm.queue[best].seat
	mm.queue = append(mm.queue[:best], mm.queue[best+1:]...)
	mm.mu.Unlock()

	log.Printf("[MATCHMAKER] Paired %s (rating %d) with %s (rating %d)",
		opponent.PlayerID(), opponent.Rating(), seat.PlayerID(), seat.Rating())

	// The earlier arrival breaks.
	mm.reg.CreateMatch(opponent, seat)
	return true
}

// Remove drops a player from the queue, if present. Called on disconnect and
// on explicit cancellation.
func (mm *Matchmaker) Remove(playerID string) bool {
	mm.mu.Lock()
	defer mm.mu.Unlock()

	for i, e := range mm.queue {
		if e.seat.PlayerID() == playerID {
			mm.queue = append(mm.queue[:i], mm.queue[i+1:]...)
			return true
		}
	}
	return false
}

// WaitingCount returns the number of queued players.
func (mm *Matchmaker) WaitingCount() int {
	mm.mu.Lock()
	defer mm.mu.Unlock()
	return len(mm.queue)
}
