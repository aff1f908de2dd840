package match

import "github.com/playday/gameserver/internal/game"

// History is a fixed-size ring of per-tick state snapshots. It retains the
// most recent window of ticks so late or replayed inputs can be judged
// against the state they were aimed at.
type History struct {
	entries []histEntry
	count   int
	next    int
}

type histEntry struct {
	tick  uint64
	state *game.GameState
}

// NewHistory sizes the ring for the given number of ticks.
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{entries: make([]histEntry, capacity)}
}

// Record stores a deep copy of the state under the given tick, evicting the
// oldest snapshot once the window is full.
func (h *History) Record(tick uint64, s *game.GameState) {
	h.entries[h.next] = histEntry{tick: tick, state: s.Clone()}
	h.next = (h.next + 1) % len(h.entries)
	if h.count < len(h.entries) {
		h.count++
	}
}

// At returns the snapshot recorded for the given tick, or false if the tick
// has already been evicted or was never recorded.
func (h *History) At(tick uint64) (*game.GameState, bool) {
	for i := 0; i < h.count; i++ {
		if e := &h.entries[i]; e.tick == tick {
			return e.state, true
		}
	}
	return nil, false
}

// Latest returns the newest snapshot, or false if nothing has been recorded.
func (h *History) Latest() (uint64, *game.GameState, bool) {
	if h.count == 0 {
		return 0, nil, false
	}
	i := (h.next - 1 + len(h.entries)) % len(h.entries)
	return h.entries[i].tick, h.entries[i].state, true
}

// OldestTick returns the lowest tick still retained.
func (h *History) OldestTick() (uint64, bool) {
	if h.count == 0 {
		return 0, false
	}
	if h.count < len(h.entries) {
		return h.entries[0].tick, true
	}
	return h.entries[h.next].tick, true
}
