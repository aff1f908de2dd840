package match

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/playday/gameserver/internal/config"
	"github.com/playday/gameserver/internal/game"
	"github.com/playday/gameserver/internal/results"
)

var (
	// ErrUnknownPlayer reports an input from a player with no active match.
	ErrUnknownPlayer = errors.New("player not in an active match")
	// ErrStaleInput reports an input aimed at a tick outside the retained
	// history window.
	ErrStaleInput = errors.New("input references an expired tick")
)

// Match is one live game between two seats. All state behind mu; the tick
// driver and the input path both go through it, so inputs can never interleave
// with a simulation step.
type Match struct {
	ID string

	mu        sync.Mutex
	state     *game.GameState
	tick      uint64
	seats     [2]Seat
	pending   []game.Input
	history   *History
	done      bool
	startedAt time.Time
	outcome   *results.Outcome
}

// stepResult tells the registry what IO a completed step needs.
type stepResult struct {
	ended    bool
	resolved bool // a shot settled this tick; snapshot worth caching
	snapshot []byte
}

// Registry owns every active match. The registry lock guards only the maps;
// each match serializes its own state.
type Registry struct {
	mu            sync.RWMutex
	matches       map[string]*Match
	playerToMatch map[string]string

	cfg      *config.Config
	rdb      *redis.Client
	recorder results.Recorder
}

func NewRegistry(cfg *config.Config, rdb *redis.Client, recorder results.Recorder) *Registry {
	if recorder == nil {
		recorder = results.Noop{}
	}
	return &Registry{
		matches:       make(map[string]*Match),
		playerToMatch: make(map[string]string),
		cfg:           cfg,
		rdb:           rdb,
		recorder:      recorder,
	}
}

func generateMatchID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return "match_" + hex.EncodeToString(b)
}

// CreateMatch racks a fresh game for the two seats, registers it, and sends
// both players the start message plus the opening snapshot. Seat a breaks.
func (r *Registry) CreateMatch(a, b Seat) *Match {
	m := &Match{
		ID:        generateMatchID(),
		state:     game.Initialize(a.PlayerID(), b.PlayerID()),
		seats:     [2]Seat{a, b},
		history:   NewHistory(r.cfg.HistoryWindowSeconds * r.cfg.TickRateHz),
		startedAt: time.Now(),
	}

	r.mu.Lock()
	r.matches[m.ID] = m
	r.playerToMatch[a.PlayerID()] = m.ID
	r.playerToMatch[b.PlayerID()] = m.ID
	r.mu.Unlock()

	log.Printf("[REGISTRY] Match created: %s (%s vs %s)", m.ID, a.PlayerID(), b.PlayerID())

	a.Send(GameStartMessage{Type: TypeGameStart, GameID: m.ID, OpponentID: b.PlayerID()})
	b.Send(GameStartMessage{Type: TypeGameStart, GameID: m.ID, OpponentID: a.PlayerID()})

	m.mu.Lock()
	snap := m.snapshotLocked()
	m.mu.Unlock()
	a.SendState(snap)
	b.SendState(snap)

	return m
}

// MatchForPlayer returns the player's active match, if any.
func (r *Registry) MatchForPlayer(playerID string) (*Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.playerToMatch[playerID]
	if !ok {
		return nil, false
	}
	m, ok := r.matches[id]
	return m, ok
}

// ActiveCount returns the number of live matches.
func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.matches)
}

// SubmitInput validates the action against the canonical state and buffers it
// for the next tick. Any rejection answers with a forced snapshot so the
// client can re-sync; the caller gets the rejection reason to relay.
func (r *Registry) SubmitInput(playerID string, in game.Input) error {
	m, ok := r.MatchForPlayer(playerID)
	if !ok {
		return ErrUnknownPlayer
	}
	return m.submitInput(playerID, in)
}

func (m *Match) submitInput(playerID string, in game.Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return game.ErrGameEnded
	}

	// A tickless input (clientTick omitted) makes no claim about past
	// state and is judged against the current one. An input aimed at a
	// tick that has already left the history window cannot be judged
	// against anything; force the client forward.
	if oldest, ok := m.history.OldestTick(); ok && in.Tick > 0 && in.Tick < oldest {
		m.sendSnapshotLocked(playerID)
		return ErrStaleInput
	}

	if err := game.ValidateInput(m.state, playerID, in); err != nil {
		m.sendSnapshotLocked(playerID)
		return err
	}

	in.PlayerID = playerID
	m.pending = append(m.pending, in)
	return nil
}

// step advances the match by one tick: apply buffered inputs, run the
// simulation, record history, and push the new snapshot to both seats.
func (m *Match) step(dt float64) stepResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.done {
		return stepResult{ended: true}
	}

	m.tick++

	// Inputs were validated at submission; re-check against the state they
	// actually land on, since it may have advanced since.
	for _, in := range m.pending {
		if game.ValidateInput(m.state, in.PlayerID, in) != nil {
			m.sendSnapshotLocked(in.PlayerID)
			continue
		}
		game.ApplyStrike(m.state, in)
	}
	m.pending = m.pending[:0]

	out := game.Step(m.state, dt)
	m.history.Record(m.tick, m.state)

	res := stepResult{snapshot: m.snapshotLocked()}
	m.broadcastLocked(res.snapshot)
	if out.Quiescent || out.GameOver {
		res.resolved = true
	}

	if out.GameOver {
		m.finishLocked(out.Winner, out.Loser, m.state.EndReason,
			fmt.Sprintf("%s wins: %s", out.Winner, m.state.EndReason))
		res.ended = true
	}
	return res
}

func (m *Match) snapshotLocked() []byte {
	data, err := json.Marshal(StateUpdateMessage{Type: TypeStateUpdate, Tick: m.tick, State: m.state})
	if err != nil {
		log.Printf("[REGISTRY] Failed to marshal snapshot for match %s: %v", m.ID, err)
		return nil
	}
	return data
}

func (m *Match) broadcastLocked(snapshot []byte) {
	if snapshot == nil {
		return
	}
	for _, seat := range m.seats {
		seat.SendState(snapshot)
	}
}

func (m *Match) sendSnapshotLocked(playerID string) {
	snap := m.snapshotLocked()
	for _, seat := range m.seats {
		if seat.PlayerID() == playerID {
			seat.SendState(snap)
			return
		}
	}
}

func (m *Match) finishLocked(winner, loser, reason, message string) {
	m.done = true
	m.outcome = &results.Outcome{
		MatchID:    m.ID,
		WinnerID:   winner,
		LoserID:    loser,
		EndReason:  reason,
		ShotsTaken: m.state.ShotNumber,
		Duration:   time.Since(m.startedAt),
	}
	for _, seat := range m.seats {
		seat.Send(GameEndMessage{Type: TypeGameEnd, Message: message})
	}
}

// Tick advances every live match by one step. Called by the scheduler at the
// fixed rate; a panic in one match is contained to that match.
func (r *Registry) Tick(dt float64) {
	r.mu.RLock()
	active := make([]*Match, 0, len(r.matches))
	for _, m := range r.matches {
		active = append(active, m)
	}
	r.mu.RUnlock()

	for _, m := range active {
		r.stepMatch(m, dt)
	}
}

func (r *Registry) stepMatch(m *Match, dt float64) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[REGISTRY] Panic in match %s: %v\n%s", m.ID, rec, debug.Stack())
			r.abortMatch(m)
		}
	}()

	res := m.step(dt)
	if res.resolved || res.ended {
		r.cacheSnapshot(m.ID, res.snapshot)
	}
	if res.ended {
		r.completeMatch(m)
	}
}

// cacheSnapshot stores the latest settled state in Redis so reconnecting
// clients and external readers can fetch it without touching the simulation.
func (r *Registry) cacheSnapshot(matchID string, snapshot []byte) {
	if r.rdb == nil || snapshot == nil {
		return
	}
	ctx := context.Background()
	key := "match:" + matchID + ":state"
	ttl := time.Duration(r.cfg.SnapshotCacheTTLMin) * time.Minute
	if err := r.rdb.SetEx(ctx, key, snapshot, ttl).Err(); err != nil {
		log.Printf("[REGISTRY] Failed to cache snapshot for match %s: %v", matchID, err)
	}
}

func (r *Registry) completeMatch(m *Match) {
	m.mu.Lock()
	outcome := m.outcome
	m.outcome = nil // record at most once
	m.mu.Unlock()

	if outcome != nil {
		if err := r.recorder.Record(context.Background(), *outcome); err != nil {
			log.Printf("[REGISTRY] Failed to record outcome for match %s: %v", m.ID, err)
		}
		log.Printf("[REGISTRY] Match %s ended: winner=%s reason=%s shots=%d",
			m.ID, outcome.WinnerID, outcome.EndReason, outcome.ShotsTaken)
	}
	r.remove(m)
}

// abortMatch tears down a match whose simulation panicked. Both players get a
// game end notice; no winner is recorded.
func (r *Registry) abortMatch(m *Match) {
	m.mu.Lock()
	if !m.done {
		m.done = true
		for _, seat := range m.seats {
			seat.Send(GameEndMessage{Type: TypeGameEnd, Message: "match aborted due to an internal error"})
		}
	}
	m.mu.Unlock()
	r.remove(m)
}

// HandleDisconnect forfeits the leaver's match, if any. The remaining player
// wins by walkover.
func (r *Registry) HandleDisconnect(playerID string) {
	m, ok := r.MatchForPlayer(playerID)
	if !ok {
		return
	}

	m.mu.Lock()
	if !m.done {
		var winner string
		for _, seat := range m.seats {
			if seat.PlayerID() != playerID {
				winner = seat.PlayerID()
			}
		}
		m.finishLocked(winner, playerID, "disconnect", "opponent disconnected")
	}
	m.mu.Unlock()

	r.completeMatch(m)
}

func (r *Registry) remove(m *Match) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, seat := range m.seats {
		if r.playerToMatch[seat.PlayerID()] == m.ID {
			delete(r.playerToMatch, seat.PlayerID())
		}
	}
	delete(r.matches, m.ID)
}
