package match

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"sync"
	"time"
)

// Snapshot is one recorded step of a match: who acted, what the field
// and hands looked like afterwards, and which ambient flags were set.
type Snapshot struct {
	Step       int
	Action     string // "deal", "play", "pass"
	ActorID    string
	FieldSize  int
	HandSizes  map[string]int
	Revolution bool
	Timestamp  time.Time
}

// Replay stores sequential snapshots of a match for playback.
type Replay struct {
	MatchID      string
	States       []*Snapshot
	CurrentIndex int
	mu           sync.RWMutex
}

// NewReplay creates a new replay recorder.
func NewReplay(matchID string) *Replay {
	return &Replay{MatchID: matchID}
}

// Record appends a snapshot.
func (r *Replay) Record(s *Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s.Step = len(r.States)
	r.States = append(r.States, s)
}

// Size returns the number of recorded snapshots.
func (r *Replay) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.States)
}

// Start resets playback to the beginning.
func (r *Replay) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CurrentIndex = 0
}

// Next returns the next snapshot, or nil at the end.
func (r *Replay) Next() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CurrentIndex >= len(r.States) {
		return nil
	}
	s := r.States[r.CurrentIndex]
	r.CurrentIndex++
	return s
}

// Previous steps back and returns the snapshot at the new position, or
// nil at the beginning.
func (r *Replay) Previous() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.CurrentIndex == 0 {
		return nil
	}
	r.CurrentIndex--
	return r.States[r.CurrentIndex]
}

// Save writes the replay to a gzip-compressed gob file.
func (r *Replay) Save(path string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	enc := gob.NewEncoder(gz)
	if err := enc.Encode(r.MatchID); err != nil {
		return fmt.Errorf("failed to encode match ID: %w", err)
	}
	if err := enc.Encode(r.States); err != nil {
		return fmt.Errorf("failed to encode states: %w", err)
	}
	return nil
}

// LoadReplay reads a replay saved by Save.
func LoadReplay(path string) (*Replay, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open replay file: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()

	r := &Replay{}
	dec := gob.NewDecoder(gz)
	if err := dec.Decode(&r.MatchID); err != nil {
		return nil, fmt.Errorf("failed to decode match ID: %w", err)
	}
	if err := dec.Decode(&r.States); err != nil {
		return nil, fmt.Errorf("failed to decode states: %w", err)
	}
	return r, nil
}

// recordSnapshot captures the current state into the replay. Callers
// hold the match lock.
func (m *Match) recordSnapshot(action, actorID string) {
	hands := make(map[string]int, len(m.players))
	for _, p := range m.players {
		hands[p.ID] = p.Hand.Size()
	}
	m.replay.Record(&Snapshot{
		Action:     action,
		ActorID:    actorID,
		FieldSize:  m.field.Len(),
		HandSizes:  hands,
		Revolution: m.inversions.Revolution,
		Timestamp:  time.Now(),
	})
}
