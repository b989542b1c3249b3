package match

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/effects"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
)

// State represents the state of a match.
type State int

const (
	StateInProgress State = iota
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "IN_PROGRESS"
	case StateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

var (
	ErrMatchFinished  = errors.New("match is finished")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrCannotPassLead = errors.New("cannot pass while leading an empty field")
	ErrNoObligation   = errors.New("no pending obligation")

	// ErrBadObligationCards marks a resolution attempt whose cards do
	// not satisfy the pending obligation (wrong count or not in hand).
	ErrBadObligationCards = errors.New("cards do not satisfy the obligation")
)

// Seat describes one participant at match creation. Demotion data from
// the previous round feeds the adauchi-ban and security-law checks.
type Seat struct {
	ID        string
	Name      string
	Demoted   bool
	DemotedBy string
}

// Player is one seated participant and their owned hand.
type Player struct {
	ID        string
	Name      string
	Hand      *game.Hand
	Finished  bool
	FinishPos int
	Demoted   bool
	DemotedBy string
}

// Obligation is a pending forced discard or hand transfer produced by
// an effect, to be resolved by the named player before play continues.
type Obligation struct {
	PlayerID string
	Effect   effects.Effect
	Count    int
}

// Match is the turn orchestrator around the engine core: it owns the
// mutable game state, asks the validator about candidate plays, records
// accepted plays on the field, and applies whatever effects the
// analyzer detects. The engine itself never mutates anything here.
type Match struct {
	ID string

	mu      sync.Mutex
	state   State
	players []*Player
	field   *game.Field
	rules   rules.RuleConfig

	inversions      rules.Inversions
	locks           rules.Locks
	tenFree         bool
	arthurActive    bool
	omenActive      bool
	eightCutPending bool

	turn            int // index into players
	direction       int // +1 or -1
	lastPlayed      int // index of the player who made the last play, -1 after a clear
	passesSinceLast int
	pendingSkips    int
	obligations     []Obligation
	finishCount     int
	replay          *Replay
	onFinish        func(*Match)
	logger          *zap.Logger
}

// New creates a match, deals the full deck to the seats and starts with
// the first seat leading.
func New(seats []Seat, rc rules.RuleConfig, seed int64, logger *zap.Logger) (*Match, error) {
	if len(seats) < 2 {
		return nil, fmt.Errorf("need at least 2 players, got %d", len(seats))
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	deck := game.NewDeck()
	game.Shuffle(deck, rand.New(rand.NewSource(seed)))
	hands := game.Deal(deck, len(seats))

	m := &Match{
		ID:         uuid.NewString(),
		state:      StateInProgress,
		field:      game.NewField(),
		rules:      rc,
		direction:  1,
		lastPlayed: -1,
		logger:     logger,
	}
	for i, seat := range seats {
		id := seat.ID
		if id == "" {
			id = uuid.NewString()
		}
		m.players = append(m.players, &Player{
			ID:        id,
			Name:      seat.Name,
			Hand:      hands[i],
			Demoted:   seat.Demoted,
			DemotedBy: seat.DemotedBy,
		})
	}
	m.replay = NewReplay(m.ID)
	m.recordSnapshot("deal", "")

	logger.Info("match created",
		zap.String("match_id", m.ID),
		zap.Int("players", len(seats)),
	)
	return m, nil
}

// State returns the match state.
func (m *Match) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Finished reports whether the match has ended.
func (m *Match) Finished() bool {
	return m.State() == StateFinished
}

// CurrentPlayerID returns the player whose turn it is.
func (m *Match) CurrentPlayerID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[m.turn].ID
}

// Player returns the seated player with the given ID.
func (m *Match) Player(id string) (*Player, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerByID(id)
}

// Standing returns the read-only standings snapshot consumed by the
// validator's terminal-play stages.
func (m *Match) Standing() []rules.PlayerStanding {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.standingLocked()
}

// Obligations returns the pending forced-discard obligations.
func (m *Match) Obligations() []Obligation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Obligation, len(m.obligations))
	copy(out, m.obligations)
	return out
}

// Replay returns the match's replay recorder.
func (m *Match) Replay() *Replay {
	return m.replay
}

// SetFinishHook registers a callback invoked once when the match
// reaches StateFinished. The callback runs on its own goroutine and may
// call back into the match.
func (m *Match) SetFinishHook(fn func(*Match)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFinish = fn
}

// Placement is one player's final position in a finished match.
type Placement struct {
	PlayerID  string
	Name      string
	Position  int
	Demoted   bool
	DemotedBy string
}

// Placements returns the standings ordered by finish position. Only
// meaningful once the match has finished.
func (m *Match) Placements() []Placement {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Placement, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, Placement{
			PlayerID:  p.ID,
			Name:      p.Name,
			Position:  p.FinishPos,
			Demoted:   p.Demoted,
			DemotedBy: p.DemotedBy,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out
}

func (m *Match) playerByID(id string) (*Player, bool) {
	for _, p := range m.players {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

func (m *Match) standingLocked() []rules.PlayerStanding {
	out := make([]rules.PlayerStanding, 0, len(m.players))
	for _, p := range m.players {
		out = append(out, rules.PlayerStanding{
			ID:        p.ID,
			Finished:  p.Finished,
			FinishPos: p.FinishPos,
			Demoted:   p.Demoted,
			DemotedBy: p.DemotedBy,
		})
	}
	return out
}

// contextLocked assembles the per-call validation snapshot. The
// security-law hook runs the analyzer against the state as if the play
// had just landed on the field.
func (m *Match) contextLocked() rules.Context {
	ctx := rules.Context{
		Inversions: m.inversions,
		Locks:      m.locks,
		TenFree:    m.tenFree,
		Arthur:     m.arthurActive,
		Field:      m.field,
		Rules:      m.rules,
		Standing:   m.standingLocked(),
	}
	ctx.TriggersRevolution = func(p game.Play) bool {
		probe := game.NewField()
		for _, e := range m.field.History() {
			probe.Append(e.Play, e.OwnerID)
		}
		probe.Append(p, "")
		st := m.gameStateLocked()
		st.Field = probe
		return effects.TriggersRevolution(p, st)
	}
	return ctx
}

func (m *Match) gameStateLocked() *effects.GameState {
	return &effects.GameState{
		Field:           m.field,
		Rules:           m.rules,
		Locks:           m.locks,
		Inversions:      m.inversions,
		OmenActive:      m.omenActive,
		EightCutPending: m.eightCutPending,
		TenFreeActive:   m.tenFree,
		ArthurActive:    m.arthurActive,
	}
}

// Context returns a validation context snapshot for external callers
// (legal-play queries, UI previews).
func (m *Match) Context() rules.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.contextLocked()
}

// LegalPlays enumerates every card subset the named player could
// legally play right now.
func (m *Match) LegalPlays(playerID string) ([][]game.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.playerByID(playerID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	return rules.LegalPlays(p.Hand, p.ID, m.contextLocked()), nil
}
