package rules

import "github.com/statiolake/rich-rich-daifugo-sub002/internal/game"

// ParityRestriction narrows plays to even or odd ranks while active.
type ParityRestriction string

const (
	ParityNone ParityRestriction = ""
	ParityEven ParityRestriction = "even"
	ParityOdd  ParityRestriction = "odd"
)

// HotMilkState is the hot-milk latch: while warm, only red-suited cards
// may be played.
type HotMilkState string

const (
	HotMilkNone HotMilkState = ""
	HotMilkWarm HotMilkState = "warm"
)

// Inversions are the currently active strength-order inversion flags.
// Each flag is independent; their composition is the odd parity of the
// set, so any even number of simultaneous inversions cancels out.
type Inversions struct {
	Revolution          bool
	ElevenBack          bool
	TwoBack             bool
	ReligiousRevolution bool
}

// Parity returns the composed inversion flag as a chained not-equal.
func (iv Inversions) Parity() bool {
	return iv.Revolution != iv.ElevenBack != iv.TwoBack != iv.ReligiousRevolution
}

// Locks are the latched restrictions on legal plays. Once set they
// persist across turns until the orchestrator clears them on a
// field-clearing effect; the engine only reads them.
type Locks struct {
	Suit            *game.Suit
	Number          bool
	Parity          ParityRestriction
	DoubleDigitSeal bool
	HotMilk         HotMilkState
	PartialSuits    []game.Suit // nil when inactive
	TrumpRank       game.Rank   // 0 when no trump is called
}

// PlayerStanding is the read-only player snapshot consumed for the
// terminal-play rules (adauchi ban and the security law).
type PlayerStanding struct {
	ID        string
	Finished  bool
	FinishPos int
	Demoted   bool   // was demoted to last place in a previous round
	DemotedBy string // player whose finish caused the demotion
}

// Context is the read-only snapshot assembled by the orchestrator for
// every validation call. The engine never retains it across calls.
type Context struct {
	Inversions Inversions
	Locks      Locks

	// TenFree and Arthur are latched override states, set and cleared
	// by the orchestrator like the inversion flags.
	TenFree bool
	Arthur  bool

	Field    *game.Field
	Rules    RuleConfig
	Standing []PlayerStanding

	// TriggersRevolution lets the security-law stage ask the effect
	// analyzer whether a play would fire a revolution-class effect
	// without the validator depending on the analyzer package. Nil
	// disables the check.
	TriggersRevolution func(game.Play) bool
}

// standingOf returns the standing entry for a player ID.
func (c Context) standingOf(id string) (PlayerStanding, bool) {
	for _, s := range c.Standing {
		if s.ID == id {
			return s, true
		}
	}
	return PlayerStanding{}, false
}

// soleRemainingOpponent returns the single unfinished player other than
// the given one, if exactly one such player exists.
func (c Context) soleRemainingOpponent(id string) (PlayerStanding, bool) {
	var found PlayerStanding
	count := 0
	for _, s := range c.Standing {
		if s.ID == id || s.Finished {
			continue
		}
		found = s
		count++
	}
	if count != 1 {
		return PlayerStanding{}, false
	}
	return found, true
}
