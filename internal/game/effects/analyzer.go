package effects

import (
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
)

// GameState is the read-only snapshot the analyzer evaluates against.
// Field already includes the analyzed play as its last entry; lock
// trigger predicates look at the entry before it.
type GameState struct {
	Field      *game.Field
	Rules      rules.RuleConfig
	Locks      rules.Locks
	Inversions rules.Inversions

	OmenActive      bool
	EightCutPending bool
	TenFreeActive   bool
	ArthurActive    bool
}

// trigger is one (toggle, predicate, effect) entry. The table is
// evaluated once per play in declaration order; precedence and mutual
// exclusion are applied afterwards, never by branch ordering alone.
type trigger struct {
	effect  Effect
	enabled func(rules.RuleConfig) bool
	match   func(game.Play, *GameState) bool
}

var triggerTable = []trigger{
	{EffectGreatRevolution,
		func(rc rules.RuleConfig) bool { return rc.GreatRevolution },
		func(p game.Play, _ *GameState) bool {
			return p.Type == game.PlayQuad && playGroupRank(p) == game.RankTwo
		}},
	{EffectRevolution,
		func(rc rules.RuleConfig) bool { return rc.Revolution },
		func(p game.Play, _ *GameState) bool { return p.Type == game.PlayQuad }},
	{EffectStairRevolution,
		func(rc rules.RuleConfig) bool { return rc.StairRevolution },
		func(p game.Play, _ *GameState) bool { return p.Type == game.PlayStair && p.Size() >= 5 }},
	{EffectNanasanRevolution,
		func(rc rules.RuleConfig) bool { return rc.NanasanRevolution },
		func(p game.Play, _ *GameState) bool { return isTripleOf(p, game.Rank(7)) }},
	{EffectFusionRevolution,
		func(rc rules.RuleConfig) bool { return rc.FusionRevolution },
		matchFusion},
	{EffectReligiousRevolution,
		func(rc rules.RuleConfig) bool { return rc.ReligiousRevolution && !rc.Omen },
		func(p game.Play, _ *GameState) bool { return isTripleOf(p, game.Rank(6)) }},
	{EffectElevenBack,
		func(rc rules.RuleConfig) bool { return rc.ElevenBack },
		func(p game.Play, _ *GameState) bool { return p.ContainsRank(game.RankJack) }},
	{EffectTwoBack,
		func(rc rules.RuleConfig) bool { return rc.TwoBack },
		func(p game.Play, _ *GameState) bool { return p.ContainsRank(game.RankTwo) }},

	{EffectOmen,
		func(rc rules.RuleConfig) bool { return rc.Omen },
		func(p game.Play, st *GameState) bool {
			return isTripleOf(p, game.Rank(6)) && !st.OmenActive
		}},
	{EffectTenFree,
		func(rc rules.RuleConfig) bool { return rc.TenFree },
		func(p game.Play, _ *GameState) bool { return p.ContainsRank(game.Rank(10)) }},
	{EffectArthur,
		func(rc rules.RuleConfig) bool { return rc.Arthur },
		func(p game.Play, st *GameState) bool {
			return p.Type == game.PlaySingle && playGroupRank(p) == game.RankKing && !st.ArthurActive
		}},

	{EffectEightCut,
		func(rc rules.RuleConfig) bool { return rc.EightCut },
		func(p game.Play, st *GameState) bool {
			return p.ContainsRank(game.Rank(8)) && !st.EightCutPending
		}},
	{EffectSpadeThreeReturn,
		func(rc rules.RuleConfig) bool { return rc.SpadeThreeReturn },
		matchSpadeThreeReturn},
	{EffectTaepodong,
		func(rc rules.RuleConfig) bool { return rc.Taepodong },
		func(p game.Play, _ *GameState) bool { return p.Type == game.PlayTaepodong }},

	{EffectFiveSkip,
		func(rc rules.RuleConfig) bool { return rc.FiveSkip },
		func(p game.Play, _ *GameState) bool { return p.ContainsRank(game.Rank(5)) }},
	{EffectNineReverse,
		func(rc rules.RuleConfig) bool { return rc.NineReverse },
		func(p game.Play, _ *GameState) bool { return p.ContainsRank(game.Rank(9)) }},

	{EffectSevenGive,
		func(rc rules.RuleConfig) bool { return rc.SevenGive },
		func(p game.Play, _ *GameState) bool { return p.ContainsRank(game.Rank(7)) }},
	{EffectTenDiscard,
		func(rc rules.RuleConfig) bool { return rc.TenDiscard },
		func(p game.Play, _ *GameState) bool { return p.ContainsRank(game.Rank(10)) }},

	{EffectSuitLock,
		func(rc rules.RuleConfig) bool { return rc.SuitLock },
		matchSuitLock},
	{EffectNumberLock,
		func(rc rules.RuleConfig) bool { return rc.NumberLock },
		matchNumberLock},
	{EffectColorLock,
		func(rc rules.RuleConfig) bool { return rc.ColorLock },
		matchColorLock},
	{EffectParityLockEven,
		func(rc rules.RuleConfig) bool { return rc.ParityLock },
		func(p game.Play, st *GameState) bool { return matchParityLock(p, st, true) }},
	{EffectParityLockOdd,
		func(rc rules.RuleConfig) bool { return rc.ParityLock },
		func(p game.Play, st *GameState) bool { return matchParityLock(p, st, false) }},
	{EffectDoubleDigitSeal,
		func(rc rules.RuleConfig) bool { return rc.DoubleDigitSeal },
		func(p game.Play, st *GameState) bool {
			return !st.Locks.DoubleDigitSeal && p.Type == game.PlayPair && playGroupRank(p) == game.Rank(9)
		}},
	{EffectHotMilk,
		func(rc rules.RuleConfig) bool { return rc.HotMilk },
		matchHotMilk},
	{EffectPartialLock,
		func(rc rules.RuleConfig) bool { return rc.PartialLock },
		matchPartialLock},
}

// Analyze returns the ordered effects the play activates. It is pure
// with respect to state; most plays emit nothing.
func Analyze(play game.Play, state *GameState) []Effect {
	var fired []Effect
	for _, t := range triggerTable {
		if !t.enabled(state.Rules) {
			continue
		}
		if t.match(play, state) {
			fired = append(fired, t.effect)
		}
	}
	return applyPrecedence(fired, state)
}

// TriggersRevolution reports whether the play would fire any
// revolution-class effect. The validator's security-law stage consumes
// this through the context hook.
func TriggersRevolution(play game.Play, state *GameState) bool {
	for _, e := range Analyze(play, state) {
		if e.IsRevolutionClass() {
			return true
		}
	}
	return false
}

// applyPrecedence enforces the suppression rules: omen silences the
// whole revolution class, a great revolution is exclusive over the
// other same-play revolution checks, and a strict lock fires instead
// of simultaneous suit and number locks.
func applyPrecedence(fired []Effect, state *GameState) []Effect {
	if len(fired) == 0 {
		return nil
	}

	drop := make(map[Effect]bool)

	if state.OmenActive {
		for _, e := range fired {
			if e.IsRevolutionClass() {
				drop[e] = true
			}
		}
	}

	if contains(fired, EffectGreatRevolution) {
		drop[EffectRevolution] = true
		drop[EffectStairRevolution] = true
		drop[EffectNanasanRevolution] = true
	}

	strict := state.Rules.StrictLock &&
		contains(fired, EffectSuitLock) && contains(fired, EffectNumberLock)

	out := make([]Effect, 0, len(fired))
	for _, e := range fired {
		if drop[e] {
			continue
		}
		if strict && e == EffectSuitLock {
			out = append(out, EffectStrictLock)
			continue
		}
		if strict && e == EffectNumberLock {
			continue
		}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func contains(effects []Effect, e Effect) bool {
	for _, x := range effects {
		if x == e {
			return true
		}
	}
	return false
}
