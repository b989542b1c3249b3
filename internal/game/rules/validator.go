package rules

import "github.com/statiolake/rich-rich-daifugo-sub002/internal/game"

// Outcome is the structured tag of a validation verdict: which stage or
// rule produced it. Presentation text lives in Label, keeping the
// validator free of display concerns.
type Outcome string

const (
	OutcomeAccepted            Outcome = "ACCEPTED"
	OutcomeNotInHand           Outcome = "NOT_IN_HAND"
	OutcomeInvalidCombination  Outcome = "INVALID_COMBINATION"
	OutcomeCombinationDisabled Outcome = "COMBINATION_DISABLED"
	OutcomeSuitLock            Outcome = "SUIT_LOCK"
	OutcomeNumberLock          Outcome = "NUMBER_LOCK"
	OutcomeParityLock          Outcome = "PARITY_LOCK"
	OutcomeDoubleDigitSeal     Outcome = "DOUBLE_DIGIT_SEAL"
	OutcomeHotMilk             Outcome = "HOT_MILK"
	OutcomePartialLock         Outcome = "PARTIAL_LOCK"
	OutcomeStrength            Outcome = "STRENGTH"
	OutcomeForbiddenFinish     Outcome = "FORBIDDEN_FINISH"
	OutcomeAdauchiBan          Outcome = "ADAUCHI_BAN"
	OutcomeSecurityLaw         Outcome = "SECURITY_LAW"
	OutcomeInternalError       Outcome = "INTERNAL_ERROR"
)

var outcomeLabels = map[Outcome]string{
	OutcomeAccepted:            "accepted",
	OutcomeNotInHand:           "card is not in your hand",
	OutcomeInvalidCombination:  "not a valid combination",
	OutcomeCombinationDisabled: "that combination is disabled in this game",
	OutcomeSuitLock:            "suit lock is active",
	OutcomeNumberLock:          "number lock is active",
	OutcomeParityLock:          "parity restriction is active",
	OutcomeDoubleDigitSeal:     "double-digit ranks are sealed",
	OutcomeHotMilk:             "hot milk: only red cards may be played",
	OutcomePartialLock:         "partial suit lock is active",
	OutcomeStrength:            "not strong enough to follow",
	OutcomeForbiddenFinish:     "that card may not finish a hand",
	OutcomeAdauchiBan:          "revenge finish is banned",
	OutcomeSecurityLaw:         "the security law forbids a demoted player's revolution",
	OutcomeInternalError:       "internal validation error",
}

// Override names which strength override accepted a play. Informational
// only: callers use it to drive effect preview, never for semantics.
type Override string

const (
	OverrideNone             Override = ""
	OverrideDownNumber       Override = "DOWN_NUMBER"
	OverrideTenFree          Override = "TEN_FREE"
	OverrideTrump            Override = "TRUMP"
	OverrideFusion           Override = "FUSION"
	OverrideCrossDressing    Override = "CROSS_DRESSING"
	OverrideSandstorm        Override = "SANDSTORM"
	OverrideSpadeThreeReturn Override = "SPADE_THREE_RETURN"
	OverrideSpadeStair       Override = "SPADE_STAIR"
	OverrideDoubleKing       Override = "DOUBLE_KING"
	OverrideArthur           Override = "ARTHUR"
	OverrideSevenPower       Override = "SEVEN_POWER"
)

// Result is the verdict of a validation call. Every outcome is a value;
// the validator has no exceptional failure mode.
type Result struct {
	Valid          bool
	Outcome        Outcome
	Label          string
	Classification *game.Play
	Override       Override
}

func reject(outcome Outcome) Result {
	return Result{Valid: false, Outcome: outcome, Label: outcomeLabels[outcome]}
}

func accept(play game.Play, override Override) Result {
	return Result{
		Valid:          true,
		Outcome:        OutcomeAccepted,
		Label:          outcomeLabels[OutcomeAccepted],
		Classification: &play,
		Override:       override,
	}
}

// Validate is the central decision procedure: given the owner's hand, a
// candidate card set and a context snapshot, it returns accept or
// reject with the rule that decided. Stages run in a fixed order and
// the first rejection short-circuits the rest.
func Validate(hand *game.Hand, ownerID string, cards []game.Card, ctx Context) Result {
	// Stage 1: ownership.
	if len(cards) == 0 || !hand.ContainsAll(cards) {
		return reject(OutcomeNotInHand)
	}

	// Stage 2: combination. Literal exceptions first, then the general
	// classifier with the configured shape families.
	play, ok := classifySpecial(cards, ctx.Rules)
	if !ok {
		play, ok = game.Classify(cards, ctx.Rules.ClassifyOptions())
		if !ok {
			return reject(OutcomeInvalidCombination)
		}
		if play.Type == game.PlayStair && !ctx.Rules.Stair {
			return reject(OutcomeCombinationDisabled)
		}
	}

	// Stage 3: down-number shortcut. Bypasses locks and strength
	// entirely; only the forbidden-finish check still applies.
	if isDownNumber(play, ctx) {
		if r, rejected := checkForbiddenFinish(hand, cards, ctx); rejected {
			return r
		}
		return accept(play, OverrideDownNumber)
	}

	// Stage 4: structural locks. All active locks must hold.
	if r, rejected := checkLocks(play, ctx); rejected {
		return r
	}

	// Stage 5: strength.
	override := OverrideNone
	if cur, onField := ctx.Field.Current(); onField {
		if len(cur.Cards) == 0 {
			// The field claims a play with no cards; a correctness bug
			// upstream, surfaced as a plain rejection.
			return reject(OutcomeInternalError)
		}
		decided, accepted, ov := compareStrength(cur, play, ctx)
		if !decided {
			accepted = game.CanFollow(cur, play, ctx.Inversions.Parity())
		}
		if !accepted {
			return reject(OutcomeStrength)
		}
		override = ov
	}

	// Stage 6: forbidden finish.
	if r, rejected := checkForbiddenFinish(hand, cards, ctx); rejected {
		return r
	}

	// Stage 7: adauchi ban. A player may not finish against the sole
	// remaining opponent they themselves demoted.
	if ctx.Rules.AdauchiBan && hand.Size() == len(cards) {
		if opp, sole := ctx.soleRemainingOpponent(ownerID); sole && opp.DemotedBy == ownerID {
			return reject(OutcomeAdauchiBan)
		}
	}

	// Stage 8: security law. A previously demoted player may not fire a
	// revolution-class effect.
	if ctx.Rules.SecurityLaw && ctx.TriggersRevolution != nil {
		if st, known := ctx.standingOf(ownerID); known && st.Demoted && ctx.TriggersRevolution(play) {
			return reject(OutcomeSecurityLaw)
		}
	}

	return accept(play, override)
}

// isDownNumber matches a single of the same suit as the field's current
// single with strength exactly one less.
func isDownNumber(play game.Play, ctx Context) bool {
	if !ctx.Rules.DownNumber || play.Type != game.PlaySingle {
		return false
	}
	cur, ok := ctx.Field.Current()
	if !ok || cur.Type != game.PlaySingle || len(cur.Cards) != 1 {
		return false
	}
	fc, cc := cur.Cards[0], play.Cards[0]
	return !fc.IsJoker() && !cc.IsJoker() &&
		cc.Suit == fc.Suit && cc.Strength == fc.Strength-1
}

// checkLocks evaluates every active lock against the play. Jokers are
// exempt from all suit- and rank-based restrictions.
func checkLocks(play game.Play, ctx Context) (Result, bool) {
	if s := ctx.Locks.Suit; s != nil {
		for _, c := range play.Cards {
			if !c.IsJoker() && c.Suit != *s {
				return reject(OutcomeSuitLock), true
			}
		}
	}
	if ctx.Locks.Number {
		if cur, ok := ctx.Field.Current(); ok {
			diff := play.Strength - cur.Strength
			if diff != 1 && diff != -1 {
				return reject(OutcomeNumberLock), true
			}
		}
	}
	if p := ctx.Locks.Parity; p != ParityNone {
		for _, c := range play.Cards {
			if c.IsJoker() {
				continue
			}
			even := int(c.Rank)%2 == 0
			if (p == ParityEven) != even {
				return reject(OutcomeParityLock), true
			}
		}
	}
	if ctx.Locks.DoubleDigitSeal {
		for _, c := range play.Cards {
			if !c.IsJoker() && c.Rank >= 10 {
				return reject(OutcomeDoubleDigitSeal), true
			}
		}
	}
	if ctx.Locks.HotMilk == HotMilkWarm {
		for _, c := range play.Cards {
			if !c.IsJoker() && !c.Suit.IsRed() {
				return reject(OutcomeHotMilk), true
			}
		}
	}
	if len(ctx.Locks.PartialSuits) > 0 {
		allowed := make(map[game.Suit]struct{}, len(ctx.Locks.PartialSuits))
		for _, s := range ctx.Locks.PartialSuits {
			allowed[s] = struct{}{}
		}
		for _, c := range play.Cards {
			if c.IsJoker() {
				continue
			}
			if _, ok := allowed[c.Suit]; !ok {
				return reject(OutcomePartialLock), true
			}
		}
	}
	return Result{}, false
}

// checkForbiddenFinish rejects a play that would empty the hand using a
// forbidden rank.
func checkForbiddenFinish(hand *game.Hand, cards []game.Card, ctx Context) (Result, bool) {
	if !ctx.Rules.ForbiddenFinish || hand.Size() != len(cards) {
		return Result{}, false
	}
	forbidden := ctx.Rules.ForbiddenRanks()
	for _, c := range cards {
		for _, r := range forbidden {
			if c.Rank == r {
				return reject(OutcomeForbiddenFinish), true
			}
		}
	}
	return Result{}, false
}
