package rules

import "github.com/statiolake/rich-rich-daifugo-sub002/internal/game"

// ValidateFunc judges one candidate card set.
type ValidateFunc func(cards []game.Card) Result

// EnumerateLegalSubsets enumerates every non-empty subset of the hand
// and keeps those the validator accepts. The rule catalogue is too
// irregular for a closed-form shortcut to be provably correct, so the
// enumeration is deliberately exact: 2^n - 1 candidates. Callers
// needing bounded latency must cap the hand size before invoking it.
func EnumerateLegalSubsets(hand *game.Hand, validate ValidateFunc) [][]game.Card {
	cards := hand.Cards()
	n := len(cards)
	if n == 0 {
		return nil
	}

	var legal [][]game.Card
	for mask := 1; mask < 1<<n; mask++ {
		subset := make([]game.Card, 0, n)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, cards[i])
			}
		}
		if validate(subset).Valid {
			legal = append(legal, subset)
		}
	}
	return legal
}

// LegalPlays is the common wiring of EnumerateLegalSubsets to the
// validator under a fixed context.
func LegalPlays(hand *game.Hand, ownerID string, ctx Context) [][]game.Card {
	return EnumerateLegalSubsets(hand, func(cards []game.Card) Result {
		return Validate(hand, ownerID, cards, ctx)
	})
}

// ForcedDiscardIneligible returns the subsets whose play would be
// rejected as an illegal finish: accepted by every stage except the
// terminal-play rules. Used for forced-discard eligibility queries.
func ForcedDiscardIneligible(hand *game.Hand, ownerID string, ctx Context) [][]game.Card {
	var out [][]game.Card
	for _, subset := range EnumerateLegalSubsets(hand, func(cards []game.Card) Result {
		relaxed := ctx
		relaxed.Rules.ForbiddenFinish = false
		relaxed.Rules.AdauchiBan = false
		relaxed.Rules.SecurityLaw = false
		return Validate(hand, ownerID, cards, relaxed)
	}) {
		if r := Validate(hand, ownerID, subset, ctx); !r.Valid {
			out = append(out, subset)
		}
	}
	return out
}
