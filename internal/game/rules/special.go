package rules

import (
	"sort"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
)

// Literal combinations are exceptions to the normal shape rules: they
// are matched against the exact rank multiset of the candidate before
// general classification runs, and short-circuit it when they hit.

// goroawaseLiteral pairs a play type with the exact rank multiset that
// produces it. The names are number puns: 39 "sankyu", 119 the
// emergency call, 893 "yakuza", 4649 "yoroshiku", 5963 "gokurosan".
type goroawaseLiteral struct {
	playType game.PlayType
	ranks    []game.Rank
}

var goroawaseLiterals = []goroawaseLiteral{
	{game.PlayGoro39, []game.Rank{3, 9}},
	{game.PlayGoro119, []game.Rank{1, 1, 9}},
	{game.PlayGoro893, []game.Rank{8, 9, 3}},
	{game.PlayGoro4649, []game.Rank{4, 6, 4, 9}},
	{game.PlayGoro5963, []game.Rank{5, 9, 6, 3}},
}

// classifySpecial tries the literal combinations enabled by the
// configuration. It returns the resulting play and true when one
// matched.
func classifySpecial(cards []game.Card, rc RuleConfig) (game.Play, bool) {
	if rc.CrossDressing {
		if p, ok := classifyCrossDressing(cards); ok {
			return p, true
		}
	}
	if rc.Goroawase {
		for _, lit := range goroawaseLiterals {
			if matchesRankMultiset(cards, lit.ranks) {
				strength := 0
				for _, c := range cards {
					if c.Strength > strength {
						strength = c.Strength
					}
				}
				return game.Play{
					Cards:    append([]game.Card(nil), cards...),
					Type:     lit.playType,
					Strength: strength,
				}, true
			}
		}
	}
	return game.Play{}, false
}

// classifyCrossDressing matches equal nonzero counts of queens and
// kings filling the whole set. The play compares as a rank-10
// equivalent regardless of its actual cards.
func classifyCrossDressing(cards []game.Card) (game.Play, bool) {
	queens, kings := 0, 0
	for _, c := range cards {
		switch c.Rank {
		case game.RankQueen:
			queens++
		case game.RankKing:
			kings++
		default:
			return game.Play{}, false
		}
	}
	if queens == 0 || queens != kings {
		return game.Play{}, false
	}
	return game.Play{
		Cards:    append([]game.Card(nil), cards...),
		Type:     game.PlayCrossDressing,
		Strength: game.StrengthOf(game.Rank(10)),
	}, true
}

// matchesRankMultiset reports whether the cards' ranks are exactly the
// given multiset. Jokers never participate in literals.
func matchesRankMultiset(cards []game.Card, ranks []game.Rank) bool {
	if len(cards) != len(ranks) {
		return false
	}
	got := make([]int, 0, len(cards))
	for _, c := range cards {
		if c.IsJoker() {
			return false
		}
		got = append(got, int(c.Rank))
	}
	want := make([]int, 0, len(ranks))
	for _, r := range ranks {
		want = append(want, int(r))
	}
	sort.Ints(got)
	sort.Ints(want)
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// isSandstorm matches a triple whose shared rank is 3; a joker may fill
// in, same as any triple.
func isSandstorm(p game.Play) bool {
	return p.Type == game.PlayTriple && p.ContainsRank(game.Rank(3)) && !hasOtherRank(p, game.Rank(3))
}

// isDoubleKing matches a pair of kings (joker fill allowed).
func isDoubleKing(p game.Play) bool {
	return p.Type == game.PlayPair && p.ContainsRank(game.RankKing) && !hasOtherRank(p, game.RankKing)
}

// isPowerSeven matches a lone seven of the configured power color.
func isPowerSeven(p game.Play, rc RuleConfig) bool {
	if p.Type != game.PlaySingle || len(p.Cards) != 1 {
		return false
	}
	c := p.Cards[0]
	if c.IsJoker() || c.Rank != game.Rank(7) {
		return false
	}
	if rc.RedSevenPower && c.Suit.IsRed() {
		return true
	}
	if rc.BlackSevenPower && !c.Suit.IsRed() {
		return true
	}
	return false
}

func hasOtherRank(p game.Play, rank game.Rank) bool {
	for _, c := range p.Cards {
		if !c.IsJoker() && c.Rank != rank {
			return true
		}
	}
	return false
}

// Effective strengths used only inside the override chain. They are
// fractional so they can sit between natural ranks: the arthur joker
// lands between 10 and 11, the power seven just below the joker.
const (
	arthurJokerStrength = 10.5
	powerSevenStrength  = 15.5
)

// effectiveSingleStrength maps a single play to its override-chain
// comparison value, applying the arthur devaluation of jokers and the
// power-seven promotion where the configuration activates them.
func effectiveSingleStrength(p game.Play, ctx Context) float64 {
	if ctx.Arthur && p.ContainsJoker() {
		return arthurJokerStrength
	}
	if isPowerSeven(p, ctx.Rules) {
		return powerSevenStrength
	}
	return float64(p.Strength)
}
