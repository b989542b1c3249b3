package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
)

func TestGoroawaseLiterals(t *testing.T) {
	rc := StandardRules()
	rc.Goroawase = true

	tests := []struct {
		name  string
		ranks []game.Rank
		want  game.PlayType
	}{
		{"sankyu", []game.Rank{3, 9}, game.PlayGoro39},
		{"emergency call", []game.Rank{1, 1, 9}, game.PlayGoro119},
		{"yakuza", []game.Rank{8, 9, 3}, game.PlayGoro893},
		{"yoroshiku", []game.Rank{4, 6, 4, 9}, game.PlayGoro4649},
		{"gokurosan", []game.Rank{5, 9, 6, 3}, game.PlayGoro5963},
	}
	suits := []game.Suit{game.SuitSpade, game.SuitHeart, game.SuitDiamond, game.SuitClub}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := make([]game.Card, 0, len(tt.ranks))
			for i, r := range tt.ranks {
				cs = append(cs, card(suits[i%len(suits)], r))
			}
			p, ok := classifySpecial(cs, rc)
			require.True(t, ok)
			assert.Equal(t, tt.want, p.Type)
		})
	}

	t.Run("order of cards is irrelevant", func(t *testing.T) {
		cs := []game.Card{
			card(game.SuitHeart, game.Rank(9)),
			card(game.SuitSpade, game.Rank(3)),
		}
		p, ok := classifySpecial(cs, rc)
		require.True(t, ok)
		assert.Equal(t, game.PlayGoro39, p.Type)
	})

	t.Run("jokers never fill literals", func(t *testing.T) {
		cs := []game.Card{card(game.SuitSpade, game.Rank(3)), game.NewJoker()}
		_, ok := classifySpecial(cs, rc)
		assert.False(t, ok)
	})

	t.Run("disabled by default", func(t *testing.T) {
		cs := []game.Card{
			card(game.SuitSpade, game.Rank(3)),
			card(game.SuitHeart, game.Rank(9)),
		}
		_, ok := classifySpecial(cs, StandardRules())
		assert.False(t, ok)
	})
}

func TestGoroawaseValidation(t *testing.T) {
	// A 3 and a 9 are no pair; the literal is what admits them.
	rc := StandardRules()
	rc.Goroawase = true

	cs := []game.Card{
		card(game.SuitSpade, game.Rank(3)),
		card(game.SuitHeart, game.Rank(9)),
	}
	hand := game.NewHand(cs...)
	hand.Add(card(game.SuitClub, game.Rank(4)))

	r := Validate(hand, "p1", cs, ctxWith(rc))
	require.True(t, r.Valid)
	assert.Equal(t, game.PlayGoro39, r.Classification.Type)

	r = Validate(hand, "p1", cs, ctxWith(StandardRules()))
	assert.Equal(t, OutcomeInvalidCombination, r.Outcome)
}

func TestClassifyCrossDressing(t *testing.T) {
	t.Run("one queen one king", func(t *testing.T) {
		p, ok := classifyCrossDressing([]game.Card{
			card(game.SuitSpade, game.RankQueen),
			card(game.SuitHeart, game.RankKing),
		})
		require.True(t, ok)
		assert.Equal(t, game.PlayCrossDressing, p.Type)
		assert.Equal(t, 10, p.Strength)
	})

	t.Run("two of each", func(t *testing.T) {
		_, ok := classifyCrossDressing([]game.Card{
			card(game.SuitSpade, game.RankQueen),
			card(game.SuitHeart, game.RankQueen),
			card(game.SuitSpade, game.RankKing),
			card(game.SuitHeart, game.RankKing),
		})
		assert.True(t, ok)
	})

	t.Run("unbalanced counts rejected", func(t *testing.T) {
		_, ok := classifyCrossDressing([]game.Card{
			card(game.SuitSpade, game.RankQueen),
			card(game.SuitHeart, game.RankQueen),
			card(game.SuitSpade, game.RankKing),
		})
		assert.False(t, ok)
	})

	t.Run("foreign rank rejected", func(t *testing.T) {
		_, ok := classifyCrossDressing([]game.Card{
			card(game.SuitSpade, game.RankQueen),
			card(game.SuitHeart, game.RankJack),
		})
		assert.False(t, ok)
	})
}

func TestSandstormPredicate(t *testing.T) {
	triple := func(cs ...game.Card) game.Play {
		return game.Play{Cards: cs, Type: game.PlayTriple, Strength: 3}
	}
	assert.True(t, isSandstorm(triple(
		card(game.SuitSpade, game.Rank(3)),
		card(game.SuitHeart, game.Rank(3)),
		card(game.SuitDiamond, game.Rank(3)),
	)))

	// A joker filling the triple keeps it a sandstorm.
	assert.True(t, isSandstorm(triple(
		card(game.SuitSpade, game.Rank(3)),
		card(game.SuitHeart, game.Rank(3)),
		game.NewJoker(),
	)))

	assert.False(t, isSandstorm(triple(
		card(game.SuitSpade, game.Rank(4)),
		card(game.SuitHeart, game.Rank(4)),
		card(game.SuitDiamond, game.Rank(4)),
	)))
}

func TestPowerSevenPredicate(t *testing.T) {
	red := RuleConfig{RedSevenPower: true}
	black := RuleConfig{BlackSevenPower: true}

	lone := func(c game.Card) game.Play {
		return game.Play{Cards: []game.Card{c}, Type: game.PlaySingle, Strength: c.Strength}
	}

	assert.True(t, isPowerSeven(lone(card(game.SuitHeart, game.Rank(7))), red))
	assert.False(t, isPowerSeven(lone(card(game.SuitClub, game.Rank(7))), red))
	assert.True(t, isPowerSeven(lone(card(game.SuitClub, game.Rank(7))), black))
	assert.False(t, isPowerSeven(lone(card(game.SuitHeart, game.Rank(8))), red))
	assert.False(t, isPowerSeven(lone(game.NewJoker()), red))
}
