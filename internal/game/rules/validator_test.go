package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
)

func card(s game.Suit, r game.Rank) game.Card { return game.NewCard(s, r) }

// fieldWith builds a field holding the given already-classified plays in
// order.
func fieldWith(rc RuleConfig, plays ...[]game.Card) *game.Field {
	f := game.NewField()
	for _, cs := range plays {
		p, ok := classifySpecial(cs, rc)
		if !ok {
			p, ok = game.Classify(cs, rc.ClassifyOptions())
			if !ok {
				panic("fieldWith: unclassifiable play")
			}
		}
		f.Append(p, "opponent")
	}
	return f
}

func ctxWith(rc RuleConfig, fieldPlays ...[]game.Card) Context {
	return Context{
		Field: fieldWith(rc, fieldPlays...),
		Rules: rc,
	}
}

func TestValidateOwnership(t *testing.T) {
	rc := StandardRules()
	mine := card(game.SuitSpade, game.Rank(5))
	hand := game.NewHand(mine)

	t.Run("empty set", func(t *testing.T) {
		r := Validate(hand, "p1", nil, ctxWith(rc))
		assert.False(t, r.Valid)
		assert.Equal(t, OutcomeNotInHand, r.Outcome)
	})

	t.Run("foreign card", func(t *testing.T) {
		other := card(game.SuitHeart, game.Rank(5))
		r := Validate(hand, "p1", []game.Card{other}, ctxWith(rc))
		assert.Equal(t, OutcomeNotInHand, r.Outcome)
	})

	t.Run("duplicated card", func(t *testing.T) {
		r := Validate(hand, "p1", []game.Card{mine, mine}, ctxWith(rc))
		assert.Equal(t, OutcomeNotInHand, r.Outcome)
	})
}

func TestValidateCombination(t *testing.T) {
	rc := StandardRules()
	a := card(game.SuitSpade, game.Rank(5))
	b := card(game.SuitHeart, game.Rank(9))
	hand := game.NewHand(a, b)

	r := Validate(hand, "p1", []game.Card{a, b}, ctxWith(rc))
	assert.False(t, r.Valid)
	assert.Equal(t, OutcomeInvalidCombination, r.Outcome)
}

func TestValidateStairToggle(t *testing.T) {
	run := []game.Card{
		card(game.SuitSpade, game.Rank(3)),
		card(game.SuitSpade, game.Rank(4)),
		card(game.SuitSpade, game.Rank(5)),
	}
	hand := game.NewHand(run...)
	hand.Add(card(game.SuitClub, game.Rank(9)))

	t.Run("enabled", func(t *testing.T) {
		r := Validate(hand, "p1", run, ctxWith(StandardRules()))
		require.True(t, r.Valid)
		assert.Equal(t, game.PlayStair, r.Classification.Type)
	})

	t.Run("disabled", func(t *testing.T) {
		rc := StandardRules()
		rc.Stair = false
		r := Validate(hand, "p1", run, ctxWith(rc))
		assert.False(t, r.Valid)
		assert.Equal(t, OutcomeCombinationDisabled, r.Outcome)
	})
}

func TestValidateEmptyFieldAcceptsAnyShape(t *testing.T) {
	rc := StandardRules()
	a := card(game.SuitSpade, game.RankTwo)
	hand := game.NewHand(a, card(game.SuitClub, game.Rank(4)))

	r := Validate(hand, "p1", []game.Card{a}, ctxWith(rc))
	require.True(t, r.Valid)
	assert.Equal(t, OutcomeAccepted, r.Outcome)
	assert.Equal(t, OverrideNone, r.Override)
}

func TestValidateStrength(t *testing.T) {
	rc := StandardRules()
	field := [][]game.Card{{card(game.SuitClub, game.Rank(8))}}

	mk := func(r game.Rank) (*game.Hand, []game.Card) {
		c := card(game.SuitHeart, r)
		h := game.NewHand(c, card(game.SuitDiamond, game.Rank(4)))
		return h, []game.Card{c}
	}

	t.Run("higher accepted", func(t *testing.T) {
		h, cs := mk(game.Rank(9))
		assert.True(t, Validate(h, "p1", cs, ctxWith(rc, field...)).Valid)
	})

	t.Run("equal rejected", func(t *testing.T) {
		h, cs := mk(game.Rank(8))
		r := Validate(h, "p1", cs, ctxWith(rc, field...))
		assert.Equal(t, OutcomeStrength, r.Outcome)
	})

	t.Run("lower rejected", func(t *testing.T) {
		h, cs := mk(game.Rank(7))
		r := Validate(h, "p1", cs, ctxWith(rc, field...))
		assert.Equal(t, OutcomeStrength, r.Outcome)
	})

	t.Run("revolution inverts", func(t *testing.T) {
		h, cs := mk(game.Rank(3))
		ctx := ctxWith(rc, field...)
		ctx.Inversions.Revolution = true
		assert.True(t, Validate(h, "p1", cs, ctx).Valid)

		h, cs = mk(game.Rank(9))
		ctx = ctxWith(rc, field...)
		ctx.Inversions.Revolution = true
		assert.Equal(t, OutcomeStrength, Validate(h, "p1", cs, ctx).Outcome)
	})

	t.Run("two simultaneous inversions cancel", func(t *testing.T) {
		h, cs := mk(game.Rank(9))
		ctx := ctxWith(rc, field...)
		ctx.Inversions.Revolution = true
		ctx.Inversions.ElevenBack = true
		assert.True(t, Validate(h, "p1", cs, ctx).Valid)
	})
}

func TestValidateStairFollowsStair(t *testing.T) {
	rc := StandardRules()
	low := []game.Card{
		card(game.SuitSpade, game.Rank(3)),
		card(game.SuitSpade, game.Rank(4)),
		card(game.SuitSpade, game.Rank(5)),
	}
	high := []game.Card{
		card(game.SuitHeart, game.Rank(6)),
		card(game.SuitHeart, game.Rank(7)),
		card(game.SuitHeart, game.Rank(8)),
	}
	hand := game.NewHand(high...)
	hand.Add(card(game.SuitClub, game.Rank(9)))

	r := Validate(hand, "p1", high, ctxWith(rc, low))
	require.True(t, r.Valid)
	assert.Equal(t, game.PlayStair, r.Classification.Type)
}

func TestValidateDownNumber(t *testing.T) {
	rc := StandardRules()
	rc.DownNumber = true

	fieldPlay := []game.Card{card(game.SuitHeart, game.Rank(8))}
	down := card(game.SuitHeart, game.Rank(7))
	hand := game.NewHand(down, card(game.SuitClub, game.Rank(4)))

	t.Run("same suit one below accepted", func(t *testing.T) {
		r := Validate(hand, "p1", []game.Card{down}, ctxWith(rc, fieldPlay))
		require.True(t, r.Valid)
		assert.Equal(t, OverrideDownNumber, r.Override)
	})

	t.Run("bypasses locks", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		spade := game.SuitSpade
		ctx.Locks.Suit = &spade
		r := Validate(hand, "p1", []game.Card{down}, ctx)
		assert.True(t, r.Valid)
	})

	t.Run("wrong suit falls through", func(t *testing.T) {
		wrong := card(game.SuitClub, game.Rank(7))
		h := game.NewHand(wrong, card(game.SuitClub, game.Rank(4)))
		r := Validate(h, "p1", []game.Card{wrong}, ctxWith(rc, fieldPlay))
		assert.Equal(t, OutcomeStrength, r.Outcome)
	})

	t.Run("still subject to forbidden finish", func(t *testing.T) {
		// Down-number jack as the last card: the shortcut skips locks and
		// strength but not the finish check.
		fieldQ := []game.Card{card(game.SuitHeart, game.RankQueen)}
		jack := card(game.SuitHeart, game.RankJack)
		h := game.NewHand(jack)
		r := Validate(h, "p1", []game.Card{jack}, ctxWith(rc, fieldQ))
		assert.Equal(t, OutcomeForbiddenFinish, r.Outcome)
	})
}

func TestValidateLocks(t *testing.T) {
	rc := StandardRules()
	fieldPlay := []game.Card{card(game.SuitSpade, game.Rank(5))}

	t.Run("suit lock", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		spade := game.SuitSpade
		ctx.Locks.Suit = &spade

		heart := card(game.SuitHeart, game.Rank(9))
		h := game.NewHand(heart, card(game.SuitClub, game.Rank(4)))
		r := Validate(h, "p1", []game.Card{heart}, ctx)
		assert.Equal(t, OutcomeSuitLock, r.Outcome)

		ok := card(game.SuitSpade, game.Rank(9))
		h = game.NewHand(ok, card(game.SuitClub, game.Rank(4)))
		assert.True(t, Validate(h, "p1", []game.Card{ok}, ctx).Valid)
	})

	t.Run("joker exempt from suit lock", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		spade := game.SuitSpade
		ctx.Locks.Suit = &spade

		j := game.NewJoker()
		h := game.NewHand(j, card(game.SuitClub, game.Rank(4)))
		assert.True(t, Validate(h, "p1", []game.Card{j}, ctx).Valid)
	})

	t.Run("number lock needs adjacency", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		ctx.Locks.Number = true

		adj := card(game.SuitSpade, game.Rank(6))
		h := game.NewHand(adj, card(game.SuitClub, game.Rank(4)))
		assert.True(t, Validate(h, "p1", []game.Card{adj}, ctx).Valid)

		far := card(game.SuitSpade, game.Rank(9))
		h = game.NewHand(far, card(game.SuitClub, game.Rank(4)))
		assert.Equal(t, OutcomeNumberLock, Validate(h, "p1", []game.Card{far}, ctx).Outcome)
	})

	t.Run("parity lock", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		ctx.Locks.Parity = ParityEven

		odd := card(game.SuitSpade, game.Rank(7))
		h := game.NewHand(odd, card(game.SuitClub, game.Rank(4)))
		assert.Equal(t, OutcomeParityLock, Validate(h, "p1", []game.Card{odd}, ctx).Outcome)

		even := card(game.SuitSpade, game.Rank(6))
		h = game.NewHand(even, card(game.SuitClub, game.Rank(4)))
		assert.True(t, Validate(h, "p1", []game.Card{even}, ctx).Valid)
	})

	t.Run("double digit seal", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		ctx.Locks.DoubleDigitSeal = true

		ten := card(game.SuitSpade, game.Rank(10))
		h := game.NewHand(ten, card(game.SuitClub, game.Rank(4)))
		assert.Equal(t, OutcomeDoubleDigitSeal, Validate(h, "p1", []game.Card{ten}, ctx).Outcome)

		nine := card(game.SuitSpade, game.Rank(9))
		h = game.NewHand(nine, card(game.SuitClub, game.Rank(4)))
		assert.True(t, Validate(h, "p1", []game.Card{nine}, ctx).Valid)
	})

	t.Run("hot milk", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		ctx.Locks.HotMilk = HotMilkWarm

		black := card(game.SuitClub, game.Rank(9))
		h := game.NewHand(black, card(game.SuitClub, game.Rank(4)))
		assert.Equal(t, OutcomeHotMilk, Validate(h, "p1", []game.Card{black}, ctx).Outcome)

		red := card(game.SuitDiamond, game.Rank(9))
		h = game.NewHand(red, card(game.SuitClub, game.Rank(4)))
		assert.True(t, Validate(h, "p1", []game.Card{red}, ctx).Valid)
	})

	t.Run("partial suit lock", func(t *testing.T) {
		ctx := ctxWith(rc, fieldPlay)
		ctx.Locks.PartialSuits = []game.Suit{game.SuitSpade, game.SuitHeart}

		club := card(game.SuitClub, game.Rank(9))
		h := game.NewHand(club, card(game.SuitClub, game.Rank(4)))
		assert.Equal(t, OutcomePartialLock, Validate(h, "p1", []game.Card{club}, ctx).Outcome)

		heart := card(game.SuitHeart, game.Rank(9))
		h = game.NewHand(heart, card(game.SuitClub, game.Rank(4)))
		assert.True(t, Validate(h, "p1", []game.Card{heart}, ctx).Valid)
	})
}

func TestValidateForbiddenFinish(t *testing.T) {
	rc := StandardRules()

	t.Run("lone jack cannot finish", func(t *testing.T) {
		jack := card(game.SuitSpade, game.RankJack)
		h := game.NewHand(jack)
		r := Validate(h, "p1", []game.Card{jack}, ctxWith(rc, []game.Card{card(game.SuitClub, game.Rank(4))}))
		assert.Equal(t, OutcomeForbiddenFinish, r.Outcome)
	})

	t.Run("jack with cards remaining is fine", func(t *testing.T) {
		jack := card(game.SuitSpade, game.RankJack)
		h := game.NewHand(jack, card(game.SuitClub, game.Rank(4)))
		r := Validate(h, "p1", []game.Card{jack}, ctxWith(rc, []game.Card{card(game.SuitClub, game.Rank(4))}))
		assert.True(t, r.Valid)
	})

	t.Run("toggle off", func(t *testing.T) {
		off := rc
		off.ForbiddenFinish = false
		jack := card(game.SuitSpade, game.RankJack)
		h := game.NewHand(jack)
		r := Validate(h, "p1", []game.Card{jack}, ctxWith(off, []game.Card{card(game.SuitClub, game.Rank(4))}))
		assert.True(t, r.Valid)
	})

	t.Run("custom rank set", func(t *testing.T) {
		custom := rc
		custom.ForbiddenFinishRanks = []game.Rank{game.Rank(5)}
		five := card(game.SuitSpade, game.Rank(5))
		h := game.NewHand(five)
		r := Validate(h, "p1", []game.Card{five}, ctxWith(custom, []game.Card{card(game.SuitClub, game.Rank(4))}))
		assert.Equal(t, OutcomeForbiddenFinish, r.Outcome)
	})
}

func TestValidateAdauchiBan(t *testing.T) {
	rc := StandardRules()
	rc.AdauchiBan = true

	nine := card(game.SuitSpade, game.Rank(9))
	hand := game.NewHand(nine)

	ctx := ctxWith(rc, []game.Card{card(game.SuitClub, game.Rank(4))})
	ctx.Standing = []PlayerStanding{
		{ID: "p1"},
		{ID: "p2", Demoted: true, DemotedBy: "p1"},
		{ID: "p3", Finished: true, FinishPos: 1},
	}

	r := Validate(hand, "p1", []game.Card{nine}, ctx)
	assert.Equal(t, OutcomeAdauchiBan, r.Outcome)

	t.Run("demoted by someone else", func(t *testing.T) {
		ctx.Standing[1].DemotedBy = "p3"
		assert.True(t, Validate(hand, "p1", []game.Card{nine}, ctx).Valid)
	})

	t.Run("not a finishing play", func(t *testing.T) {
		ctx.Standing[1].DemotedBy = "p1"
		h := game.NewHand(nine, card(game.SuitClub, game.Rank(6)))
		assert.True(t, Validate(h, "p1", []game.Card{nine}, ctx).Valid)
	})
}

func TestValidateSecurityLaw(t *testing.T) {
	rc := StandardRules()
	rc.SecurityLaw = true

	quad := []game.Card{
		card(game.SuitSpade, game.Rank(9)),
		card(game.SuitHeart, game.Rank(9)),
		card(game.SuitDiamond, game.Rank(9)),
		card(game.SuitClub, game.Rank(9)),
	}
	hand := game.NewHand(quad...)
	hand.Add(card(game.SuitClub, game.Rank(4)))

	ctx := ctxWith(rc)
	ctx.Standing = []PlayerStanding{{ID: "p1", Demoted: true}}
	ctx.TriggersRevolution = func(p game.Play) bool { return p.Type == game.PlayQuad }

	r := Validate(hand, "p1", quad, ctx)
	assert.Equal(t, OutcomeSecurityLaw, r.Outcome)

	t.Run("non-demoted player unaffected", func(t *testing.T) {
		ctx.Standing = []PlayerStanding{{ID: "p1"}}
		assert.True(t, Validate(hand, "p1", quad, ctx).Valid)
	})

	t.Run("nil hook disables the stage", func(t *testing.T) {
		ctx.Standing = []PlayerStanding{{ID: "p1", Demoted: true}}
		ctx.TriggersRevolution = nil
		assert.True(t, Validate(hand, "p1", quad, ctx).Valid)
	})
}

func TestValidateInternalError(t *testing.T) {
	rc := StandardRules()
	f := game.NewField()
	f.Append(game.Play{Type: game.PlaySingle}, "opponent")

	c := card(game.SuitSpade, game.Rank(5))
	hand := game.NewHand(c)

	r := Validate(hand, "p1", []game.Card{c}, Context{Field: f, Rules: rc})
	assert.Equal(t, OutcomeInternalError, r.Outcome)
}
