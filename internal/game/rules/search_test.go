package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
)

func TestEnumerateLegalSubsets(t *testing.T) {
	s3 := card(game.SuitSpade, game.Rank(3))
	h3 := card(game.SuitHeart, game.Rank(3))
	s4 := card(game.SuitSpade, game.Rank(4))
	hand := game.NewHand(s3, h3, s4)
	ctx := ctxWith(StandardRules())

	legal := LegalPlays(hand, "p1", ctx)

	// On an empty field: three singles plus the pair of threes. No other
	// subset classifies.
	assert.Len(t, legal, 4)
	assert.LessOrEqual(t, len(legal), (1<<hand.Size())-1)

	for _, subset := range legal {
		r := Validate(hand, "p1", subset, ctx)
		assert.True(t, r.Valid, "enumerated subset failed re-validation")
	}
}

func TestLegalPlaysRespectField(t *testing.T) {
	s3 := card(game.SuitSpade, game.Rank(3))
	h9 := card(game.SuitHeart, game.Rank(9))
	hand := game.NewHand(s3, h9)

	ctx := ctxWith(StandardRules(), []game.Card{card(game.SuitClub, game.Rank(5))})
	legal := LegalPlays(hand, "p1", ctx)

	require.Len(t, legal, 1)
	assert.Equal(t, h9.ID, legal[0][0].ID)
}

func TestLegalPlaysEmptyHand(t *testing.T) {
	assert.Nil(t, LegalPlays(game.NewHand(), "p1", ctxWith(StandardRules())))
}

func TestForcedDiscardIneligible(t *testing.T) {
	// The lone jack would be a legal single if not for the forbidden
	// finish, so it shows up as finish-ineligible.
	jack := card(game.SuitSpade, game.RankJack)
	hand := game.NewHand(jack)
	ctx := ctxWith(StandardRules(), []game.Card{card(game.SuitClub, game.Rank(5))})

	ineligible := ForcedDiscardIneligible(hand, "p1", ctx)
	require.Len(t, ineligible, 1)
	assert.Equal(t, jack.ID, ineligible[0][0].ID)

	t.Run("nothing ineligible for a safe hand", func(t *testing.T) {
		nine := card(game.SuitHeart, game.Rank(9))
		h := game.NewHand(nine)
		assert.Empty(t, ForcedDiscardIneligible(h, "p1", ctx))
	})
}
