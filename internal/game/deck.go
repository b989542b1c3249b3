package game

import "math/rand"

// NewDeck builds the full 54-card deck: thirteen ranks in four suits
// plus two jokers.
func NewDeck() []Card {
	deck := make([]Card, 0, 54)
	for _, suit := range []Suit{SuitSpade, SuitHeart, SuitDiamond, SuitClub} {
		for rank := RankAce; rank <= RankKing; rank++ {
			deck = append(deck, NewCard(suit, rank))
		}
	}
	deck = append(deck, NewJoker(), NewJoker())
	return deck
}

// Shuffle permutes the deck in place using the given source, which the
// caller seeds for reproducible deals.
func Shuffle(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
}

// Deal distributes the deck round-robin into n hands.
func Deal(deck []Card, n int) []*Hand {
	hands := make([]*Hand, n)
	for i := range hands {
		hands[i] = NewHand()
	}
	for i, c := range deck {
		hands[i%n].Add(c)
	}
	for _, h := range hands {
		h.Sort()
	}
	return hands
}
