package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Suit identifies one of the four French suits, or the joker marker.
type Suit int

const (
	SuitSpade Suit = iota
	SuitHeart
	SuitDiamond
	SuitClub
	// SuitJoker marks a joker card; jokers have no real suit and are
	// exempt from suit-based restrictions.
	SuitJoker
)

// String returns the string representation of the suit.
func (s Suit) String() string {
	switch s {
	case SuitSpade:
		return "SPADE"
	case SuitHeart:
		return "HEART"
	case SuitDiamond:
		return "DIAMOND"
	case SuitClub:
		return "CLUB"
	case SuitJoker:
		return "JOKER"
	default:
		return "UNKNOWN"
	}
}

// IsRed reports whether the suit is a red suit (hearts or diamonds).
func (s Suit) IsRed() bool {
	return s == SuitHeart || s == SuitDiamond
}

// Rank is the printed rank of a card: 1 (ace) through 13 (king).
// RankJoker (0) marks a joker.
type Rank int

const RankJoker Rank = 0

const (
	RankAce   Rank = 1
	RankTwo   Rank = 2
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
)

// Strength bounds of the game ordering. 3 is the weakest rank, 2 the
// strongest natural rank, and the joker sits above everything.
const (
	StrengthMin   = 3
	StrengthTwo   = 15
	StrengthJoker = 16
)

// StrengthOf computes the game-order strength of a rank: ranks 3..13 map
// to themselves, ace to 14, two to 15, and the joker to 16.
func StrengthOf(rank Rank) int {
	switch rank {
	case RankJoker:
		return StrengthJoker
	case RankAce:
		return 14
	case RankTwo:
		return StrengthTwo
	default:
		return int(rank)
	}
}

// Card is an immutable single playing card. ID distinguishes physically
// identical cards (the two jokers in particular) so a hand can remove
// exactly the card that was played.
type Card struct {
	ID       string
	Suit     Suit
	Rank     Rank
	Strength int
}

// NewCard creates a card of the given suit and rank with a fresh ID and
// its derived strength.
func NewCard(suit Suit, rank Rank) Card {
	return Card{
		ID:       uuid.NewString(),
		Suit:     suit,
		Rank:     rank,
		Strength: StrengthOf(rank),
	}
}

// NewJoker creates a joker card.
func NewJoker() Card {
	return Card{
		ID:       uuid.NewString(),
		Suit:     SuitJoker,
		Rank:     RankJoker,
		Strength: StrengthJoker,
	}
}

// IsJoker reports whether the card is a joker.
func (c Card) IsJoker() bool {
	return c.Rank == RankJoker
}

// String returns a compact human-readable representation, e.g. "SPADE-3".
func (c Card) String() string {
	if c.IsJoker() {
		return "JOKER"
	}
	return fmt.Sprintf("%s-%d", c.Suit, c.Rank)
}
