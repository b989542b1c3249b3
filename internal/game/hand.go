package game

import "sort"

// Hand is an order-insensitive collection of cards owned by one player.
// The engine never mutates a hand; add and remove are invoked by the turn
// orchestrator after a play has been accepted.
type Hand struct {
	cards []Card
}

// NewHand creates a hand holding the given cards.
func NewHand(cards ...Card) *Hand {
	h := &Hand{cards: make([]Card, len(cards))}
	copy(h.cards, cards)
	return h
}

// Add appends a card to the hand.
func (h *Hand) Add(card Card) {
	h.cards = append(h.cards, card)
}

// RemoveByID removes the card with the given ID and reports whether it
// was present.
func (h *Hand) RemoveByID(id string) bool {
	for i, c := range h.cards {
		if c.ID == id {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// CardByID returns the card with the given ID.
func (h *Hand) CardByID(id string) (Card, bool) {
	for _, c := range h.cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}

// ContainsID reports whether the hand holds a card with the given ID.
func (h *Hand) ContainsID(id string) bool {
	_, ok := h.CardByID(id)
	return ok
}

// ContainsAll reports whether every given card (matched by ID) is in the
// hand. Duplicate IDs in the candidate set are rejected.
func (h *Hand) ContainsAll(cards []Card) bool {
	seen := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if _, dup := seen[c.ID]; dup {
			return false
		}
		seen[c.ID] = struct{}{}
		if !h.ContainsID(c.ID) {
			return false
		}
	}
	return true
}

// Cards returns a copy of the cards in the hand.
func (h *Hand) Cards() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}

// Size returns the number of cards in the hand.
func (h *Hand) Size() int {
	return len(h.cards)
}

// Sort orders the hand by strength, then suit, for stable display.
func (h *Hand) Sort() {
	sort.Slice(h.cards, func(i, j int) bool {
		if h.cards[i].Strength != h.cards[j].Strength {
			return h.cards[i].Strength < h.cards[j].Strength
		}
		return h.cards[i].Suit < h.cards[j].Suit
	})
}
