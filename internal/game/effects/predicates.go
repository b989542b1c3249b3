package effects

import "github.com/statiolake/rich-rich-daifugo-sub002/internal/game"

// Lock triggers depend on the two most recent field entries: the play
// itself and the entry before it must both be internally uniform in
// the locked dimension, and no lock of that kind may already be
// active. prevEntry returns the entry before the analyzed play.
func prevEntry(st *GameState) (game.FieldEntry, bool) {
	last := st.Field.Last(2)
	if len(last) < 2 {
		return game.FieldEntry{}, false
	}
	return last[0], true
}

func matchSuitLock(p game.Play, st *GameState) bool {
	if st.Locks.Suit != nil {
		return false
	}
	suit, ok := uniformSuit(p)
	if !ok {
		return false
	}
	prev, ok := prevEntry(st)
	if !ok {
		return false
	}
	prevSuit, ok := uniformSuit(prev.Play)
	return ok && prevSuit == suit
}

func matchNumberLock(p game.Play, st *GameState) bool {
	if st.Locks.Number {
		return false
	}
	if _, ok := playGroupRankOK(p); !ok {
		return false
	}
	prev, ok := prevEntry(st)
	if !ok {
		return false
	}
	if _, ok := playGroupRankOK(prev.Play); !ok {
		return false
	}
	diff := p.Strength - prev.Play.Strength
	return diff == 1 || diff == -1
}

func matchColorLock(p game.Play, st *GameState) bool {
	if len(st.Locks.PartialSuits) > 0 {
		return false
	}
	red, ok := uniformColor(p)
	if !ok {
		return false
	}
	prev, ok := prevEntry(st)
	if !ok {
		return false
	}
	prevRed, ok := uniformColor(prev.Play)
	return ok && prevRed == red
}

func matchParityLock(p game.Play, st *GameState, even bool) bool {
	if st.Locks.Parity != "" {
		return false
	}
	if !uniformParity(p, even) {
		return false
	}
	prev, ok := prevEntry(st)
	return ok && uniformParity(prev.Play, even)
}

func matchHotMilk(p game.Play, st *GameState) bool {
	if st.Locks.HotMilk != "" {
		return false
	}
	if !p.ContainsRank(game.Rank(7)) {
		return false
	}
	for _, c := range p.Cards {
		if !c.IsJoker() && c.Suit != game.SuitHeart {
			return false
		}
	}
	return true
}

func matchPartialLock(p game.Play, st *GameState) bool {
	if len(st.Locks.PartialSuits) > 0 {
		return false
	}
	suits := suitsOf(p)
	if len(suits) != 2 {
		return false
	}
	prev, ok := prevEntry(st)
	if !ok {
		return false
	}
	prevSuits := suitsOf(prev.Play)
	if len(prevSuits) != 2 {
		return false
	}
	for s := range suits {
		if !prevSuits[s] {
			return false
		}
	}
	return true
}

func matchFusion(p game.Play, st *GameState) bool {
	rank, ok := playGroupRankOK(p)
	if !ok {
		return false
	}
	prev, okPrev := prevEntry(st)
	if !okPrev {
		return false
	}
	prevRank, ok := playGroupRankOK(prev.Play)
	return ok && prevRank == rank && p.Size()+prev.Play.Size() >= 4
}

func matchSpadeThreeReturn(p game.Play, st *GameState) bool {
	if p.Type != game.PlaySingle || len(p.Cards) != 1 {
		return false
	}
	c := p.Cards[0]
	if c.IsJoker() || c.Suit != game.SuitSpade || c.Rank != game.Rank(3) {
		return false
	}
	prev, ok := prevEntry(st)
	if !ok || prev.Play.Type != game.PlaySingle || len(prev.Play.Cards) != 1 {
		return false
	}
	return prev.Play.Cards[0].IsJoker()
}

// playGroupRank returns the shared rank of a same-rank group play, or
// RankJoker when the play is not such a group.
func playGroupRank(p game.Play) game.Rank {
	r, _ := playGroupRankOK(p)
	return r
}

func playGroupRankOK(p game.Play) (game.Rank, bool) {
	switch p.Type {
	case game.PlaySingle, game.PlayPair, game.PlayTriple, game.PlayQuad:
	default:
		return game.RankJoker, false
	}
	for _, c := range p.Cards {
		if !c.IsJoker() {
			return c.Rank, true
		}
	}
	return game.RankJoker, false
}

func isTripleOf(p game.Play, rank game.Rank) bool {
	return p.Type == game.PlayTriple && playGroupRank(p) == rank
}

// uniformSuit returns the single suit of a play's non-joker cards.
func uniformSuit(p game.Play) (game.Suit, bool) {
	found := false
	var suit game.Suit
	for _, c := range p.Cards {
		if c.IsJoker() {
			continue
		}
		if !found {
			suit = c.Suit
			found = true
			continue
		}
		if c.Suit != suit {
			return 0, false
		}
	}
	return suit, found
}

// uniformColor reports the shared color of a play's non-joker cards:
// true for red.
func uniformColor(p game.Play) (bool, bool) {
	found := false
	var red bool
	for _, c := range p.Cards {
		if c.IsJoker() {
			continue
		}
		if !found {
			red = c.Suit.IsRed()
			found = true
			continue
		}
		if c.Suit.IsRed() != red {
			return false, false
		}
	}
	return red, found
}

func uniformParity(p game.Play, even bool) bool {
	found := false
	for _, c := range p.Cards {
		if c.IsJoker() {
			continue
		}
		if (int(c.Rank)%2 == 0) != even {
			return false
		}
		found = true
	}
	return found
}

func suitsOf(p game.Play) map[game.Suit]bool {
	suits := make(map[game.Suit]bool)
	for _, c := range p.Cards {
		if !c.IsJoker() {
			suits[c.Suit] = true
		}
	}
	return suits
}
