package game

import "sort"

// ClassifyOptions enumerates which non-default combination families are
// enabled. Several shapes overlap (a 3-card same-suit run could be a
// stair, tunnel or spade stair), so the classifier tries them in a fixed
// precedence order and the options decide which branches exist at all.
type ClassifyOptions struct {
	SkipStair   bool
	DoubleStair bool
	Tunnel      bool
	SpadeStair  bool
	Taepodong   bool
}

// Classify reduces a card set to its canonical play. The second result
// is false when the set matches no enabled combination shape.
func Classify(cards []Card, opts ClassifyOptions) (Play, bool) {
	switch n := len(cards); {
	case n == 0:
		return Play{}, false

	case n == 1:
		return newPlay(cards, PlaySingle, cards[0].Strength), true

	case n == 2:
		if s, ok := sharedRankStrength(cards); ok {
			return newPlay(cards, PlayPair, s), true
		}
		return Play{}, false

	case n == 3:
		if s, ok := sharedRankStrength(cards); ok {
			return newPlay(cards, PlayTriple, s), true
		}
		if opts.SpadeStair && isSpadeStair(cards) {
			return newPlay(cards, PlaySpadeStair, spadeStairStrength), true
		}
		if opts.Tunnel && isTunnel(cards) {
			return newPlay(cards, PlayTunnel, tunnelStrength), true
		}
		if isStair(cards) {
			return newPlay(cards, PlayStair, maxStrength(cards)), true
		}
		if opts.SkipStair {
			if d, ok := skipStairDiff(cards); ok {
				p := newPlay(cards, PlaySkipStair, maxStrength(cards))
				p.SkipStairDiff = d
				return p, true
			}
		}
		return Play{}, false

	case n == 4:
		if s, ok := sharedRankStrength(cards); ok {
			return newPlay(cards, PlayQuad, s), true
		}
		if isEmperor(cards) {
			return newPlay(cards, PlayEmperor, maxStrength(cards)), true
		}
		if isStair(cards) {
			return newPlay(cards, PlayStair, maxStrength(cards)), true
		}
		if opts.SkipStair {
			if d, ok := skipStairDiff(cards); ok {
				p := newPlay(cards, PlaySkipStair, maxStrength(cards))
				p.SkipStairDiff = d
				return p, true
			}
		}
		return Play{}, false

	default:
		if n == 6 && opts.Taepodong {
			if s, ok := taepodongStrength(cards); ok {
				return newPlay(cards, PlayTaepodong, s), true
			}
		}
		if isStair(cards) {
			return newPlay(cards, PlayStair, maxStrength(cards)), true
		}
		if opts.SkipStair {
			if d, ok := skipStairDiff(cards); ok {
				p := newPlay(cards, PlaySkipStair, maxStrength(cards))
				p.SkipStairDiff = d
				return p, true
			}
		}
		if opts.DoubleStair && n%2 == 0 && n >= 6 && isDoubleStair(cards) {
			return newPlay(cards, PlayDoubleStair, maxStrength(cards)), true
		}
		return Play{}, false
	}
}

// CanFollow reports whether cur may legally follow prev under the given
// composed inversion flag. Inversion negates both strengths before the
// comparison, which realizes revolution-style reversal as a single sign
// flip. The comparison is strict: equal strength never follows.
func CanFollow(prev, cur Play, invert bool) bool {
	// A taepodong beats everything and nothing follows one.
	if cur.Type == PlayTaepodong {
		return true
	}
	if prev.Type == PlayTaepodong {
		return false
	}

	if IsStairLike(prev.Type) && IsStairLike(cur.Type) {
		// Stair-like types are mutually comparable by card count alone.
		if prev.Size() != cur.Size() {
			return false
		}
	} else if prev.Type != cur.Type {
		return false
	} else {
		switch prev.Type {
		case PlaySkipStair:
			if prev.Size() != cur.Size() || prev.SkipStairDiff != cur.SkipStairDiff {
				return false
			}
		case PlayDoubleStair:
			if prev.Size() != cur.Size() {
				return false
			}
		}
	}

	// Tunnel and spade stair carry fixed win/lose semantics enforced by
	// the validator's override chain; skip the numeric comparison.
	if prev.Type == PlayTunnel || prev.Type == PlaySpadeStair ||
		cur.Type == PlayTunnel || cur.Type == PlaySpadeStair {
		return true
	}

	ps, cs := prev.Strength, cur.Strength
	if invert {
		ps, cs = -ps, -cs
	}
	return cs > ps
}

func newPlay(cards []Card, t PlayType, strength int) Play {
	owned := make([]Card, len(cards))
	copy(owned, cards)
	return Play{Cards: owned, Type: t, Strength: strength}
}

// sharedRankStrength accepts a same-rank group: at least one non-joker,
// all non-jokers of one rank, jokers filling freely. Returns the shared
// rank's strength.
func sharedRankStrength(cards []Card) (int, bool) {
	rank := RankJoker
	for _, c := range cards {
		if c.IsJoker() {
			continue
		}
		if rank == RankJoker {
			rank = c.Rank
			continue
		}
		if c.Rank != rank {
			return 0, false
		}
	}
	if rank == RankJoker {
		return 0, false
	}
	return StrengthOf(rank), true
}

func sortedStrengths(cards []Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Strength
	}
	sort.Ints(out)
	return out
}

func maxStrength(cards []Card) int {
	max := 0
	for _, c := range cards {
		if c.Strength > max {
			max = c.Strength
		}
	}
	return max
}

func singleSuit(cards []Card) (Suit, bool) {
	suit := cards[0].Suit
	for _, c := range cards {
		if c.IsJoker() || c.Suit != suit {
			return 0, false
		}
	}
	return suit, true
}

// isStair checks a same-suit run of strictly consecutive strengths with
// no jokers, length at least 3.
func isStair(cards []Card) bool {
	if len(cards) < 3 {
		return false
	}
	if _, ok := singleSuit(cards); !ok {
		return false
	}
	ss := sortedStrengths(cards)
	for i := 1; i < len(ss); i++ {
		if ss[i] != ss[i-1]+1 {
			return false
		}
	}
	return true
}

// skipStairDiff checks a same-suit arithmetic progression with a
// constant gap of 2..6 and returns the gap. A gap of 1 is a plain stair
// and never a skip stair.
func skipStairDiff(cards []Card) (int, bool) {
	if len(cards) < 3 {
		return 0, false
	}
	if _, ok := singleSuit(cards); !ok {
		return 0, false
	}
	ss := sortedStrengths(cards)
	diff := ss[1] - ss[0]
	if diff < 2 || diff > 6 {
		return 0, false
	}
	for i := 2; i < len(ss); i++ {
		if ss[i]-ss[i-1] != diff {
			return 0, false
		}
	}
	return diff, true
}

// isTunnel checks a same-suit set of ranks exactly {A, 2, 3}.
func isTunnel(cards []Card) bool {
	if len(cards) != 3 {
		return false
	}
	if _, ok := singleSuit(cards); !ok {
		return false
	}
	var seen [4]bool
	for _, c := range cards {
		switch c.Rank {
		case RankAce:
			seen[1] = true
		case RankTwo:
			seen[2] = true
		case Rank(3):
			seen[3] = true
		default:
			return false
		}
	}
	return seen[1] && seen[2] && seen[3]
}

// isSpadeStair checks the exact set spade-2, joker, spade-3.
func isSpadeStair(cards []Card) bool {
	if len(cards) != 3 {
		return false
	}
	var two, three, joker bool
	for _, c := range cards {
		switch {
		case c.IsJoker():
			joker = true
		case c.Suit == SuitSpade && c.Rank == RankTwo:
			two = true
		case c.Suit == SuitSpade && c.Rank == Rank(3):
			three = true
		default:
			return false
		}
	}
	return two && three && joker
}

// isEmperor checks four cards of four distinct suits with consecutive
// strengths and no jokers.
func isEmperor(cards []Card) bool {
	if len(cards) != 4 {
		return false
	}
	var suits [4]bool
	for _, c := range cards {
		if c.IsJoker() || suits[c.Suit] {
			return false
		}
		suits[c.Suit] = true
	}
	ss := sortedStrengths(cards)
	for i := 1; i < len(ss); i++ {
		if ss[i] != ss[i-1]+1 {
			return false
		}
	}
	return true
}

// isDoubleStair checks an even set of at least 6 cards whose ranks
// partition into groups of exactly two, the group strengths consecutive
// when sorted. Suits are free; jokers are not.
func isDoubleStair(cards []Card) bool {
	counts := make(map[int]int)
	for _, c := range cards {
		if c.IsJoker() {
			return false
		}
		counts[c.Strength]++
	}
	groups := make([]int, 0, len(counts))
	for s, n := range counts {
		if n != 2 {
			return false
		}
		groups = append(groups, s)
	}
	sort.Ints(groups)
	for i := 1; i < len(groups); i++ {
		if groups[i] != groups[i-1]+1 {
			return false
		}
	}
	return true
}

// taepodongStrength checks exactly two jokers plus four cards of one
// rank and returns that rank's strength. The all-joker fallback keeps a
// defensive default of 14.
func taepodongStrength(cards []Card) (int, bool) {
	if len(cards) != 6 {
		return 0, false
	}
	jokers := 0
	rank := RankJoker
	for _, c := range cards {
		if c.IsJoker() {
			jokers++
			continue
		}
		if rank == RankJoker {
			rank = c.Rank
			continue
		}
		if c.Rank != rank {
			return 0, false
		}
	}
	if jokers != 2 {
		return 0, false
	}
	if rank == RankJoker {
		return 14, true
	}
	return StrengthOf(rank), true
}
