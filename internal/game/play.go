package game

// PlayType identifies the combinatorial shape of a play.
type PlayType string

const (
	PlaySingle      PlayType = "SINGLE"
	PlayPair        PlayType = "PAIR"
	PlayTriple      PlayType = "TRIPLE"
	PlayQuad        PlayType = "QUAD"
	PlayStair       PlayType = "STAIR"
	PlaySkipStair   PlayType = "SKIP_STAIR"
	PlayDoubleStair PlayType = "DOUBLE_STAIR"
	PlayTunnel      PlayType = "TUNNEL"
	PlaySpadeStair  PlayType = "SPADE_STAIR"
	PlayEmperor     PlayType = "EMPEROR"
	PlayTaepodong   PlayType = "TAEPODONG"

	// PlayCrossDressing and the goroawase types are literal-combination
	// exceptions detected by the validator before general classification.
	PlayCrossDressing PlayType = "CROSS_DRESSING"
	PlayGoro39        PlayType = "GORO_39"
	PlayGoro119       PlayType = "GORO_119"
	PlayGoro893       PlayType = "GORO_893"
	PlayGoro4649      PlayType = "GORO_4649"
	PlayGoro5963      PlayType = "GORO_5963"
)

// Fixed comparison keys for the pinned types. Tunnel always loses to any
// real stair and the spade stair always wins; the numeric values are
// never consulted by the follow check, which special-cases both types.
const (
	tunnelStrength     = 0
	spadeStairStrength = 100
)

// Play is a classified, comparable unit of cards. Strength is the
// comparison key for the type, not necessarily any single card's raw
// strength. A Play is a derived value and is never mutated in place.
type Play struct {
	Cards    []Card
	Type     PlayType
	Strength int

	// SkipStairDiff is the constant gap of a SKIP_STAIR, zero otherwise.
	SkipStairDiff int
}

// Size returns the number of cards in the play.
func (p Play) Size() int {
	return len(p.Cards)
}

// ContainsRank reports whether any non-joker card in the play has the
// given rank.
func (p Play) ContainsRank(rank Rank) bool {
	for _, c := range p.Cards {
		if !c.IsJoker() && c.Rank == rank {
			return true
		}
	}
	return false
}

// ContainsJoker reports whether the play includes a joker.
func (p Play) ContainsJoker() bool {
	for _, c := range p.Cards {
		if c.IsJoker() {
			return true
		}
	}
	return false
}

// IsStairLike reports whether the type participates in the stair
// comparison family: stairs, tunnels and the spade stair follow each
// other by card count alone, bypassing exact type equality.
func IsStairLike(t PlayType) bool {
	return t == PlayStair || t == PlayTunnel || t == PlaySpadeStair
}
