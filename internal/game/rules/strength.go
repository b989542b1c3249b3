package rules

import "github.com/statiolake/rich-rich-daifugo-sub002/internal/game"

// compareStrength runs the chain of special-case strength overrides
// before the general comparison. Each link either decides the outcome
// (decided=true) or falls through to the next. The chain order is a
// deliberate design decision and is fixed: ten-free, trump, fusion,
// cross-dressing, sandstorm, spade-three return, spade-stair/tunnel,
// double king, arthur, seven power.
func compareStrength(cur, play game.Play, ctx Context) (decided, accepted bool, override Override) {
	// Ten-free: anything beats anything while the window is open.
	if ctx.TenFree {
		return true, true, OverrideTenFree
	}

	// Trump: a trump-bearing play beats a non-trump play of the same
	// shape, in either direction. Two trump-bearing plays fall through
	// to the general rule.
	if trump := trumpRank(ctx); trump != game.RankJoker {
		candTrump := play.ContainsRank(trump)
		fieldTrump := cur.ContainsRank(trump)
		if candTrump != fieldTrump && sameShape(cur, play) {
			if candTrump {
				return true, true, OverrideTrump
			}
			return true, false, OverrideNone
		}
	}

	// Fusion revolution: field and candidate same-rank groups of one
	// rank reaching four or more cards together.
	if ctx.Rules.FusionRevolution {
		if fr, fok := groupRank(cur); fok {
			if cr, cok := groupRank(play); cok && fr == cr && cur.Size()+play.Size() >= 4 {
				return true, true, OverrideFusion
			}
		}
	}

	// Cross-dressing compares as a rank-10 equivalent against any play
	// of matching card count.
	if play.Type == game.PlayCrossDressing || cur.Type == game.PlayCrossDressing {
		if cur.Size() != play.Size() {
			return true, false, OverrideNone
		}
		ps, cs := cur.Strength, play.Strength
		if ctx.Inversions.Parity() {
			ps, cs = -ps, -cs
		}
		return true, cs > ps, OverrideCrossDressing
	}

	// Sandstorm: a triple of threes beats any same-shape play, and a
	// field sandstorm yields only to another sandstorm.
	if ctx.Rules.Sandstorm {
		if isSandstorm(cur) {
			return true, isSandstorm(play), OverrideSandstorm
		}
		if isSandstorm(play) && cur.Type == game.PlayTriple {
			return true, true, OverrideSandstorm
		}
	}

	// Spade-three return: a lone spade 3 beats a lone joker.
	if ctx.Rules.SpadeThreeReturn && isLoneSpadeThree(play) && isLoneJoker(cur) {
		return true, true, OverrideSpadeThreeReturn
	}

	// Spade stair and tunnel carry fixed win/lose semantics.
	if play.Type == game.PlaySpadeStair {
		ok := game.IsStairLike(cur.Type) && cur.Size() == play.Size()
		return true, ok, OverrideSpadeStair
	}
	if play.Type == game.PlayTunnel {
		return true, false, OverrideNone
	}
	if cur.Type == game.PlaySpadeStair {
		return true, false, OverrideNone
	}
	if cur.Type == game.PlayTunnel {
		ok := game.IsStairLike(play.Type) && cur.Size() == play.Size()
		return true, ok, OverrideNone
	}

	// Double king: a pair of kings beats any pair at or below king
	// strength, with the bound flipped under inversion.
	if ctx.Rules.DoubleKing && isDoubleKing(play) && cur.Type == game.PlayPair {
		king := game.StrengthOf(game.RankKing)
		if ctx.Inversions.Parity() {
			if cur.Strength >= king {
				return true, true, OverrideDoubleKing
			}
		} else if cur.Strength <= king {
			return true, true, OverrideDoubleKing
		}
	}

	// Arthur: jokers in single comparisons are devalued to a fixed
	// strength between ranks 10 and 11.
	if ctx.Arthur && cur.Type == game.PlaySingle && play.Type == game.PlaySingle &&
		(cur.ContainsJoker() || play.ContainsJoker()) {
		pe := effectiveSingleStrength(cur, ctx)
		ce := effectiveSingleStrength(play, ctx)
		if ctx.Inversions.Parity() {
			pe, ce = -pe, -ce
		}
		return true, ce > pe, OverrideArthur
	}

	// Seven power: a lone power-color seven sits just below the joker,
	// unaffected by revolution inversion.
	if cur.Type == game.PlaySingle && play.Type == game.PlaySingle &&
		(isPowerSeven(cur, ctx.Rules) || isPowerSeven(play, ctx.Rules)) {
		pe := effectiveSingleStrength(cur, ctx)
		ce := effectiveSingleStrength(play, ctx)
		return true, ce > pe, OverrideSevenPower
	}

	return false, false, OverrideNone
}

// trumpRank resolves the active trump: a trump called into the lock
// state wins over the configured one. RankJoker means no trump.
func trumpRank(ctx Context) game.Rank {
	if ctx.Locks.TrumpRank != game.RankJoker {
		return ctx.Locks.TrumpRank
	}
	return ctx.Rules.TrumpRank
}

// sameShape is the structural half of the follow check: exact type
// equality, except that stair-like types compare by card count.
func sameShape(prev, cur game.Play) bool {
	if game.IsStairLike(prev.Type) && game.IsStairLike(cur.Type) {
		return prev.Size() == cur.Size()
	}
	if prev.Type != cur.Type {
		return false
	}
	if prev.Type == game.PlaySkipStair {
		return prev.Size() == cur.Size() && prev.SkipStairDiff == cur.SkipStairDiff
	}
	return prev.Size() == cur.Size()
}

// groupRank returns the shared rank of a same-rank group play.
func groupRank(p game.Play) (game.Rank, bool) {
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

func isLoneSpadeThree(p game.Play) bool {
	return p.Type == game.PlaySingle && len(p.Cards) == 1 &&
		!p.Cards[0].IsJoker() && p.Cards[0].Suit == game.SuitSpade && p.Cards[0].Rank == game.Rank(3)
}

func isLoneJoker(p game.Play) bool {
	return p.Type == game.PlaySingle && len(p.Cards) == 1 && p.Cards[0].IsJoker()
}
