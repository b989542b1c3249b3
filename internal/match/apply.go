package match

import (
	"go.uber.org/zap"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/effects"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
)

// applyEffectsLocked mutates match state for every effect the analyzer
// detected. Detection is in-core; this application step is the
// orchestrator's half of the contract. Returns whether a
// field-clearing effect resolved.
func (m *Match) applyEffectsLocked(player *Player, play game.Play, fired []effects.Effect) bool {
	cleared := false
	for _, e := range fired {
		switch e {
		case effects.EffectRevolution, effects.EffectGreatRevolution,
			effects.EffectStairRevolution, effects.EffectNanasanRevolution,
			effects.EffectFusionRevolution:
			m.inversions.Revolution = !m.inversions.Revolution

		case effects.EffectReligiousRevolution:
			m.inversions.ReligiousRevolution = !m.inversions.ReligiousRevolution

		case effects.EffectElevenBack:
			m.inversions.ElevenBack = true

		case effects.EffectTwoBack:
			m.inversions.TwoBack = true

		case effects.EffectOmen:
			m.omenActive = true

		case effects.EffectTenFree:
			m.tenFree = true

		case effects.EffectArthur:
			m.arthurActive = true

		case effects.EffectEightCut:
			// The cut latches as pending and flushes only after every
			// other effect of the same play has applied.
			m.eightCutPending = true

		case effects.EffectSpadeThreeReturn, effects.EffectTaepodong:
			m.clearFieldLocked()
			m.lastPlayed = -1
			cleared = true

		case effects.EffectFiveSkip:
			m.pendingSkips += countRank(play, game.Rank(5))

		case effects.EffectNineReverse:
			m.direction = -m.direction

		case effects.EffectSevenGive:
			m.obligations = append(m.obligations, Obligation{
				PlayerID: player.ID,
				Effect:   e,
				Count:    countRank(play, game.Rank(7)),
			})

		case effects.EffectTenDiscard:
			m.obligations = append(m.obligations, Obligation{
				PlayerID: player.ID,
				Effect:   e,
				Count:    countRank(play, game.Rank(10)),
			})

		case effects.EffectSuitLock:
			if suit, ok := playUniformSuit(play); ok {
				s := suit
				m.locks.Suit = &s
			}

		case effects.EffectNumberLock:
			m.locks.Number = true

		case effects.EffectStrictLock:
			if suit, ok := playUniformSuit(play); ok {
				s := suit
				m.locks.Suit = &s
			}
			m.locks.Number = true

		case effects.EffectColorLock:
			if len(play.Cards) > 0 {
				m.locks.PartialSuits = colorSuits(play)
			}

		case effects.EffectParityLockEven:
			m.locks.Parity = rules.ParityEven

		case effects.EffectParityLockOdd:
			m.locks.Parity = rules.ParityOdd

		case effects.EffectDoubleDigitSeal:
			m.locks.DoubleDigitSeal = true

		case effects.EffectHotMilk:
			m.locks.HotMilk = rules.HotMilkWarm

		case effects.EffectPartialLock:
			m.locks.PartialSuits = playSuits(play)
		}

		m.logger.Debug("effect applied",
			zap.String("match_id", m.ID),
			zap.String("effect", string(e)),
		)
	}
	return cleared
}

func countRank(p game.Play, rank game.Rank) int {
	n := 0
	for _, c := range p.Cards {
		if !c.IsJoker() && c.Rank == rank {
			n++
		}
	}
	return n
}

func playUniformSuit(p game.Play) (game.Suit, bool) {
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

func playSuits(p game.Play) []game.Suit {
	seen := make(map[game.Suit]bool)
	var out []game.Suit
	for _, c := range p.Cards {
		if c.IsJoker() || seen[c.Suit] {
			continue
		}
		seen[c.Suit] = true
		out = append(out, c.Suit)
	}
	return out
}

// colorSuits returns both suits of the play's color.
func colorSuits(p game.Play) []game.Suit {
	for _, c := range p.Cards {
		if c.IsJoker() {
			continue
		}
		if c.Suit.IsRed() {
			return []game.Suit{game.SuitHeart, game.SuitDiamond}
		}
		return []game.Suit{game.SuitSpade, game.SuitClub}
	}
	return nil
}
