package match

import (
	"go.uber.org/zap"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/effects"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
)

// Submit validates and, on acceptance, commits a play for the player:
// the cards leave the hand, the play lands on the field, and every
// detected effect is applied before the turn advances. A rejection is
// returned as a value; only protocol errors (wrong turn, unknown
// player) are errors.
func (m *Match) Submit(playerID string, cardIDs []string) (rules.Result, []effects.Effect, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateFinished {
		return rules.Result{}, nil, ErrMatchFinished
	}
	player, ok := m.playerByID(playerID)
	if !ok {
		return rules.Result{}, nil, ErrUnknownPlayer
	}
	if m.players[m.turn].ID != playerID {
		return rules.Result{}, nil, ErrNotYourTurn
	}

	cards := make([]game.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		c, found := player.Hand.CardByID(id)
		if !found {
			return rules.Result{
				Valid:   false,
				Outcome: rules.OutcomeNotInHand,
				Label:   "card is not in your hand",
			}, nil, nil
		}
		cards = append(cards, c)
	}

	result := rules.Validate(player.Hand, player.ID, cards, m.contextLocked())
	if !result.Valid {
		return result, nil, nil
	}
	play := *result.Classification

	// Commit: the ten-free window is consumed by the play it admitted.
	if m.tenFree {
		m.tenFree = false
	}
	for _, c := range cards {
		player.Hand.RemoveByID(c.ID)
	}
	m.field.Append(play, player.ID)
	m.lastPlayed = m.turn
	m.passesSinceLast = 0

	fired := effects.Analyze(play, m.gameStateLocked())
	cleared := m.applyEffectsLocked(player, play, fired)
	if m.eightCutPending {
		// Flush the pending cut: lock effects from the same play have
		// landed and are wiped together with the field.
		m.clearFieldLocked()
		m.lastPlayed = -1
		cleared = true
	}

	m.logger.Info("play committed",
		zap.String("match_id", m.ID),
		zap.String("player_id", player.ID),
		zap.String("type", string(play.Type)),
		zap.Int("cards", play.Size()),
		zap.Int("effects", len(fired)),
	)

	if player.Hand.Size() == 0 {
		m.finishPlayerLocked(player)
	}

	if m.state != StateFinished {
		if cleared {
			// A field-clearing effect lets the same player lead again;
			// if they just finished, the lead moves on.
			if player.Finished {
				m.advanceLocked()
			}
		} else {
			m.advanceLocked()
		}
	}

	m.recordSnapshot("play", player.ID)
	return result, fired, nil
}

// Pass declines to play. Passing while leading an empty field is not
// allowed. When every other active player has passed since the last
// play, the trick closes: the field and all latched locks clear and
// the last player to play leads again.
func (m *Match) Pass(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateFinished {
		return ErrMatchFinished
	}
	if _, ok := m.playerByID(playerID); !ok {
		return ErrUnknownPlayer
	}
	if m.players[m.turn].ID != playerID {
		return ErrNotYourTurn
	}
	if m.field.IsEmpty() {
		return ErrCannotPassLead
	}

	m.passesSinceLast++
	m.advanceLocked()
	m.closeTrickIfDoneLocked()
	m.recordSnapshot("pass", playerID)
	return nil
}

func (m *Match) activeCountLocked() int {
	n := 0
	for _, p := range m.players {
		if !p.Finished {
			n++
		}
	}
	return n
}

// advanceLocked moves the turn to the next unfinished player in the
// current direction, honoring pending skips.
func (m *Match) advanceLocked() {
	if m.activeCountLocked() == 0 {
		return
	}
	for {
		m.turn = (m.turn + m.direction + len(m.players)) % len(m.players)
		if m.players[m.turn].Finished {
			continue
		}
		if m.pendingSkips > 0 {
			m.pendingSkips--
			m.passesSinceLast++
			continue
		}
		return
	}
}

// closeTrickIfDoneLocked clears the trick once every active player
// other than the last one to play has passed.
func (m *Match) closeTrickIfDoneLocked() {
	active := m.activeCountLocked()
	if active == 0 {
		return
	}
	needed := active
	lastActive := m.lastPlayed >= 0 && !m.players[m.lastPlayed].Finished
	if lastActive {
		needed = active - 1
	}
	if m.passesSinceLast < needed {
		return
	}

	m.clearFieldLocked()
	if lastActive {
		m.turn = m.lastPlayed
	}
	// When the last player already finished, the turn has naturally
	// moved past them; the current player leads.
	m.lastPlayed = -1
	m.logger.Debug("trick closed", zap.String("match_id", m.ID))
}

// clearFieldLocked resets the field and every latched per-trick state:
// locks, the temporary inversions, and the override windows. The
// persistent revolution flags survive.
func (m *Match) clearFieldLocked() {
	m.field.Clear()
	m.locks = rules.Locks{TrumpRank: m.locks.TrumpRank}
	m.inversions.ElevenBack = false
	m.inversions.TwoBack = false
	m.tenFree = false
	m.arthurActive = false
	m.omenActive = false
	m.eightCutPending = false
	m.passesSinceLast = 0
}

// finishPlayerLocked records a finish and, when only one player
// remains, ends the match and attributes the loser's demotion to the
// first finisher.
func (m *Match) finishPlayerLocked(p *Player) {
	m.finishCount++
	p.Finished = true
	p.FinishPos = m.finishCount

	m.logger.Info("player finished",
		zap.String("match_id", m.ID),
		zap.String("player_id", p.ID),
		zap.Int("position", p.FinishPos),
	)

	if m.activeCountLocked() > 1 {
		return
	}

	var winner *Player
	for _, q := range m.players {
		if q.FinishPos == 1 {
			winner = q
		}
	}
	for _, q := range m.players {
		if !q.Finished {
			m.finishCount++
			q.Finished = true
			q.FinishPos = m.finishCount
			q.Demoted = true
			if winner != nil {
				q.DemotedBy = winner.ID
			}
		}
	}
	m.state = StateFinished
	m.logger.Info("match finished", zap.String("match_id", m.ID))
	if m.onFinish != nil {
		go m.onFinish(m)
	}
}

// ResolveObligation resolves the oldest pending obligation for the
// player: seven-give transfers the cards to the next active player,
// ten-discard removes them from the game. No legality check applies
// beyond ownership and count.
func (m *Match) ResolveObligation(playerID string, cardIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	player, ok := m.playerByID(playerID)
	if !ok {
		return ErrUnknownPlayer
	}

	idx := -1
	for i, ob := range m.obligations {
		if ob.PlayerID == playerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNoObligation
	}
	ob := m.obligations[idx]

	count := ob.Count
	if player.Hand.Size() < count {
		count = player.Hand.Size()
	}
	if len(cardIDs) != count {
		return ErrBadObligationCards
	}

	moved := make([]game.Card, 0, count)
	for _, id := range cardIDs {
		c, found := player.Hand.CardByID(id)
		if !found {
			return ErrBadObligationCards
		}
		moved = append(moved, c)
	}
	for _, c := range moved {
		player.Hand.RemoveByID(c.ID)
	}

	if ob.Effect == effects.EffectSevenGive {
		if next := m.nextActiveAfterLocked(playerID); next != nil {
			for _, c := range moved {
				next.Hand.Add(c)
			}
			next.Hand.Sort()
		}
	}

	m.obligations = append(m.obligations[:idx], m.obligations[idx+1:]...)
	if player.Hand.Size() == 0 && !player.Finished {
		m.finishPlayerLocked(player)
	}
	return nil
}

func (m *Match) nextActiveAfterLocked(playerID string) *Player {
	start := -1
	for i, p := range m.players {
		if p.ID == playerID {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}
	for i := 1; i < len(m.players); i++ {
		p := m.players[(start+m.direction*i+len(m.players)*i)%len(m.players)]
		if !p.Finished && p.ID != playerID {
			return p
		}
	}
	return nil
}
