// Command simulate deals a table and drives random legal plays through
// the full engine until the match ends. Useful as a smoke test of the
// classifier, validator and effect analyzer without a network peer.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/match"
)

var (
	players = flag.Int("players", 4, "number of players")
	seed    = flag.Int64("seed", 1, "deal seed")
	preset  = flag.String("preset", "standard", "rules preset: standard or kitchen_sink")
	verbose = flag.Bool("v", false, "debug logging")
	maxTurn = flag.Int("max-turns", 10000, "abort after this many turns")
)

func main() {
	flag.Parse()

	logger, err := initLogger(*verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rc := rules.StandardRules()
	if *preset == "kitchen_sink" {
		rc = rules.KitchenSinkRules()
	}

	seats := make([]match.Seat, *players)
	for i := range seats {
		seats[i] = match.Seat{Name: fmt.Sprintf("player-%d", i+1)}
	}

	m, err := match.New(seats, rc, *seed, logger)
	if err != nil {
		logger.Fatal("failed to create match", zap.Error(err))
	}

	rng := rand.New(rand.NewSource(*seed))
	turns := 0
	for !m.Finished() && turns < *maxTurn {
		turns++
		current := m.CurrentPlayerID()

		// Resolve forced discards before playing on.
		for _, ob := range m.Obligations() {
			p, _ := m.Player(ob.PlayerID)
			cards := p.Hand.Cards()
			count := ob.Count
			if count > len(cards) {
				count = len(cards)
			}
			ids := make([]string, 0, count)
			for _, c := range cards[:count] {
				ids = append(ids, c.ID)
			}
			if err := m.ResolveObligation(ob.PlayerID, ids); err != nil {
				logger.Fatal("failed to resolve obligation", zap.Error(err))
			}
		}
		if m.Finished() {
			break
		}

		plays, err := m.LegalPlays(current)
		if err != nil {
			logger.Fatal("failed to enumerate plays", zap.Error(err))
		}
		if len(plays) == 0 {
			if err := m.Pass(current); err != nil {
				logger.Fatal("failed to pass", zap.Error(err))
			}
			continue
		}

		pick := plays[rng.Intn(len(plays))]
		ids := make([]string, 0, len(pick))
		for _, c := range pick {
			ids = append(ids, c.ID)
		}
		result, fired, err := m.Submit(current, ids)
		if err != nil {
			logger.Fatal("failed to submit", zap.Error(err))
		}
		if !result.Valid {
			logger.Fatal("enumerated play rejected on submit",
				zap.String("outcome", string(result.Outcome)),
			)
		}
		for _, e := range fired {
			logger.Info("effect fired",
				zap.String("player", current),
				zap.String("effect", string(e)),
			)
		}
	}

	if !m.Finished() {
		logger.Warn("match did not finish", zap.Int("turns", turns))
		return
	}

	fmt.Printf("match finished after %d turns\n", turns)
	for _, s := range m.Standing() {
		p, _ := m.Player(s.ID)
		fmt.Printf("  %d. %s\n", s.FinishPos, p.Name)
	}
}

func initLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
