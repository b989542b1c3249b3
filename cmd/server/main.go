package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/config"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/match"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/repository"
	"github.com/statiolake/rich-rich-daifugo-sub002/internal/server"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting daifugo server",
		zap.String("version", version),
		zap.String("config", *configPath),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Persistence is optional; without a database URL the server runs
	// in memory only.
	var matchRepo *repository.MatchRepository
	if cfg.Database.URL != "" {
		db, err := repository.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		matchRepo = repository.NewMatchRepository(db)
	} else {
		logger.Warn("no database configured; match results will not be persisted")
	}

	sessionMgr := server.NewSessionManager(
		cfg.Server.LeasePeriod,
		cfg.Server.MaxSessions,
		cfg.Auth.TablePasswordHash,
		logger,
	)
	go sessionMgr.CleanupExpired(ctx)
	logger.Info("session manager initialized",
		zap.Duration("lease_period", cfg.Server.LeasePeriod),
		zap.Int("max_sessions", cfg.Server.MaxSessions),
	)

	matchMgr := match.NewManager(logger)
	if matchRepo != nil {
		matchMgr.SetFinishHook(func(m *match.Match) {
			saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			rec := repository.MatchRecord{
				ID:         m.ID,
				Preset:     cfg.Rules.Preset,
				FinishedAt: time.Now(),
			}
			for _, p := range m.Placements() {
				rec.Placements = append(rec.Placements, repository.Placement{
					PlayerID:  p.PlayerID,
					Name:      p.Name,
					Position:  p.Position,
					Demoted:   p.Demoted,
					DemotedBy: p.DemotedBy,
				})
			}
			if err := matchRepo.Save(saveCtx, rec); err != nil {
				logger.Error("failed to persist finished match",
					zap.String("match_id", m.ID),
					zap.Error(err),
				)
				return
			}
			logger.Info("match persisted", zap.String("match_id", m.ID))
		})
	}
	logger.Info("match manager initialized",
		zap.String("rules_preset", cfg.Rules.Preset),
	)

	hub := server.NewHub(sessionMgr, matchMgr, cfg.Rules.RuleConfig(), logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(ctx, cfg.Server, hub, logger)
	}()

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil {
			logger.Error("websocket server error", zap.Error(err))
		}
	}

	logger.Info("shutting down gracefully...")
	cancel()
	sessionMgr.CloseAll()
	logger.Info("daifugo server stopped")
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
