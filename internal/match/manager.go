package match

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
)

// Manager tracks the matches hosted by this process.
type Manager struct {
	mu         sync.RWMutex
	matches    map[string]*Match
	finishHook func(*Match)
	logger     *zap.Logger
}

// NewManager creates an empty match manager.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		matches: make(map[string]*Match),
		logger:  logger,
	}
}

// SetFinishHook registers a callback applied to every match this
// manager creates, invoked when the match finishes. Used to persist
// final standings.
func (mgr *Manager) SetFinishHook(fn func(*Match)) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.finishHook = fn
}

// Create starts a new match and registers it.
func (mgr *Manager) Create(seats []Seat, rc rules.RuleConfig, seed int64) (*Match, error) {
	m, err := New(seats, rc, seed, mgr.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	mgr.mu.Lock()
	if mgr.finishHook != nil {
		m.SetFinishHook(mgr.finishHook)
	}
	mgr.matches[m.ID] = m
	mgr.mu.Unlock()

	mgr.logger.Info("match registered", zap.String("match_id", m.ID))
	return m, nil
}

// Get returns a registered match by ID.
func (mgr *Manager) Get(id string) (*Match, bool) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	m, ok := mgr.matches[id]
	return m, ok
}

// Remove unregisters a match.
func (mgr *Manager) Remove(id string) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	delete(mgr.matches, id)
}

// Count returns the number of registered matches.
func (mgr *Manager) Count() int {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	return len(mgr.matches)
}
