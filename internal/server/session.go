package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrSessionLimit  = errors.New("session limit reached")
	ErrBadPassword   = errors.New("invalid table password")
	ErrUnknownToken  = errors.New("unknown session token")
	ErrSessionClosed = errors.New("session closed")
)

// Session is one authenticated player connection lease.
type Session struct {
	Token      string
	PlayerID   string
	PlayerName string
	ExpiresAt  time.Time
}

// SessionManager issues and expires connection leases. Private tables
// require the configured bcrypt-hashed password at session creation.
type SessionManager struct {
	mu           sync.Mutex
	sessions     map[string]*Session
	lease        time.Duration
	maxSessions  int
	passwordHash string
	logger       *zap.Logger
}

// NewSessionManager creates a session manager. An empty passwordHash
// makes the table public.
func NewSessionManager(lease time.Duration, maxSessions int, passwordHash string, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{
		sessions:     make(map[string]*Session),
		lease:        lease,
		maxSessions:  maxSessions,
		passwordHash: passwordHash,
		logger:       logger,
	}
}

// Create authenticates and issues a session for the player.
func (sm *SessionManager) Create(playerName, password string) (*Session, error) {
	if sm.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(sm.passwordHash), []byte(password)); err != nil {
			return nil, ErrBadPassword
		}
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		return nil, ErrSessionLimit
	}

	s := &Session{
		Token:      uuid.NewString(),
		PlayerID:   uuid.NewString(),
		PlayerName: playerName,
		ExpiresAt:  time.Now().Add(sm.lease),
	}
	sm.sessions[s.Token] = s
	sm.logger.Info("session created",
		zap.String("player_id", s.PlayerID),
		zap.String("player_name", playerName),
	)
	return s, nil
}

// Validate resolves a token to its session and renews the lease.
func (sm *SessionManager) Validate(token string) (*Session, error) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	s, ok := sm.sessions[token]
	if !ok {
		return nil, ErrUnknownToken
	}
	if time.Now().After(s.ExpiresAt) {
		delete(sm.sessions, token)
		return nil, ErrSessionClosed
	}
	s.ExpiresAt = time.Now().Add(sm.lease)
	return s, nil
}

// Close removes a session.
func (sm *SessionManager) Close(token string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	delete(sm.sessions, token)
}

// CloseAll removes every session.
func (sm *SessionManager) CloseAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.sessions = make(map[string]*Session)
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

// CleanupExpired periodically removes expired sessions until the
// context is canceled.
func (sm *SessionManager) CleanupExpired(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sm.mu.Lock()
			now := time.Now()
			for token, s := range sm.sessions {
				if now.After(s.ExpiresAt) {
					delete(sm.sessions, token)
					sm.logger.Debug("session expired", zap.String("player_id", s.PlayerID))
				}
			}
			sm.mu.Unlock()
		}
	}
}
