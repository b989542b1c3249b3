package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionCreate(t *testing.T) {
	sm := NewSessionManager(time.Minute, 2, "", nil)

	s, err := sm.Create("alice", "")
	require.NoError(t, err)
	assert.NotEmpty(t, s.Token)
	assert.NotEmpty(t, s.PlayerID)
	assert.Equal(t, "alice", s.PlayerName)
	assert.Equal(t, 1, sm.Count())

	t.Run("session limit", func(t *testing.T) {
		_, err := sm.Create("bob", "")
		require.NoError(t, err)
		_, err = sm.Create("carol", "")
		assert.ErrorIs(t, err, ErrSessionLimit)
	})
}

func TestSessionTablePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("open sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	sm := NewSessionManager(time.Minute, 0, string(hash), nil)

	_, err = sm.Create("alice", "wrong")
	assert.ErrorIs(t, err, ErrBadPassword)

	_, err = sm.Create("alice", "open sesame")
	assert.NoError(t, err)
}

func TestSessionValidate(t *testing.T) {
	sm := NewSessionManager(time.Minute, 0, "", nil)
	s, err := sm.Create("alice", "")
	require.NoError(t, err)

	got, err := sm.Validate(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.PlayerID, got.PlayerID)

	_, err = sm.Validate("bogus")
	assert.ErrorIs(t, err, ErrUnknownToken)

	t.Run("expired lease", func(t *testing.T) {
		short := NewSessionManager(-time.Second, 0, "", nil)
		s, err := short.Create("bob", "")
		require.NoError(t, err)
		_, err = short.Validate(s.Token)
		assert.ErrorIs(t, err, ErrSessionClosed)
	})

	t.Run("validation renews the lease", func(t *testing.T) {
		before := s.ExpiresAt
		time.Sleep(5 * time.Millisecond)
		renewed, err := sm.Validate(s.Token)
		require.NoError(t, err)
		assert.True(t, renewed.ExpiresAt.After(before) || renewed.ExpiresAt.Equal(before))
	})
}

func TestSessionClose(t *testing.T) {
	sm := NewSessionManager(time.Minute, 0, "", nil)
	s, _ := sm.Create("alice", "")
	sm.Close(s.Token)
	_, err := sm.Validate(s.Token)
	assert.ErrorIs(t, err, ErrUnknownToken)

	sm.Create("bob", "")
	sm.CloseAll()
	assert.Zero(t, sm.Count())
}
