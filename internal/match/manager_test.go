package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statiolake/rich-rich-daifugo-sub002/internal/game/rules"
)

func TestManagerLifecycle(t *testing.T) {
	mgr := NewManager(nil)
	assert.Zero(t, mgr.Count())

	seats := []Seat{{ID: "a"}, {ID: "b"}}
	m, err := mgr.Create(seats, rules.StandardRules(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, mgr.Count())

	got, ok := mgr.Get(m.ID)
	require.True(t, ok)
	assert.Same(t, m, got)

	_, ok = mgr.Get("missing")
	assert.False(t, ok)

	mgr.Remove(m.ID)
	assert.Zero(t, mgr.Count())

	t.Run("creation error is propagated", func(t *testing.T) {
		_, err := mgr.Create([]Seat{{ID: "solo"}}, rules.StandardRules(), 1)
		assert.Error(t, err)
	})
}
