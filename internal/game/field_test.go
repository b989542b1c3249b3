package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldHistory(t *testing.T) {
	f := NewField()
	assert.True(t, f.IsEmpty())
	_, ok := f.Current()
	assert.False(t, ok)

	f.Append(single(5), "p1")
	f.Append(single(8), "p2")

	cur, ok := f.Current()
	require.True(t, ok)
	assert.Equal(t, 8, cur.Strength)

	entry, ok := f.CurrentEntry()
	require.True(t, ok)
	assert.Equal(t, "p2", entry.OwnerID)

	last := f.Last(2)
	require.Len(t, last, 2)
	assert.Equal(t, "p1", last[0].OwnerID)
	assert.Equal(t, "p2", last[1].OwnerID)

	// Asking for more than recorded returns what exists.
	assert.Len(t, f.Last(10), 2)

	f.Clear()
	assert.True(t, f.IsEmpty())
	assert.Zero(t, f.Len())
}
