package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeDefaults(t *testing.T) {
	n := NewNode(5)
	assert.Equal(t, 5, n.ID)
	assert.Equal(t, -1, n.ParentID)
	assert.Equal(t, New, n.State)
	assert.True(t, math.IsInf(n.GCost, 1))
	assert.True(t, math.IsInf(n.RHS, 1))
}

func TestArenaResetReinitializes(t *testing.T) {
	a := NewArena(4)
	a.Get(2).GCost = 7
	a.Get(2).State = Closed
	a.Reset()
	assert.True(t, math.IsInf(a.Get(2).GCost, 1))
	assert.Equal(t, New, a.Get(2).State)
}

func byFCost(a, b *Node) bool {
	if a.FCost != b.FCost {
		return a.FCost < b.FCost
	}
	return a.HCost < b.HCost
}

func TestOpenListOrdersByLess(t *testing.T) {
	arena := NewArena(3)
	arena.Get(0).FCost, arena.Get(0).HCost = 5, 1
	arena.Get(1).FCost, arena.Get(1).HCost = 2, 1
	arena.Get(2).FCost, arena.Get(2).HCost = 2, 0

	open := NewOpenList(byFCost)
	open.Insert(arena.Get(0))
	open.Insert(arena.Get(1))
	open.Insert(arena.Get(2))

	require.Equal(t, 2, open.PopMin().ID) // fcost 2, hcost 0 wins tie
	require.Equal(t, 1, open.PopMin().ID)
	require.Equal(t, 0, open.PopMin().ID)
	assert.Equal(t, 0, open.Len())
}

func TestOpenListContainsAndRemove(t *testing.T) {
	arena := NewArena(2)
	open := NewOpenList(byFCost)
	n := arena.Get(0)
	open.Insert(n)

	assert.True(t, open.Contains(0))
	open.Remove(n)
	assert.False(t, open.Contains(0))
	assert.Equal(t, 0, open.Len())
}

func TestOpenListFixReordersAfterKeyChange(t *testing.T) {
	arena := NewArena(2)
	a, b := arena.Get(0), arena.Get(1)
	a.FCost, a.HCost = 10, 0
	b.FCost, b.HCost = 1, 0

	open := NewOpenList(byFCost)
	open.Insert(a)
	open.Insert(b)

	a.FCost = 0
	open.Fix(a)

	assert.Equal(t, 0, open.PeekMin().ID)
}
