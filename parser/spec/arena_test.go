package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAssignsMonotonicIDs(t *testing.T) {
	arena := NewNodeArena()

	assert.Equal(t, NodeID(0), arena.PeekNextID())

	first := arena.RegisterNode(NewDocumentNode(NoQuirks))
	second := arena.RegisterNode(NewElementNode("div", "", nil))
	third := arena.RegisterNode(NewTextNode("hello"))

	assert.Equal(t, NodeID(0), first)
	assert.Equal(t, NodeID(1), second)
	assert.Equal(t, NodeID(2), third)
	assert.Equal(t, NodeID(3), arena.PeekNextID())
	assert.Equal(t, 3, arena.NodeCount())
}

func TestDoubleRegistrationPanics(t *testing.T) {
	arena := NewNodeArena()
	node := NewElementNode("div", "", nil)
	arena.RegisterNode(node)

	require.Panics(t, func() {
		arena.RegisterNode(node)
	})
}

func TestDeletedIDsAreNeverReused(t *testing.T) {
	arena := NewNodeArena()
	arena.RegisterNode(NewDocumentNode(NoQuirks))
	deleted := arena.RegisterNode(NewElementNode("div", "", nil))

	arena.DeleteNode(deleted)
	assert.Nil(t, arena.Node(deleted))
	assert.Equal(t, 1, arena.NodeCount())

	next := arena.RegisterNode(NewElementNode("span", "", nil))
	assert.Greater(t, uint64(next), uint64(deleted))
}

func TestPeekNextIDDoesNotAllocate(t *testing.T) {
	arena := NewNodeArena()
	before := arena.PeekNextID()
	assert.Equal(t, before, arena.PeekNextID())

	id := arena.RegisterNode(NewCommentNode("x"))
	assert.Equal(t, before, id)
	assert.Equal(t, before+1, arena.PeekNextID())
}
