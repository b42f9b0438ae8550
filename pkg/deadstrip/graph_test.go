package deadstrip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphConnectDeduplicates(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a")
	b := g.NewNode("b")

	g.Connect(a, b)
	g.Connect(a, b)
	g.Connect(a, b)

	assert.Equal(t, []NodeID{b}, g.Edges(a))
}

func TestGraphConnectSelfLoop(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a")

	g.Connect(a, a)
	g.Connect(a, a)

	assert.Equal(t, []NodeID{a}, g.Edges(a))
}

func TestGraphConnectIgnoresInvalidNodes(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a")

	require.NotPanics(t, func() {
		g.Connect(a, invalidNodeID)
		g.Connect(invalidNodeID, a)
	})

	assert.Empty(t, g.Edges(a))
}

func TestColorizeIdempotence(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a")

	g.Colorize(a, ColorLive)
	once := g.Color(a)

	g.Colorize(a, ColorLive)
	twice := g.Color(a)

	assert.Equal(t, once, twice)
}

func TestColorizeMonotonicity(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a")

	g.Colorize(a, ColorWeaklyLive)
	before := g.Color(a)

	g.Colorize(a, ColorLive)
	after := g.Color(a)

	assert.Equal(t, before, after&before, "prior bits must still be set")
	assert.NotEqual(t, before, after)
}

func TestColorizeClosure(t *testing.T) {
	g := NewGraph()
	main := g.NewNode("main")
	helper := g.NewNode("helper")
	unreachable := g.NewNode("unreachable")

	g.Connect(main, helper)

	g.Colorize(main, ColorLive)

	assert.Equal(t, ColorLive, g.Color(main)&ColorLive)
	assert.Equal(t, ColorLive, g.Color(helper)&ColorLive)
	assert.Equal(t, uint32(0), g.Color(unreachable)&ColorLive)
	assert.Zero(t, g.Color(unreachable))
}

func TestColorizeCycleTerminates(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a")
	b := g.NewNode("b")

	g.Connect(a, b)
	g.Connect(b, a)

	g.Colorize(a, ColorLive)

	assert.True(t, g.IsLive(a))
	assert.True(t, g.IsLive(b))
}

func TestIsLiveAndIsWeaklyLive(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a")

	assert.False(t, g.IsLive(a))
	assert.False(t, g.IsWeaklyLive(a))

	g.Colorize(a, ColorWeaklyLive)
	assert.False(t, g.IsLive(a))
	assert.True(t, g.IsWeaklyLive(a))

	g.Colorize(a, ColorLive)
	assert.True(t, g.IsLive(a))
	assert.True(t, g.IsWeaklyLive(a))
}
