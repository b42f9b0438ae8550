// Package deadstrip implements the reachability analysis at the heart of
// the section stripper: it builds a directed graph of per-symbol object
// file sections, colors it from a set of seed symbols, and partitions
// each object file's sections into the ones reachable from a seed and the
// ones that are not.
package deadstrip

import (
	"golang.org/x/exp/slices"

	"github.com/objstrip/deadstrip/pkg/utils"
)

// NodeID is an opaque handle into a Graph's node arena. The zero value is
// a valid handle to the first node ever created; use invalidNodeID (or a
// bool alongside a NodeID, as SymbolIndex.Get does) to represent "no node".
type NodeID int

const invalidNodeID NodeID = -1

// Color bits recognized by the coloring engine. Bit 0 marks a section
// reached from a user seed; bit 31 marks a section reached through a
// relocation whose source section wasn't inventoried. A section can carry
// both bits.
const (
	ColorLive       uint32 = 1 << 0
	ColorWeaklyLive uint32 = 1 << 31
)

type node struct {
	name  string
	color uint32
	edges []NodeID
}

// Graph is the arena owning every section node for one analysis run. It
// never frees individual nodes; the whole arena is released together when
// the owning Analysis goes out of scope.
type Graph struct {
	nodes []node
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// NewNode creates a node with the given name and color 0.
func (g *Graph) NewNode(name string) NodeID {
	g.nodes = append(g.nodes, node{name: name})
	return NodeID(len(g.nodes) - 1)
}

func (g *Graph) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes)
}

// Connect appends dst to src's out-edges if it isn't already present.
// Connecting with an unknown src or dst is a no-op.
func (g *Graph) Connect(src, dst NodeID) {
	if !g.valid(src) || !g.valid(dst) {
		return
	}

	if slices.Contains(g.nodes[src].edges, dst) {
		return
	}

	g.nodes[src].edges = append(g.nodes[src].edges, dst)
}

// Name returns the node's full (unstripped) section name.
func (g *Graph) Name(id NodeID) string {
	if !g.valid(id) {
		return ""
	}
	return g.nodes[id].name
}

// Color returns the node's current color bitfield.
func (g *Graph) Color(id NodeID) uint32 {
	if !g.valid(id) {
		return 0
	}
	return g.nodes[id].color
}

// SetColor overwrites the node's color bitfield.
func (g *Graph) SetColor(id NodeID, c uint32) {
	if !g.valid(id) {
		return
	}
	g.nodes[id].color = c
}

// Edges returns the node's out-edges in insertion order.
func (g *Graph) Edges(id NodeID) []NodeID {
	if !g.valid(id) {
		return nil
	}
	return g.nodes[id].edges
}

// IsLive reports whether the node was reached from a user seed.
func (g *Graph) IsLive(id NodeID) bool {
	if !g.valid(id) {
		return false
	}
	return utils.CreateBitView(&g.nodes[id].color).Read(0, 1) != 0
}

// IsWeaklyLive reports whether the node was reached through an
// unknown-source relocation, whether or not it was also reached from a
// user seed.
func (g *Graph) IsWeaklyLive(id NodeID) bool {
	if !g.valid(id) {
		return false
	}
	return utils.CreateBitView(&g.nodes[id].color).Read(31, 1) != 0
}

// Colorize performs depth-first bitwise-OR color propagation from seed,
// pruning whenever a node's color already contains every bit of c. The
// source algorithm recurses; this uses an explicit stack so that
// pathologically deep reference chains can't blow the call stack, with
// identical results.
func (g *Graph) Colorize(seed NodeID, c uint32) {
	if !g.valid(seed) {
		return
	}

	stack := []NodeID{seed}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		prev := g.nodes[n].color
		if prev|c == prev {
			continue
		}

		g.nodes[n].color = prev | c
		stack = append(stack, g.nodes[n].edges...)
	}
}
