package frontend_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler/frontend"
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
	"github.com/jihwankim/redpiler/pkg/harness"
)

// TestIdentifyNodesSkipsUnrecognizedBlocks checks §4.1: a block kind absent
// from the catalog (plain air/stone, here represented by the TestWorld's
// zero-value block at an unplaced position) never becomes a node.
func TestIdentifyNodesSkipsUnrecognizedBlocks(t *testing.T) {
	w := harness.NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	w.Set(leverPos, blocks.Block{Kind: blocks.KindLever, Powered: true})

	lo, hi := blocks.NewBlockPos(0, 0, 0), blocks.NewBlockPos(2, 0, 0)
	g, posToNode := frontend.IdentifyNodes(w, lo, hi, frontend.Options{})

	require.Equal(t, 1, g.NumNodes())
	require.Contains(t, posToNode, leverPos)
}

// TestIdentifyNodesLoweringPreservesState checks §4.1's per-kind lowering:
// a powered lever becomes an input node with output strength 15.
func TestIdentifyNodesLoweringPreservesState(t *testing.T) {
	w := harness.NewTestWorld()
	pos := blocks.NewBlockPos(0, 0, 0)
	w.Set(pos, blocks.Block{Kind: blocks.KindLever, Powered: true})

	g, posToNode := frontend.IdentifyNodes(w, pos, pos, frontend.Options{})

	n := g.Node(posToNode[pos])
	require.Equal(t, graph.NodeLever, n.Type.Kind)
	require.True(t, n.IsInput)
	require.Equal(t, 15, n.State.OutputStrength)
}

// TestInputSearchResolvesDirectDefaultEdge checks §4.2: a lever directly
// face-adjacent to a lamp gets a single Default edge at distance 0.
func TestInputSearchResolvesDirectDefaultEdge(t *testing.T) {
	w := harness.NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	lampPos := blocks.NewBlockPos(1, 0, 0)
	w.Set(leverPos, blocks.Block{Kind: blocks.KindLever, Powered: true})
	w.Set(lampPos, blocks.Block{Kind: blocks.KindRedstoneLamp})

	g, posToNode := frontend.IdentifyNodes(w, leverPos, lampPos, frontend.Options{})

	leverID, lampID := posToNode[leverPos], posToNode[lampPos]
	edges := g.OutEdges(leverID)
	require.Len(t, edges, 1)
	e := g.Edge(edges[0])
	require.Equal(t, lampID, e.Target)
	require.Equal(t, graph.LinkDefault, e.Link.Type)
	require.Equal(t, 0, e.Link.SS)
}

// TestInputSearchFloodsThroughWireChain checks §4.2/§4.5's wire-reach rule:
// crossing N wire cells attenuates the edge delivered to the far node by N,
// and every wire cell crossed also gets its own Default edge from the
// source so its output_power has something to copy.
func TestInputSearchFloodsThroughWireChain(t *testing.T) {
	w := harness.NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	wire1 := blocks.NewBlockPos(1, 0, 0)
	wire2 := blocks.NewBlockPos(2, 0, 0)
	lampPos := blocks.NewBlockPos(3, 0, 0)
	w.Set(leverPos, blocks.Block{Kind: blocks.KindLever, Powered: true})
	w.Set(wire1, blocks.Block{Kind: blocks.KindRedstoneWire})
	w.Set(wire2, blocks.Block{Kind: blocks.KindRedstoneWire})
	w.Set(lampPos, blocks.Block{Kind: blocks.KindRedstoneLamp})

	g, posToNode := frontend.IdentifyNodes(w, leverPos, lampPos, frontend.Options{})
	leverID := posToNode[leverPos]

	var toLamp, toWire1, toWire2 *graph.Edge
	for _, eid := range g.OutEdges(leverID) {
		e := g.Edge(eid)
		switch e.Target {
		case posToNode[lampPos]:
			toLamp = e
		case posToNode[wire1]:
			toWire1 = e
		case posToNode[wire2]:
			toWire2 = e
		}
	}

	require.NotNil(t, toWire1)
	require.Equal(t, 0, toWire1.Link.SS)
	require.NotNil(t, toWire2)
	require.Equal(t, 1, toWire2.Link.SS)
	require.NotNil(t, toLamp)
	require.Equal(t, 2, toLamp.Link.SS)
}

// TestInputSearchRelaysThroughSolidBlock checks §4.2's "strongly powered
// solid blocks propagate at ss = 15 minus wire distance" rule: a generic
// opaque block between a lever and a lamp relays the edge at one extra cell
// of distance instead of stopping the flood, the way an ordinary
// unrecognized (air) block would.
func TestInputSearchRelaysThroughSolidBlock(t *testing.T) {
	w := harness.NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	solidPos := blocks.NewBlockPos(1, 0, 0)
	lampPos := blocks.NewBlockPos(1, 1, 0)
	w.Set(leverPos, blocks.Block{Kind: blocks.KindLever, Powered: true})
	w.Set(solidPos, blocks.Block{Kind: blocks.KindSolidBlock})
	w.Set(lampPos, blocks.Block{Kind: blocks.KindRedstoneLamp})

	lo := blocks.NewBlockPos(0, 0, 0)
	hi := blocks.NewBlockPos(1, 1, 0)
	g, posToNode := frontend.IdentifyNodes(w, lo, hi, frontend.Options{})

	leverID, lampID := posToNode[leverPos], posToNode[lampPos]
	require.NotContains(t, posToNode, solidPos, "a generic solid block is never a graph node")

	edges := g.OutEdges(leverID)
	require.Len(t, edges, 1)
	e := g.Edge(edges[0])
	require.Equal(t, lampID, e.Target)
	require.Equal(t, graph.LinkDefault, e.Link.Type)
	require.Equal(t, 1, e.Link.SS, "the relay adds one cell of distance even though it contributes no node of its own")
}

// TestInputSearchRepeaterOnlyAcceptsRearFace checks §4.2: a repeater facing
// west (input from its west neighbor, output to its east) only accepts a
// default edge arriving from that rear face, never a Default edge from a
// lever lateral to it — the lateral lever can only ever contribute a Side
// edge, and only to a repeater/comparator positioned for it.
func TestInputSearchRepeaterOnlyAcceptsRearFace(t *testing.T) {
	w := harness.NewTestWorld()
	rearPos := blocks.NewBlockPos(0, 0, 0)
	repeaterPos := blocks.NewBlockPos(1, 0, 0)
	sidePos := blocks.NewBlockPos(1, 0, 1)
	w.Set(rearPos, blocks.Block{Kind: blocks.KindLever, Powered: true})
	w.Set(repeaterPos, blocks.Block{Kind: blocks.KindRedstoneRepeater, Facing: blocks.FaceWest})
	w.Set(sidePos, blocks.Block{Kind: blocks.KindLever, Powered: true})

	lo := blocks.NewBlockPos(0, 0, 0)
	hi := blocks.NewBlockPos(1, 0, 1)
	g, posToNode := frontend.IdentifyNodes(w, lo, hi, frontend.Options{})

	repeaterID := posToNode[repeaterPos]
	rearID := posToNode[rearPos]

	foundDefault := false
	for _, eid := range g.InEdges(repeaterID) {
		e := g.Edge(eid)
		if e.Link.Type != graph.LinkDefault {
			continue
		}
		require.Equal(t, rearID, e.Source, "only the rear lever should ever deliver a Default edge")
		foundDefault = true
	}
	require.True(t, foundDefault)
}
