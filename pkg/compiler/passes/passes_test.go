package passes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jihwankim/redpiler/pkg/compiler/graph"
)

func wireNode() *graph.CompileNode {
	return &graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeWire}}
}

// TestClampWeightsRemovesSaturatedEdges is §8.1's "every surviving edge has
// ss < 15" property, checked directly rather than as a whole-pipeline
// invariant.
func TestClampWeightsRemovesSaturatedEdges(t *testing.T) {
	g := graph.New()
	a := g.AddNode(wireNode())
	b := g.AddNode(wireNode())
	c := g.AddNode(wireNode())
	g.AddEdge(a, b, graph.CompileLink{Type: graph.LinkDefault, SS: 14})
	g.AddEdge(a, c, graph.CompileLink{Type: graph.LinkDefault, SS: 15})

	removed := ClampWeights(g)

	require.Equal(t, 1, removed)
	require.Equal(t, 1, g.NumEdges())
	for _, id := range g.EdgeIDs() {
		require.Less(t, g.Edge(id).Link.SS, 15)
	}
}

// TestDedupLinksKeepsMinimumStrengthLoss checks §4.4: of several parallel
// edges between the same (source, target, type), only the one with the
// smallest ss survives.
func TestDedupLinksKeepsMinimumStrengthLoss(t *testing.T) {
	g := graph.New()
	a := g.AddNode(wireNode())
	b := g.AddNode(wireNode())
	g.AddEdge(a, b, graph.CompileLink{Type: graph.LinkDefault, SS: 5})
	g.AddEdge(a, b, graph.CompileLink{Type: graph.LinkDefault, SS: 2})
	g.AddEdge(a, b, graph.CompileLink{Type: graph.LinkDefault, SS: 9})

	removed := DedupLinks(g)

	require.Equal(t, 2, removed)
	require.Equal(t, 1, g.NumEdges())
	remaining := g.Edge(g.EdgeIDs()[0])
	require.Equal(t, 2, remaining.Link.SS)
}

// TestDedupLinksKeepsDistinctTypesSeparate verifies a default-input edge and
// a side-input edge between the same pair of nodes are independent keys and
// both survive.
func TestDedupLinksKeepsDistinctTypesSeparate(t *testing.T) {
	g := graph.New()
	a := g.AddNode(wireNode())
	b := g.AddNode(wireNode())
	g.AddEdge(a, b, graph.CompileLink{Type: graph.LinkDefault, SS: 1})
	g.AddEdge(a, b, graph.CompileLink{Type: graph.LinkSide, SS: 1})

	removed := DedupLinks(g)

	require.Equal(t, 0, removed)
	require.Equal(t, 2, g.NumEdges())
}

// TestPruneOrphansKeepsOnlyAncestorsOfIO exercises §4.9: a node with no path
// to any IO node is removed; a node that feeds an IO node, even
// transitively, survives.
func TestPruneOrphansKeepsOnlyAncestorsOfIO(t *testing.T) {
	g := graph.New()
	lever := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeLever}, IsInput: true})
	mid := g.AddNode(wireNode())
	lamp := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeLamp}, IsOutput: true})
	orphan := g.AddNode(wireNode())

	g.AddEdge(lever, mid, graph.CompileLink{Type: graph.LinkDefault})
	g.AddEdge(mid, lamp, graph.CompileLink{Type: graph.LinkDefault})
	_ = orphan // never connected to an IO node at all

	removed := PruneOrphans(g)

	require.Equal(t, 1, removed)
	require.Nil(t, g.Node(orphan))
	require.NotNil(t, g.Node(lever))
	require.NotNil(t, g.Node(mid))
	require.NotNil(t, g.Node(lamp))
}

// TestSSRangeAnalysisNoInputSeeds checks the §4.5 phase-1 seed ranges for
// each no-input node kind.
func TestSSRangeAnalysisNoInputSeeds(t *testing.T) {
	g := graph.New()
	torch := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeTorch}})
	lever := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeLever}, IsInput: true})

	ranges := SSRangeAnalysis(g)

	require.Equal(t, graph.Singleton(15), ranges[torch])
	require.Equal(t, graph.Full(), ranges[lever])
}

// TestSSRangeAnalysisHandlesCycles is the core §9 design requirement: a
// feedback cycle with no acyclic seed must still terminate and assign every
// node a range, rather than looping forever or leaving a node unranged.
func TestSSRangeAnalysisHandlesCycles(t *testing.T) {
	g := graph.New()
	a := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeTorch}})
	b := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeTorch}})
	g.AddEdge(a, b, graph.CompileLink{Type: graph.LinkDefault})
	g.AddEdge(b, a, graph.CompileLink{Type: graph.LinkDefault})

	ranges := SSRangeAnalysis(g)

	require.Contains(t, ranges, a)
	require.Contains(t, ranges, b)
}

// TestUnreachableOutputDropsDeadEdges checks §4.6: an edge whose source can
// never output more than its own attenuation is removed.
func TestUnreachableOutputDropsDeadEdges(t *testing.T) {
	g := graph.New()
	src := g.AddNode(wireNode())
	dst := g.AddNode(wireNode())
	e := g.AddEdge(src, dst, graph.CompileLink{Type: graph.LinkDefault, SS: 14})

	ranges := RangeTable{src: graph.Singleton(14)}
	removed := UnreachableOutput(g, ranges)

	require.Equal(t, 1, removed)
	require.Nil(t, g.Edge(e))
}

// TestConstantFoldDeletesAlwaysOffNodes checks §4.7's k=0 case: a node whose
// range is the singleton {0} is simply removed, edges and all.
func TestConstantFoldDeletesAlwaysOffNodes(t *testing.T) {
	g := graph.New()
	off := g.AddNode(wireNode())
	dst := g.AddNode(wireNode())
	g.AddEdge(off, dst, graph.CompileLink{Type: graph.LinkDefault, SS: 0})

	ranges := RangeTable{off: graph.Singleton(0)}
	folded := ConstantFold(g, ranges)

	require.Equal(t, 1, folded)
	require.Nil(t, g.Node(off))
	require.Equal(t, 0, g.NumEdges())
}

// TestConstantFoldRewiresAlwaysOnNodes checks §4.7's k>0 case: a node whose
// range is a positive singleton is replaced by a shared strength-15
// Constant node, with the edge's ss increased by 15-k.
func TestConstantFoldRewiresAlwaysOnNodes(t *testing.T) {
	g := graph.New()
	on := g.AddNode(wireNode())
	dst := g.AddNode(wireNode())
	g.AddEdge(on, dst, graph.CompileLink{Type: graph.LinkDefault, SS: 1})

	ranges := RangeTable{on: graph.Singleton(10)}
	folded := ConstantFold(g, ranges)

	require.Equal(t, 1, folded)
	require.Nil(t, g.Node(on))
	require.Equal(t, 1, g.NumEdges())

	eid := g.EdgeIDs()[0]
	e := g.Edge(eid)
	require.Equal(t, dst, e.Target)
	require.Equal(t, 1+(15-10), e.Link.SS)
	require.Equal(t, graph.NodeConstant, g.Node(e.Source).Type.Kind)
}

// TestCoalesceMergesEquivalentNodes checks §4.8: two removable nodes with
// identical type, state, and input triples are merged into one, with the
// duplicate's outgoing edges redirected to the survivor.
func TestCoalesceMergesEquivalentNodes(t *testing.T) {
	g := graph.New()
	src := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeLever}, IsInput: true})
	a := g.AddNode(wireNode())
	b := g.AddNode(wireNode())
	sink := g.AddNode(&graph.CompileNode{Type: graph.NodeType{Kind: graph.NodeLamp}, IsOutput: true})

	g.AddEdge(src, a, graph.CompileLink{Type: graph.LinkDefault, SS: 1})
	g.AddEdge(src, b, graph.CompileLink{Type: graph.LinkDefault, SS: 1})
	g.AddEdge(a, sink, graph.CompileLink{Type: graph.LinkDefault, SS: 1})
	g.AddEdge(b, sink, graph.CompileLink{Type: graph.LinkDefault, SS: 1})

	ranges := RangeTable{src: graph.Full()}
	merged := Coalesce(g, ranges)

	require.Equal(t, 1, merged)
	require.Equal(t, 3, g.NumNodes())
}
