package passes

import "github.com/jihwankim/redpiler/pkg/compiler/graph"

// ConstantFold folds every removable node whose SSRange is a singleton {k}
// into a single lazily-created shared Constant node at strength 15 (§4.7).
// k=0 nodes are simply deleted along with their outgoing edges (they can
// never deliver a signal); k>0 nodes have their outgoing edges rewired to
// originate at the shared constant with ss increased by 15-k, dropping any
// edge that saturates to ss >= 15 in the process.
func ConstantFold(g *graph.CompileGraph, ranges RangeTable) (folded int) {
	const noConstant graph.NodeID = -1
	constantID := noConstant

	ensureConstant := func() graph.NodeID {
		if constantID == noConstant {
			constantID = g.AddNode(&graph.CompileNode{
				Type:  graph.NodeType{Kind: graph.NodeConstant},
				State: graph.NodeState{Powered: true, OutputStrength: 15},
			})
		}
		return constantID
	}

	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		if !n.Removable() || n.Type.Kind == graph.NodeConstant {
			continue
		}
		r, ok := ranges[id]
		if !ok || r.Low != r.High {
			continue
		}
		k := r.Low

		if k == 0 {
			g.RemoveNode(id)
			folded++
			continue
		}

		cid := ensureConstant()
		delta := 15 - k
		for _, eid := range g.OutEdges(id) {
			e := g.Edge(eid)
			target, linkType, newSS := e.Target, e.Link.Type, e.Link.SS+delta
			g.RemoveEdge(eid)
			if newSS < 15 {
				g.AddEdge(cid, target, graph.CompileLink{Type: linkType, SS: newSS})
			}
		}
		g.RemoveNode(id)
		folded++
	}

	return folded
}
