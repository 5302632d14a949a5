// Package passes implements the optimization pipeline of §4.3–§4.9: a
// sequence of transformations over a graph.CompileGraph, run in the fixed
// order ClampWeights, DedupLinks, SSRangeAnalysis, UnreachableOutput,
// ConstantFold, Coalesce, PruneOrphans, grounded one file per pass on the
// corresponding file in original_source/crates/redpiler/src/passes/.
package passes

import "github.com/jihwankim/redpiler/pkg/compiler/graph"

// ClampWeights deletes every edge with ss >= 15 (§4.3, mandatory). A signal
// attenuated to zero at its destination is semantically absent, so there is
// no point modeling it as an edge at all.
func ClampWeights(g *graph.CompileGraph) (removed int) {
	for _, id := range g.EdgeIDs() {
		if g.Edge(id).Link.SS >= 15 {
			g.RemoveEdge(id)
			removed++
		}
	}
	return removed
}
