package passes

import "github.com/jihwankim/redpiler/pkg/compiler/graph"

type dedupKey struct {
	src, dst graph.NodeID
	ty       graph.LinkType
}

// DedupLinks retains, for each (source, target, type) triple, only the edge
// with minimum ss (§4.4, mandatory).
func DedupLinks(g *graph.CompileGraph) (removed int) {
	best := make(map[dedupKey]graph.EdgeID)
	for _, id := range g.EdgeIDs() {
		e := g.Edge(id)
		k := dedupKey{e.Source, e.Target, e.Link.Type}
		existingID, ok := best[k]
		if !ok {
			best[k] = id
			continue
		}
		existing := g.Edge(existingID)
		if e.Link.SS < existing.Link.SS {
			g.RemoveEdge(existingID)
			best[k] = id
		} else {
			g.RemoveEdge(id)
		}
		removed++
	}
	return removed
}
