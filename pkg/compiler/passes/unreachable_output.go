package passes

import "github.com/jihwankim/redpiler/pkg/compiler/graph"

// UnreachableOutput removes every edge whose source can never deliver a
// positive signal strength past its attenuation (§4.6): range(u).High <= ss.
func UnreachableOutput(g *graph.CompileGraph, ranges RangeTable) (removed int) {
	for _, id := range g.EdgeIDs() {
		e := g.Edge(id)
		r, ok := ranges[e.Source]
		if !ok {
			continue
		}
		if r.High <= e.Link.SS {
			g.RemoveEdge(id)
			removed++
		}
	}
	return removed
}
