package passes

import "github.com/jihwankim/redpiler/pkg/compiler/graph"

// RangeTable is the result of SSRangeAnalysis: every live node's SSRange.
type RangeTable map[graph.NodeID]graph.SSRange

// SSRangeAnalysis assigns every node an SSRange under the four-phase
// algorithm of §4.5: seed no-input nodes and propagate forward; break
// repeater-locking cycles with Full; break any remaining cycles by treating
// unresolved predecessors as Full; finally widen every range to include the
// node's currently-observed output strength.
//
// The graph is intentionally cyclic (redstone clocks, §9 Design Notes), so
// this never assumes a topological order: phases 1 and 2 are fixed-point
// relaxations, and phase 3 is a single deterministic pass that always makes
// progress because it substitutes Full() for anything still unresolved.
func SSRangeAnalysis(g *graph.CompileGraph) RangeTable {
	ranges := make(RangeTable)

	// Phase 1: seed no-input nodes, then relax to a fixed point.
	for _, id := range g.NodeIDs() {
		if len(g.InEdges(id)) == 0 {
			ranges[id] = graph.NoInputRange(g.Node(id))
		}
	}
	relax(g, ranges, false)

	// Phase 2: break locking cycles — any repeater still unranged with a
	// side input is permanently locked, so assign it Full and relax again.
	changed := false
	for _, id := range g.NodeIDs() {
		if _, ok := ranges[id]; ok {
			continue
		}
		n := g.Node(id)
		if n.Type.Kind != graph.NodeRepeater {
			continue
		}
		for _, eid := range g.InEdges(id) {
			if g.Edge(eid).Link.Type == graph.LinkSide {
				ranges[id] = graph.Full()
				changed = true
				break
			}
		}
	}
	if changed {
		relax(g, ranges, false)
	}

	// Phase 3: break any remaining cycles by treating unresolved
	// predecessors as Full, in a single deterministic pass.
	for _, id := range g.NodeIDs() {
		if _, ok := ranges[id]; ok {
			continue
		}
		n := g.Node(id)
		d, s, _ := incomingRanges(g, id, ranges, true)
		ranges[id] = graph.Transfer(n, d, s, n.State.OutputStrength)
	}

	// Phase 4: transient extension.
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		ranges[id] = ranges[id].WithTransient(n.State.OutputStrength)
	}

	return ranges
}

// relax repeatedly computes ranges for any node whose predecessors are all
// already ranged, until no further progress is made.
func relax(g *graph.CompileGraph, ranges RangeTable, missingAsFull bool) {
	for {
		progressed := false
		for _, id := range g.NodeIDs() {
			if _, ok := ranges[id]; ok {
				continue
			}
			n := g.Node(id)
			d, s, ready := incomingRanges(g, id, ranges, missingAsFull)
			if !ready {
				continue
			}
			ranges[id] = graph.Transfer(n, d, s, n.State.OutputStrength)
			progressed = true
		}
		if !progressed {
			return
		}
	}
}

// incomingRanges computes the decayed-and-unioned default (d) and side (s)
// ranges feeding a node. ready is false if some predecessor has no assigned
// range yet and missingAsFull is false.
func incomingRanges(g *graph.CompileGraph, id graph.NodeID, ranges RangeTable, missingAsFull bool) (d, s graph.SSRange, ready bool) {
	d, s = graph.Zero(), graph.Zero()
	ready = true
	for _, eid := range g.InEdges(id) {
		e := g.Edge(eid)
		predRange, ok := ranges[e.Source]
		if !ok {
			if !missingAsFull {
				ready = false
				continue
			}
			predRange = graph.Full()
		}
		decayed := predRange.Decayed(e.Link.SS)
		if e.Link.Type == graph.LinkSide {
			s = s.Union(decayed)
		} else {
			d = d.Union(decayed)
		}
	}
	return d, s, ready
}
