package passes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jihwankim/redpiler/pkg/compiler/graph"
)

// Coalesce merges duplicate logic (§4.8). Two removable, non-IO nodes are
// equivalent iff they share the same NodeType variant and payload, the same
// NodeState, and the same multiset of (source, input_signature, link_ty)
// incoming triples — where input_signature is a bitmask of the signal
// strengths reachable at the destination once the source's SSRange is
// decayed by the edge's ss, using the "bool" (two-bucket) signature for
// binary-output source types and the "hex" (sixteen-bucket) signature
// otherwise. Iterates to a fixed point: redirecting a merged node's outgoing
// edges can make further downstream nodes newly equivalent.
func Coalesce(g *graph.CompileGraph, ranges RangeTable) (merged int) {
	for {
		groups := make(map[string][]graph.NodeID)
		for _, id := range g.NodeIDs() {
			n := g.Node(id)
			if !n.Removable() {
				continue
			}
			key := nodeSignature(g, id, ranges)
			groups[key] = append(groups[key], id)
		}

		progressed := false
		for _, ids := range groups {
			if len(ids) < 2 {
				continue
			}
			keep := ids[0]
			for _, dup := range ids[1:] {
				if g.Node(dup) == nil {
					continue
				}
				g.RedirectOutEdges(dup, keep)
				g.RemoveNode(dup)
				merged++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return merged
}

type inputTriple struct {
	src graph.NodeID
	sig uint16
	lt  graph.LinkType
}

func nodeSignature(g *graph.CompileGraph, id graph.NodeID, ranges RangeTable) string {
	n := g.Node(id)

	triples := make([]inputTriple, 0, len(g.InEdges(id)))
	for _, eid := range g.InEdges(id) {
		e := g.Edge(eid)
		srcNode := g.Node(e.Source)
		sig := inputSignature(ranges[e.Source], e.Link.SS, srcNode.Type.Kind.IsBinary())
		triples = append(triples, inputTriple{src: e.Source, sig: sig, lt: e.Link.Type})
	}
	sort.Slice(triples, func(i, j int) bool {
		if triples[i].src != triples[j].src {
			return triples[i].src < triples[j].src
		}
		if triples[i].sig != triples[j].sig {
			return triples[i].sig < triples[j].sig
		}
		return triples[i].lt < triples[j].lt
	})

	var sb strings.Builder
	sb.WriteString(typeSignature(n.Type))
	sb.WriteByte('|')
	fmt.Fprintf(&sb, "%v", n.State)
	sb.WriteByte('|')
	for _, t := range triples {
		fmt.Fprintf(&sb, "%d:%d:%d,", t.src, t.sig, t.lt)
	}
	return sb.String()
}

func typeSignature(t graph.NodeType) string {
	far := -1
	if t.FarInput != nil {
		far = *t.FarInput
	}
	return fmt.Sprintf("%d/%d/%v/%d/%d/%d/%d/%d",
		t.Kind, t.Delay, t.FacingDiode, t.Mode, far, t.Instrument, t.Note, t.Facing)
}

// inputSignature derives the 16-bit reachable-strength mask used to compare
// incoming edges for equivalence. Binary-output sources (repeater, torch,
// lamp, trapdoor, note block, observer) only ever actually emit 0 or 15, so
// their signature collapses to those two buckets even when their static
// SSRange is wider; every other source type (wire, comparator, lever,
// button, pressure plate, constant) gets the full "hex" signature: one bit
// per reachable strength in its decayed range.
func inputSignature(srcRange graph.SSRange, ss int, sourceIsBinary bool) uint16 {
	decayed := srcRange.Decayed(ss)
	var mask uint16
	if sourceIsBinary {
		if decayed.Includes(0) {
			mask |= 1 << 0
		}
		if decayed.Includes(15) {
			mask |= 1 << 15
		}
		return mask
	}
	for v := decayed.Low; v <= decayed.High; v++ {
		mask |= 1 << uint(v)
	}
	return mask
}
