// Package direct implements the "direct" backend (§3.8, §4.10, §4.11): the
// compact per-node record the newer cache-aligned design in the reference
// compiler uses, its tick executor, and its flush path. Per the Open
// Question resolution in DESIGN.md, only this newer variant is built; the
// older, simpler direct backend the reference keeps in parallel is not
// ported.
//
// The reference layout packs each Node into a 64-byte cache line with
// forward links inline up to a fixed count and spilling into further
// padded blocks beyond that. Go gives every Node its own heap allocation
// regardless of field order, so the spill-block bookkeeping buys nothing
// here; ForwardLinks is instead an ordinary grown slice, sorted by target
// type then target index to keep the "group by discriminant" intent of
// §4.10 without hand-rolled block arithmetic. Every other documented
// property of §3.8 — histogram-encoded inputs, the ForwardLink fields
// (stored as plain struct fields rather than bit-packed), and the flag
// set — is carried over.
package direct

import (
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
)

// ForwardLink is one outgoing edge as the tick executor walks it:
// the target's backend index, whether it arrives on the target's side
// input, and the signal-strength loss along the edge (< 15, per the
// clamp-weights invariant).
type ForwardLink struct {
	TargetIndex int
	Side        bool
	SS          int
}

// Node is the per-node backend record (§3.8). DefaultInputs/SideInputs are
// 16-bucket histograms of delivered signal strength across incoming links:
// bucket s holds the count of incoming links currently delivering strength
// s, with bucket 0 padded so every histogram always sums to 255. That
// padding turns "is any input active" into the single comparison
// DefaultInputs[0] != 255 (§4.11, "signal-strength bucket trick").
type Node struct {
	DefaultInputs [16]uint8
	SideInputs    [16]uint8

	Type graph.NodeType

	OutputPower int
	Powered     bool
	Locked      bool
	Changed     bool
	PendingTick bool
	IsIO        bool

	ForwardLinks []ForwardLink
}

// AnyDefaultActive reports whether any incoming default link currently
// delivers a nonzero strength.
func (n *Node) AnyDefaultActive() bool { return n.DefaultInputs[0] != 255 }

// AnySideActive reports the same for side links.
func (n *Node) AnySideActive() bool { return n.SideInputs[0] != 255 }

// MaxDefaultStrength returns the highest bucket index with a nonzero count,
// ignoring the padded zero bucket when nothing else is set.
func (n *Node) MaxDefaultStrength() int { return maxActiveBucket(n.DefaultInputs) }

// MaxSideStrength returns the equivalent maximum for side links.
func (n *Node) MaxSideStrength() int { return maxActiveBucket(n.SideInputs) }

func maxActiveBucket(hist [16]uint8) int {
	for s := 15; s > 0; s-- {
		if hist[s] > 0 {
			return s
		}
	}
	return 0
}

func boolStrength(powered bool) int {
	if powered {
		return 15
	}
	return 0
}
