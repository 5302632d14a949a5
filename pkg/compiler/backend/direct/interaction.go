package direct

import (
	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
	"github.com/jihwankim/redpiler/pkg/world"
)

// OnUseBlock handles a player interaction (§4.12): toggling a lever,
// pressing a button, cycling a comparator's mode, or advancing a repeater's
// delay. The affected node's forward links are propagated within this same
// call, since an interaction happens outside the normal tick() cadence.
func OnUseBlock(b *Backend, w world.World, pos blocks.BlockPos) {
	idx, ok := b.PosMap[pos]
	if !ok {
		return
	}
	n := b.Nodes[idx]

	switch n.Type.Kind {
	case graph.NodeLever:
		commitOutput(b, idx, boolStrength(!n.Powered))

	case graph.NodeButton:
		if n.Powered {
			return
		}
		commitOutput(b, idx, 15)
		schedule(b, idx, buttonHoldTicks, world.PriorityNormal)

	case graph.NodeComparator:
		if n.Type.Mode == blocks.ComparatorCompare {
			n.Type.Mode = blocks.ComparatorSubtract
		} else {
			n.Type.Mode = blocks.ComparatorCompare
		}
		if newOut := comparatorOutput(n); newOut != n.OutputPower {
			commitOutput(b, idx, newOut)
		}

	case graph.NodeRepeater:
		n.Type.Delay = n.Type.Delay%4 + 1
	}

	drainWavefront(b, w)
}

// SetPressurePlate forces a pressure plate's output (§4.12) and propagates
// the change within this call.
func SetPressurePlate(b *Backend, w world.World, pos blocks.BlockPos, powered bool) {
	idx, ok := b.PosMap[pos]
	if !ok {
		return
	}
	commitOutput(b, idx, boolStrength(powered))
	drainWavefront(b, w)
}

// NodeSnapshot is the read-only diagnostic view inspect() returns (§4.12).
type NodeSnapshot struct {
	Type          graph.NodeType
	OutputPower   int
	Powered       bool
	Locked        bool
	PendingTick   bool
	DefaultInputs [16]uint8
	SideInputs    [16]uint8
}

// Inspect returns a diagnostic snapshot of the node at pos, for developer
// tooling only; it never mutates state.
func Inspect(b *Backend, pos blocks.BlockPos) (NodeSnapshot, bool) {
	idx, ok := b.PosMap[pos]
	if !ok {
		return NodeSnapshot{}, false
	}
	n := b.Nodes[idx]
	return NodeSnapshot{
		Type:          n.Type,
		OutputPower:   n.OutputPower,
		Powered:       n.Powered,
		Locked:        n.Locked,
		PendingTick:   n.PendingTick,
		DefaultInputs: n.DefaultInputs,
		SideInputs:    n.SideInputs,
	}, true
}
