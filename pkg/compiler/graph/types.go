// Package graph implements the compile-time dataflow graph (§3.2–§3.7): the
// typed CompileNode/CompileLink/CompileGraph data model the front-end builds
// and the pass pipeline rewrites, plus its DOT and tagged-record export
// forms (§6.4, §12.1, §12.2).
package graph

import (
	"github.com/jihwankim/redpiler/pkg/blocks"
)

// NodeTypeKind discriminates the variants of NodeType (§3.2). Observer is an
// addition beyond the literal §3.2 list: the catalog (§6.2) and Design Notes
// §9 both require an observer node with its own asymmetric tick-priority
// rule, so it is carried as a first-class variant rather than folded into
// Lamp/Trapdoor, whose semantics it does not share.
type NodeTypeKind int

const (
	NodeRepeater NodeTypeKind = iota
	NodeTorch
	NodeComparator
	NodeLamp
	NodeButton
	NodeLever
	NodePressurePlate
	NodeTrapdoor
	NodeWire
	NodeConstant
	NodeNoteBlock
	NodeObserver
)

func (k NodeTypeKind) String() string {
	names := [...]string{
		"repeater", "torch", "comparator", "lamp", "button", "lever",
		"pressure_plate", "trapdoor", "wire", "constant", "note_block",
		"observer",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// IsBinary reports whether this kind uses the "binary types" transfer
// function family of §4.5 (repeater, torch, lamp, trapdoor, note block,
// observer) as opposed to the comparator's own rule or wire's identity.
func (k NodeTypeKind) IsBinary() bool {
	switch k {
	case NodeRepeater, NodeTorch, NodeLamp, NodeTrapdoor, NodeNoteBlock, NodeObserver:
		return true
	default:
		return false
	}
}

// NodeType is the per-node variant payload (§3.2).
type NodeType struct {
	Kind NodeTypeKind

	// Repeater
	Delay       int // 1..=4
	FacingDiode bool

	// Comparator
	Mode     blocks.ComparatorMode
	FarInput *int // 0..=15, nil if no far input is wired

	// NoteBlock
	Instrument int
	Note       int // 0..=31

	// Observer
	Facing blocks.BlockFace
}

// NodeState is the mutable simulation state carried by a node (§3.3).
// Invariant: Powered == (OutputStrength > 0) except transiently for
// repeaters/comparators, exactly as the spec allows.
type NodeState struct {
	Powered        bool
	RepeaterLocked bool
	OutputStrength int // 0..=15
}

// NodeBlock is the optional world-position/protocol-id pair a node carries
// when it corresponds to an actual placed block (§3.4). IO nodes, note
// blocks, and folded/coalesced internal nodes all have one; the shared
// Constant node created by ConstantFold does not.
type NodeBlock struct {
	Pos        blocks.BlockPos
	ProtocolID uint32
}

// LinkType distinguishes a diode's default (rear) input from its side
// (lock/subtract) input (§3.5).
type LinkType int

const (
	LinkDefault LinkType = iota
	LinkSide
)

// CompileLink is an edge weight: its LinkType and accumulated signal-strength
// loss (§3.5). ss must be < 15 after the clamp-weights pass.
type CompileLink struct {
	Type LinkType
	SS   int // 0..=14
}

// CompileNode is one vertex of the compile graph (§3.4).
type CompileNode struct {
	Type     NodeType
	Block    *NodeBlock
	State    NodeState
	IsInput  bool
	IsOutput bool
}

// Removable reports whether a node may be deleted by an optimization pass:
// true iff it is neither a world input nor a world output (§3.4, GLOSSARY
// "Removable node").
func (n *CompileNode) Removable() bool {
	return !n.IsInput && !n.IsOutput
}

// NodeID indexes CompileGraph.nodes. IDs are stable across pass mutation
// (tombstoned slots are never reused), matching the StableGraph semantics
// the reference implementation relies on for cyclic traversal.
type NodeID int

// EdgeID indexes CompileGraph.edges, same stability guarantee as NodeID.
type EdgeID int
