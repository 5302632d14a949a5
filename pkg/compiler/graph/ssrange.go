package graph

import "github.com/jihwankim/redpiler/pkg/blocks"

// SSRange is the inclusive range of output signal strengths a node may ever
// produce at steady state (§3.7).
type SSRange struct {
	Low, High int // 0..=15, Low <= High
}

// Full is the range [0, 15]: "could be anything."
func Full() SSRange { return SSRange{0, 15} }

// Zero is the range {0}: "never powered."
func Zero() SSRange { return SSRange{0, 0} }

// Singleton is the range {k}.
func Singleton(k int) SSRange { return SSRange{k, k} }

// Union returns the smallest range containing both a and b.
func (a SSRange) Union(b SSRange) SSRange {
	return SSRange{low(a.Low, b.Low), high(a.High, b.High)}
}

// Decayed attenuates a range by ss steps of signal loss, clamping at 0. This
// is the "default_range.decayed(edge.ss)" operation of §4.5.
func (a SSRange) Decayed(ss int) SSRange {
	lo, hi := a.Low-ss, a.High-ss
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = 0
	}
	return SSRange{lo, hi}
}

// Includes reports whether k lies within the range.
func (a SSRange) Includes(k int) bool { return k >= a.Low && k <= a.High }

// WithTransient widens the range to include a currently-observed output
// strength, the transient-extension step of §4.5 phase 4.
func (a SSRange) WithTransient(outputStrength int) SSRange {
	return a.Union(Singleton(outputStrength))
}

func low(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func high(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// NoInputRange returns the no-input seed range for a node with zero incoming
// edges (§4.5 phase 1): Torch -> {15}, Lever/Button/Plate -> [0,15],
// Constant -> {state output strength}, everything else -> {0}.
func NoInputRange(n *CompileNode) SSRange {
	switch n.Type.Kind {
	case NodeTorch:
		return Singleton(15)
	case NodeLever, NodeButton, NodePressurePlate:
		return Full()
	case NodeConstant:
		return Singleton(n.State.OutputStrength)
	default:
		return Zero()
	}
}

// Transfer computes a node's own SSRange from its predecessors' ranges,
// given the already-decayed-and-unioned default range D and side range S
// (§4.5 "Transfer functions"). currentOutput is the node's present
// State.OutputStrength, needed only for the repeater-lock special case.
func Transfer(n *CompileNode, d, s SSRange, currentOutput int) SSRange {
	switch {
	case n.Type.Kind == NodeWire:
		// Wire: identity on default range.
		return d

	case n.Type.Kind == NodeComparator:
		return comparatorTransfer(n, d, s)

	case n.Type.Kind.IsBinary():
		return binaryTransfer(n, d, s, currentOutput)

	default:
		// Lever/Button/PressurePlate/Constant are never re-derived by the
		// transfer function; callers only reach here for nodes with no
		// incoming edges, already handled by NoInputRange.
		return NoInputRange(n)
	}
}

func binaryTransfer(n *CompileNode, d, s SSRange, currentOutput int) SSRange {
	if n.Type.Kind == NodeRepeater && s.Low > 0 {
		// A repeater with an active side input is permanently locked at its
		// current output; it ignores its default input entirely.
		return Singleton(currentOutput)
	}

	if n.Type.Kind == NodeTorch {
		switch {
		case d.High == 0:
			return Singleton(15)
		case d.Low > 0:
			return Zero()
		default:
			return Full()
		}
	}

	// Non-inverting binary types (repeater, lamp, trapdoor, note block,
	// observer): on (full strength) when input is always active, off when
	// never active, otherwise unknown.
	switch {
	case d.High == 0:
		return Zero()
	case d.Low > 0:
		return Singleton(15)
	default:
		return Full()
	}
}

func comparatorTransfer(n *CompileNode, d, s SSRange) SSRange {
	if n.Type.FarInput != nil {
		f := *n.Type.FarInput
		if d.High < 15 {
			d = Singleton(f)
		} else {
			d = SSRange{f, 15}
		}
	}

	switch n.Type.Mode {
	case blocks.ComparatorSubtract:
		// Interval subtraction D - S, clamped at 0: worst case subtracts the
		// largest S from the smallest D, best case the smallest S from the
		// largest D.
		lo := d.Low - s.High
		hi := d.High - s.Low
		if lo < 0 {
			lo = 0
		}
		if hi < 0 {
			hi = 0
		}
		return SSRange{lo, hi}

	default: // ComparatorCompare
		switch {
		case d.High < s.Low:
			return Zero()
		case d.Low >= s.High:
			return d
		default:
			return SSRange{0, d.High}
		}
	}
}
