package direct

import (
	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
	"github.com/jihwankim/redpiler/pkg/metrics"
	"github.com/jihwankim/redpiler/pkg/world"
)

// metricsCollector mirrors pkg/compiler's SetLogger/SetMetrics pattern: nil
// by default, so pkg/harness tests run with no Prometheus dependency in the
// tick loop at all, and only a host that calls SetMetrics (§11.4) pays for
// it.
var metricsCollector *metrics.Collector

// SetMetrics points Tick's per-call reporting at c. Pass nil to stop.
func SetMetrics(c *metrics.Collector) { metricsCollector = c }

// buttonHoldTicks is the fixed hold time a stone button stays pressed
// before tick_node's auto-release fires (§4.11, Button).
const buttonHoldTicks = 10

// observerPulseDelay is the fixed 2-tick delay an observer schedules its
// pulse at, on both the rising and the falling edge (§8.2 scenario 5).
const observerPulseDelay = 2

// Tick advances the schedule by one slot, commits every node queued there
// in priority order, and drains the resulting same-tick update wavefront
// (§3.9, §4.11, §5 "the tick loop itself does not suspend").
func Tick(b *Backend, w world.World) {
	for _, idx := range b.Scheduler.Advance() {
		tickNode(b, w, idx)
	}
	drainWavefront(b, w)

	if metricsCollector != nil {
		metricsCollector.TicksExecuted.Inc()
		metricsCollector.PendingTicks.Set(float64(b.Scheduler.Count() + len(b.wavefront)))
	}
}

// HasPendingTicks reports whether any scheduled tick or in-flight wavefront
// entry remains (§4.11).
func HasPendingTicks(b *Backend) bool {
	return b.Scheduler.HasPending() || len(b.wavefront) > 0
}

func drainWavefront(b *Backend, w world.World) {
	for len(b.wavefront) > 0 {
		idx := b.wavefront[0]
		b.wavefront = b.wavefront[1:]
		updateNode(b, w, idx)
	}
}

func schedule(b *Backend, idx int, delay uint32, priority world.TickPriority) {
	b.Nodes[idx].PendingTick = true
	b.Scheduler.Schedule(delay, priority, idx)
}

// commitOutput applies a node's new output strength, marks it changed, and
// propagates the change to every forward-link target's histogram, enqueuing
// each changed target into the same-tick wavefront (§4.11).
func commitOutput(b *Backend, idx int, newOutput int) {
	n := b.Nodes[idx]
	old := n.OutputPower
	if old == newOutput {
		return
	}
	n.OutputPower = newOutput
	n.Powered = newOutput > 0
	n.Changed = true
	b.Changes = append(b.Changes, idx)

	for _, fl := range n.ForwardLinks {
		oldDeliv := deliveredStrength(old, fl.SS)
		newDeliv := deliveredStrength(newOutput, fl.SS)
		if oldDeliv == newDeliv {
			continue
		}
		target := b.Nodes[fl.TargetIndex]
		hist := &target.DefaultInputs
		if fl.Side {
			hist = &target.SideInputs
		}
		hist[oldDeliv]--
		hist[newDeliv]++
		b.wavefront = append(b.wavefront, fl.TargetIndex)
	}
}

// updateNode is update_node(id): invoked on every forward-link target of a
// node whose output changed (§4.11).
func updateNode(b *Backend, w world.World, idx int) {
	n := b.Nodes[idx]
	switch n.Type.Kind {
	case graph.NodeRepeater:
		n.Locked = n.AnySideActive()
		if n.Locked || n.PendingTick {
			return
		}
		if n.AnyDefaultActive() != n.Powered {
			priority := world.PriorityHigh
			switch {
			case n.Type.FacingDiode:
				priority = world.PriorityHighest
			case n.Powered:
				priority = world.PriorityHigher
			}
			schedule(b, idx, uint32(n.Type.Delay), priority)
		}

	case graph.NodeTorch:
		if n.PendingTick {
			return
		}
		if n.Powered == n.AnyDefaultActive() {
			schedule(b, idx, 1, world.PriorityNormal)
		}

	case graph.NodeComparator:
		if n.PendingTick {
			return
		}
		if comparatorOutput(n) != n.OutputPower {
			priority := world.PriorityNormal
			if n.Type.FacingDiode {
				priority = world.PriorityHigh
			}
			schedule(b, idx, 1, priority)
		}

	case graph.NodeLamp:
		switch {
		case n.AnyDefaultActive() && !n.Powered:
			commitOutput(b, idx, 15)
		case !n.AnyDefaultActive() && n.Powered && !n.PendingTick:
			schedule(b, idx, 2, world.PriorityNormal)
		}

	case graph.NodeTrapdoor:
		newOut := boolStrength(n.AnyDefaultActive())
		if newOut != n.OutputPower {
			commitOutput(b, idx, newOut)
		}

	case graph.NodeWire:
		newOut := n.MaxDefaultStrength()
		if newOut != n.OutputPower {
			commitOutput(b, idx, newOut)
		}

	case graph.NodeObserver:
		if n.PendingTick {
			return
		}
		desired := n.AnyDefaultActive()
		if desired != n.Powered {
			priority := world.PriorityNormal
			if desired {
				priority = world.PriorityHigher
			}
			schedule(b, idx, observerPulseDelay, priority)
		}

	case graph.NodeNoteBlock:
		switch {
		case n.AnyDefaultActive() && !n.Powered:
			commitOutput(b, idx, boolStrength(true))
			b.Events = append(b.Events, NoteEvent{NodeIndex: idx})
		case !n.AnyDefaultActive() && n.Powered:
			commitOutput(b, idx, boolStrength(false))
		}

	default:
		// Lever/Button/PressurePlate/Constant: never updated by propagation.
	}
}

// tickNode is tick_node(id): the commit performed when a scheduled entry
// drains from the queue (§4.11).
func tickNode(b *Backend, w world.World, idx int) {
	n := b.Nodes[idx]
	n.PendingTick = false

	switch n.Type.Kind {
	case graph.NodeRepeater:
		newPowered := !n.Powered
		commitOutput(b, idx, boolStrength(newPowered))
		if newPowered && !n.AnyDefaultActive() {
			schedule(b, idx, uint32(n.Type.Delay), world.PriorityHigher)
		}

	case graph.NodeTorch:
		commitOutput(b, idx, boolStrength(!n.Powered))

	case graph.NodeComparator:
		commitOutput(b, idx, comparatorOutput(n))

	case graph.NodeLamp:
		if !n.AnyDefaultActive() {
			commitOutput(b, idx, 0)
		}

	case graph.NodeObserver:
		turningOn := !n.Powered
		commitOutput(b, idx, boolStrength(turningOn))
		if turningOn {
			// The pulse is exactly one tick wide (§8.2 scenario 5): the
			// falling edge is self-scheduled at Normal, independent of
			// whether the input is still active.
			schedule(b, idx, 1, world.PriorityNormal)
		}

	case graph.NodeButton:
		n.Powered = false
		commitOutput(b, idx, 0)
	}
}

func comparatorOutput(n *Node) int {
	input := n.MaxDefaultStrength()
	if n.Type.FarInput != nil && input < 15 {
		input = *n.Type.FarInput
	}
	side := n.MaxSideStrength()
	if n.Type.Mode == blocks.ComparatorSubtract {
		d := input - side
		if d < 0 {
			d = 0
		}
		return d
	}
	if input >= side {
		return input
	}
	return 0
}
