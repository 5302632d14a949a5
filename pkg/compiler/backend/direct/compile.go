package direct

import (
	"sort"

	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
	"github.com/jihwankim/redpiler/pkg/world"
)

// Backend is the compiled, directly-executable form of a CompileGraph
// (§4.10): a dense Node array, a parallel world-position table, the
// position->index lookup interactions use, the tick scheduler, and the
// same-tick update wavefront.
type Backend struct {
	Nodes  []*Node
	Blocks []*graph.NodeBlock
	PosMap map[blocks.BlockPos]int

	Scheduler *Scheduler
	wavefront []int

	Changes []int
	Events  []NoteEvent

	lo, hi blocks.BlockPos
}

// NoteEvent is a queued NoteBlockPlay (§4.11 NoteBlock, §4.13 flush_events).
type NoteEvent struct {
	NodeIndex int
}

// Compile assigns every surviving node a dense index in traversal order and
// materializes the Node/ForwardLink records described in §3.8, then seeds
// the scheduler from whatever ticks were already pending in the world
// region (§4.10's "Seed the tick scheduler from pre-existing world tick
// entries").
func Compile(w world.World, g *graph.CompileGraph, lo, hi blocks.BlockPos) *Backend {
	ids := g.NodeIDs()
	index := make(map[graph.NodeID]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}

	b := &Backend{
		Nodes:     make([]*Node, len(ids)),
		Blocks:    make([]*graph.NodeBlock, len(ids)),
		PosMap:    make(map[blocks.BlockPos]int),
		Scheduler: NewScheduler(),
		lo:        lo,
		hi:        hi,
	}

	for i, id := range ids {
		cn := g.Node(id)
		n := &Node{
			Type:        cn.Type,
			OutputPower: cn.State.OutputStrength,
			Powered:     cn.State.Powered,
			Locked:      cn.State.RepeaterLocked,
			IsIO:        cn.IsInput || cn.IsOutput,
		}
		b.Nodes[i] = n
		b.Blocks[i] = cn.Block
		if cn.Block != nil {
			b.PosMap[cn.Block.Pos] = i
		}
	}

	for i, id := range ids {
		n := b.Nodes[i]
		defCount, sideCount := 0, 0
		for _, eid := range g.InEdges(id) {
			e := g.Edge(eid)
			src := g.Node(e.Source)
			deliv := deliveredStrength(src.State.OutputStrength, e.Link.SS)
			if e.Link.Type == graph.LinkSide {
				n.SideInputs[deliv]++
				sideCount++
			} else {
				n.DefaultInputs[deliv]++
				defCount++
			}
		}
		n.DefaultInputs[0] += uint8(255 - defCount)
		n.SideInputs[0] += uint8(255 - sideCount)

		links := make([]ForwardLink, 0, len(g.OutEdges(id)))
		for _, eid := range g.OutEdges(id) {
			e := g.Edge(eid)
			links = append(links, ForwardLink{
				TargetIndex: index[e.Target],
				Side:        e.Link.Type == graph.LinkSide,
				SS:          e.Link.SS,
			})
		}
		sort.Slice(links, func(a, c int) bool {
			ta, tc := b.Nodes[links[a].TargetIndex].Type.Kind, b.Nodes[links[c].TargetIndex].Type.Kind
			if ta != tc {
				return ta < tc
			}
			return links[a].TargetIndex < links[c].TargetIndex
		})
		n.ForwardLinks = links
	}

	for _, entry := range w.PendingTicksInRegion(lo, hi) {
		idx, ok := b.PosMap[entry.Pos]
		if !ok {
			continue
		}
		b.Nodes[idx].PendingTick = true
		b.Scheduler.Schedule(entry.TicksLeft, entry.Priority, idx)
	}

	if metricsCollector != nil {
		metricsCollector.PendingTicks.Set(float64(b.Scheduler.Count()))
	}

	return b
}

func deliveredStrength(output, ss int) int {
	d := output - ss
	if d < 0 {
		return 0
	}
	return d
}
