package direct

import (
	"math"

	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
	"github.com/jihwankim/redpiler/pkg/world"
)

// instrumentSoundIDs maps a note block's instrument index to the sound
// event flush_events plays (§4.13).
var instrumentSoundIDs = []string{
	"block.note_block.harp",
	"block.note_block.bass",
	"block.note_block.bass_drum",
	"block.note_block.snare",
	"block.note_block.hat",
	"block.note_block.guitar",
	"block.note_block.flute",
	"block.note_block.bell",
	"block.note_block.chime",
	"block.note_block.xylophone",
}

func instrumentSoundID(instrument int) string {
	if instrument < 0 || instrument >= len(instrumentSoundIDs) {
		return instrumentSoundIDs[0]
	}
	return instrumentSoundIDs[instrument]
}

// FlushEvents drains queued NoteBlockPlay events and plays their sound
// (§4.13 flush_events). Pitch follows the vanilla note-to-pitch formula:
// 2^((note mod 32 - 12) / 12).
func FlushEvents(b *Backend, w world.World) {
	for _, ev := range b.Events {
		nb := b.Blocks[ev.NodeIndex]
		if nb == nil {
			continue
		}
		n := b.Nodes[ev.NodeIndex]
		pitch := math.Pow(2, float64(n.Type.Note%32-12)/12.0)
		w.PlaySound(nb.Pos, instrumentSoundID(n.Type.Instrument), world.CategoryRecord, 3.0, pitch)
	}
	b.Events = nil
}

// FlushBlockChanges rewrites the world block state of every node in the
// changes queue (§4.13 flush_block_changes) and clears Changed.
func FlushBlockChanges(b *Backend, w world.World) {
	seen := make(map[int]bool, len(b.Changes))
	for _, idx := range b.Changes {
		if seen[idx] {
			continue
		}
		seen[idx] = true

		n := b.Nodes[idx]
		nb := b.Blocks[idx]
		if nb == nil || !n.Changed {
			continue
		}

		blk := w.GetBlock(nb.Pos)
		switch n.Type.Kind {
		case graph.NodeWire:
			blk.Power = n.OutputPower
		case graph.NodeRepeater:
			blk.Powered = n.Powered
			blk.RepeaterLocked = n.Locked
		case graph.NodeTrapdoor:
			blk.Powered = n.Powered
			blk.Open = n.Powered
		default:
			blk.Powered = n.Powered
		}
		w.SetBlock(nb.Pos, blk)
		n.Changed = false
	}
	b.Changes = nil
}

// FlushScheduledTicks surfaces every tick still queued in the backend's
// scheduler back to world storage, so a subsequent Reset leaves the world
// able to resume the schedule on its own (§4.13 flush_scheduled_ticks).
func FlushScheduledTicks(b *Backend, w world.World) {
	for _, entry := range b.Scheduler.Pending() {
		nb := b.Blocks[entry.NodeIndex]
		if nb == nil {
			continue
		}
		w.ScheduleTick(nb.Pos, entry.TicksLeft, entry.Priority)
	}
}

// Reset tears down the backend. When onBlockUpdate is non-nil, it is
// invoked once for every block position inside the bounds the backend was
// compiled over, letting the host world re-run its own (non-redpiler)
// update logic over the region (§4.13 reset).
func Reset(b *Backend, onBlockUpdate func(blocks.BlockPos)) {
	if onBlockUpdate != nil {
		for x := b.lo.X; x <= b.hi.X; x++ {
			for y := b.lo.Y; y <= b.hi.Y; y++ {
				for z := b.lo.Z; z <= b.hi.Z; z++ {
					onBlockUpdate(blocks.NewBlockPos(x, y, z))
				}
			}
		}
	}
	b.Nodes = nil
	b.Blocks = nil
	b.PosMap = nil
	b.Scheduler = nil
	b.wavefront = nil
	b.Changes = nil
	b.Events = nil
}
