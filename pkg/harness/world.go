// Package harness provides an in-memory World implementation and a test
// runner used by every scenario test in this module (§8.2, §12.4). It is
// the Go counterpart of original_source/tests/common/mod.rs's TestWorld and
// AllBackendRunner, ported to this module's idiom rather than translated:
// there is no independent reference simulator in this distillation (the
// propagation rules live only inside the compiler's own transfer
// functions), so Runner checks compiled output directly against expected
// values instead of cross-checking two engines (see DESIGN.md).
package harness

import (
	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/world"
)

// TestWorld is a flat in-memory World (§6.1) sized for small fixtures: unit
// tests build one a handful of blocks at a time, so a map-backed store is
// simpler than chunked storage and exercises the same interface the real
// host implements.
type TestWorld struct {
	blocks    map[blocks.BlockPos]blocks.Block
	entities  map[blocks.BlockPos]world.BlockEntity
	ticks     map[blocks.BlockPos]world.TickEntry
	nextID    uint32
	rawByPos  map[blocks.BlockPos]uint32
	protocols map[uint32]blocks.Block

	// Sounds records every PlaySound call, in call order, for assertions.
	Sounds []PlayedSound
}

// PlayedSound is one recorded World.PlaySound call.
type PlayedSound struct {
	Pos      blocks.BlockPos
	SoundID  string
	Category world.SoundCategory
	Volume   float64
	Pitch    float64
}

// NewTestWorld returns an empty world with no blocks set (every position
// reads back as air).
func NewTestWorld() *TestWorld {
	return &TestWorld{
		blocks:    make(map[blocks.BlockPos]blocks.Block),
		entities:  make(map[blocks.BlockPos]world.BlockEntity),
		ticks:     make(map[blocks.BlockPos]world.TickEntry),
		rawByPos:  make(map[blocks.BlockPos]uint32),
		protocols: make(map[uint32]blocks.Block),
		nextID:    1,
	}
}

// SetBlock implements world.World. It also assigns a stable per-position
// protocol id the first time a position is written, so GetBlockRaw and
// SetBlockRaw round-trip the same way a real palette-backed world would.
func (w *TestWorld) SetBlock(pos blocks.BlockPos, b blocks.Block) bool {
	w.blocks[pos] = b
	if _, ok := w.rawByPos[pos]; !ok {
		id := w.nextID
		w.nextID++
		w.rawByPos[pos] = id
	}
	w.protocols[w.rawByPos[pos]] = b
	return true
}

// SetBlockRaw sets a block by protocol id, looking it up in the id->block
// table populated by prior SetBlock calls; an id no SetBlock call has
// assigned is rejected.
func (w *TestWorld) SetBlockRaw(pos blocks.BlockPos, id uint32) bool {
	b, ok := w.protocols[id]
	if !ok {
		return false
	}
	w.blocks[pos] = b
	w.rawByPos[pos] = id
	return true
}

// GetBlock implements world.World. An unset position reads back as air.
func (w *TestWorld) GetBlock(pos blocks.BlockPos) blocks.Block {
	return w.blocks[pos]
}

// GetBlockRaw returns the protocol id assigned to pos, or 0 if unset.
func (w *TestWorld) GetBlockRaw(pos blocks.BlockPos) uint32 {
	return w.rawByPos[pos]
}

// GetBlockEntity implements world.World.
func (w *TestWorld) GetBlockEntity(pos blocks.BlockPos) (world.BlockEntity, bool) {
	be, ok := w.entities[pos]
	return be, ok
}

// SetBlockEntity implements world.World.
func (w *TestWorld) SetBlockEntity(pos blocks.BlockPos, be world.BlockEntity) {
	w.entities[pos] = be
}

// DeleteBlockEntity implements world.World.
func (w *TestWorld) DeleteBlockEntity(pos blocks.BlockPos) {
	delete(w.entities, pos)
}

// ScheduleTick implements world.World.
func (w *TestWorld) ScheduleTick(pos blocks.BlockPos, delay uint32, priority world.TickPriority) {
	w.ticks[pos] = world.TickEntry{Pos: pos, TicksLeft: delay, Priority: priority}
}

// PendingTickAt implements world.World.
func (w *TestWorld) PendingTickAt(pos blocks.BlockPos) bool {
	_, ok := w.ticks[pos]
	return ok
}

// PendingTicksInRegion implements world.World.
func (w *TestWorld) PendingTicksInRegion(lo, hi blocks.BlockPos) []world.TickEntry {
	var out []world.TickEntry
	for pos, e := range w.ticks {
		if pos.X < lo.X || pos.X > hi.X || pos.Y < lo.Y || pos.Y > hi.Y || pos.Z < lo.Z || pos.Z > hi.Z {
			continue
		}
		out = append(out, e)
	}
	return out
}

// PlaySound implements world.World by recording the call for assertions.
func (w *TestWorld) PlaySound(pos blocks.BlockPos, soundID string, category world.SoundCategory, volume, pitch float64) {
	w.Sounds = append(w.Sounds, PlayedSound{Pos: pos, SoundID: soundID, Category: category, Volume: volume, Pitch: pitch})
}

// Set is a convenience fixture helper: place a block at pos and return the
// world, for chained setup in test tables.
func (w *TestWorld) Set(pos blocks.BlockPos, b blocks.Block) *TestWorld {
	w.SetBlock(pos, b)
	return w
}
