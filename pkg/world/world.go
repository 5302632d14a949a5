// Package world defines the World interface the compiler consumes (§6.1) and
// is otherwise out of scope of the core: network protocol, save-file codec,
// and the rest of the collaborators listed in spec.md §1 are external to this
// module. Only the narrow read/write surface the compiler needs lives here.
package world

import "github.com/jihwankim/redpiler/pkg/blocks"

// TickPriority is the total order over scheduled-tick priority classes
// (§3.9, §4.11). Highest sorts first within a slot.
type TickPriority int

const (
	PriorityHighest TickPriority = iota
	PriorityHigher
	PriorityHigh
	PriorityNormal
	numPriorities = int(PriorityNormal) + 1
)

// NumPriorities is the number of distinct TickPriority classes.
const NumPriorities = numPriorities

func (p TickPriority) String() string {
	switch p {
	case PriorityHighest:
		return "highest"
	case PriorityHigher:
		return "higher"
	case PriorityHigh:
		return "high"
	case PriorityNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// TickEntry is one pending scheduled tick, as handed to/from World storage on
// compile/flush (§4.13 flush_scheduled_ticks).
type TickEntry struct {
	Pos       blocks.BlockPos
	TicksLeft uint32
	Priority  TickPriority
}

// BlockEntity is the subset of block-entity data a World stores for
// container overrides. The compiler does not read it: comparator far input
// (§4.2) takes the override from blocks.Block.ContainerOverride, and
// note-block pitch comes from the block's own NodeType.
type BlockEntity struct {
	// OverrideStrength is the container's comparator override (0..=15),
	// for barrel/furnace/hopper/cauldron/composter/cake/end-portal-frame.
	OverrideStrength int
}

// SoundCategory mirrors the category argument of the reference play_sound
// call; the core always uses "record" for note-block events.
type SoundCategory string

const CategoryRecord SoundCategory = "record"

// World is the read/write surface the compiler requires from its host.
// Bounds-checking, persistence, and chunk storage format are all the host's
// concern; the compiler only needs these operations (§6.1).
type World interface {
	GetBlock(pos blocks.BlockPos) blocks.Block
	GetBlockRaw(pos blocks.BlockPos) uint32
	SetBlock(pos blocks.BlockPos, b blocks.Block) bool
	SetBlockRaw(pos blocks.BlockPos, id uint32) bool

	GetBlockEntity(pos blocks.BlockPos) (BlockEntity, bool)
	SetBlockEntity(pos blocks.BlockPos, be BlockEntity)
	DeleteBlockEntity(pos blocks.BlockPos)

	ScheduleTick(pos blocks.BlockPos, delay uint32, priority TickPriority)
	PendingTickAt(pos blocks.BlockPos) bool
	// PendingTicksInRegion lists every tick entry scheduled within [lo, hi],
	// used to seed the backend's scheduler on compile (§4.10);
	// flush_scheduled_ticks (§4.13) hands entries back through ScheduleTick.
	PendingTicksInRegion(lo, hi blocks.BlockPos) []TickEntry

	PlaySound(pos blocks.BlockPos, soundID string, category SoundCategory, volume, pitch float64)
}
