package blocks

// Kind discriminates the symbolic block variants the catalog understands.
// Only the blocks named in the catalog (see Catalog) are legal front-end
// inputs; anything else is simply not a node.
type Kind int

const (
	KindAir Kind = iota
	KindRedstoneRepeater
	KindRedstoneComparator
	KindRedstoneTorch
	KindRedstoneWallTorch
	KindRedstoneWire
	KindLever
	KindStoneButton
	KindStonePressurePlate
	KindRedstoneLamp
	KindIronTrapdoor
	KindNoteBlock
	KindRedstoneBlock
	KindObserver
	// Containers with a comparator "far input" override.
	KindBarrel
	KindFurnace
	KindHopper
	KindCauldron
	KindComposter
	KindCake
	KindEndPortalFrame

	// KindSolidBlock is a generic opaque block with no redstone behavior of
	// its own (stone, dirt, wool, ...). It is never a compile-graph node,
	// but a strongly powered one relays a default input through itself
	// (§4.2 "strongly powered solid blocks propagate at ss = 15 minus wire
	// distance"), unlike air, which simply stops the flood.
	KindSolidBlock
)

// ComparatorMode is the two operating modes of a redstone comparator.
type ComparatorMode int

const (
	ComparatorCompare ComparatorMode = iota
	ComparatorSubtract
)

// WireConnection is the per-side connection state of a redstone wire.
type WireConnection int

const (
	WireNone WireConnection = iota
	WireSide
	WireUp
)

// Block is a symbolic, decoded block state. Only the fields relevant to the
// block's Kind are meaningful; this mirrors the tagged-variant shape of the
// reference catalog (§6.2) without Go's lack of sum types getting in the way.
type Block struct {
	Kind Kind

	// RedstoneRepeater
	Delay        int // 1..=4
	FacingDiode  bool
	RepeaterLocked bool

	// RedstoneComparator
	ComparatorMode ComparatorMode

	// RedstoneTorch / RedstoneWallTorch / RedstoneLamp / IronTrapdoor /
	// RedstoneComparator / RedstoneRepeater / Lever / StoneButton
	Powered bool // also used for "lit"

	// Facing, shared by repeater/comparator/torch/lever/trapdoor/observer.
	Facing BlockFace

	// RedstoneWire
	North, South, East, West WireConnection
	Power                    int // 0..=15

	// StonePressurePlate
	PlatePowered bool

	// IronTrapdoor
	Open bool

	// NoteBlock
	Instrument int
	Note       int // 0..=31

	// Cauldron / Composter
	Level int

	// Cake
	Bites int

	// EndPortalFrame
	Eye bool
}

// ContainerOverride returns the comparator "far input" override strength
// (0..=15) this block contributes when read through as a far input, and
// whether this Kind supports an override at all.
func (b Block) ContainerOverride() (strength int, ok bool) {
	switch b.Kind {
	case KindBarrel, KindFurnace, KindHopper:
		// Populated from the block entity in a real world; the in-memory
		// harness world stores it directly on Level for simplicity.
		return b.Level, true
	case KindCauldron:
		return b.Level * 5 / 3, true // 0..=3 -> roughly 0..=5 per vanilla table, simplified
	case KindComposter:
		return b.Level, true // 0..=8
	case KindCake:
		return 14 - 2*b.Bites, true
	case KindEndPortalFrame:
		if b.Eye {
			return 15, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// IsSolidRelay reports whether this Kind is a generic opaque block eligible
// to relay a strongly powered signal through itself (§4.2). Unrecognized
// Kinds that are not explicitly KindSolidBlock (in particular air, the zero
// value) are not relays and simply stop a flood.
func (b Block) IsSolidRelay() bool {
	return b.Kind == KindSolidBlock
}

// IsDiode reports whether this Kind is an oriented diode (repeater,
// comparator, or torch variants), relevant for the FacingDiode rule in §4.2.
func (b Block) IsDiode() bool {
	switch b.Kind {
	case KindRedstoneRepeater, KindRedstoneComparator, KindRedstoneTorch, KindRedstoneWallTorch:
		return true
	default:
		return false
	}
}
