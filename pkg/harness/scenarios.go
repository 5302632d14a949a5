package harness

import (
	"github.com/jihwankim/redpiler/pkg/blocks"
)

// Scenario describes one of the concrete fixtures in spec.md §8.2: a small,
// self-contained world plus the bounds a compile should cover. Each entry
// below is grounded on the corresponding numbered scenario in §8.2; the
// assertions themselves live in the package tests that consume this table,
// since each scenario's pass/fail shape differs (pulse width, reach limit,
// inversion, stability window) too much to force into one generic checker.
type Scenario struct {
	// Name is a short label for test output (e.g. "lever_lamp").
	Name string
	// Build constructs the fixture world and returns it plus the compile
	// bounds [Lo, Hi] that should cover every block it placed.
	Build func() (*TestWorld, blocks.BlockPos, blocks.BlockPos)
}

// Scenarios is the registry-table of every §8.2 fixture, mirroring the
// teacher's declarative, one-entry-per-case table style
// (pkg/fuzz/precompile's KnownPrecompiles).
var Scenarios = []Scenario{
	{Name: "lever_lamp", Build: LeverLampWorld},
	{Name: "repeater_pulse", Build: RepeaterPulseWorld},
	{Name: "wire_reach", Build: WireReachWorld(14)},
	{Name: "wire_reach_too_far", Build: WireReachWorld(15)},
	{Name: "torch_inverter", Build: TorchInverterWorld},
	{Name: "observer_pulse", Build: ObserverPulseWorld},
	{Name: "torch_clock", Build: TorchClockWorld},
	{Name: "note_block", Build: NoteBlockWorld},
	{Name: "strong_power_relay", Build: StrongPowerRelayWorld},
}

func lever(powered bool) blocks.Block {
	return blocks.Block{Kind: blocks.KindLever, Powered: powered}
}

// LeverLampWorld builds §8.2 scenario 1: a lever directly face-adjacent to
// a lamp. See StrongPowerRelayWorld below for the strongly-powered-solid-
// block hop (§4.2) exercised through an intervening opaque block.
func LeverLampWorld() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	w := NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	lampPos := blocks.NewBlockPos(1, 0, 0)
	w.Set(leverPos, lever(false))
	w.Set(lampPos, blocks.Block{Kind: blocks.KindRedstoneLamp, Powered: false})
	return w, leverPos, lampPos
}

// RepeaterPulseWorld builds §8.2 scenario 2: lever, repeater delay=3 (input
// face West, toward the lever), trapdoor, laid out in a straight face-
// adjacent line.
func RepeaterPulseWorld() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	w := NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	repeaterPos := blocks.NewBlockPos(1, 0, 0)
	trapdoorPos := blocks.NewBlockPos(2, 0, 0)
	w.Set(leverPos, lever(false))
	w.Set(repeaterPos, blocks.Block{Kind: blocks.KindRedstoneRepeater, Delay: 3, Facing: blocks.FaceWest})
	w.Set(trapdoorPos, blocks.Block{Kind: blocks.KindIronTrapdoor, Facing: blocks.FaceWest, Powered: false})
	return w, leverPos, trapdoorPos
}

// WireReachWorld returns a Build func for §8.2 scenario 3 with n wire cells
// between the lever and the trapdoor. Every cell along a flood gets a
// direct edge from the original source at its own accumulated distance
// (§4.2's per-cell signal loss), so the terminal n+1 hops away from the
// lever receives ss=n — ClampWeights (§4.3) drops any edge with ss>=15, so
// n=14 is the longest chain that still reaches and n=15 is the shortest
// that doesn't (one cell shorter than spec.md's illustrative 15/16 example,
// since that example's source-to-first-wire hop isn't itself a zero-cost
// step in this implementation's distance accounting).
func WireReachWorld(n int) func() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	return func() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
		w := NewTestWorld()
		leverPos := blocks.NewBlockPos(0, 0, 0)
		w.Set(leverPos, lever(false))
		for i := 1; i <= n; i++ {
			w.Set(blocks.NewBlockPos(int32(i), 0, 0), blocks.Block{Kind: blocks.KindRedstoneWire})
		}
		trapdoorPos := blocks.NewBlockPos(int32(n+1), 0, 0)
		w.Set(trapdoorPos, blocks.Block{Kind: blocks.KindIronTrapdoor, Facing: blocks.FaceWest})
		return w, leverPos, trapdoorPos
	}
}

// TorchInverterWorld builds §8.2 scenario 4: lever, wire, wall torch facing
// West (so its rear input accepts the wire's output), laid out in a
// straight face-adjacent line.
func TorchInverterWorld() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	w := NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	wirePos := blocks.NewBlockPos(1, 0, 0)
	torchPos := blocks.NewBlockPos(2, 0, 0)
	w.Set(leverPos, lever(false))
	w.Set(wirePos, blocks.Block{Kind: blocks.KindRedstoneWire})
	w.Set(torchPos, blocks.Block{Kind: blocks.KindRedstoneWallTorch, Facing: blocks.FaceWest, Powered: true})
	return w, leverPos, torchPos
}

// ObserverPulseWorld builds §8.2 scenario 5: lever at (0,1,0), observer at
// (1,1,0) facing west, wire at (2,1,0).
func ObserverPulseWorld() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	w := NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 1, 0)
	observerPos := blocks.NewBlockPos(1, 1, 0)
	wirePos := blocks.NewBlockPos(2, 1, 0)
	w.Set(leverPos, lever(false))
	w.Set(observerPos, blocks.Block{Kind: blocks.KindObserver, Facing: blocks.FaceWest})
	w.Set(wirePos, blocks.Block{Kind: blocks.KindRedstoneWire})
	return w, blocks.NewBlockPos(0, 1, 0), blocks.NewBlockPos(2, 1, 0)
}

// TorchClockWorld builds the §8.2 scenario 6 / §9 "redstone clock" cyclic
// fixture: two wall torches directly facing each other (A's output feeds B's
// input with no delay), with a six-cell wire loop carrying B's output back
// around to A's input. Each torch inverts its own state whenever it differs
// from its current input one tick later, so once running the loop never
// settles — the pass pipeline must not assume topological order on it (§9
// Design Notes), and the tick executor must keep scheduling work
// indefinitely rather than reaching a stable state.
func TorchClockWorld() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	w := NewTestWorld()
	a := blocks.NewBlockPos(0, 0, 0)
	b := blocks.NewBlockPos(1, 0, 0)

	// Both torches face West: each accepts input from its West neighbor and
	// emits from its East face. A's East neighbor is B directly (zero-length
	// edge); B's output loops around through six wire cells back to A's West
	// neighbor.
	w.Set(a, blocks.Block{Kind: blocks.KindRedstoneWallTorch, Facing: blocks.FaceWest, Powered: true})
	w.Set(b, blocks.Block{Kind: blocks.KindRedstoneWallTorch, Facing: blocks.FaceWest, Powered: false})

	loop := []blocks.BlockPos{
		blocks.NewBlockPos(2, 0, 0),
		blocks.NewBlockPos(2, 0, 1),
		blocks.NewBlockPos(1, 0, 1),
		blocks.NewBlockPos(0, 0, 1),
		blocks.NewBlockPos(-1, 0, 1),
		blocks.NewBlockPos(-1, 0, 0),
	}
	for _, p := range loop {
		w.Set(p, blocks.Block{Kind: blocks.KindRedstoneWire})
	}

	return w, blocks.NewBlockPos(-1, 0, 0), blocks.NewBlockPos(2, 0, 1)
}

// StrongPowerRelayWorld builds a lever, an intervening generic solid block,
// and a lamp stacked on top of that block: the lever never touches the lamp
// directly, so the lamp can only light via the solid block relaying the
// lever's strong power upward (§4.2 "strongly powered solid blocks propagate
// at ss = 15 minus wire distance").
func StrongPowerRelayWorld() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	w := NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	solidPos := blocks.NewBlockPos(1, 0, 0)
	lampPos := blocks.NewBlockPos(1, 1, 0)
	w.Set(leverPos, lever(false))
	w.Set(solidPos, blocks.Block{Kind: blocks.KindSolidBlock})
	w.Set(lampPos, blocks.Block{Kind: blocks.KindRedstoneLamp, Powered: false})
	return w, leverPos, lampPos
}

// NoteBlockWorld builds a lever directly face-adjacent to a note block: on
// use, the note block should both emit its NoteBlockPlay sound event and
// round-trip its own Powered field back into the world block on flush
// (§4.11 NoteBlock, §4.13 flush_block_changes/flush_events).
func NoteBlockWorld() (*TestWorld, blocks.BlockPos, blocks.BlockPos) {
	w := NewTestWorld()
	leverPos := blocks.NewBlockPos(0, 0, 0)
	notePos := blocks.NewBlockPos(1, 0, 0)
	w.Set(leverPos, lever(false))
	w.Set(notePos, blocks.Block{Kind: blocks.KindNoteBlock, Instrument: 0, Note: 0})
	return w, leverPos, notePos
}
