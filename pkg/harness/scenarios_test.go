package harness

import (
	"testing"

	"github.com/jihwankim/redpiler/pkg/compiler"
	"github.com/stretchr/testify/require"
)

// TestLeverLamp is §8.2 scenario 1: a lamp lights immediately on use and
// holds for exactly two ticks after being switched off.
func TestLeverLamp(t *testing.T) {
	w, lo, hi := LeverLampWorld()
	r := NewRunner(w, lo, hi, compiler.DefaultOptions())
	lamp := hi

	r.UseBlock(lo)
	require.True(t, r.Powered(lamp), "lamp should light immediately on lever use")

	r.UseBlock(lo)
	r.CheckPoweredFor(t.Errorf, lamp, true, 2)
}

// TestRepeaterPulse is §8.2 scenario 2: a repeater holds its output for
// exactly its configured delay after the lever toggles off.
func TestRepeaterPulse(t *testing.T) {
	w, lo, hi := RepeaterPulseWorld()
	r := NewRunner(w, lo, hi, compiler.DefaultOptions())
	trapdoor := hi

	r.UseBlock(lo)
	r.CheckPoweredFor(t.Errorf, trapdoor, false, 3)
	require.True(t, r.Powered(trapdoor))

	r.UseBlock(lo)
	r.CheckPoweredFor(t.Errorf, trapdoor, true, 3)
}

// TestWireReach is §8.2 scenario 3: a trapdoor within wire reach powers on,
// one cell past reach it never does.
func TestWireReach(t *testing.T) {
	w, lo, hi := WireReachWorld(14)()
	r := NewRunner(w, lo, hi, compiler.DefaultOptions())
	trapdoor := hi

	r.UseBlock(lo)
	r.RunUntilStable(8)
	require.True(t, r.Powered(trapdoor), "trapdoor within reach should power on")
}

func TestWireReachTooFar(t *testing.T) {
	w, lo, hi := WireReachWorld(15)()
	r := NewRunner(w, lo, hi, compiler.DefaultOptions())
	trapdoor := hi

	r.UseBlock(lo)
	r.RunUntilStable(8)
	require.False(t, r.Powered(trapdoor), "trapdoor beyond reach should never power on")
}

// TestTorchInverter is §8.2 scenario 4: a torch behind a wire inverts the
// lever's state one tick later.
func TestTorchInverter(t *testing.T) {
	w, lo, hi := TorchInverterWorld()
	// A torch is not an output node, so io_only pruning would remove it (and
	// the wire) as orphans; turn io_only off to keep it observable.
	opts := compiler.DefaultOptions()
	opts.IOOnly = false
	r := NewRunner(w, lo, hi, opts)
	torch := hi

	require.True(t, r.Powered(torch), "torch starts lit with lever off")

	r.UseBlock(lo)
	r.RunUntilStable(8)
	require.False(t, r.Powered(torch), "torch should go dark once the lever powers the wire")

	r.UseBlock(lo)
	r.RunUntilStable(8)
	require.True(t, r.Powered(torch), "torch should relight once the lever is off again")
}

// TestObserverPulse is §8.2 scenario 5: an observer emits exactly a
// one-tick pulse on its output wire after its input rises.
func TestObserverPulse(t *testing.T) {
	w, lo, hi := ObserverPulseWorld()
	// The terminal wire has no further consumer and isn't itself catalog-
	// marked as an output, so it needs wire_dot_out on to survive io_only
	// pruning (§4.1 "wires with no horizontal neighbors" are outputs under
	// that option) — otherwise it would be a correctly-pruned orphan and
	// there would be nothing externally observable to assert against.
	opts := compiler.DefaultOptions()
	opts.WireDotOut = true
	r := NewRunner(w, lo, hi, opts)
	wire := hi

	r.UseBlock(lo)
	r.Ticks(2)
	require.Equal(t, 15, r.WirePower(wire), "observer pulse should arrive exactly 2 ticks after the rising edge")

	r.Tick()
	require.Equal(t, 0, r.WirePower(wire), "observer pulse should last exactly one tick")
}

// TestTorchClockNeverSettles exercises the cyclic-graph case in §9 design
// notes: the pass pipeline must not choke on a cycle, and the tick executor
// must keep producing work indefinitely rather than reaching a fixed point.
func TestTorchClockNeverSettles(t *testing.T) {
	w, lo, hi := TorchClockWorld()
	r := NewRunner(w, lo, hi, compiler.DefaultOptions())

	require.True(t, r.HasPendingTicks(), "a running clock should always have at least one torch about to flip")
	for i := 0; i < 40; i++ {
		r.Tick()
	}
	require.True(t, r.HasPendingTicks(), "torch clock should never settle")
}

// TestStrongPowerRelay exercises §4.2's strongly-powered-solid-block rule: a
// lamp that only borders an opaque relay block, never the lever itself,
// must still light up once the lever powers the block it sits on.
func TestStrongPowerRelay(t *testing.T) {
	w, lo, hi := StrongPowerRelayWorld()
	r := NewRunner(w, lo, hi, compiler.DefaultOptions())
	lamp := hi

	r.UseBlock(lo)
	require.True(t, r.Powered(lamp), "lamp should light through the strongly powered solid block beneath it")

	r.UseBlock(lo)
	r.CheckPoweredFor(t.Errorf, lamp, true, 2)
}

// TestNoteBlock exercises the NoteBlock flush round-trip (§4.13 flush round-
// trip property, §8.1): a rising edge must both emit a sound event and flip
// the world block's own Powered field back on, and a falling edge must flip
// it back off.
func TestNoteBlock(t *testing.T) {
	w, lo, hi := NoteBlockWorld()
	r := NewRunner(w, lo, hi, compiler.DefaultOptions())
	note := hi

	r.UseBlock(lo)
	require.True(t, r.Powered(note), "note block's world Powered field should flip on after its rising edge flushes")
	require.Len(t, w.Sounds, 1, "note block should emit exactly one sound event on its rising edge")

	r.UseBlock(lo)
	require.False(t, r.Powered(note), "note block's world Powered field should flip back off once its input drops")
}

// TestScenarioRegistryBuilds sanity-checks that every table entry compiles
// without panicking; it guards against a fixture that can't compile at
// all, e.g. a typo'd position map.
func TestScenarioRegistryBuilds(t *testing.T) {
	for _, sc := range Scenarios {
		t.Run(sc.Name, func(t *testing.T) {
			w, lo, hi := sc.Build()
			require.NotPanics(t, func() {
				NewRunner(w, lo, hi, compiler.DefaultOptions())
			})
		})
	}
}
