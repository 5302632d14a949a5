package harness

import (
	"fmt"

	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler"
	"github.com/jihwankim/redpiler/pkg/compiler/backend/direct"
	"github.com/jihwankim/redpiler/pkg/world"
)

// Runner drives a single compiled backend tick-by-tick against a TestWorld,
// the Go counterpart of the Rust harness's AllBackendRunner (minus the
// multi-backend comparison: this module builds only the direct backend).
type Runner struct {
	World   *TestWorld
	Backend *direct.Backend
}

// NewRunner compiles [lo, hi] of w with opts and returns a Runner ready to
// drive it. Panics on compile error (cancellation only, and tests never
// pass a monitor), matching the harness's "tests assume compile succeeds"
// convention.
func NewRunner(w *TestWorld, lo, hi blocks.BlockPos, opts compiler.Options) *Runner {
	result, err := compiler.Compile(w, lo, hi, opts, nil)
	if err != nil {
		panic(fmt.Sprintf("harness: compile failed: %v", err))
	}
	return &Runner{World: w, Backend: result.Backend}
}

// Tick advances the backend by exactly one tick (§3.9, §4.11) and flushes
// the resulting block changes and events back into the world, matching the
// order a real host drives tick()/flush() in (§4.13, §5).
func (r *Runner) Tick() {
	direct.Tick(r.Backend, r.World)
	direct.FlushBlockChanges(r.Backend, r.World)
	direct.FlushEvents(r.Backend, r.World)
}

// Ticks advances the backend n times, flushing after each one.
func (r *Runner) Ticks(n int) {
	for i := 0; i < n; i++ {
		r.Tick()
	}
}

// UseBlock performs a player interaction at pos and flushes the result
// (§4.12).
func (r *Runner) UseBlock(pos blocks.BlockPos) {
	direct.OnUseBlock(r.Backend, r.World, pos)
	direct.FlushBlockChanges(r.Backend, r.World)
	direct.FlushEvents(r.Backend, r.World)
}

// SetPressurePlate forces a pressure plate's state and flushes the result
// (§4.12).
func (r *Runner) SetPressurePlate(pos blocks.BlockPos, powered bool) {
	direct.SetPressurePlate(r.Backend, r.World, pos, powered)
	direct.FlushBlockChanges(r.Backend, r.World)
	direct.FlushEvents(r.Backend, r.World)
}

// Powered reports the world block's current powered/lit state at pos,
// after the most recent flush.
func (r *Runner) Powered(pos blocks.BlockPos) bool {
	return r.World.GetBlock(pos).Powered
}

// WirePower reports a redstone wire's current power level (§4.13
// flush_block_changes writes this to the block's Power field, not
// Powered).
func (r *Runner) WirePower(pos blocks.BlockPos) int {
	return r.World.GetBlock(pos).Power
}

// CheckPoweredFor asserts (via the supplied fail func, so it works with both
// *testing.T and testify) that pos reads as want for exactly `ticks` ticks
// starting now, then differs on the following tick. This is the core
// assertion shape of every §8.2 pulse-width scenario.
func (r *Runner) CheckPoweredFor(fail func(format string, args ...interface{}), pos blocks.BlockPos, want bool, ticks int) {
	for i := 0; i < ticks; i++ {
		if got := r.Powered(pos); got != want {
			fail("tick %d: pos %s powered = %v, want %v (expected to hold for %d ticks)", i, pos, got, want, ticks)
			return
		}
		r.Tick()
	}
	if got := r.Powered(pos); got == want {
		fail("pos %s still powered = %v after holding for %d ticks, expected it to flip", pos, got, ticks)
	}
}

// HasPendingTicks reports whether the backend still has queued work
// (§4.11 has_pending_ticks).
func (r *Runner) HasPendingTicks() bool {
	return direct.HasPendingTicks(r.Backend)
}

// RunUntilStable ticks the backend until it has no pending ticks or maxTicks
// is reached (whichever comes first), returning the number of ticks run.
// Used to assert the "stability window" scenarios in §8.2.6.
func (r *Runner) RunUntilStable(maxTicks int) int {
	n := 0
	for n < maxTicks && r.HasPendingTicks() {
		r.Tick()
		n++
	}
	return n
}

// Priority is re-exported for scenario tables that need to assert on tick
// priority without importing pkg/world directly.
type Priority = world.TickPriority
