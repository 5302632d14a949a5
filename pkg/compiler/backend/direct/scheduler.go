package direct

import "github.com/jihwankim/redpiler/pkg/world"

// numSlots is the width of the cyclic tick schedule (§3.9).
const numSlots = 16

// Scheduler is the 16-slot x 4-priority cyclic queue of pending node
// indices (§3.9). pos is the current slot; tick() advances it by exactly
// one slot and drains whatever that slot holds in priority order.
type Scheduler struct {
	slots [numSlots][world.NumPriorities][]int
	pos   int
}

// NewScheduler returns an empty scheduler with its slot pointer at 0.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule enqueues nodeIdx into the slot `delay` steps ahead of the
// current position, at the given priority. delay is taken modulo the slot
// count, matching the reference's "delay modulo 16 selects the slot".
func (s *Scheduler) Schedule(delay uint32, priority world.TickPriority, nodeIdx int) {
	slot := (s.pos + int(delay)) % numSlots
	s.slots[slot][priority] = append(s.slots[slot][priority], nodeIdx)
}

// Advance steps the slot pointer by one and returns everything queued in
// the new current slot, in priority order (Highest, Higher, High, Normal).
// The drained slot is cleared.
func (s *Scheduler) Advance() []int {
	s.pos = (s.pos + 1) % numSlots
	var drained []int
	for p := world.TickPriority(0); int(p) < world.NumPriorities; p++ {
		drained = append(drained, s.slots[s.pos][p]...)
		s.slots[s.pos][p] = nil
	}
	return drained
}

// HasPending reports whether any slot still holds a queued node.
func (s *Scheduler) HasPending() bool {
	for slot := 0; slot < numSlots; slot++ {
		for p := 0; p < world.NumPriorities; p++ {
			if len(s.slots[slot][p]) > 0 {
				return true
			}
		}
	}
	return false
}

// Count returns the total number of entries queued across every slot and
// priority, for the §11.4 pending-ticks gauge.
func (s *Scheduler) Count() int {
	n := 0
	for slot := 0; slot < numSlots; slot++ {
		for p := 0; p < world.NumPriorities; p++ {
			n += len(s.slots[slot][p])
		}
	}
	return n
}

// Pending enumerates every queued entry as a (ticksLeft, priority, index)
// triple, ticksLeft counted forward from the current slot. Used by
// flush_scheduled_ticks (§4.13) to surface remaining ticks back to the
// world before the backend is torn down.
type PendingEntry struct {
	TicksLeft uint32
	Priority  world.TickPriority
	NodeIndex int
}

func (s *Scheduler) Pending() []PendingEntry {
	var out []PendingEntry
	for step := 1; step <= numSlots; step++ {
		slot := (s.pos + step) % numSlots
		for p := world.TickPriority(0); int(p) < world.NumPriorities; p++ {
			for _, idx := range s.slots[slot][p] {
				out = append(out, PendingEntry{TicksLeft: uint32(step), Priority: p, NodeIndex: idx})
			}
		}
	}
	return out
}
