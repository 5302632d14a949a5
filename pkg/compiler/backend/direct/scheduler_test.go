package direct

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jihwankim/redpiler/pkg/world"
)

// TestSchedulerDrainsAtCorrectSlot checks §3.9: a node scheduled with delay
// N is drained exactly N Advance calls later, not before and not after.
func TestSchedulerDrainsAtCorrectSlot(t *testing.T) {
	s := NewScheduler()
	s.Schedule(3, world.PriorityNormal, 42)

	for i := 0; i < 2; i++ {
		require.Empty(t, s.Advance())
	}
	require.Equal(t, []int{42}, s.Advance())
	require.False(t, s.HasPending())
}

// TestSchedulerOrdersByPriorityWithinASlot checks that Advance drains a
// single slot's entries in Highest, Higher, High, Normal order regardless
// of insertion order.
func TestSchedulerOrdersByPriorityWithinASlot(t *testing.T) {
	s := NewScheduler()
	s.Schedule(1, world.PriorityNormal, 1)
	s.Schedule(1, world.PriorityHighest, 2)
	s.Schedule(1, world.PriorityHigh, 3)
	s.Schedule(1, world.PriorityHigher, 4)

	require.Equal(t, []int{2, 4, 3, 1}, s.Advance())
}

// TestSchedulerDelayWrapsModulo16 checks the cyclic-slot rule: a delay of
// exactly numSlots lands back in the slot currently occupied, so it drains
// after a full revolution.
func TestSchedulerDelayWrapsModulo16(t *testing.T) {
	s := NewScheduler()
	s.Schedule(numSlots, world.PriorityNormal, 7)

	for i := 0; i < numSlots-1; i++ {
		require.Empty(t, s.Advance())
	}
	require.Equal(t, []int{7}, s.Advance())
}

// TestSchedulerPendingReportsTicksLeftFromCurrentSlot checks
// flush_scheduled_ticks' (§4.13) accounting: Pending() reports ticksLeft
// counted forward from the scheduler's current position, not from zero.
func TestSchedulerPendingReportsTicksLeftFromCurrentSlot(t *testing.T) {
	s := NewScheduler()
	s.Schedule(5, world.PriorityHigh, 9)
	s.Advance() // consumes one step, so 5-step schedule now has 4 left

	pending := s.Pending()
	require.Len(t, pending, 1)
	require.Equal(t, uint32(4), pending[0].TicksLeft)
	require.Equal(t, world.PriorityHigh, pending[0].Priority)
	require.Equal(t, 9, pending[0].NodeIndex)
}

// TestSchedulerHasPendingReflectsDrains checks that HasPending goes false
// once every scheduled entry has been drained.
func TestSchedulerHasPendingReflectsDrains(t *testing.T) {
	s := NewScheduler()
	require.False(t, s.HasPending())

	s.Schedule(1, world.PriorityNormal, 1)
	require.True(t, s.HasPending())

	s.Advance()
	require.False(t, s.HasPending())
}
