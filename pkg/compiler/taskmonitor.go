package compiler

import (
	"sync"
	"sync/atomic"
)

// TaskMonitor is the only object a compile shares with the thread that
// continues driving the previous backend while a new one is being built
// (§5, §9 "Shared mutable progress state"). Progress and the cancel flag
// are plain atomics with relaxed semantics: advisory only, never load-
// bearing for correctness. The status message is short-lived text read far
// less often than it's written, so it sits behind a narrow mutex instead.
//
// Modeled on the constructor-with-defaults shape of pkg/emergency.Controller
// in the teacher repo, stripped of its stop-file watcher and signal
// handling: cancellation here is driven entirely by the compiling goroutine
// polling Cancelled() between passes, never by an external watcher.
type TaskMonitor struct {
	progress int64
	canceled int32

	mu      sync.RWMutex
	message string
}

// NewTaskMonitor returns a TaskMonitor with zero progress and no pending
// cancellation.
func NewTaskMonitor() *TaskMonitor {
	return &TaskMonitor{}
}

// Advance records progress through the pass pipeline (one call per
// completed pass is the expected cadence) and sets the status message.
func (m *TaskMonitor) Advance(message string) {
	atomic.AddInt64(&m.progress, 1)
	m.mu.Lock()
	m.message = message
	m.mu.Unlock()
}

// Progress returns the number of completed steps so far.
func (m *TaskMonitor) Progress() int64 {
	return atomic.LoadInt64(&m.progress)
}

// Message returns the most recently set status message.
func (m *TaskMonitor) Message() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.message
}

// Cancel requests that the in-flight compile stop at its next poll point.
func (m *TaskMonitor) Cancel() {
	atomic.StoreInt32(&m.canceled, 1)
}

// Cancelled reports whether Cancel has been called.
func (m *TaskMonitor) Cancelled() bool {
	return atomic.LoadInt32(&m.canceled) != 0
}
