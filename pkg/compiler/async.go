package compiler

import (
	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/world"
)

// AsyncResult is what a background compile hands back over the channel
// CompileAsync returns: either a completed Result or the error Compile
// failed with (cancellation included).
type AsyncResult struct {
	Result *Result
	Err    error
}

// CompileAsync runs Compile on its own goroutine and delivers exactly one
// AsyncResult on the returned channel, which is closed immediately after
// (§5, §9: "cross-thread message passing for a background compile is by
// single-producer/single-consumer channel of a completed Compiler value").
// The owning goroutine keeps driving the previous backend and swaps to the
// new one at its next barrier, whenever it chooses to receive.
func CompileAsync(w world.World, lo, hi blocks.BlockPos, opts Options, monitor *TaskMonitor) <-chan AsyncResult {
	ch := make(chan AsyncResult, 1)
	go func() {
		defer close(ch)
		result, err := Compile(w, lo, hi, opts, monitor)
		ch <- AsyncResult{Result: result, Err: err}
	}()
	return ch
}
