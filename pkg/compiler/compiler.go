// Package compiler orchestrates the full pipeline spec.md describes end to
// end: lowering a world region to a CompileGraph (pkg/compiler/frontend),
// running the mandatory and optional optimization passes
// (pkg/compiler/passes), and materializing the result into an executable
// direct backend (pkg/compiler/backend/direct). It is the package a host
// embeds to get redstone compiled out of the tick loop.
package compiler

import (
	"fmt"
	"time"

	"github.com/jihwankim/redpiler/internal/logging"
	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler/backend/direct"
	"github.com/jihwankim/redpiler/pkg/compiler/frontend"
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
	"github.com/jihwankim/redpiler/pkg/compiler/passes"
	"github.com/jihwankim/redpiler/pkg/metrics"
	"github.com/jihwankim/redpiler/pkg/world"
)

// log is package-global and nil by default, so Compile is silent unless a
// host calls SetLogger (§10.1) — pkg/harness tests never do, matching the
// teacher's convention of leaving verbose diagnostics opt-in.
var log *logging.Logger

// SetLogger points the compiler package's diagnostics at l. Pass nil to
// silence them again.
func SetLogger(l *logging.Logger) { log = l }

// metricsCollector mirrors the SetLogger nil-by-default pattern above: a
// host calls SetMetrics (§11.4) to have Compile report compile duration,
// surviving node/edge counts, and per-pass removals; pkg/harness tests never
// do, so they run with no Prometheus dependency in the loop at all.
var metricsCollector *metrics.Collector

// SetMetrics points the compiler package's metrics at c. Pass nil to stop
// reporting.
func SetMetrics(c *metrics.Collector) { metricsCollector = c }

// ErrCancelled is returned by Compile when the supplied TaskMonitor was
// cancelled between passes (§5, §7 rule 2: "returned silently; leaves the
// previous backend intact").
var ErrCancelled = fmt.Errorf("compile cancelled")

// Result is everything a successful compile hands back to its caller: the
// executable backend plus the graph it was built from, kept around for
// export/DOT dumping (§12.1, §12.2).
type Result struct {
	Graph   *graph.CompileGraph
	PosToID map[blocks.BlockPos]graph.NodeID
	Backend *direct.Backend
}

// Compile runs the full pipeline over the region [lo, hi] of w according to
// opts, polling monitor for cancellation between passes. A nil monitor is
// treated as never-cancelled.
func Compile(w world.World, lo, hi blocks.BlockPos, opts Options, monitor *TaskMonitor) (*Result, error) {
	start := time.Now()
	if log != nil {
		log.Info("compile starting", "lo", lo.String(), "hi", hi.String(), "backend", opts.BackendVariant)
	}
	if cancelled(monitor) {
		if log != nil {
			log.Warn("compile cancelled before identify_nodes")
		}
		return nil, ErrCancelled
	}

	g, posToID := frontend.IdentifyNodes(w, lo, hi, frontend.Options{WireDotOut: opts.WireDotOut})
	logPass(g, "identify_nodes", 0, 0)
	advance(monitor, "identify_nodes")

	n, e := g.NumNodes(), g.NumEdges()
	passes.ClampWeights(g)
	logPass(g, "clamp_weights", n, e)
	advance(monitor, "clamp_weights")
	if giveUp(monitor, "clamp_weights") {
		return nil, ErrCancelled
	}

	n, e = g.NumNodes(), g.NumEdges()
	passes.DedupLinks(g)
	logPass(g, "dedup_links", n, e)
	advance(monitor, "dedup_links")
	if giveUp(monitor, "dedup_links") {
		return nil, ErrCancelled
	}

	if opts.Optimize {
		ranges := passes.SSRangeAnalysis(g)
		advance(monitor, "ss_range_analysis")
		if giveUp(monitor, "ss_range_analysis") {
			return nil, ErrCancelled
		}

		n, e = g.NumNodes(), g.NumEdges()
		passes.UnreachableOutput(g, ranges)
		logPass(g, "unreachable_output", n, e)
		advance(monitor, "unreachable_output")
		if giveUp(monitor, "unreachable_output") {
			return nil, ErrCancelled
		}

		n, e = g.NumNodes(), g.NumEdges()
		passes.ConstantFold(g, ranges)
		logPass(g, "constant_fold", n, e)
		advance(monitor, "constant_fold")
		if giveUp(monitor, "constant_fold") {
			return nil, ErrCancelled
		}

		// Folding and coalescing can each unlock further opportunities for
		// the other; re-derive ranges so Coalesce's signature comparison
		// sees the post-fold graph.
		ranges = passes.SSRangeAnalysis(g)
		n, e = g.NumNodes(), g.NumEdges()
		passes.Coalesce(g, ranges)
		logPass(g, "coalesce", n, e)
		advance(monitor, "coalesce")
		if giveUp(monitor, "coalesce") {
			return nil, ErrCancelled
		}
	}

	if opts.IOOnly {
		n, e = g.NumNodes(), g.NumEdges()
		passes.PruneOrphans(g)
		logPass(g, "prune_orphans", n, e)
		advance(monitor, "prune_orphans")
		if giveUp(monitor, "prune_orphans") {
			return nil, ErrCancelled
		}
	}

	be := direct.Compile(w, g, lo, hi)
	advance(monitor, "backend_compile")

	elapsed := time.Since(start)
	if log != nil {
		log.Info("compile finished", "nodes", g.NumNodes(), "edges", g.NumEdges(), "elapsed", elapsed.String())
	}
	if metricsCollector != nil {
		metricsCollector.CompileDuration.Observe(elapsed.Seconds())
		metricsCollector.CompileNodes.Set(float64(g.NumNodes()))
		metricsCollector.CompileEdges.Set(float64(g.NumEdges()))
	}
	return &Result{Graph: g, PosToID: posToID, Backend: be}, nil
}

// logPass reports a finished pass's surviving node/edge counts to the log
// and, when a Collector is installed, the nodes-plus-edges removed relative
// to prevNodes/prevEdges (§11.4 PassesRemoved).
func logPass(g *graph.CompileGraph, step string, prevNodes, prevEdges int) {
	nodes, edges := g.NumNodes(), g.NumEdges()
	if log != nil {
		log.Debug("pass done", "pass", step, "nodes", nodes, "edges", edges)
	}
	if metricsCollector != nil {
		if removed := (prevNodes - nodes) + (prevEdges - edges); removed > 0 {
			metricsCollector.PassesRemoved.WithLabelValues(step).Add(float64(removed))
		}
	}
}

func advance(m *TaskMonitor, step string) {
	if m != nil {
		m.Advance(step)
	}
}

func cancelled(m *TaskMonitor) bool {
	return m != nil && m.Cancelled()
}

// giveUp reports whether monitor was cancelled after step, logging a Warn
// the first time it's observed (§5, §7 rule 2: cancellation is silent to the
// caller, not to the log).
func giveUp(m *TaskMonitor, step string) bool {
	if !cancelled(m) {
		return false
	}
	if log != nil {
		log.Warn("compile cancelled", "after_pass", step)
	}
	return true
}
