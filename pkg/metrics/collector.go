// Package metrics exposes the compiler's own Prometheus metrics (§11.4):
// how long each compile takes, how many nodes/edges survive the pass
// pipeline, and how many ticks get executed. The teacher repo only ever
// consumed Prometheus as a query client (pkg/monitoring/prometheus); this
// package re-aims the same dependency to the exposition side
// (prometheus/client_golang's collector + promhttp registry) since this
// module is itself the thing worth instrumenting, not something that
// queries another service's metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the compiler and tick executor report.
type Collector struct {
	registry *prometheus.Registry

	CompileDuration prometheus.Histogram
	CompileNodes    prometheus.Gauge
	CompileEdges    prometheus.Gauge
	PassesRemoved   *prometheus.CounterVec
	TicksExecuted   prometheus.Counter
	PendingTicks    prometheus.Gauge
}

// NewCollector builds a Collector registered against a fresh Registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		CompileDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "redpiler",
			Subsystem: "compiler",
			Name:      "compile_duration_seconds",
			Help:      "Wall-clock time spent in Compile, including all passes.",
			Buckets:   prometheus.DefBuckets,
		}),
		CompileNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "redpiler",
			Subsystem: "compiler",
			Name:      "graph_nodes",
			Help:      "Number of CompileNodes surviving the most recent compile.",
		}),
		CompileEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "redpiler",
			Subsystem: "compiler",
			Name:      "graph_edges",
			Help:      "Number of CompileLinks surviving the most recent compile.",
		}),
		PassesRemoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "redpiler",
			Subsystem: "compiler",
			Name:      "pass_removed_total",
			Help:      "Nodes or edges removed by each optimization pass, cumulative.",
		}, []string{"pass"}),
		TicksExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "redpiler",
			Subsystem: "executor",
			Name:      "ticks_executed_total",
			Help:      "Number of direct.Tick calls served.",
		}),
		PendingTicks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "redpiler",
			Subsystem: "executor",
			Name:      "pending_ticks",
			Help:      "Entries currently queued in the backend's tick scheduler.",
		}),
	}

	reg.MustRegister(
		c.CompileDuration,
		c.CompileNodes,
		c.CompileEdges,
		c.PassesRemoved,
		c.TicksExecuted,
		c.PendingTicks,
	)
	return c
}

// Handler returns the promhttp handler serving this collector's registry,
// for cmd/redpiler's serve-metrics subcommand (§10.4).
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
