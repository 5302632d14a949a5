package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Args:  cobra.NoArgs,
	Short: "Expose the Prometheus metrics endpoint",
	Long:  `Starts an HTTP server exposing compile/tick counters and gauges at /metrics over promhttp (§11.4).`,
	RunE:  runServeMetrics,
}

func init() {
	serveMetricsCmd.Flags().String("addr", "", "listen address (overrides config metrics.listen_addr)")
}

func runServeMetrics(cmd *cobra.Command, args []string) error {
	addrFlag, _ := cmd.Flags().GetString("addr")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	addr := cfg.Metrics.ListenAddr
	if addrFlag != "" {
		addr = addrFlag
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", procMetrics.Handler())

	logger.Info("serving metrics", "addr", addr)
	fmt.Printf("serving metrics at http://%s/metrics\n", addr)
	return http.ListenAndServe(addr, mux)
}
