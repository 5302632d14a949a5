package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	version = "dev" // set by build flags
)

var rootCmd = &cobra.Command{
	Use:     "redpiler",
	Short:   "Compile and execute redstone circuits outside the game tick loop",
	Long:    `Redpiler lowers a region of world blocks into an executable signal graph and runs it standalone, without a Minecraft server behind it.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./redpiler.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (debug-level) logging")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(serveMetricsCmd)
}

// Subcommands are defined in separate files:
// - compileCmd in compile.go
// - tickCmd in tick.go
// - inspectCmd in inspect.go
// - serveMetricsCmd in serve_metrics.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
