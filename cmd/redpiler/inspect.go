package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jihwankim/redpiler/pkg/compiler"
	"github.com/jihwankim/redpiler/pkg/compiler/backend/direct"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Args:  cobra.NoArgs,
	Short: "Dump one compiled node's backend record",
	Long:  `Compiles a fixture and prints the backend Node record (histograms, state flags) at --pos, for comparing against the reference simulator by hand (§12.3).`,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("fixture", "", "path to fixture YAML file (required)")
	inspectCmd.Flags().String("pos", "", "block position to inspect, e.g. \"1,0,0\" (required)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	fixturePath, _ := cmd.Flags().GetString("fixture")
	posStr, _ := cmd.Flags().GetString("pos")
	if fixturePath == "" || posStr == "" {
		return fmt.Errorf("--fixture and --pos flags are required")
	}
	pos, err := parsePos(posStr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	compiler.SetLogger(logger)

	w, lo, hi, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}
	if err := cfg.Safety.CheckRegion(lo, hi); err != nil {
		return err
	}

	result, err := compiler.Compile(w, lo, hi, cfg.Compile.Options(), nil)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}

	snap, ok := direct.Inspect(result.Backend, pos)
	if !ok {
		return fmt.Errorf("no compiled node at %s (pruned, or never a node)", pos)
	}

	fmt.Printf("pos:            %s\n", pos)
	fmt.Printf("kind:           %s\n", snap.Type.Kind)
	fmt.Printf("facing:         %d\n", snap.Type.Facing)
	fmt.Printf("powered:        %v\n", snap.Powered)
	fmt.Printf("locked:         %v\n", snap.Locked)
	fmt.Printf("pending_tick:   %v\n", snap.PendingTick)
	fmt.Printf("output_power:   %d\n", snap.OutputPower)
	fmt.Printf("default_inputs: %v\n", snap.DefaultInputs)
	fmt.Printf("side_inputs:    %v\n", snap.SideInputs)
	return nil
}
