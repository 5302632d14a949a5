package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler"
	"github.com/jihwankim/redpiler/pkg/compiler/backend/direct"
)

var tickCmd = &cobra.Command{
	Use:   "tick",
	Args:  cobra.NoArgs,
	Short: "Compile a fixture and run N ticks, printing flushed block changes",
	Long:  `Loads a fixture YAML file, compiles it, then advances the backend --ticks times, printing every block whose world state changed.`,
	RunE:  runTick,
}

func init() {
	tickCmd.Flags().String("fixture", "", "path to fixture YAML file (required)")
	tickCmd.Flags().Int("ticks", 1, "number of ticks to run")
	tickCmd.Flags().String("use", "", "block position to interact with before ticking, e.g. \"0,0,0\"")
}

func runTick(cmd *cobra.Command, args []string) error {
	fixturePath, _ := cmd.Flags().GetString("fixture")
	if fixturePath == "" {
		return fmt.Errorf("--fixture flag is required")
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	usePos, _ := cmd.Flags().GetString("use")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	compiler.SetLogger(logger)
	compiler.SetMetrics(procMetrics)
	direct.SetMetrics(procMetrics)

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
	be := result.Backend
	changed := make(map[int]bool)

	if usePos != "" {
		pos, err := parsePos(usePos)
		if err != nil {
			return err
		}
		direct.OnUseBlock(be, w, pos)
		for _, idx := range be.Changes {
			changed[idx] = true
		}
		direct.FlushBlockChanges(be, w)
		direct.FlushEvents(be, w)
	}

	for i := 0; i < ticks; i++ {
		direct.Tick(be, w)
		for _, idx := range be.Changes {
			changed[idx] = true
		}
		direct.FlushBlockChanges(be, w)
		direct.FlushEvents(be, w)
	}

	for pos, idx := range be.PosMap {
		if !changed[idx] {
			continue
		}
		n := be.Nodes[idx]
		fmt.Printf("%s: %s powered=%v output=%d\n", pos, n.Type.Kind, n.Powered, n.OutputPower)
	}
	return nil
}

func parsePos(s string) (blocks.BlockPos, error) {
	var x, y, z int32
	n, err := fmt.Sscanf(s, "%d,%d,%d", &x, &y, &z)
	if err != nil || n != 3 {
		return blocks.BlockPos{}, fmt.Errorf("invalid position %q, expected \"x,y,z\"", s)
	}
	return blocks.NewBlockPos(x, y, z), nil
}
