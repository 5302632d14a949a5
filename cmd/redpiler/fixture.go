package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/harness"
)

// fixtureFile is the on-disk YAML shape `compile`/`tick`/`inspect` load a
// region from. There's no canonical wire format for a standalone region
// outside a running world in this distillation, so this is a small,
// declarative table in the same spirit as the scenario builders in
// pkg/harness/scenarios.go: one entry per placed block.
type fixtureFile struct {
	Blocks []fixtureBlock `yaml:"blocks"`
}

type fixtureBlock struct {
	Pos     [3]int32 `yaml:"pos"`
	Kind    string   `yaml:"kind"`
	Powered bool     `yaml:"powered"`
	Facing  string   `yaml:"facing"`
	Delay   int      `yaml:"delay"`
	Level   int      `yaml:"level"`
}

var faceNames = map[string]blocks.BlockFace{
	"bottom": blocks.FaceBottom,
	"top":    blocks.FaceTop,
	"north":  blocks.FaceNorth,
	"south":  blocks.FaceSouth,
	"west":   blocks.FaceWest,
	"east":   blocks.FaceEast,
}

var kindNames = func() map[string]blocks.Kind {
	m := make(map[string]blocks.Kind, len(blocks.Catalog)+2)
	m["redstone_block"] = blocks.KindRedstoneBlock
	// solid_block is never a graph node; it's the generic opaque-block
	// fixture authors place to exercise the strongly-powered-solid-block
	// relay (§4.2), since it has no dedicated catalog entry of its own.
	m["solid_block"] = blocks.KindSolidBlock
	for _, e := range blocks.Catalog {
		m[e.Name] = e.Kind
	}
	return m
}()

// loadFixture reads path and builds a *harness.TestWorld plus the [lo, hi]
// bounding box covering every placed block.
func loadFixture(path string) (*harness.TestWorld, blocks.BlockPos, blocks.BlockPos, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, blocks.BlockPos{}, blocks.BlockPos{}, fmt.Errorf("fixture: read %s: %w", path, err)
	}

	var f fixtureFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, blocks.BlockPos{}, blocks.BlockPos{}, fmt.Errorf("fixture: parse %s: %w", path, err)
	}
	if len(f.Blocks) == 0 {
		return nil, blocks.BlockPos{}, blocks.BlockPos{}, fmt.Errorf("fixture: %s places no blocks", path)
	}

	w := harness.NewTestWorld()
	lo := blocks.NewBlockPos(f.Blocks[0].Pos[0], f.Blocks[0].Pos[1], f.Blocks[0].Pos[2])
	hi := lo

	for _, fb := range f.Blocks {
		kind, ok := kindNames[fb.Kind]
		if !ok {
			return nil, blocks.BlockPos{}, blocks.BlockPos{}, fmt.Errorf("fixture: %s: unrecognized block kind %q", path, fb.Kind)
		}
		pos := blocks.NewBlockPos(fb.Pos[0], fb.Pos[1], fb.Pos[2])
		b := blocks.Block{Kind: kind, Powered: fb.Powered, Delay: fb.Delay, Level: fb.Level}
		if fb.Facing != "" {
			face, ok := faceNames[fb.Facing]
			if !ok {
				return nil, blocks.BlockPos{}, blocks.BlockPos{}, fmt.Errorf("fixture: %s: unrecognized facing %q", path, fb.Facing)
			}
			b.Facing = face
		}
		w.Set(pos, b)
		lo = blocks.NewBlockPos(min32(lo.X, pos.X), min32(lo.Y, pos.Y), min32(lo.Z, pos.Z))
		hi = blocks.NewBlockPos(max32(hi.X, pos.X), max32(hi.Y, pos.Y), max32(hi.Z, pos.Z))
	}

	return w, lo, hi, nil
}

func min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
