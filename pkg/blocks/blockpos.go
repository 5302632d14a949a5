// Package blocks defines the block catalog and coordinate types the redstone
// compiler lowers from: BlockPos, the face-adjacency rules that connect
// neighboring blocks, and the fixed mapping from a symbolic Block to the
// NodeType the front-end emits for it.
package blocks

import "fmt"

// BlockPos is an integer block coordinate triple.
type BlockPos struct {
	X, Y, Z int32
}

// NewBlockPos constructs a BlockPos.
func NewBlockPos(x, y, z int32) BlockPos {
	return BlockPos{X: x, Y: y, Z: z}
}

// BlockFace names one of the six faces of a block, used to compute adjacency
// and to resolve the "rear"/"side" designation of an oriented diode.
type BlockFace int

const (
	FaceBottom BlockFace = iota
	FaceTop
	FaceNorth
	FaceSouth
	FaceWest
	FaceEast
)

// Offset returns the neighboring position across the given face. The
// downward (Bottom) step saturates at y == 0 rather than going negative:
// redstone never needs to address below the world floor, and a saturating
// decrement keeps bounds-checked region scans simple.
func (p BlockPos) Offset(face BlockFace) BlockPos {
	switch face {
	case FaceBottom:
		if p.Y == 0 {
			return p
		}
		return BlockPos{p.X, p.Y - 1, p.Z}
	case FaceTop:
		return BlockPos{p.X, p.Y + 1, p.Z}
	case FaceNorth:
		return BlockPos{p.X, p.Y, p.Z - 1}
	case FaceSouth:
		return BlockPos{p.X, p.Y, p.Z + 1}
	case FaceWest:
		return BlockPos{p.X - 1, p.Y, p.Z}
	case FaceEast:
		return BlockPos{p.X + 1, p.Y, p.Z}
	default:
		return p
	}
}

// Faces lists the six face-adjacency directions in the fixed scan order used
// by InputSearch.
var Faces = [6]BlockFace{FaceBottom, FaceTop, FaceNorth, FaceSouth, FaceWest, FaceEast}

// RotateCW returns the horizontal face 90 degrees clockwise (viewed from
// above): North->East->South->West->North. Non-horizontal faces are
// returned unchanged.
func (f BlockFace) RotateCW() BlockFace {
	switch f {
	case FaceNorth:
		return FaceEast
	case FaceEast:
		return FaceSouth
	case FaceSouth:
		return FaceWest
	case FaceWest:
		return FaceNorth
	default:
		return f
	}
}

// RotateCCW returns the horizontal face 90 degrees counter-clockwise.
func (f BlockFace) RotateCCW() BlockFace {
	return f.RotateCW().Opposite()
}

// Opposite returns the face pointing the other way.
func (f BlockFace) Opposite() BlockFace {
	switch f {
	case FaceBottom:
		return FaceTop
	case FaceTop:
		return FaceBottom
	case FaceNorth:
		return FaceSouth
	case FaceSouth:
		return FaceNorth
	case FaceWest:
		return FaceEast
	case FaceEast:
		return FaceWest
	default:
		return f
	}
}

// Max returns the component-wise maximum of two positions.
func (p BlockPos) Max(o BlockPos) BlockPos {
	return BlockPos{maxI32(p.X, o.X), maxI32(p.Y, o.Y), maxI32(p.Z, o.Z)}
}

// Min returns the component-wise minimum of two positions.
func (p BlockPos) Min(o BlockPos) BlockPos {
	return BlockPos{minI32(p.X, o.X), minI32(p.Y, o.Y), minI32(p.Z, o.Z)}
}

func (p BlockPos) String() string {
	return fmt.Sprintf("(%d, %d, %d)", p.X, p.Y, p.Z)
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minI32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}
