package frontend

import (
	"github.com/jihwankim/redpiler/pkg/blocks"
	"github.com/jihwankim/redpiler/pkg/compiler/graph"
	"github.com/jihwankim/redpiler/pkg/world"
)

// InputSearch wires every CompileLink into the graph IdentifyNodes built
// (§4.2). It runs in three parts:
//
//   - a "push" flood from every non-wire node along its output face(s),
//     walking horizontal wire chains to find the default-input edges wire
//     reach delivers, and depositing one Default edge per wire cell crossed
//     so each wire's own output_power field (§4.11) has something to copy;
//   - a direct, unflooded scan of the two faces lateral to a repeater's or
//     comparator's Facing, which is the only source of Side edges (lock and
//     subtract inputs never travel further than one block, per §4.2);
//   - a far-input resolution pass for comparators, reading the container
//     override (§GLOSSARY "Container override") one or two blocks along
//     Facing, grounded on original_source/crates/redstone/src/comparator.rs's
//     get_far_input.
//
// A generic opaque block (blocks.KindSolidBlock) crossed by the flood is not
// itself a node, but relays the signal through to its other faces at one
// extra cell of distance, per §4.2's "strongly powered solid blocks
// propagate at ss = 15 minus wire distance" — any other unrecognized block
// (including air) simply stops the flood, since it carries no redstone
// power of its own.
//
// Vertical wire climbing (stepping a redstone net up or down a block) is out
// of scope: every concrete scenario in §8.2 lays wire out horizontally, and
// the reference files carrying that rule (wire.rs) are not present in the
// filtered original_source set. A solid-block relay, unlike wire, propagates
// through all six faces, since strong power is not confined to a horizontal
// net.
func InputSearch(w world.World, g *graph.CompileGraph, posToNode map[blocks.BlockPos]graph.NodeID) {
	for pos, id := range posToNode {
		n := g.Node(id)
		resolveDefaultInputs(w, g, posToNode, pos, id, n)
	}
	for pos, id := range posToNode {
		n := g.Node(id)
		resolveSideInputs(g, posToNode, pos, id, n)
		if n.Type.Kind == graph.NodeComparator {
			n.Type.FarInput = resolveFarInput(w, posToNode, pos, n.Type.Facing)
		}
	}
}

const maxWireReach = 15

var wireHorizontalFaces = [4]blocks.BlockFace{
	blocks.FaceNorth, blocks.FaceSouth, blocks.FaceEast, blocks.FaceWest,
}

// outputFaces returns the faces a node emits signal across. Oriented diodes
// emit from a single face, opposite their input Facing; every other source
// kind (lamp, note block, lever, button, plate, constant/redstone-block) is
// omnidirectional, matching vanilla's "any adjacent face" power delivery.
func outputFaces(t graph.NodeType) []blocks.BlockFace {
	switch t.Kind {
	case graph.NodeRepeater, graph.NodeComparator, graph.NodeTorch, graph.NodeObserver, graph.NodeTrapdoor:
		return []blocks.BlockFace{t.Facing.Opposite()}
	default:
		return blocks.Faces[:]
	}
}

// acceptsDefaultFrom reports whether a target accepts a Default-type edge
// arriving from the given face (the face of the target bordering whichever
// cell the flood arrived from). Oriented diodes only accept power through
// their designated rear face; every other kind accepts power from anywhere.
func acceptsDefaultFrom(t graph.NodeType, arrivalFace blocks.BlockFace) bool {
	switch t.Kind {
	case graph.NodeRepeater, graph.NodeComparator, graph.NodeTorch, graph.NodeObserver, graph.NodeTrapdoor:
		return arrivalFace == t.Facing
	default:
		return true
	}
}

// canEmitToward reports whether a node can deliver a Side edge in the given
// direction: oriented diodes only emit from their single output face,
// everything else (wire included) is omnidirectional.
func canEmitToward(t graph.NodeType, dir blocks.BlockFace) bool {
	switch t.Kind {
	case graph.NodeRepeater, graph.NodeComparator, graph.NodeTorch, graph.NodeObserver, graph.NodeTrapdoor:
		return t.Facing.Opposite() == dir
	default:
		return true
	}
}

type frontierItem struct {
	pos         blocks.BlockPos
	dist        int
	arrivalFace blocks.BlockFace
}

// resolveDefaultInputs floods outward from one source node's output face(s),
// emitting a Default edge at every wire cell crossed and at whichever
// non-wire terminal the flood terminates on (§4.2, §4.5's wire-reach rule).
// Wire nodes never re-flood as sources: their own output is derived from
// whatever feeds them, so treating them as emitters too would only produce
// edges DedupLinks immediately collapses.
func resolveDefaultInputs(w world.World, g *graph.CompileGraph, posToNode map[blocks.BlockPos]graph.NodeID, sourcePos blocks.BlockPos, sourceID graph.NodeID, source *graph.CompileNode) {
	if source.Type.Kind == graph.NodeWire {
		return
	}

	visited := map[blocks.BlockPos]bool{sourcePos: true}
	var queue []frontierItem

	for _, face := range outputFaces(source.Type) {
		np := sourcePos.Offset(face)
		if visited[np] {
			continue
		}
		visited[np] = true
		queue = append(queue, frontierItem{pos: np, dist: 0, arrivalFace: face.Opposite()})
	}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]
		if item.dist > maxWireReach {
			continue
		}

		targetID, ok := posToNode[item.pos]
		if !ok {
			if w.GetBlock(item.pos).IsSolidRelay() {
				for _, face := range blocks.Faces {
					np := item.pos.Offset(face)
					if visited[np] {
						continue
					}
					visited[np] = true
					queue = append(queue, frontierItem{pos: np, dist: item.dist + 1, arrivalFace: face.Opposite()})
				}
			}
			continue // opaque non-relay or unrecognized block: the flood stops here
		}
		target := g.Node(targetID)

		if target.Type.Kind == graph.NodeWire {
			g.AddEdge(sourceID, targetID, graph.CompileLink{Type: graph.LinkDefault, SS: item.dist})
			for _, face := range wireHorizontalFaces {
				np := item.pos.Offset(face)
				if visited[np] {
					continue
				}
				visited[np] = true
				queue = append(queue, frontierItem{pos: np, dist: item.dist + 1, arrivalFace: face.Opposite()})
			}
			continue
		}

		if acceptsDefaultFrom(target.Type, item.arrivalFace) {
			g.AddEdge(sourceID, targetID, graph.CompileLink{Type: graph.LinkDefault, SS: item.dist})
		}
		// Signal never passes through a non-wire, non-relay terminal.
	}
}

// resolveSideInputs adds the Side edges a repeater's lock input or a
// subtract-mode comparator's side input reads (§4.2). Unlike default inputs,
// side inputs are never flooded through a wire chain: only the two blocks
// immediately lateral to Facing ever contribute one.
func resolveSideInputs(g *graph.CompileGraph, posToNode map[blocks.BlockPos]graph.NodeID, pos blocks.BlockPos, targetID graph.NodeID, target *graph.CompileNode) {
	if target.Type.Kind != graph.NodeRepeater && target.Type.Kind != graph.NodeComparator {
		return
	}

	for _, face := range [2]blocks.BlockFace{target.Type.Facing.RotateCW(), target.Type.Facing.RotateCCW()} {
		np := pos.Offset(face)
		srcID, ok := posToNode[np]
		if !ok {
			continue
		}
		src := g.Node(srcID)
		if src.Type.Kind != graph.NodeWire && !canEmitToward(src.Type, face.Opposite()) {
			continue
		}
		g.AddEdge(srcID, targetID, graph.CompileLink{Type: graph.LinkSide, SS: 0})
	}
}

// resolveFarInput implements get_far_input from
// original_source/crates/redstone/src/comparator.rs: a comparator reads a
// container's override strength either directly, when the immediate rear
// neighbor is itself an override-capable container, or two blocks back when
// the immediate neighbor is an ordinary opaque block. A rear neighbor that
// is a node in its own right (another diode, a wire) is handled by the
// normal flood instead; it is never treated as "opaque".
func resolveFarInput(w world.World, posToNode map[blocks.BlockPos]graph.NodeID, pos blocks.BlockPos, facing blocks.BlockFace) *int {
	inputPos := pos.Offset(facing)
	if v, ok := w.GetBlock(inputPos).ContainerOverride(); ok {
		return &v
	}
	if _, isNode := posToNode[inputPos]; isNode {
		return nil
	}
	if !w.GetBlock(inputPos).IsSolidRelay() {
		return nil
	}

	farPos := inputPos.Offset(facing)
	if v, ok := w.GetBlock(farPos).ContainerOverride(); ok {
		return &v
	}
	return nil
}
