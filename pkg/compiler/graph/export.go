package graph

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/jihwankim/redpiler/pkg/blocks"
)

// exportVersion is bumped whenever the tagged-record layout changes in a
// backward-incompatible way.
const exportVersion = 1

// Export serializes a graph to a stable, tagged-record binary format keyed
// on NodeID, so re-Import of the same bytes reconstructs the exact same
// NodeID/EdgeID numbering (§6.4, §12.1). No library in the retrieved example
// pack offers a comparable low-boilerplate tagged codec without a
// code-generation step, so this hand-rolls the encoding directly on
// encoding/binary.
func Export(g *CompileGraph) []byte {
	var buf bytes.Buffer
	buf.WriteByte(exportVersion)

	writeU32(&buf, uint32(len(g.nodes)))
	for _, n := range g.nodes {
		if n == nil {
			buf.WriteByte(0) // tombstone marker
			continue
		}
		buf.WriteByte(1)
		writeNode(&buf, n)
	}

	writeU32(&buf, uint32(len(g.edges)))
	for _, e := range g.edges {
		if e == nil {
			buf.WriteByte(0)
			continue
		}
		buf.WriteByte(1)
		writeU32(&buf, uint32(e.Source))
		writeU32(&buf, uint32(e.Target))
		buf.WriteByte(byte(e.Link.Type))
		buf.WriteByte(byte(e.Link.SS))
	}

	return buf.Bytes()
}

// Import reconstructs a graph from bytes produced by Export.
func Import(data []byte) (*CompileGraph, error) {
	r := bytes.NewReader(data)
	version, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("redpiler: read export version: %w", err)
	}
	if version != exportVersion {
		return nil, fmt.Errorf("redpiler: unsupported export version %d", version)
	}

	nodeCount, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("redpiler: read node count: %w", err)
	}
	g := &CompileGraph{
		nodes: make([]*CompileNode, nodeCount),
		out:   make([][]EdgeID, nodeCount),
		in:    make([][]EdgeID, nodeCount),
	}
	for i := uint32(0); i < nodeCount; i++ {
		present, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("redpiler: read node %d presence: %w", i, err)
		}
		if present == 0 {
			continue
		}
		n, err := readNode(r)
		if err != nil {
			return nil, fmt.Errorf("redpiler: read node %d: %w", i, err)
		}
		g.nodes[i] = n
	}

	edgeCount, err := readU32(r)
	if err != nil {
		return nil, fmt.Errorf("redpiler: read edge count: %w", err)
	}
	g.edges = make([]*Edge, edgeCount)
	for i := uint32(0); i < edgeCount; i++ {
		present, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("redpiler: read edge %d presence: %w", i, err)
		}
		if present == 0 {
			continue
		}
		src, err := readU32(r)
		if err != nil {
			return nil, err
		}
		dst, err := readU32(r)
		if err != nil {
			return nil, err
		}
		linkType, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		ss, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		eid := EdgeID(i)
		g.edges[eid] = &Edge{
			Source: NodeID(src),
			Target: NodeID(dst),
			Link:   CompileLink{Type: LinkType(linkType), SS: int(ss)},
		}
		g.out[src] = append(g.out[src], eid)
		g.in[dst] = append(g.in[dst], eid)
	}

	return g, nil
}

func writeNode(buf *bytes.Buffer, n *CompileNode) {
	buf.WriteByte(byte(n.Type.Kind))
	buf.WriteByte(byte(n.Type.Delay))
	buf.WriteByte(boolByte(n.Type.FacingDiode))
	buf.WriteByte(byte(n.Type.Mode))
	if n.Type.FarInput != nil {
		buf.WriteByte(1)
		buf.WriteByte(byte(*n.Type.FarInput))
	} else {
		buf.WriteByte(0)
	}
	buf.WriteByte(byte(n.Type.Instrument))
	buf.WriteByte(byte(n.Type.Note))
	buf.WriteByte(byte(n.Type.Facing))

	buf.WriteByte(boolByte(n.State.Powered))
	buf.WriteByte(boolByte(n.State.RepeaterLocked))
	buf.WriteByte(byte(n.State.OutputStrength))

	buf.WriteByte(boolByte(n.IsInput))
	buf.WriteByte(boolByte(n.IsOutput))

	if n.Block != nil {
		buf.WriteByte(1)
		writeU32(buf, uint32(int32ToU32(n.Block.Pos.X)))
		writeU32(buf, uint32(int32ToU32(n.Block.Pos.Y)))
		writeU32(buf, uint32(int32ToU32(n.Block.Pos.Z)))
		writeU32(buf, n.Block.ProtocolID)
	} else {
		buf.WriteByte(0)
	}
}

func readNode(r *bytes.Reader) (*CompileNode, error) {
	n := &CompileNode{}
	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.Type.Kind = NodeTypeKind(kind)

	delay, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.Type.Delay = int(delay)

	facingDiode, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.Type.FacingDiode = facingDiode != 0

	mode, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.Type.Mode = blocks.ComparatorMode(mode)

	hasFar, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if hasFar != 0 {
		f, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		v := int(f)
		n.Type.FarInput = &v
	}

	instrument, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.Type.Instrument = int(instrument)

	note, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.Type.Note = int(note)

	facing, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.Type.Facing = blocks.BlockFace(facing)

	powered, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.State.Powered = powered != 0

	locked, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.State.RepeaterLocked = locked != 0

	outputStrength, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.State.OutputStrength = int(outputStrength)

	isInput, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.IsInput = isInput != 0

	isOutput, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n.IsOutput = isOutput != 0

	hasBlock, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	if hasBlock != 0 {
		x, err := readU32(r)
		if err != nil {
			return nil, err
		}
		y, err := readU32(r)
		if err != nil {
			return nil, err
		}
		z, err := readU32(r)
		if err != nil {
			return nil, err
		}
		protocolID, err := readU32(r)
		if err != nil {
			return nil, err
		}
		n.Block = &NodeBlock{
			Pos:        blocks.NewBlockPos(u32ToInt32(x), u32ToInt32(y), u32ToInt32(z)),
			ProtocolID: protocolID,
		}
	}

	return n, nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func readU32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func int32ToU32(v int32) uint32 { return uint32(v) }
func u32ToInt32(v uint32) int32 { return int32(v) }
