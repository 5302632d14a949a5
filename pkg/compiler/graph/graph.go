package graph

// Edge is one directed, weighted edge of the graph. Source/Target reference
// tombstone-stable NodeIDs.
type Edge struct {
	Source, Target NodeID
	Link           CompileLink
}

// CompileGraph is a directed multigraph of CompileNode with CompileLink edge
// weights (§3.6). Deletion tombstones slots (sets them nil) instead of
// compacting, so that NodeID/EdgeID values handed out earlier — including
// ones cached by a pass mid-iteration — stay valid for the lifetime of the
// graph. This mirrors the stability guarantee callers get from petgraph's
// StableGraph in the reference implementation, without attempting a literal
// port of that data structure.
type CompileGraph struct {
	nodes []*CompileNode
	edges []*Edge
	out   [][]EdgeID
	in    [][]EdgeID
}

// New returns an empty graph.
func New() *CompileGraph {
	return &CompileGraph{}
}

// AddNode inserts a node and returns its stable ID.
func (g *CompileGraph) AddNode(n *CompileNode) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	return id
}

// AddEdge inserts a directed edge and returns its stable ID. Multi-edges are
// permitted; DedupLinks (§4.4) is responsible for collapsing duplicates.
func (g *CompileGraph) AddEdge(src, dst NodeID, link CompileLink) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, &Edge{Source: src, Target: dst, Link: link})
	g.out[src] = append(g.out[src], id)
	g.in[dst] = append(g.in[dst], id)
	return id
}

// Node returns the node at id, or nil if it has been removed.
func (g *CompileGraph) Node(id NodeID) *CompileNode {
	if int(id) < 0 || int(id) >= len(g.nodes) {
		return nil
	}
	return g.nodes[id]
}

// Edge returns the edge at id, or nil if it has been removed.
func (g *CompileGraph) Edge(id EdgeID) *Edge {
	if int(id) < 0 || int(id) >= len(g.edges) {
		return nil
	}
	return g.edges[id]
}

// NodeIDs returns every live node ID in insertion order.
func (g *CompileGraph) NodeIDs() []NodeID {
	ids := make([]NodeID, 0, len(g.nodes))
	for i, n := range g.nodes {
		if n != nil {
			ids = append(ids, NodeID(i))
		}
	}
	return ids
}

// EdgeIDs returns every live edge ID in insertion order.
func (g *CompileGraph) EdgeIDs() []EdgeID {
	ids := make([]EdgeID, 0, len(g.edges))
	for i, e := range g.edges {
		if e != nil {
			ids = append(ids, EdgeID(i))
		}
	}
	return ids
}

// OutEdges returns the live outgoing edge IDs of a node.
func (g *CompileGraph) OutEdges(id NodeID) []EdgeID {
	return liveOnly(g.edges, g.out[id])
}

// InEdges returns the live incoming edge IDs of a node.
func (g *CompileGraph) InEdges(id NodeID) []EdgeID {
	return liveOnly(g.edges, g.in[id])
}

func liveOnly(edges []*Edge, ids []EdgeID) []EdgeID {
	live := ids[:0:0]
	for _, id := range ids {
		if edges[id] != nil {
			live = append(live, id)
		}
	}
	return live
}

// RemoveEdge tombstones an edge.
func (g *CompileGraph) RemoveEdge(id EdgeID) {
	g.edges[id] = nil
}

// RemoveNode tombstones a node and every edge touching it.
func (g *CompileGraph) RemoveNode(id NodeID) {
	if g.nodes[id] == nil {
		return
	}
	for _, eid := range g.out[id] {
		g.edges[eid] = nil
	}
	for _, eid := range g.in[id] {
		g.edges[eid] = nil
	}
	g.nodes[id] = nil
	g.out[id] = nil
	g.in[id] = nil
}

// RedirectOutEdges moves every live outgoing edge of from to instead
// originate at to, used by Coalesce (§4.8) when merging b into a.
func (g *CompileGraph) RedirectOutEdges(from, to NodeID) {
	for _, eid := range g.OutEdges(from) {
		e := g.edges[eid]
		e.Source = to
		g.out[to] = append(g.out[to], eid)
	}
	g.out[from] = nil
}

// NumNodes returns the count of live (non-tombstoned) nodes.
func (g *CompileGraph) NumNodes() int {
	n := 0
	for _, v := range g.nodes {
		if v != nil {
			n++
		}
	}
	return n
}

// NumEdges returns the count of live (non-tombstoned) edges.
func (g *CompileGraph) NumEdges() int {
	n := 0
	for _, v := range g.edges {
		if v != nil {
			n++
		}
	}
	return n
}
