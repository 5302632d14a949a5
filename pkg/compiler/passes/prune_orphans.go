package passes

import "github.com/jihwankim/redpiler/pkg/compiler/graph"

// PruneOrphans runs a reverse breadth-first search from every IO (non-
// removable) node along incoming edges, keeping only visited nodes (§4.9,
// io_only mode). A node survives iff it transitively feeds some IO node.
func PruneOrphans(g *graph.CompileGraph) (removed int) {
	visited := make(map[graph.NodeID]bool)
	var queue []graph.NodeID

	for _, id := range g.NodeIDs() {
		if !g.Node(id).Removable() {
			visited[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, eid := range g.InEdges(id) {
			src := g.Edge(eid).Source
			if !visited[src] {
				visited[src] = true
				queue = append(queue, src)
			}
		}
	}

	for _, id := range g.NodeIDs() {
		if !visited[id] {
			g.RemoveNode(id)
			removed++
		}
	}
	return removed
}
