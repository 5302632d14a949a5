package graph

import (
	"fmt"
	"io"
)

// WriteDOT renders the graph as a Graphviz DOT document for debugging
// (§12.2). Compile does not call it, so the export_dot_graph,
// print_after_all and print_before_backend options of §6.3 produce no DOT
// output. Node labels carry the type and current state; edge labels carry
// the link type and signal-strength loss.
func WriteDOT(w io.Writer, g *CompileGraph, title string) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n", title); err != nil {
		return err
	}
	for _, id := range g.NodeIDs() {
		n := g.Node(id)
		label := fmt.Sprintf("%s\\npowered=%v ss=%d", n.Type.Kind, n.State.Powered, n.State.OutputStrength)
		shape := "ellipse"
		if n.IsInput {
			shape = "box"
		} else if n.IsOutput {
			shape = "doublecircle"
		}
		if _, err := fmt.Fprintf(w, "  n%d [label=%q shape=%s];\n", id, label, shape); err != nil {
			return err
		}
	}
	for _, id := range g.EdgeIDs() {
		e := g.Edge(id)
		style := "solid"
		if e.Link.Type == LinkSide {
			style = "dashed"
		}
		if _, err := fmt.Fprintf(w, "  n%d -> n%d [label=%q style=%s];\n", e.Source, e.Target, fmt.Sprintf("ss=%d", e.Link.SS), style); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}
