package dot

import (
	"fmt"
	"io"

	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// subtypeColor is the original exporter's vertex-subtype palette
// (PiSDFDOTExporterVisitor.cpp's colors[]), indexed here by Subtype
// rather than the original's VertexType enum ordering.
func subtypeColor(s pisdf.Subtype) string {
	switch s {
	case pisdf.CONFIG:
		return "#ffffccff"
	case pisdf.FORK:
		return "#fabe58ff"
	case pisdf.JOIN:
		return "#aea8d3ff"
	case pisdf.REPEAT:
		return "#fff68fff"
	case pisdf.DUPLICATE:
		return "#e87e04ff"
	case pisdf.TAIL:
		return "#f1e7feff"
	case pisdf.HEAD:
		return "#dcc6e0ff"
	case pisdf.EXTERN_IN, pisdf.INIT:
		return "#c8f7c5ff"
	case pisdf.EXTERN_OUT, pisdf.END:
		return "#ff9478ff"
	case pisdf.INPUT:
		return "#87d37cff"
	case pisdf.OUTPUT:
		return "#ec644bff"
	default:
		return "#eeeeeeff"
	}
}

// WriteGraph renders g (and, recursively, every live GRAPH-subtype
// vertex's subgraph) as a DOT digraph with one dotted cluster per
// hierarchy level, mirroring the original exporter's subgraph-cluster
// nesting.
func WriteGraph(w io.Writer, g *pisdf.Graph) error {
	if _, err := io.WriteString(w, "digraph {\n\trankdir = LR;\n\tranksep = 1;\n\tnodesep = 1;\n"); err != nil {
		return err
	}
	if err := writeGraphBody(w, g, "\t"); err != nil {
		return err
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func writeGraphBody(w io.Writer, g *pisdf.Graph, offset string) error {
	if _, err := fmt.Fprintf(w, "%ssubgraph \"cluster_%s\" {\n", offset, g.Name); err != nil {
		return err
	}
	inner := offset + "\t"
	if _, err := fmt.Fprintf(w, "%slabel=\"%s\";\n%sstyle=dotted;\n%scolor=\"#393c3c\";\n", inner, g.Name, inner, inner); err != nil {
		return err
	}

	for _, v := range g.LiveVertices() {
		if v.Subtype == pisdf.GRAPH {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\"%s\" [shape=box, style=filled, fillcolor=\"%s\", label=\"%s\"];\n",
			inner, vertexPath(v), subtypeColor(v.Subtype), v.Name); err != nil {
			return err
		}
	}
	for _, v := range g.LiveVertices() {
		if v.Subtype == pisdf.GRAPH && v.Subgraph != nil {
			if err := writeGraphBody(w, v.Subgraph, inner); err != nil {
				return err
			}
		}
	}

	for _, e := range g.Edges {
		if e.Src == nil || e.Snk == nil {
			continue
		}
		if e.Delay != nil {
			delayName := fmt.Sprintf("%s_delay", vertexPath(e.Src)+"_"+vertexPath(e.Snk))
			if _, err := fmt.Fprintf(w, "%s\"%s\" [shape=circle, style=filled, fillcolor=\"#393c3c\", label=\"%d\"];\n",
				inner, delayName, e.Delay.Value); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "%s\"%s\" -> \"%s\" [penwidth=3];\n%s\"%s\" -> \"%s\" [penwidth=3];\n",
				inner, vertexPath(e.Src), delayName, inner, delayName, vertexPath(e.Snk)); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\"%s\" -> \"%s\" [penwidth=3, label=\"%d:%d\"];\n",
			inner, vertexPath(e.Src), vertexPath(e.Snk), e.SrcPort, e.SnkPort); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s}\n", offset)
	return err
}

func vertexPath(v *pisdf.Vertex) string {
	if v.Graph == nil {
		return v.Name
	}
	return v.Graph.Name + "_" + v.Name
}
