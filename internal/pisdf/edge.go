package pisdf

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
)

// Edge connects (source vertex, source port) to (sink vertex, sink port),
// carries source/sink rate expressions evaluated against the owning
// graph's parameters, and may carry a Delay (spec §3, "Edge").
type Edge struct {
	Index int
	Graph *Graph

	Src     *Vertex
	SrcPort int
	Snk     *Vertex
	SnkPort int

	SrcRate *expr.Expression
	SnkRate *expr.Expression

	Delay *Delay
}

// AddEdge connects srcPort of src to snkPort of snk, with the given
// source/sink rate expressions. Invariants enforced: port indices in
// range, each port connected at most once (spec §3, "every declared port
// has exactly one edge").
func (g *Graph) AddEdge(src *Vertex, srcPort int, srcRate *expr.Expression, snk *Vertex, snkPort int, snkRate *expr.Expression) (*Edge, diag.Diagnostics) {
	if src == nil || snk == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "edge endpoint is nil", "both source and sink vertices must exist")}
	}
	if srcPort < 0 || srcPort >= len(src.OutPorts) {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, src.Name, "output port index out of range", "")}
	}
	if snkPort < 0 || snkPort >= len(snk.InPorts) {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, snk.Name, "input port index out of range", "")}
	}
	if src.OutPorts[srcPort] != nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, src.Name, "duplicate output port", "")}
	}
	if snk.InPorts[snkPort] != nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, snk.Name, "duplicate input port", "")}
	}
	e := &Edge{
		Index:   len(g.Edges),
		Graph:   g,
		Src:     src,
		SrcPort: srcPort,
		Snk:     snk,
		SnkPort: snkPort,
		SrcRate: srcRate,
		SnkRate: snkRate,
	}
	src.OutPorts[srcPort] = e
	snk.InPorts[snkPort] = e
	g.Edges = append(g.Edges, e)
	return e, nil
}

// IsSelfLoop reports whether the edge's source and sink are the same
// vertex (spec §4.D: "Self-loops without a delay are a construction
// error").
func (e *Edge) IsSelfLoop() bool { return e.Src == e.Snk }
