package pisdf

import (
	"fmt"

	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
)

// Pass is one normalization rewrite applied to a graph (spec §4.B:
// broadcast rewrite, dynamic-subgraph splitting). The closed set of
// passes is fixed and run in order by Normalize.
type Pass interface {
	Apply(g *Graph) diag.Diagnostics
}

// Normalize runs the fixed pass pipeline (broadcast rewrite, then
// dynamic-subgraph splitting) over g and recursively over every subgraph,
// post-order (spec §4.B: "Applied recursively over subgraphs").
func Normalize(g *Graph) diag.Diagnostics {
	var ds diag.Diagnostics
	for _, v := range g.LiveVertices() {
		if v.Subtype == GRAPH && v.Subgraph != nil {
			ds = append(ds, Normalize(v.Subgraph)...)
		}
	}
	ds = append(ds, broadcastRewrite{}.Apply(g)...)
	ds = append(ds, dynamicSplit{}.Apply(g)...)
	return ds
}

// broadcastRewrite detects DUPLICATE vertices whose output rates differ
// from their input rate and rewrites them to an equivalent
// REPEAT -> FORK pair, preserving rate balance (spec §4.B). Applying it
// twice is a no-op: once rewritten, the vertex is no longer a DUPLICATE,
// so the second pass finds nothing to do.
type broadcastRewrite struct{}

func (broadcastRewrite) Apply(g *Graph) diag.Diagnostics {
	var ds diag.Diagnostics
	for _, v := range g.LiveVertices() {
		if v.Subtype != DUPLICATE {
			continue
		}
		if len(v.InPorts) != 1 || v.InPorts[0] == nil {
			continue
		}
		inEdge := v.InPorts[0]
		if !inEdge.SnkRate.IsStatic() {
			continue // dynamic rate: cannot decide at normalize time, left for SRT
		}
		inRate := inEdge.SnkRate.Value()

		allStatic := true
		sumOut := 0.0
		outRates := make([]float64, len(v.OutPorts))
		for i, oe := range v.OutPorts {
			if oe == nil || !oe.SrcRate.IsStatic() {
				allStatic = false
				break
			}
			outRates[i] = oe.SrcRate.Value()
			sumOut += outRates[i]
		}
		if !allStatic {
			continue
		}
		uniform := true
		for _, r := range outRates {
			if r != inRate {
				uniform = false
				break
			}
		}
		if uniform {
			continue // a true broadcast: stays DUPLICATE
		}

		repeatV, _ := g.AddVertex(fmt.Sprintf("%s_repeat", v.Name), REPEAT, 1, 1)
		forkV, _ := g.AddVertex(fmt.Sprintf("%s_fork", v.Name), FORK, 1, len(v.OutPorts))

		inEdge.Snk, inEdge.SnkPort = repeatV, 0
		repeatV.InPorts[0] = inEdge

		for i, oe := range v.OutPorts {
			oe.Src, oe.SrcPort = forkV, i
			forkV.OutPorts[i] = oe
		}

		mid := expr.NewLiteralFloat(sumOut)
		if edge, edgeDs := g.AddEdge(repeatV, 0, mid, forkV, 0, mid); edgeDs != nil {
			ds = append(ds, edgeDs...)
		} else {
			_ = edge
		}

		g.RemoveVertex(v)
	}
	return ds
}

// dynamicSplit implements the dynamic-subgraph splitting of spec §4.B: a
// subgraph containing both config actors and other actors is rewritten
// into an outer "init" half (the config actors, staying in g) and an
// inner "run" subgraph (everything else), wrapped as a new GRAPH vertex
// of g. This guarantees configuration firings complete before the run
// subgraph's repetition vector is computed (spec §4.B).
type dynamicSplit struct{}

func (dynamicSplit) Apply(g *Graph) diag.Diagnostics {
	if len(g.ConfigActors) == 0 {
		return nil
	}
	var nonConfig []*Vertex
	for _, v := range g.LiveVertices() {
		if v.Subtype == CONFIG || v.Subtype.IsInterface() {
			continue
		}
		nonConfig = append(nonConfig, v)
	}
	if len(nonConfig) == 0 {
		return nil // only configuration actors: no run-phase jobs (spec §8 boundary behavior)
	}

	runG := NewGraph(g.Name+"_run", Counts{Actors: len(nonConfig)})
	runVertex, _ := g.AddVertex(g.Name+"_run", GRAPH, 0, 0)
	runVertex.Subgraph = runG
	runG.Parent = g
	runG.OwnerVertex = runVertex

	moved := make(map[*Vertex]*Vertex, len(nonConfig)) // original -> clone in runG
	for _, v := range nonConfig {
		clone, _ := runG.AddVertex(v.Name, v.Subtype, len(v.InPorts), len(v.OutPorts))
		clone.Subgraph = v.Subgraph
		clone.KernelID = v.KernelID
		moved[v] = clone
		g.RemoveVertex(v)
	}

	// Re-project every non-INHERITED parameter of g onto runG as
	// INHERITED (spec §4.B).
	for _, p := range g.Params {
		if p.Type == INHERITED {
			continue
		}
		runG.AddInheritedParam(p.Name, p)
	}

	var ds diag.Diagnostics
	inPortCursor := 0
	outPortCursor := 0

	for _, e := range g.Edges {
		if e.Src == nil || e.Snk == nil {
			continue
		}
		srcClone, srcMoved := moved[e.Src]
		snkClone, snkMoved := moved[e.Snk]

		switch {
		case srcMoved && snkMoved:
			// Entirely internal to the run subgraph: rebuild inside runG.
			if ne, nds := runG.AddEdge(srcClone, e.SrcPort, e.SrcRate, snkClone, e.SnkPort, e.SnkRate); nds != nil {
				ds = append(ds, nds...)
			} else {
				_ = ne
			}

		case !srcMoved && snkMoved:
			// Config-actor output (or other init-half vertex) feeding a
			// moved vertex: splice a new input interface on runG.
			iface, _ := runG.AddInputInterface(fmt.Sprintf("in_%d", inPortCursor))
			runVertex.InPorts = append(runVertex.InPorts, nil)
			if ne, nds := runG.AddEdge(iface, 0, e.SrcRate, snkClone, e.SnkPort, e.SnkRate); nds != nil {
				ds = append(ds, nds...)
			} else {
				_ = ne
			}
			e.Snk, e.SnkPort = runVertex, inPortCursor
			runVertex.InPorts[inPortCursor] = e
			inPortCursor++

		case srcMoved && !snkMoved:
			// A moved vertex feeding g's own boundary (or a non-moved
			// sink): splice a new output interface on runG.
			iface, _ := runG.AddOutputInterface(fmt.Sprintf("out_%d", outPortCursor))
			runVertex.OutPorts = append(runVertex.OutPorts, nil)
			if ne, nds := runG.AddEdge(srcClone, e.SrcPort, e.SrcRate, iface, 0, e.SnkRate); nds != nil {
				ds = append(ds, nds...)
			} else {
				_ = ne
			}
			e.Src, e.SrcPort = runVertex, outPortCursor
			runVertex.OutPorts[outPortCursor] = e
			outPortCursor++

		default:
			// Neither endpoint moved: untouched, stays in g as-is.
		}
	}

	return ds
}
