package srt

import (
	"fmt"
	"math"

	"github.com/preesm/spider2-sub000/internal/brv"
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

const rateEpsilon = 1e-6

// replaceInterfaces implements spec §4.D step 2: for each input interface
// i, let e be the outer edge feeding i (already linked by the parent job,
// reachable via job.Placeholder) and v its single inner neighbor. The
// interface is transparent iff r(v)*innerRate == outerRate; transparent
// interfaces dissolve (the inner side links straight to the outer
// producer/consumer); otherwise a REPEAT (input) or TAIL (output) adapter
// is spliced in, modeled as a single bulk-rate relay firing whose output
// (REPEAT) / input (TAIL) declares the full r(v)*innerRate total, leaving
// the fan-out/fan-in itself to the generic FORK/JOIN linkage of step 4.
// The symmetric treatment applies to output interfaces.
func replaceInterfaces(job *Job, srdag *pisdf.Graph, reps brv.Result, clones map[int]cloneBlock) diag.Diagnostics {
	var ds diag.Diagnostics

	for pos, iface := range job.Ref.Inputs {
		if len(iface.OutPorts) == 0 || iface.OutPorts[0] == nil {
			continue // unconnected interface: no linkage needed
		}
		innerEdge := iface.OutPorts[0]
		innerVertex := innerEdge.Snk
		innerRate := evalRate(innerEdge.SnkRate, job.Params)
		innerReps := reps[innerVertex.Index]

		if job.Placeholder == nil || pos >= len(job.Placeholder.InPorts) || job.Placeholder.InPorts[pos] == nil {
			ds = append(ds, diag.New(diag.Error, diag.Model, iface.Name,
				"unresolved top-level input interface", "an input interface has no enclosing outer edge to resolve against"))
			continue
		}
		outerEdge := job.Placeholder.InPorts[pos]
		outerVertex, outerPort := outerEdge.Src, outerEdge.SrcPort
		outerRate := literalRate(outerEdge.SrcRate)

		if math.Abs(float64(innerReps)*innerRate-outerRate) < rateEpsilon {
			// Transparent: free the outer vertex's port (its edge to the
			// placeholder is superseded by step-4 linkage) and resolve the
			// interface directly to the outer producer.
			detachEdge(srdag, outerEdge)
			rate := outerRate
			clones[iface.Index] = cloneBlock{vertices: []*pisdf.Vertex{outerVertex}, port: outerPort, rate: &rate}
			continue
		}

		repeatV, rds := srdag.AddVertex(fmt.Sprintf("%s_repeat", iface.Name), pisdf.REPEAT, 1, 1)
		if rds != nil {
			ds = append(ds, rds...)
			continue
		}
		detachEdge(srdag, outerEdge)
		outerEdge.Snk, outerEdge.SnkPort = repeatV, 0
		repeatV.InPorts[0] = outerEdge
		srdag.Edges = append(srdag.Edges, outerEdge)

		bulk := float64(innerReps) * innerRate
		clones[iface.Index] = cloneBlock{vertices: []*pisdf.Vertex{repeatV}, port: -1, rate: &bulk}
	}

	for pos, iface := range job.Ref.Outputs {
		if len(iface.InPorts) == 0 || iface.InPorts[0] == nil {
			continue
		}
		innerEdge := iface.InPorts[0]
		innerVertex := innerEdge.Src
		innerRate := evalRate(innerEdge.SrcRate, job.Params)
		innerReps := reps[innerVertex.Index]

		if job.Placeholder == nil || pos >= len(job.Placeholder.OutPorts) || job.Placeholder.OutPorts[pos] == nil {
			ds = append(ds, diag.New(diag.Error, diag.Model, iface.Name,
				"unresolved top-level output interface", "an output interface has no enclosing outer edge to resolve against"))
			continue
		}
		outerEdge := job.Placeholder.OutPorts[pos]
		outerVertex, outerPort := outerEdge.Snk, outerEdge.SnkPort
		outerRate := literalRate(outerEdge.SnkRate)

		if math.Abs(float64(innerReps)*innerRate-outerRate) < rateEpsilon {
			detachEdge(srdag, outerEdge)
			rate := outerRate
			clones[iface.Index] = cloneBlock{vertices: []*pisdf.Vertex{outerVertex}, port: outerPort, rate: &rate}
			continue
		}

		tailV, tds := srdag.AddVertex(fmt.Sprintf("%s_tail", iface.Name), pisdf.TAIL, 1, 1)
		if tds != nil {
			ds = append(ds, tds...)
			continue
		}
		detachEdge(srdag, outerEdge)
		outerEdge.Src, outerEdge.SrcPort = tailV, 0
		tailV.OutPorts[0] = outerEdge
		srdag.Edges = append(srdag.Edges, outerEdge)

		bulk := float64(innerReps) * innerRate
		clones[iface.Index] = cloneBlock{vertices: []*pisdf.Vertex{tailV}, port: -1, rate: &bulk}
	}

	return ds
}

func literalRate(e *expr.Expression) float64 {
	if e.IsStatic() {
		return e.Value()
	}
	return 0
}

// detachEdge removes e from g's edge list and frees the port slots it
// occupied, used when an interface dissolves or an adapter vertex is
// spliced in place of an existing edge endpoint.
func detachEdge(g *pisdf.Graph, e *pisdf.Edge) {
	if e.Src != nil && e.SrcPort >= 0 && e.SrcPort < len(e.Src.OutPorts) && e.Src.OutPorts[e.SrcPort] == e {
		e.Src.OutPorts[e.SrcPort] = nil
	}
	if e.Snk != nil && e.SnkPort >= 0 && e.SnkPort < len(e.Snk.InPorts) && e.Snk.InPorts[e.SnkPort] == e {
		e.Snk.InPorts[e.SnkPort] = nil
	}
	for i, ge := range g.Edges {
		if ge == e {
			g.Edges = append(g.Edges[:i], g.Edges[i+1:]...)
			break
		}
	}
}
