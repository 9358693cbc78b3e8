package srt

import (
	"fmt"
	"math"

	"github.com/preesm/spider2-sub000/internal/brv"
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// cloneBlock is the set of single-rate firings standing in for one vertex
// (or resolved interface) of the reference graph, in firing order. port and
// rate override the referencing edge's own port/rate when set (used by
// replaceInterfaces to pin a resolved interface to the outer producer's
// actual port, or to an adapter's bulk rate); port == -1 / rate == nil mean
// "use whatever the edge itself declares".
type cloneBlock struct {
	vertices []*pisdf.Vertex
	port     int
	rate     *float64
}

// Transform lowers one hierarchy level (spec §4.D, steps 1-8), appending
// firings and edges to the shared single-rate DAG srdag, and returns the
// future jobs for the reference graph's own subgraph vertices split into
// the static-ready and dynamic-gated stacks (spec §4.D step 7).
func Transform(job *Job, srdag *pisdf.Graph) (static, dynamic []*Job, ds diag.Diagnostics) {
	// Step 1: parameter freezing. DYNAMIC_DEPENDANT parameters are
	// re-evaluated now that every earlier parameter's value is concrete;
	// DYNAMIC (configuration-actor-produced) parameters stay symbolic
	// until their producing firing completes at run time.
	freezeParams(job)

	reps, repDs := brv.Solve(job.Ref, job.Params)
	ds = append(ds, repDs...)
	if ds.HasErrors() {
		return nil, nil, ds
	}

	clones := make(map[int]cloneBlock, len(job.Ref.Vertices))

	// Step 2: interface replacement.
	ifaceDs := replaceInterfaces(job, srdag, reps, clones)
	ds = append(ds, ifaceDs...)
	if ds.HasErrors() {
		return nil, nil, ds
	}

	// Step 3: vertex cloning.
	for _, v := range job.Ref.LiveVertices() {
		if v.Subtype.IsInterface() {
			continue // already resolved in step 2
		}
		r, ok := reps[v.Index]
		if !ok {
			r = 0
		}
		block := make([]*pisdf.Vertex, 0, r)
		for i := int64(0); i < r; i++ {
			clone, cds := srdag.AddVertex(fmt.Sprintf("%s_%d", v.Name, i), v.Subtype, len(v.InPorts), len(v.OutPorts))
			if cds != nil {
				ds = append(ds, cds...)
				continue
			}
			clone.Subgraph = v.Subgraph
			clone.KernelID = v.KernelID
			block = append(block, clone)
		}
		clones[v.Index] = cloneBlock{vertices: block, port: -1}
	}
	if ds.HasErrors() {
		return nil, nil, ds
	}

	// Step 7 preparation happens before step 4 in the original
	// implementation (future jobs only need parameter copies, not the
	// linked edges), matching the reference order exactly.
	static, dynamic = makeFutureJobs(job, srdag, clones, reps)

	// Step 4/5: edge linkage, with null-edge handling folded in.
	for _, e := range job.Ref.Edges {
		if e.Src == nil || e.Snk == nil {
			continue
		}
		lds := linkEdge(job, srdag, clones, e)
		ds = append(ds, lds...)
	}
	if ds.HasErrors() {
		return nil, nil, ds
	}

	// Step 8: instance removal.
	if job.Placeholder != nil {
		srdag.RemoveVertex(job.Placeholder)
	}

	return static, dynamic, ds
}

func freezeParams(job *Job) {
	if job.Params == nil {
		return
	}
	for _, p := range job.Ref.Params {
		if p.Type != pisdf.DYNAMIC_DEPENDANT || p.Expr == nil {
			continue
		}
		if v, err := p.Expr.Evaluate(job.Params); err == nil {
			if p.Index < len(job.Params) {
				job.Params[p.Index] = v
			}
		}
	}
}

func evalRate(e *expr.Expression, params pisdf.Snapshot) float64 {
	if e.IsStatic() {
		return e.Value()
	}
	v, err := e.Evaluate(params)
	if err != nil {
		return math.NaN()
	}
	return v
}
