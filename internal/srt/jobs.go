package srt

import (
	"github.com/preesm/spider2-sub000/internal/brv"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// makeFutureJobs implements spec §4.D step 7: one job per firing of each
// GRAPH-subtype vertex of the reference graph, split into jobs whose
// parameters are already fully resolved (static-ready, safe to transform
// immediately) and jobs still waiting on a configuration actor somewhere
// in their parameter chain (dynamic-gated, transformed once that actor's
// firing completes at run time).
func makeFutureJobs(job *Job, srdag *pisdf.Graph, clones map[int]cloneBlock, reps brv.Result) (static, dynamic []*Job) {
	for _, v := range job.Ref.LiveVertices() {
		if v.Subtype != pisdf.GRAPH || v.Subgraph == nil {
			continue
		}
		block, ok := clones[v.Index]
		if !ok {
			continue
		}
		base, resolved := buildSnapshot(v, job.Params)
		for i, placeholder := range block.vertices {
			child := &Job{
				Ref:          v.Subgraph,
				Firing:       int64(i),
				Params:       copySnapshot(base),
				Placeholder:  placeholder,
				OwnerVertex:  v,
				ParentParams: job.Params,
			}
			if resolved {
				static = append(static, child)
			} else {
				dynamic = append(dynamic, child)
			}
		}
	}
	return static, dynamic
}

// ResolveFutureJob re-attempts to resolve a dynamic-gated job's parameter
// snapshot now that its parent's parameters may have changed since the
// job was created (spec §4.H step 4: "GRT ... un-gates dynamic job stack
// possibly re-running SRT"). The top-level job (OwnerVertex == nil) is
// always resolved. Callers should replace j.Params with the returned
// snapshot only when resolved is true.
func ResolveFutureJob(j *Job) (snapshot pisdf.Snapshot, resolved bool) {
	if j.OwnerVertex == nil {
		return j.Params, true
	}
	return buildSnapshot(j.OwnerVertex, j.ParentParams)
}

// buildSnapshot produces the parameter snapshot a GRAPH vertex's subgraph
// evaluates its own rate/delay expressions against, and reports whether
// every parameter it needs to start transforming is already concrete:
// STATIC/STATIC_EXPR values carry over directly (always resolved), each
// INHERITED parameter resolves through v's InputParamPorts (one entry per
// INHERITED parameter of the subgraph, in declaration order) against the
// enclosing job's own parameters, and DYNAMIC parameters resolve only once
// their configuration actor has fired — any one of those not yet
// resolved makes the whole job dynamic-gated (spec §4.D step 7).
func buildSnapshot(v *pisdf.Vertex, parentParams pisdf.Snapshot) (pisdf.Snapshot, bool) {
	sg := v.Subgraph
	snap := make(pisdf.Snapshot, len(sg.Params))
	inherited := 0
	resolved := true
	for _, p := range sg.Params {
		switch p.Type {
		case pisdf.STATIC, pisdf.STATIC_EXPR:
			if val, ok := p.Value(); ok {
				snap[p.Index] = val
			}
		case pisdf.INHERITED:
			var ok bool
			var val float64
			if inherited < len(v.InputParamPorts) {
				val, ok = resolveAgainst(v.InputParamPorts[inherited], parentParams)
			}
			inherited++
			if ok {
				snap[p.Index] = val
			} else {
				resolved = false
			}
		case pisdf.DYNAMIC:
			if val, ok := p.Value(); ok {
				snap[p.Index] = val
			} else {
				resolved = false
			}
			// DYNAMIC_DEPENDANT is left at zero here; the child job's own
			// freezeParams re-evaluates it once the rest of its snapshot is
			// concrete, same as any other hierarchy level's step 1.
		}
	}
	return snap, resolved
}

// resolveAgainst reads p's value from snapshot by stable index first (the
// value as known within the enclosing job's own evaluation context), and
// falls back to p's own resolved value (covering parameters shared by
// reference rather than threaded through a snapshot).
func resolveAgainst(p *pisdf.Param, snapshot pisdf.Snapshot) (float64, bool) {
	if p == nil {
		return 0, false
	}
	if snapshot != nil && p.Index >= 0 && p.Index < len(snapshot) {
		return snapshot[p.Index], true
	}
	return p.Value()
}
