package srt

import (
	"github.com/mitchellh/copystructure"

	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// Job is one "transformation job" (spec §4.D): a subgraph reference, the
// firing index of its enclosing instance, and the resolved parameter
// snapshot to evaluate its rate/delay expressions against.
type Job struct {
	Ref    *pisdf.Graph
	Firing int64
	Params pisdf.Snapshot

	// Placeholder is the GRAPH-subtype clone vertex in the shared
	// single-rate DAG standing in for this job's firing, already wired by
	// the parent job's own edge linkage; nil for the top-level job.
	Placeholder *pisdf.Vertex

	// OwnerVertex is the GRAPH-subtype vertex of the parent job's
	// reference graph this job was spawned from, and ParentParams is the
	// parent job's own (live, mutable) parameter snapshot. Both are nil
	// for the top-level job. A coordinator re-attempting a dynamic-gated
	// job uses them with ResolveFutureJob once a configuration actor
	// feeding ParentParams has completed (spec §4.H step 4).
	OwnerVertex  *pisdf.Vertex
	ParentParams pisdf.Snapshot
}

// copySnapshot deep-copies a parameter snapshot via copystructure, used
// when producing a dynamic future job whose parameters must diverge
// independently from its sibling firings (spec §4.D step 7: "dynamic and
// dynamic-dependent parameters are duplicated").
func copySnapshot(s pisdf.Snapshot) pisdf.Snapshot {
	if s == nil {
		return nil
	}
	copied, err := copystructure.Copy([]float64(s))
	if err != nil {
		// []float64 copying cannot fail; fall back defensively.
		out := make(pisdf.Snapshot, len(s))
		copy(out, s)
		return out
	}
	return pisdf.Snapshot(copied.([]float64))
}
