package runtime

import (
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
	"github.com/preesm/spider2-sub000/internal/schedule"
)

// edgeBytes reads an edge's frozen source rate as a byte count. By the
// time a firing DAG reaches the scheduler every rate is a concrete,
// already-folded literal (spec §4.D: single-rate transformation), so
// this never needs live parameter evaluation.
func edgeBytes(e *pisdf.Edge) int64 {
	if e == nil || e.SrcRate == nil || !e.SrcRate.IsStatic() {
		return 0
	}
	v := e.SrcRate.Value()
	if v < 0 {
		return 0
	}
	return int64(v)
}

// estimateExecTime approximates a firing's execution time by the total
// number of bytes it produces (or, for a sink firing, consumes). This is
// a placeholder cost model: the engine has no profiling data source for
// user kernels (out of scope per spec §6, which only contracts the
// kernel's call signature, not a timing oracle), so byte volume stands
// in for work, which is enough to give the LIST policy's depth/critical-
// path heuristics a non-degenerate signal to rank on.
func estimateExecTime(f *schedule.Firing, _ *platform.PE) int64 {
	var total int64
	for _, e := range f.Vertex.OutPorts {
		total += edgeBytes(e)
	}
	if total == 0 {
		for _, e := range f.Vertex.InPorts {
			total += edgeBytes(e)
		}
	}
	if total <= 0 {
		return 1
	}
	return total
}

// estimateCommCost approximates the cost of waiting on dep's output by
// the same byte-volume proxy, deliberately PE-independent: spec §4.E's
// CommCostFunc signature takes (dep, firing) only, not a candidate PE,
// so every candidate sees the same estimate and BEST_FIT's comparison
// reduces to queue-tail availability, matching a platform where
// cross-PE transfer cost is dominated by volume rather than topology.
func estimateCommCost(dep, _ *schedule.Firing) int64 {
	var total int64
	for _, e := range dep.Vertex.OutPorts {
		total += edgeBytes(e)
	}
	return total
}
