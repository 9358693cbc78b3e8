package mapper

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/platform"
	"github.com/preesm/spider2-sub000/internal/schedule"
)

func noCandidates(f *schedule.Firing) diag.Diagnostics {
	subject := ""
	if f.Vertex != nil {
		subject = f.Vertex.Name
	}
	return diag.Diagnostics{diag.New(diag.Error, diag.Construction, subject,
		"empty allowed-PE set", "a firing must be mappable to at least one processing element")}
}

// BestFit chooses the candidate PE minimizing the firing's projected end
// time: its queue tail plus any wait on dependency completion, plus the
// firing's own estimated execution time on that PE (spec §4.F: "BEST_FIT
// minimizes the firing's projected end time including queue tail and
// communication cost").
type BestFit struct{}

func (BestFit) Map(f *schedule.Firing, candidates []schedule.Candidate, exec schedule.ExecTimeFunc, comm schedule.CommCostFunc) (*platform.PE, diag.Diagnostics) {
	if len(candidates) == 0 {
		return nil, noCandidates(f)
	}
	depReady := int64(0)
	for _, dep := range f.Deps {
		if c := dep.End + comm(dep, f); c > depReady {
			depReady = c
		}
	}

	best := candidates[0]
	bestEnd := projectedEnd(f, best, depReady, exec)
	for _, c := range candidates[1:] {
		if end := projectedEnd(f, c, depReady, exec); end < bestEnd {
			best, bestEnd = c, end
		}
	}
	return best.PE, nil
}

func projectedEnd(f *schedule.Firing, c schedule.Candidate, depReady int64, exec schedule.ExecTimeFunc) int64 {
	start := c.AvailableAfter
	if depReady > start {
		start = depReady
	}
	return start + exec(f, c.PE)
}

// RoundRobin cycles through a firing's allowed PEs in declaration order,
// advancing one position per call (spec §4.F: "ROUND_ROBIN cycles the
// allowed PEs"). A single RoundRobin instance keeps the cursor across
// every firing it maps, matching the teacher's convention of a stateful
// policy object rather than a free function.
type RoundRobin struct {
	cursor int
}

func (rr *RoundRobin) Map(f *schedule.Firing, candidates []schedule.Candidate, _ schedule.ExecTimeFunc, _ schedule.CommCostFunc) (*platform.PE, diag.Diagnostics) {
	if len(candidates) == 0 {
		return nil, noCandidates(f)
	}
	pick := candidates[rr.cursor%len(candidates)].PE
	rr.cursor++
	return pick, nil
}
