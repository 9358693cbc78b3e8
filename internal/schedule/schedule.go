package schedule

import (
	"sort"

	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// Schedule is the scheduler's output: every firing with its resolved
// PE/start/end, and the totally ordered per-PE task list (spec §4.E).
type Schedule struct {
	Firings []*Firing
	PETasks map[*platform.PE][]*Firing
}

// Run schedules every live, non-interface vertex of srdag as one firing
// (internal/srt has already flattened the graph to single-rate, so one
// clone vertex is one firing), using policy to pick the next ready
// firing and mp to choose its PE. allowedPEs projects spec §6's
// per-vertex mappable-PE declaration.
func Run(
	srdag *pisdf.Graph,
	allowedPEs func(v *pisdf.Vertex) []*platform.PE,
	exec ExecTimeFunc,
	comm CommCostFunc,
	policy Policy,
	mp Mapper,
) (*Schedule, diag.Diagnostics) {
	var ds diag.Diagnostics

	byVertex := make(map[int]*Firing)
	var all []*Firing
	for _, v := range srdag.LiveVertices() {
		if v.Subtype.IsInterface() {
			continue
		}
		f := &Firing{Vertex: v, AllowedPEs: allowedPEs(v)}
		if len(f.AllowedPEs) == 0 {
			ds = append(ds, diag.New(diag.Error, diag.Construction, v.Name,
				"empty allowed-PE set", "every firing must be mappable to at least one processing element"))
		}
		byVertex[v.Index] = f
		all = append(all, f)
	}
	if ds.HasErrors() {
		return nil, ds
	}

	for _, e := range srdag.Edges {
		if e.Src == nil || e.Snk == nil {
			continue
		}
		src, srcOk := byVertex[e.Src.Index]
		snk, snkOk := byVertex[e.Snk.Index]
		if !srcOk || !snkOk || src == snk {
			continue
		}
		snk.Deps = append(snk.Deps, src)
	}

	computeDepths(all)
	computeCriticalPath(all, exec)

	pending := make(map[*Firing]int, len(all))
	for _, f := range all {
		pending[f] = len(f.Deps)
	}

	var ready []*Firing
	nextOrder := 0
	release := func(f *Firing) {
		f.order = nextOrder
		nextOrder++
		ready = append(ready, f)
	}
	for _, f := range all {
		if pending[f] == 0 {
			release(f)
		}
	}

	successors := make(map[*Firing][]*Firing)
	for _, f := range all {
		for _, dep := range f.Deps {
			successors[dep] = append(successors[dep], f)
		}
	}

	peAvailable := make(map[*platform.PE]int64)
	scheduled := make(map[*Firing]bool, len(all))
	sched := &Schedule{PETasks: make(map[*platform.PE][]*Firing)}

	for len(sched.Firings) < len(all) {
		if len(ready) == 0 {
			return nil, diag.Diagnostics{diag.New(diag.Error, diag.Model, "",
				"firing DAG has a cycle", "no ready firing remains but the DAG is not fully scheduled")}
		}
		pick := policy.Pick(ready)
		filtered := ready[:0]
		for _, f := range ready {
			if f != pick {
				filtered = append(filtered, f)
			}
		}
		ready = filtered

		candidates := make([]Candidate, len(pick.AllowedPEs))
		for i, pe := range pick.AllowedPEs {
			candidates[i] = Candidate{PE: pe, AvailableAfter: peAvailable[pe]}
		}
		pe, mds := mp.Map(pick, candidates, exec, comm)
		ds = append(ds, mds...)
		if pe == nil {
			continue
		}

		// start = max(PE.availableAfter, max over deps of dep.endTime +
		// communicationCost(dep, firing)) (spec §4.E).
		start := peAvailable[pe]
		for _, dep := range pick.Deps {
			if c := dep.End + comm(dep, pick); c > start {
				start = c
			}
		}
		end := start + exec(pick, pe)

		pick.PE = pe
		pick.Start = start
		pick.End = end
		peAvailable[pe] = end

		sched.Firings = append(sched.Firings, pick)
		sched.PETasks[pe] = append(sched.PETasks[pe], pick)
		scheduled[pick] = true

		for _, maybe := range successors[pick] {
			pending[maybe]--
			if pending[maybe] == 0 {
				release(maybe)
			}
		}
	}
	if ds.HasErrors() {
		return nil, ds
	}

	for _, tasks := range sched.PETasks {
		sort.Slice(tasks, func(i, j int) bool { return tasks[i].Start < tasks[j].Start })
	}
	return sched, nil
}

func computeDepths(all []*Firing) {
	memo := make(map[*Firing]int, len(all))
	var depth func(f *Firing) int
	depth = func(f *Firing) int {
		if d, ok := memo[f]; ok {
			return d
		}
		d := 0
		for _, dep := range f.Deps {
			if dd := depth(dep) + 1; dd > d {
				d = dd
			}
		}
		memo[f] = d
		f.depth = d
		return d
	}
	for _, f := range all {
		depth(f)
	}
}

// computeCriticalPath computes, per firing, the longest remaining
// execution-time path to a sink over the reversed dependency graph. The
// true mapped PE isn't known until mapping time, so each firing's own
// cost is approximated using its first allowed PE; only the relative
// ordering this heuristic induces matters (spec §4.E: "tie-break by
// descending critical-path-remaining").
func computeCriticalPath(all []*Firing, exec ExecTimeFunc) {
	successors := make(map[*Firing][]*Firing, len(all))
	for _, f := range all {
		for _, dep := range f.Deps {
			successors[dep] = append(successors[dep], f)
		}
	}
	memo := make(map[*Firing]int64, len(all))
	var remaining func(f *Firing) int64
	remaining = func(f *Firing) int64 {
		if v, ok := memo[f]; ok {
			return v
		}
		best := int64(0)
		for _, s := range successors[f] {
			if r := remaining(s); r > best {
				best = r
			}
		}
		own := int64(0)
		if len(f.AllowedPEs) > 0 {
			own = exec(f, f.AllowedPEs[0])
		}
		v := best + own
		memo[f] = v
		f.critical = v
		return v
	}
	for _, f := range all {
		remaining(f)
	}
}
