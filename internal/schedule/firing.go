package schedule

import (
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// Firing is one scheduled instance of a firing-DAG vertex (spec §4.E:
// "Schedules are keyed by firing. Each firing records: mapped PE, start
// time, end time, the byte size of each of its output FIFOs, and the
// list of dependencies").
type Firing struct {
	Vertex      *pisdf.Vertex
	AllowedPEs  []*platform.PE
	PE          *platform.PE
	Start, End  int64
	OutputBytes []int64
	Deps        []*Firing

	depth    int
	critical int64
	order    int
}

// Depth is the firing's topological depth (longest dependency chain
// length), used by ListPolicy.
func (f *Firing) Depth() int { return f.depth }

// CriticalPathRemaining is the longest remaining execution-time path
// from this firing to a sink, used by ListPolicy's tie-break.
func (f *Firing) CriticalPathRemaining() int64 { return f.critical }
