package schedule

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// Candidate is one allowed PE's current queue-tail availability, as
// observed by the scheduler at the moment a firing is ready to be
// mapped.
type Candidate struct {
	PE             *platform.PE
	AvailableAfter int64
}

// ExecTimeFunc estimates firing f's execution time if placed on pe.
type ExecTimeFunc func(f *Firing, pe *platform.PE) int64

// CommCostFunc estimates the communication cost f incurs waiting on a
// completed dependency dep.
type CommCostFunc func(dep, f *Firing) int64

// Mapper chooses the PE a ready firing executes on (spec §4.F). The
// scheduler calls it once per firing immediately before placing it,
// passing the firing's allowed PEs' current queue-tail availability;
// internal/mapper's BEST_FIT/ROUND_ROBIN implement this interface
// without schedule importing mapper, avoiding a cycle.
type Mapper interface {
	Map(f *Firing, candidates []Candidate, exec ExecTimeFunc, comm CommCostFunc) (*platform.PE, diag.Diagnostics)
}
