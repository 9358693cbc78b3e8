package config

import (
	"github.com/hashicorp/go-hclog"

	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/fifo"
	"github.com/preesm/spider2-sub000/internal/mapper"
	"github.com/preesm/spider2-sub000/internal/schedule"
)

// RunMode selects whether a run executes the graph once or loops it a
// fixed number of times (spec §6: "runMode ∈ {ONCE, LOOP}").
type RunMode int

const (
	Once RunMode = iota
	Loop
)

func (m RunMode) String() string {
	if m == Loop {
		return "LOOP"
	}
	return "ONCE"
}

// RuntimeType names the runtime variant (spec §6: "runtimeType ∈
// {SRDAG_BASED, PISDF_BASED}"). internal/runtime.Coordinator does not
// read it: whatever its value, every iteration re-derives the firing DAG
// from the PiSDF model.
type RuntimeType int

const (
	SRDAGBased RuntimeType = iota
	PiSDFBased
)

func (t RuntimeType) String() string {
	if t == PiSDFBased {
		return "PISDF_BASED"
	}
	return "SRDAG_BASED"
}

// ExecutionPolicy names when a config actor's dynamic-gated jobs are
// transformed (spec §6: "executionPolicy ∈ {JIT, DELAYED}").
// internal/runtime.Coordinator does not read it: whatever its value,
// dynamic-gated jobs are re-attempted after every firing of the current
// wave has completed.
type ExecutionPolicy int

const (
	JIT ExecutionPolicy = iota
	Delayed
)

func (p ExecutionPolicy) String() string {
	if p == Delayed {
		return "DELAYED"
	}
	return "JIT"
}

// SchedulingPolicy selects the spec §4.E firing-selection heuristic.
type SchedulingPolicy int

const (
	List SchedulingPolicy = iota
	Greedy
)

func (p SchedulingPolicy) String() string {
	if p == Greedy {
		return "GREEDY"
	}
	return "LIST"
}

// MappingPolicy selects the spec §4.F PE-choice heuristic.
type MappingPolicy int

const (
	BestFit MappingPolicy = iota
	RoundRobin
)

func (p MappingPolicy) String() string {
	if p == RoundRobin {
		return "ROUND_ROBIN"
	}
	return "BEST_FIT"
}

// FIFOAllocator selects the spec §4.G allocation/synchronization mode.
type FIFOAllocator int

const (
	Default FIFOAllocator = iota
	DefaultNoSync
)

func (a FIFOAllocator) String() string {
	if a == DefaultNoSync {
		return "DEFAULT_NOSYNC"
	}
	return "DEFAULT"
}

// RunConfig is the full set of knobs a host passes to internal/runtime
// (spec §6, "Runtime config"). The zero value is ONCE / SRDAG_BASED / JIT
// / LIST / BEST_FIT / DEFAULT, Gantt export disabled, and a discarding
// logger — a usable, conservative default.
type RunConfig struct {
	RunMode   RunMode
	LoopCount int

	RuntimeType      RuntimeType
	ExecutionPolicy  ExecutionPolicy
	SchedulingPolicy SchedulingPolicy
	MappingPolicy    MappingPolicy
	FIFOAllocator    FIFOAllocator

	GanttExport bool
	Logger      hclog.Logger
}

// Policy adapts SchedulingPolicy to a concrete internal/schedule.Policy.
func (c RunConfig) Policy() schedule.Policy {
	if c.SchedulingPolicy == Greedy {
		return schedule.GreedyPolicy{}
	}
	return schedule.ListPolicy{}
}

// Mapper adapts MappingPolicy to a concrete internal/schedule.Mapper. A
// fresh ROUND_ROBIN instance is returned each call so its cursor starts
// at zero for every run, matching BEST_FIT's own statelessness.
func (c RunConfig) Mapper() schedule.Mapper {
	if c.MappingPolicy == RoundRobin {
		return &mapper.RoundRobin{}
	}
	return mapper.BestFit{}
}

// FIFOPolicyAndMode adapts FIFOAllocator to the internal/fifo constructor
// arguments; the allocator's own free-block search always uses find-best,
// spec §4.G naming only the two allocators (sync/no-sync), not a separate
// find-first/find-best axis.
func (c RunConfig) FIFOPolicyAndMode() (fifo.Policy, fifo.SyncMode) {
	mode := fifo.Default
	if c.FIFOAllocator == DefaultNoSync {
		mode = fifo.DefaultNoSync
	}
	return fifo.FindBest, mode
}

// Validate reports configuration errors (spec §7, Construction category:
// "no silent misconfiguration ignoring").
func (c RunConfig) Validate() diag.Diagnostics {
	var ds diag.Diagnostics
	if c.RunMode == Loop && c.LoopCount <= 0 {
		ds = append(ds, diag.New(diag.Error, diag.Construction, "",
			"LOOP run mode requires a positive loop count", ""))
	}
	if c.RunMode == Once && c.LoopCount > 1 {
		ds = append(ds, diag.New(diag.Error, diag.Construction, "",
			"ONCE run mode does not accept a loop count greater than one", ""))
	}
	return ds
}

// WithDefaults fills an unset Logger with a discarding one, mirroring the
// teacher's pattern of never leaving a nil hclog.Logger in a config it
// hands to a long-running component.
func (c RunConfig) WithDefaults() RunConfig {
	if c.Logger == nil {
		c.Logger = diag.Discard()
	}
	return c
}
