package fifo

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// Manager owns one Allocator per cluster memory interface and maps each
// live firing-DAG edge to the FIFO materializing it, so the GRT
// (internal/runtime) can hand a dispatched firing its input/output
// buffers by edge identity.
type Manager struct {
	mode   SyncMode
	policy Policy

	allocators map[*platform.Cluster]*Allocator
	fifos      map[*pisdf.Edge]*FIFO
}

// NewManager builds an empty manager for the given sync mode and
// node-selection policy (spec §6 Runtime config: fifoAllocator ∈
// {DEFAULT, DEFAULT_NOSYNC}; policy is the §10-supplemented
// FIND_FIRST/FIND_BEST axis).
func NewManager(mode SyncMode, policy Policy) *Manager {
	return &Manager{
		mode:       mode,
		policy:     policy,
		allocators: make(map[*platform.Cluster]*Allocator),
		fifos:      make(map[*pisdf.Edge]*FIFO),
	}
}

// Allocate reserves a byte region for e's rate on cluster's memory
// interface and wraps it in a FIFO handle.
func (m *Manager) Allocate(cluster *platform.Cluster, e *pisdf.Edge, size int64) (*FIFO, diag.Diagnostics) {
	a, ok := m.allocators[cluster]
	if !ok {
		if cluster.Memory == nil {
			return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "cluster has no memory interface", "")}
		}
		a = New(cluster.Memory.Size, cluster.Memory.Alignment, m.policy, m.mode)
		m.allocators[cluster] = a
	}
	region, ds := a.Allocate(size)
	if ds.HasErrors() {
		return nil, ds
	}
	f := newFIFO(region, a.Bytes(region), m.mode)
	m.fifos[e] = f
	return f, nil
}

// Lookup finds the FIFO already allocated for edge e.
func (m *Manager) Lookup(e *pisdf.Edge) (*FIFO, bool) {
	f, ok := m.fifos[e]
	return f, ok
}

// Deallocate releases e's FIFO back to cluster's allocator.
func (m *Manager) Deallocate(cluster *platform.Cluster, e *pisdf.Edge) diag.Diagnostics {
	f, ok := m.fifos[e]
	if !ok {
		return nil
	}
	a, ok := m.allocators[cluster]
	if !ok {
		return nil
	}
	delete(m.fifos, e)
	return a.Deallocate(f.Region)
}

// Reset tears down every allocator's live allocations and clears the
// edge->FIFO map, ready for the next top-graph iteration (spec §4.H step
// 5: "GRT tears down the firing DAG, releasing FIFOs").
func (m *Manager) Reset() {
	for _, a := range m.allocators {
		a.Reset()
	}
	m.fifos = make(map[*pisdf.Edge]*FIFO)
}
