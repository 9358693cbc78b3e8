package platform

import "github.com/preesm/spider2-sub000/internal/diag"

// Role classifies a PE as hosting a local runtime thread or not (spec
// §4.I: "a role (LRT or non-LRT)").
type Role int

const (
	NonLRT Role = iota
	LRT
)

func (r Role) String() string {
	if r == LRT {
		return "LRT"
	}
	return "non-LRT"
}

// MemoryInterface describes one cluster's backing memory: total size and
// required alignment, consumed directly by internal/fifo's allocator.
type MemoryInterface struct {
	Size      int64
	Alignment int64
}

// PE is one physical execution resource bound to at most one LRT (spec
// §4.I: "a hardware-type tag, a hardware identifier, a name, a role, and
// an affinity index").
type PE struct {
	Index    int
	HwType   int
	HwID     int
	Name     string
	Role     Role
	Affinity int
	Cluster  *Cluster
}

// Cluster groups PEs sharing one coherent memory interface (spec §4.I).
type Cluster struct {
	Index    int
	Memory   *MemoryInterface
	PEs      []*PE
	Platform *Platform
}

// AddPE appends a PE to the cluster, assigning a stable cluster-local
// index.
func (c *Cluster) AddPE(hwType, hwID int, name string, role Role, affinity int) (*PE, diag.Diagnostics) {
	if name == "" {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "processing element has no name", "")}
	}
	pe := &PE{Index: len(c.PEs), HwType: hwType, HwID: hwID, Name: name, Role: role, Affinity: affinity, Cluster: c}
	c.PEs = append(c.PEs, pe)
	return pe, nil
}

// Platform is the static hardware description (spec §4.I): one or more
// clusters, a kernel registry, an external-buffer registry, and the PE
// designated to host the GRT.
type Platform struct {
	Clusters      []*Cluster
	GRT           *PE
	Kernels       *KernelTable
	ExternBuffers [][]byte
}

// NewPlatform builds an empty platform with its reserved kernel prefix
// already registered (spec §4.I: "the runtime reserves a fixed prefix of
// that table for FORK/JOIN/.../EXTERN_OUT"), mirroring
// spider::api::createPlatform(clusterCount, peCount) (original_source
// sandbox/main.cpp's createUserPlatform) minus the eager capacity
// reservation, which Go slices make unnecessary.
func NewPlatform() *Platform {
	return &Platform{Kernels: newKernelTable()}
}

// AddCluster appends a cluster with the given memory interface, mirroring
// spider::api::createCluster(peCount, memoryInterface).
func (p *Platform) AddCluster(mem *MemoryInterface) *Cluster {
	c := &Cluster{Index: len(p.Clusters), Memory: mem, Platform: p}
	p.Clusters = append(p.Clusters, c)
	return c
}

// SetGRT designates pe as the platform's global runtime thread host
// (spider::api::setSpiderGRTPE).
func (p *Platform) SetGRT(pe *PE) diag.Diagnostics {
	if pe == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil GRT processing element", "setGlobalRuntimePE requires a non-nil PE")}
	}
	p.GRT = pe
	return nil
}

// LRTs returns every PE across every cluster whose Role is LRT, in
// cluster-then-PE order; this is the set internal/runtime spawns one
// worker goroutine per.
func (p *Platform) LRTs() []*PE {
	var out []*PE
	for _, c := range p.Clusters {
		for _, pe := range c.PEs {
			if pe.Role == LRT {
				out = append(out, pe)
			}
		}
	}
	return out
}

// AllPEs returns every PE across every cluster, in cluster-then-PE order.
func (p *Platform) AllPEs() []*PE {
	var out []*PE
	for _, c := range p.Clusters {
		out = append(out, c.PEs...)
	}
	return out
}

// RegisterExternBuffer records an externally-owned buffer, addressable by
// the returned index (spec §4.I: "external buffers are registered with
// the platform and addressed by index").
func (p *Platform) RegisterExternBuffer(buf []byte) int {
	p.ExternBuffers = append(p.ExternBuffers, buf)
	return len(p.ExternBuffers) - 1
}

// ExternBuffer looks up a previously registered external buffer by index.
func (p *Platform) ExternBuffer(index int) ([]byte, bool) {
	if index < 0 || index >= len(p.ExternBuffers) {
		return nil, false
	}
	return p.ExternBuffers[index], true
}
