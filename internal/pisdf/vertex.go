package pisdf

// Vertex has a stable index inside its owner graph, a name, an
// input/output port count, and a subtype drawn from the closed set
// (spec §3, "Vertex").
type Vertex struct {
	Index   int
	Name    string
	Subtype Subtype
	Graph   *Graph

	// InPorts/OutPorts are indexed by port number; each slot holds the
	// Edge attached to that port, or nil until connected.
	InPorts  []*Edge
	OutPorts []*Edge

	// Subgraph is set only for Subtype == GRAPH.
	Subgraph *Graph

	// KernelID identifies the runtime kernel bound to this vertex (spec
	// §3: "bound to a runtime kernel"); -1 until createRuntimeKernel is
	// called. NORMAL and CONFIG vertices must have one bound before a run.
	KernelID int

	// InputParamPorts / RefinementParamPorts / OutputParamPorts record
	// extra parameter ports attached via addInputParamToVertex /
	// addInputRefinementParamToVertex / addOutputParamToVertex (spec §6).
	// OutputParamPorts is populated only for CONFIG vertices.
	InputParamPorts      []*Param
	RefinementParamPorts []*Param
	OutputParamPorts     []*Param

	removed bool
}

// Removed reports whether RemoveVertex has been called on v.
func (v *Vertex) Removed() bool { return v.removed }

// HasKernel reports whether a runtime kernel has been bound.
func (v *Vertex) HasKernel() bool { return v.KernelID >= 0 }
