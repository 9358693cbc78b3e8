package pisdf

import "github.com/preesm/spider2-sub000/internal/diag"

// Counts reserves initial capacity for a new graph's backing vectors
// (spec §4.B: "Constructing a graph reserves capacity for actor, edge,
// parameter, input-interface, output-interface, and config-actor
// counts").
type Counts struct {
	Actors       int
	Edges        int
	Params       int
	Inputs       int
	Outputs      int
	ConfigActors int
}

// Graph is an ordered collection of vertices, edges, parameters, and
// input/output interfaces (spec §3, "Graph"). A Graph may itself be a
// vertex of a containing graph via its OwnerVertex field.
type Graph struct {
	Name string

	Vertices []*Vertex
	Edges    []*Edge
	Params   []*Param
	Inputs   []*Vertex // INPUT interface pseudo-vertices
	Outputs  []*Vertex // OUTPUT interface pseudo-vertices

	// ConfigActors is a dedicated sub-list of vertices of subtype CONFIG,
	// for fast enumeration (spec §4.B).
	ConfigActors []*Vertex

	// Parent is the containing graph, or nil for the top graph.
	Parent *Graph
	// OwnerVertex is the GRAPH-subtype vertex that represents this graph
	// from the outside, or nil for the top graph.
	OwnerVertex *Vertex
}

// NewGraph constructs an empty graph, reserving capacity per counts.
func NewGraph(name string, counts Counts) *Graph {
	g := &Graph{Name: name}
	g.Vertices = make([]*Vertex, 0, counts.Actors)
	g.Edges = make([]*Edge, 0, counts.Edges)
	g.Params = make([]*Param, 0, counts.Params)
	g.Inputs = make([]*Vertex, 0, counts.Inputs)
	g.Outputs = make([]*Vertex, 0, counts.Outputs)
	g.ConfigActors = make([]*Vertex, 0, counts.ConfigActors)
	return g
}

// IsDynamic reports whether g owns at least one configuration actor or
// any of its subgraphs is dynamic (spec §3, "Graph").
func (g *Graph) IsDynamic() bool {
	if len(g.ConfigActors) > 0 {
		return true
	}
	for _, v := range g.Vertices {
		if v.Subtype == GRAPH && v.Subgraph != nil && !v.removed {
			if v.Subgraph.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// AddVertex appends a new vertex, assigning a stable index equal to the
// current vertex count (spec §4.B).
func (g *Graph) AddVertex(name string, subtype Subtype, inPorts, outPorts int) (*Vertex, diag.Diagnostics) {
	if name == "" {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "vertex has no name", "vertex name must be non-empty")}
	}
	v := &Vertex{
		Index:    len(g.Vertices),
		Name:     name,
		Subtype:  subtype,
		InPorts:  make([]*Edge, inPorts),
		OutPorts: make([]*Edge, outPorts),
		Graph:    g,
		KernelID: -1,
	}
	g.Vertices = append(g.Vertices, v)
	if subtype == CONFIG {
		g.ConfigActors = append(g.ConfigActors, v)
	}
	return v, nil
}

// RemoveVertex marks v removed; other vertices keep their stable index
// (spec §4.B: "Removing a vertex compacts only that vector (other indices
// remain stable via a separate 'removed' marker)").
func (g *Graph) RemoveVertex(v *Vertex) {
	v.removed = true
}

// Compact trims only trailing removed entries from the vertex vector,
// never renumbering live vertices.
func (g *Graph) Compact() {
	for len(g.Vertices) > 0 && g.Vertices[len(g.Vertices)-1].removed {
		g.Vertices = g.Vertices[:len(g.Vertices)-1]
	}
}

// LiveVertices iterates g.Vertices skipping removed entries.
func (g *Graph) LiveVertices() []*Vertex {
	out := make([]*Vertex, 0, len(g.Vertices))
	for _, v := range g.Vertices {
		if !v.removed {
			out = append(out, v)
		}
	}
	return out
}

// AddInputInterface appends an INPUT boundary pseudo-vertex.
func (g *Graph) AddInputInterface(name string) (*Vertex, diag.Diagnostics) {
	v, ds := g.AddVertex(name, INPUT, 0, 1)
	if ds != nil {
		return nil, ds
	}
	g.Inputs = append(g.Inputs, v)
	return v, nil
}

// AddOutputInterface appends an OUTPUT boundary pseudo-vertex.
func (g *Graph) AddOutputInterface(name string) (*Vertex, diag.Diagnostics) {
	v, ds := g.AddVertex(name, OUTPUT, 1, 0)
	if ds != nil {
		return nil, ds
	}
	g.Outputs = append(g.Outputs, v)
	return v, nil
}
