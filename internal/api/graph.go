package api

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// CreateGraph mirrors spider::api::createGraph(name, counts...).
func CreateGraph(name string, counts pisdf.Counts) *pisdf.Graph {
	return pisdf.NewGraph(name, counts)
}

// CreateSubgraph mirrors spider::api::createSubgraph(parent, ...): owner
// must already exist as a GRAPH-subtype vertex (created via
// CreateHierarchyVertex), and must not already have a subgraph attached.
func CreateSubgraph(owner *pisdf.Vertex, name string, counts pisdf.Counts) (*pisdf.Graph, diag.Diagnostics) {
	if owner == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil owner vertex", "createSubgraph requires a GRAPH-subtype vertex")}
	}
	if owner.Subtype != pisdf.GRAPH {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, owner.Name, "owner vertex is not a GRAPH-subtype vertex", "")}
	}
	if owner.Subgraph != nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, owner.Name, "owner vertex already has a subgraph", "")}
	}
	sg := pisdf.NewGraph(name, counts)
	sg.Parent = owner.Graph
	sg.OwnerVertex = owner
	owner.Subgraph = sg
	return sg, nil
}

// CreateVertex mirrors spider::api::createVertex(graph, name, inCount,
// outCount): a plain NORMAL actor.
func CreateVertex(g *pisdf.Graph, name string, inCount, outCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.NORMAL, inCount, outCount)
}

// CreateHierarchyVertex creates the GRAPH-subtype vertex a subsequent
// CreateSubgraph call attaches a subgraph to (spec §6's createSubgraph
// implies a containing vertex already exists to attach to).
func CreateHierarchyVertex(g *pisdf.Graph, name string, inCount, outCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.GRAPH, inCount, outCount)
}

// CreateFork mirrors spider::api::createFork(graph, name, outCount): one
// input, outCount outputs.
func CreateFork(g *pisdf.Graph, name string, outCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.FORK, 1, outCount)
}

// CreateJoin mirrors spider::api::createJoin(graph, name, inCount):
// inCount inputs, one output.
func CreateJoin(g *pisdf.Graph, name string, inCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.JOIN, inCount, 1)
}

// CreateRepeat mirrors spider::api::createRepeat(graph, name).
func CreateRepeat(g *pisdf.Graph, name string) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.REPEAT, 1, 1)
}

// CreateTail mirrors spider::api::createTail(graph, name).
func CreateTail(g *pisdf.Graph, name string) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.TAIL, 1, 1)
}

// CreateHead mirrors spider::api::createHead(graph, name).
func CreateHead(g *pisdf.Graph, name string) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.HEAD, 1, 1)
}

// CreateDuplicate mirrors spider::api::createDuplicate(graph, name,
// outCount): one input, outCount outputs.
func CreateDuplicate(g *pisdf.Graph, name string, outCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.DUPLICATE, 1, outCount)
}

// CreateInit mirrors spider::api::createInit(graph, name, outCount): no
// inputs, outCount outputs (seeds a delay's initial tokens).
func CreateInit(g *pisdf.Graph, name string, outCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.INIT, 0, outCount)
}

// CreateEnd mirrors spider::api::createEnd(graph, name, inCount): inCount
// inputs, no outputs (discards a delay's final tokens).
func CreateEnd(g *pisdf.Graph, name string, inCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.END, inCount, 0)
}

// CreateConfigActor mirrors spider::api::createConfigActor(graph, name,
// inCount, outCount).
func CreateConfigActor(g *pisdf.Graph, name string, inCount, outCount int) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.CONFIG, inCount, outCount)
}

// CreateExternInputInterface mirrors
// spider::api::createExternInputInterface(graph, name): no inputs, one
// output, bound to a platform-registered external buffer at run time.
func CreateExternInputInterface(g *pisdf.Graph, name string) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.EXTERN_IN, 0, 1)
}

// CreateExternOutputInterface mirrors
// spider::api::createExternOutputInterface(graph, name).
func CreateExternOutputInterface(g *pisdf.Graph, name string) (*pisdf.Vertex, diag.Diagnostics) {
	return addVertex(g, name, pisdf.EXTERN_OUT, 1, 0)
}

// CreateInputInterface adds a hierarchy-boundary INPUT pseudo-vertex to
// a subgraph (needed by createSubgraph-built hierarchies; spec §8
// scenario 2).
func CreateInputInterface(g *pisdf.Graph, name string) (*pisdf.Vertex, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	return g.AddInputInterface(name)
}

// CreateOutputInterface adds a hierarchy-boundary OUTPUT pseudo-vertex to
// a subgraph.
func CreateOutputInterface(g *pisdf.Graph, name string) (*pisdf.Vertex, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	return g.AddOutputInterface(name)
}

func addVertex(g *pisdf.Graph, name string, subtype pisdf.Subtype, inCount, outCount int) (*pisdf.Vertex, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	return g.AddVertex(name, subtype, inCount, outCount)
}
