package api

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// CreateEdge mirrors spider::api::createEdge(src, srcPort, srcRate, snk,
// snkPort, snkRate); rates are given as either an integer literal or an
// expression string (spec §6), compiled against g's parameters.
func CreateEdge(g *pisdf.Graph, src *pisdf.Vertex, srcPort int, srcRate string, snk *pisdf.Vertex, snkPort int, snkRate string) (*pisdf.Edge, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil graph", "")}
	}
	srcExpr, ds := g.CompileRate(srcRate)
	if ds.HasErrors() {
		return nil, ds
	}
	snkExpr, ds2 := g.CompileRate(snkRate)
	if ds2.HasErrors() {
		return nil, ds2
	}
	return g.AddEdge(src, srcPort, srcExpr, snk, snkPort, snkExpr)
}

// CreateLocalDelay mirrors spider::api::createLocalDelay(edge, expr,
// setter, getter, rates): a non-persistent delay with an optional
// setter/getter pair supplying/consuming its initial/final tokens.
func CreateLocalDelay(e *pisdf.Edge, valueInfix string, setter *pisdf.Vertex, setterPort int, getter *pisdf.Vertex, getterPort int) (*pisdf.Delay, diag.Diagnostics) {
	valueExpr, ds := compileDelayValue(e, valueInfix)
	if ds.HasErrors() {
		return nil, ds
	}
	return pisdf.CreateLocalDelay(e, valueExpr, setter, setterPort, getter, getterPort)
}

// CreatePersistentDelay mirrors spider::api::createPersistentDelay(edge,
// expr): tokens survive a top-graph iteration.
func CreatePersistentDelay(e *pisdf.Edge, valueInfix string) (*pisdf.Delay, diag.Diagnostics) {
	valueExpr, ds := compileDelayValue(e, valueInfix)
	if ds.HasErrors() {
		return nil, ds
	}
	return pisdf.CreatePersistentDelay(e, valueExpr)
}

// CreateLocalPersistentDelay mirrors
// spider::api::createLocalPersistentDelay(edge, expr, levelCount).
func CreateLocalPersistentDelay(e *pisdf.Edge, valueInfix string, levelCount int) (*pisdf.Delay, diag.Diagnostics) {
	valueExpr, ds := compileDelayValue(e, valueInfix)
	if ds.HasErrors() {
		return nil, ds
	}
	return pisdf.CreateLocalPersistentDelay(e, valueExpr, levelCount)
}

func compileDelayValue(e *pisdf.Edge, infix string) (*expr.Expression, diag.Diagnostics) {
	if e == nil || e.Graph == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil edge", "createDelay requires an edge already attached to a graph")}
	}
	return e.Graph.CompileRate(infix)
}
