package api

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// CreateStaticParam mirrors spider::api::createStaticParam(graph, name,
// value).
func CreateStaticParam(g *pisdf.Graph, name string, value int64) (*pisdf.Param, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	return g.AddStaticParam(name, value)
}

// CreateStaticExprParam mirrors spider::api::createStaticParam(graph,
// name, expression) for the expression-string overload.
func CreateStaticExprParam(g *pisdf.Graph, name, infix string) (*pisdf.Param, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	return g.AddStaticExprParam(name, infix)
}

// CreateDynamicParam mirrors spider::api::createDynamicParam(graph, name
// [, expression]): pass infix == "" for a pure DYNAMIC parameter set
// later by a configuration actor, or a non-empty infix referencing at
// least one dynamic parameter for a DYNAMIC_DEPENDANT one.
func CreateDynamicParam(g *pisdf.Graph, name, infix string) (*pisdf.Param, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	return g.AddDynamicParam(name, infix)
}

// CreateInheritedParam mirrors spider::api::createInheritedParam(graph,
// name, parent).
func CreateInheritedParam(g *pisdf.Graph, name string, parent *pisdf.Param) (*pisdf.Param, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	return g.AddInheritedParam(name, parent)
}

// CreateInheritedParamByName mirrors the createInheritedParam(graph,
// name, parentName) overload, resolving parentName against the
// containing graph's own parameter list.
func CreateInheritedParamByName(g *pisdf.Graph, name, parentName string) (*pisdf.Param, diag.Diagnostics) {
	if g == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil graph", "")}
	}
	if g.Parent == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "graph has no containing graph", "createInheritedParam requires a subgraph built by createSubgraph")}
	}
	parent, ok := g.Parent.ParamByName(parentName)
	if !ok {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, parentName, "parameter not found", "no such parameter on the containing graph")}
	}
	return g.AddInheritedParam(name, parent)
}

// AddInputParamToVertex mirrors spider::api::addInputParamToVertex(v,
// param): attaches an upstream parameter reference consumed by v's own
// rate/refinement expressions.
func AddInputParamToVertex(v *pisdf.Vertex, p *pisdf.Param) diag.Diagnostics {
	if v == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil vertex", "")}
	}
	if p == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, v.Name, "parameter not found", "addInputParamToVertex requires an existing parameter")}
	}
	v.InputParamPorts = append(v.InputParamPorts, p)
	return nil
}

// AddInputRefinementParamToVertex mirrors
// spider::api::addInputRefinementParamToVertex(v, param): a parameter
// visible to v's runtime kernel but not to its own rate expressions.
func AddInputRefinementParamToVertex(v *pisdf.Vertex, p *pisdf.Param) diag.Diagnostics {
	if v == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil vertex", "")}
	}
	if p == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, v.Name, "parameter not found", "addInputRefinementParamToVertex requires an existing parameter")}
	}
	v.RefinementParamPorts = append(v.RefinementParamPorts, p)
	return nil
}

// AddOutputParamToVertex mirrors
// spider::api::addOutputParamToVertex(v, param), valid only for CONFIG
// vertices (spec §3: "output parameter ports, present only on
// configuration actors").
func AddOutputParamToVertex(v *pisdf.Vertex, p *pisdf.Param) diag.Diagnostics {
	if v == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "nil vertex", "")}
	}
	if v.Subtype != pisdf.CONFIG {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, v.Name, "output parameters require a CONFIG vertex", "")}
	}
	if p == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, v.Name, "parameter not found", "addOutputParamToVertex requires an existing parameter")}
	}
	v.OutputParamPorts = append(v.OutputParamPorts, p)
	return nil
}
