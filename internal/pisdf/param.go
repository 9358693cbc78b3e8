package pisdf

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
)

// ParamType is the closed set of parameter kinds (spec §3, "Parameter").
type ParamType int

const (
	// STATIC holds a literal integer.
	STATIC ParamType = iota
	// STATIC_EXPR holds a compiled expression over earlier parameters of
	// the same graph.
	STATIC_EXPR
	// DYNAMIC is set at run time by a configuration actor's output.
	DYNAMIC
	// DYNAMIC_DEPENDANT is an expression whose inputs include at least
	// one dynamic parameter; it is re-evaluated every iteration.
	DYNAMIC_DEPENDANT
	// INHERITED refers to a parameter of the containing graph by stable
	// identity.
	INHERITED
)

func (t ParamType) String() string {
	switch t {
	case STATIC:
		return "STATIC"
	case STATIC_EXPR:
		return "STATIC_EXPR"
	case DYNAMIC:
		return "DYNAMIC"
	case DYNAMIC_DEPENDANT:
		return "DYNAMIC_DEPENDANT"
	case INHERITED:
		return "INHERITED"
	default:
		return "UNKNOWN"
	}
}

// Param is one parameter of a graph (spec §3, "Parameter"). STATIC,
// STATIC_EXPR and INHERITED parameters are shared by *Param reference
// across firings (design note "Parameter sharing"); DYNAMIC and
// DYNAMIC_DEPENDANT parameters are deep-copied per snapshot by the SRT.
type Param struct {
	Index int
	Name  string
	Type  ParamType
	Graph *Graph

	// Expr holds the compiled expression for STATIC_EXPR and
	// DYNAMIC_DEPENDANT parameters.
	Expr *expr.Expression

	// value is the current concrete value: set at construction for
	// STATIC and STATIC_EXPR (evaluated immediately since statically
	// foldable), and set by a configuration-actor firing at run time for
	// DYNAMIC/DYNAMIC_DEPENDANT.
	value  float64
	hasVal bool

	// InheritsFrom is set only for INHERITED parameters: the parameter of
	// the containing graph this one resolves to, by identity.
	InheritsFrom *Param
}

// Value returns the parameter's current concrete value and whether one
// has been established yet (false for a DYNAMIC parameter before its
// configuration actor has fired, or for an INHERITED parameter before the
// containing graph's snapshot is known).
func (p *Param) Value() (float64, bool) {
	if p.Type == INHERITED {
		if p.InheritsFrom == nil {
			return 0, false
		}
		return p.InheritsFrom.Value()
	}
	return p.value, p.hasVal
}

// SetValue assigns a concrete value, used by configuration-actor firing
// completions (spec §4.H step 4) and by SRT's DYNAMIC_DEPENDANT
// re-evaluation.
func (p *Param) SetValue(v float64) {
	p.value = v
	p.hasVal = true
}

// AddStaticParam creates a STATIC parameter holding a literal integer.
func (g *Graph) AddStaticParam(name string, value int64) (*Param, diag.Diagnostics) {
	if ds := g.checkDuplicateParamName(name); ds != nil {
		return nil, ds
	}
	p := &Param{Index: len(g.Params), Name: name, Type: STATIC, Graph: g}
	p.SetValue(float64(value))
	g.Params = append(g.Params, p)
	return p, nil
}

// AddStaticExprParam creates a STATIC_EXPR parameter: an expression over
// parameters already declared on g (spec §3: "over earlier parameters of
// the same graph").
func (g *Graph) AddStaticExprParam(name, infix string) (*Param, diag.Diagnostics) {
	if ds := g.checkDuplicateParamName(name); ds != nil {
		return nil, ds
	}
	e, err := expr.New(infix, g.paramSources())
	if err != nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.ExpressionErr, name, "failed to parse expression", err.Error())}
	}
	if !e.IsStatic() {
		for _, idx := range e.References() {
			if idx < len(g.Params) && g.Params[idx].Type != STATIC && g.Params[idx].Type != STATIC_EXPR {
				return nil, diag.Diagnostics{diag.New(diag.Error, diag.Model, name,
					"static_expr parameter references a dynamic parameter",
					"use createDynamicParam instead")}
			}
		}
	}
	p := &Param{Index: len(g.Params), Name: name, Type: STATIC_EXPR, Graph: g, Expr: e}
	if e.IsStatic() {
		p.SetValue(e.Value())
	} else {
		vals := make(Snapshot, len(g.Params))
		for i, q := range g.Params {
			vals[i], _ = q.Value()
		}
		if v, err := e.Evaluate(vals); err == nil {
			p.SetValue(v)
		}
	}
	g.Params = append(g.Params, p)
	return p, nil
}

// AddDynamicParam creates a DYNAMIC parameter (infix == "") set later by a
// configuration actor's output, or a DYNAMIC_DEPENDANT parameter (infix
// referencing at least one dynamic parameter of g), re-evaluated every
// iteration (spec §3).
func (g *Graph) AddDynamicParam(name, infix string) (*Param, diag.Diagnostics) {
	if ds := g.checkDuplicateParamName(name); ds != nil {
		return nil, ds
	}
	if infix == "" {
		p := &Param{Index: len(g.Params), Name: name, Type: DYNAMIC, Graph: g}
		g.Params = append(g.Params, p)
		return p, nil
	}
	e, err := expr.New(infix, g.paramSources())
	if err != nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.ExpressionErr, name, "failed to parse expression", err.Error())}
	}
	dependsOnDynamic := false
	for _, idx := range e.References() {
		if idx < len(g.Params) && (g.Params[idx].Type == DYNAMIC || g.Params[idx].Type == DYNAMIC_DEPENDANT) {
			dependsOnDynamic = true
			break
		}
	}
	if !dependsOnDynamic {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Model, name,
			"createDynamicParam expression does not reference any dynamic parameter",
			"use createStaticParam/addStaticExprParam for purely static expressions")}
	}
	p := &Param{Index: len(g.Params), Name: name, Type: DYNAMIC_DEPENDANT, Graph: g, Expr: e}
	g.Params = append(g.Params, p)
	return p, nil
}

// AddInheritedParam creates an INHERITED parameter pointing at a
// parameter of the containing (parent) graph by identity.
func (g *Graph) AddInheritedParam(name string, parent *Param) (*Param, diag.Diagnostics) {
	if ds := g.checkDuplicateParamName(name); ds != nil {
		return nil, ds
	}
	if parent == nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "inherited parameter has no source", "parent parameter is nil")}
	}
	p := &Param{Index: len(g.Params), Name: name, Type: INHERITED, Graph: g, InheritsFrom: parent}
	g.Params = append(g.Params, p)
	return p, nil
}

func (g *Graph) checkDuplicateParamName(name string) diag.Diagnostics {
	if _, ok := g.ParamByName(name); ok {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "duplicate parameter name", "a parameter with this name already exists on the graph")}
	}
	return nil
}

// ParamByName performs the spec-mandated O(N) local lookup, walking
// outward via INHERITED resolution is the caller's responsibility (spec
// §4.B: "Parameter lookup by name is O(N) on the local list and walks
// outward for INHERITED resolution").
func (g *Graph) ParamByName(name string) (*Param, bool) {
	for _, p := range g.Params {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// ResolveParamByName looks up name on g, and if not found, walks outward
// through enclosing graphs (via g.Parent) until found or the top graph is
// reached.
func ResolveParamByName(g *Graph, name string) (*Param, bool) {
	for cur := g; cur != nil; cur = cur.Parent {
		if p, ok := cur.ParamByName(name); ok {
			return p, true
		}
	}
	return nil, false
}

// paramSources projects g's current parameters into expr.ParamSource for
// parsing a new expression against them.
func (g *Graph) paramSources() []expr.ParamSource {
	out := make([]expr.ParamSource, len(g.Params))
	for i, p := range g.Params {
		out[i] = expr.ParamSource{Name: p.Name, Index: p.Index}
	}
	return out
}

// Snapshot is a concrete parameter-value vector, indexed by stable Param
// index, used to evaluate rate/delay expressions during BRV/SRT.
type Snapshot []float64

func (s Snapshot) ValueAt(index int) (float64, bool) {
	if index < 0 || index >= len(s) {
		return 0, false
	}
	return s[index], true
}
