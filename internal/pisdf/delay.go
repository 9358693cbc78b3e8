package pisdf

import (
	"math"

	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
)

// Delay is attached to exactly one edge, carries a non-negative integer
// value, optional setter/getter vertex+port, and a persistence flag
// (spec §3, "Delay"). Dynamic delay values are rejected at construction.
type Delay struct {
	Edge *Edge

	ValueExpr *expr.Expression
	Value     int64

	Setter     *Vertex
	SetterPort int
	Getter     *Vertex
	GetterPort int

	Persistent bool
	// LevelCount is meaningful only for local persistent delays created
	// via createLocalPersistentDelay: the number of enclosing hierarchy
	// levels the delay survives before being re-initialized.
	LevelCount int
}

func newDelay(e *Edge, valueExpr *expr.Expression, persistent bool) (*Delay, diag.Diagnostics) {
	if e.Delay != nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "", "edge already has a delay", "")}
	}
	if !valueExpr.IsStatic() {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Model, "", "dynamic delay value", "delay values must be statically known")}
	}
	v := valueExpr.Value()
	if v < 0 || math.Trunc(v) != v {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Model, "", "invalid delay value", "delay value must be a non-negative integer")}
	}
	d := &Delay{Edge: e, ValueExpr: valueExpr, Value: int64(v), Persistent: persistent, SetterPort: -1, GetterPort: -1}
	e.Delay = d
	return d, nil
}

// CreateLocalDelay attaches a local (non-persistent) delay to e, with an
// optional setter/getter pair supplying/consuming initial/final tokens.
func CreateLocalDelay(e *Edge, valueExpr *expr.Expression, setter *Vertex, setterPort int, getter *Vertex, getterPort int) (*Delay, diag.Diagnostics) {
	d, ds := newDelay(e, valueExpr, false)
	if ds != nil {
		return nil, ds
	}
	d.Setter, d.SetterPort = setter, setterPort
	d.Getter, d.GetterPort = getter, getterPort
	return d, nil
}

// CreatePersistentDelay attaches a delay with Persistent set (spec §3,
// "Delay"). internal/srt and internal/runtime do not read the flag and
// realize it like a local delay, so its tokens do not survive a top-graph
// iteration.
func CreatePersistentDelay(e *Edge, valueExpr *expr.Expression) (*Delay, diag.Diagnostics) {
	return newDelay(e, valueExpr, true)
}

// CreateLocalPersistentDelay attaches a persistent delay scoped to
// levelCount enclosing hierarchy levels (spec §6).
func CreateLocalPersistentDelay(e *Edge, valueExpr *expr.Expression, levelCount int) (*Delay, diag.Diagnostics) {
	d, ds := newDelay(e, valueExpr, true)
	if ds != nil {
		return nil, ds
	}
	d.LevelCount = levelCount
	return d, nil
}
