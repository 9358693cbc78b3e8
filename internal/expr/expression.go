package expr

import "strconv"

// Expression is an arithmetic expression built from a literal integer, a
// literal double, or an infix string parsed against an enclosing graph's
// parameters (spec §4.A). It caches its folded value when static.
type Expression struct {
	infix   string
	postfix []token
	static  bool
	value   float64
}

// NewLiteralInt builds a static expression from an integer literal.
func NewLiteralInt(v int64) *Expression {
	f := float64(v)
	return &Expression{infix: strconv.FormatInt(v, 10), postfix: []token{litTok(f)}, static: true, value: f}
}

// NewLiteralFloat builds a static expression from a double literal.
func NewLiteralFloat(v float64) *Expression {
	return &Expression{infix: strconv.FormatFloat(v, 'g', -1, 64), postfix: []token{litTok(v)}, static: true, value: v}
}

// New parses infix against params (the ordered parameter list of the
// enclosing graph) and folds constant subexpressions eagerly.
func New(infix string, params []ParamSource) (*Expression, error) {
	postfix, err := parseToPostfix(infix, params)
	if err != nil {
		return nil, err
	}
	folded, static, value, err := fold(postfix, infix)
	if err != nil {
		return nil, err
	}
	return &Expression{infix: infix, postfix: folded, static: static, value: value}, nil
}

// IsStatic reports whether no parameter-reference token remains after
// folding.
func (e *Expression) IsStatic() bool { return e.static }

// Value returns the cached folded result; valid only when IsStatic is
// true (spec §4.A: "value() returns the cached folded result").
func (e *Expression) Value() float64 { return e.value }

// Evaluate runs the postfix machine against params. For a static
// expression this is equivalent to (and as cheap as) Value().
func (e *Expression) Evaluate(params ParamVector) (float64, error) {
	if e.static {
		return e.value, nil
	}
	return run(e.postfix, params, e.infix)
}

// String returns the original infix expression string.
func (e *Expression) String() string { return e.infix }

// References reports every stable parameter index referenced by the
// folded postfix sequence (used by pisdf to detect DYNAMIC_DEPENDANT
// parameters: any reference to a dynamic parameter makes the whole
// expression dynamic-dependent).
func (e *Expression) References() []int {
	seen := map[int]bool{}
	var out []int
	for _, t := range e.postfix {
		if t.Kind == tokParam && !seen[t.Param] {
			seen[t.Param] = true
			out = append(out, t.Param)
		}
	}
	return out
}
