package pisdf

import (
	"strconv"

	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
)

// CompileRate compiles infix against g's current parameters, for callers
// outside this package (internal/api's createEdge, createLocalDelay, ...)
// that only have a graph and a rate/delay string, never g's unexported
// paramSources helper (spec §6: "rates given as either integers or
// expression strings"). A plain integer literal is accepted directly.
func (g *Graph) CompileRate(infix string) (*expr.Expression, diag.Diagnostics) {
	if v, err := strconv.ParseInt(infix, 10, 64); err == nil {
		return expr.NewLiteralInt(v), nil
	}
	e, err := expr.New(infix, g.paramSources())
	if err != nil {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.ExpressionErr, infix, "failed to parse rate expression", err.Error())}
	}
	return e, nil
}
