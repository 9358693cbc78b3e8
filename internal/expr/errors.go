package expr

import "fmt"

// Error reports a problem building or evaluating an expression, carrying
// the offending substring (spec §4.A: "reported as a domain error with the
// offending substring").
type Error struct {
	Expr    string
	Pos     int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("expression %q at %d: %s", e.Expr, e.Pos, e.Message)
}

func newExprErr(expr string, pos int, format string, args ...interface{}) *Error {
	return &Error{Expr: expr, Pos: pos, Message: fmt.Sprintf(format, args...)}
}
