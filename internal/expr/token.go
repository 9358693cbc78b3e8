package expr

import "fmt"

type tokenKind int

const (
	tokLiteral tokenKind = iota
	tokParam
	tokOperator
	tokFunction
)

type opKind int

const (
	opAdd opKind = iota
	opSub
	opMul
	opDiv
	opMod
	opPow
	opNeg // unary minus, arity 1
)

var opSymbols = map[opKind]string{
	opAdd: "+", opSub: "-", opMul: "*", opDiv: "/", opMod: "%", opPow: "^", opNeg: "neg",
}

type fnKind int

const (
	fnCos fnKind = iota
	fnSin
	fnTan
	fnExp
	fnLog
	fnLog2
	fnCeil
	fnFloor
	fnMin
	fnMax
	fnSqrt
	fnAbs
	fnPow
	fnMod
)

// fnSpec names a function and its default (minimum) arity. log
// additionally accepts a two-argument form (base, x); that variant is
// recognized at call-site by argument count during parsing.
type fnSpec struct {
	name  string
	kind  fnKind
	arity int
}

var functionTable = map[string]fnSpec{
	"cos":   {"cos", fnCos, 1},
	"sin":   {"sin", fnSin, 1},
	"tan":   {"tan", fnTan, 1},
	"exp":   {"exp", fnExp, 1},
	"log":   {"log", fnLog, 1}, // arity overridden to 2 when called with two args
	"log2":  {"log2", fnLog2, 1},
	"ceil":  {"ceil", fnCeil, 1},
	"floor": {"floor", fnFloor, 1},
	"min":   {"min", fnMin, 2},
	"max":   {"max", fnMax, 2},
	"sqrt":  {"sqrt", fnSqrt, 1},
	"abs":   {"abs", fnAbs, 1},
	"pow":   {"pow", fnPow, 2},
	"mod":   {"mod", fnMod, 2},
}

var fnNameByKind = func() map[fnKind]string {
	m := make(map[fnKind]string, len(functionTable))
	for name, spec := range functionTable {
		m[spec.kind] = name
	}
	return m
}()

// token is one element of a postfix sequence. Exactly one of the payload
// fields is meaningful, selected by Kind.
type token struct {
	Kind  tokenKind
	Lit   float64
	Param int // stable parameter index, only for tokParam
	Op    opKind
	Fn    fnKind
	Arity int // for tokFunction
}

func litTok(v float64) token { return token{Kind: tokLiteral, Lit: v} }
func paramTok(idx int) token { return token{Kind: tokParam, Param: idx} }
func opTok(op opKind) token  { return token{Kind: tokOperator, Op: op} }
func fnTok(fn fnKind, arity int) token {
	return token{Kind: tokFunction, Fn: fn, Arity: arity}
}

func (t token) arity() int {
	switch t.Kind {
	case tokOperator:
		if t.Op == opNeg {
			return 1
		}
		return 2
	case tokFunction:
		return t.Arity
	default:
		return 0
	}
}

func (t token) String() string {
	switch t.Kind {
	case tokLiteral:
		return fmt.Sprintf("%g", t.Lit)
	case tokParam:
		return fmt.Sprintf("$%d", t.Param)
	case tokOperator:
		return opSymbols[t.Op]
	case tokFunction:
		return fmt.Sprintf("fn%d/%d", t.Fn, t.Arity)
	default:
		return "?"
	}
}
