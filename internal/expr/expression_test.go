package expr

import (
	"math"
	"testing"
)

func TestStaticFolding(t *testing.T) {
	e, err := New("2 + 3 * 4", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !e.IsStatic() {
		t.Fatalf("expected static expression")
	}
	if e.Value() != 14 {
		t.Fatalf("got %v, want 14", e.Value())
	}
}

func TestUnaryMinusPrecedence(t *testing.T) {
	e, err := New("-2^2", nil)
	if err != nil {
		t.Fatal(err)
	}
	if e.Value() != -4 {
		t.Fatalf("got %v, want -4 (unary minus binds looser than ^)", e.Value())
	}

	e2, err := New("-2+3", nil)
	if err != nil {
		t.Fatal(err)
	}
	if e2.Value() != 1 {
		t.Fatalf("got %v, want 1", e2.Value())
	}
}

func TestParameterReference(t *testing.T) {
	params := []ParamSource{{Name: "W", Index: 3}}
	e, err := New("W * 2", params)
	if err != nil {
		t.Fatal(err)
	}
	if e.IsStatic() {
		t.Fatalf("expected dynamic expression referencing parameter W")
	}
	refs := e.References()
	if len(refs) != 1 || refs[0] != 3 {
		t.Fatalf("got refs %v, want [3]", refs)
	}
	v, err := e.Evaluate(Values{0, 0, 0, 5})
	if err != nil {
		t.Fatal(err)
	}
	if v != 10 {
		t.Fatalf("got %v, want 10", v)
	}
}

func TestPartialFoldingKeepsStaticSubexpr(t *testing.T) {
	params := []ParamSource{{Name: "N", Index: 0}}
	e, err := New("N + (2 * 3)", params)
	if err != nil {
		t.Fatal(err)
	}
	if e.IsStatic() {
		t.Fatalf("expected dynamic")
	}
	v, err := e.Evaluate(Values{4})
	if err != nil {
		t.Fatal(err)
	}
	if v != 10 {
		t.Fatalf("got %v, want 10 (4 + 6)", v)
	}
}

func TestFunctions(t *testing.T) {
	cases := []struct {
		expr string
		want float64
	}{
		{"max(2, 7)", 7},
		{"min(2, 7)", 2},
		{"ceil(1.2)", 2},
		{"floor(1.8)", 1},
		{"sqrt(16)", 4},
		{"abs(-5)", 5},
		{"pow(2, 10)", 1024},
		{"mod(10, 3)", 1},
		{"log2(8)", 3},
		{"log(2, 8)", 3},
	}
	for _, c := range cases {
		e, err := New(c.expr, nil)
		if err != nil {
			t.Fatalf("%s: %v", c.expr, err)
		}
		if math.Abs(e.Value()-c.want) > 1e-9 {
			t.Errorf("%s = %v, want %v", c.expr, e.Value(), c.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	if _, err := New("1/0", nil); err == nil {
		t.Fatalf("expected division-by-zero error")
	}
}

func TestUnbalancedParens(t *testing.T) {
	if _, err := New("(1 + 2", nil); err == nil {
		t.Fatalf("expected unbalanced parentheses error")
	}
	if _, err := New("1 + 2)", nil); err == nil {
		t.Fatalf("expected unbalanced parentheses error")
	}
}

func TestUnknownIdentifier(t *testing.T) {
	if _, err := New("X + 1", nil); err == nil {
		t.Fatalf("expected unknown identifier error")
	}
}

func TestEmptyExpression(t *testing.T) {
	if _, err := New("", nil); err == nil {
		t.Fatalf("expected empty expression error")
	}
	if _, err := New("   ", nil); err == nil {
		t.Fatalf("expected empty expression error")
	}
}

func TestOperatorWithoutOperand(t *testing.T) {
	if _, err := New("1 + ", nil); err == nil {
		t.Fatalf("expected operator-without-operand error")
	}
	if _, err := New("* 1", nil); err == nil {
		t.Fatalf("expected operator-without-operand error")
	}
}

func TestLiteralConstructors(t *testing.T) {
	if v := NewLiteralInt(42).Value(); v != 42 {
		t.Fatalf("got %v, want 42", v)
	}
	if v := NewLiteralFloat(3.5).Value(); v != 3.5 {
		t.Fatalf("got %v, want 3.5", v)
	}
}
