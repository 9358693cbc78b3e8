package pisdf

import (
	"testing"

	"github.com/preesm/spider2-sub000/internal/expr"
)

func mustRate(t *testing.T, lit float64) *expr.Expression {
	t.Helper()
	return expr.NewLiteralFloat(lit)
}

func TestAddVertexStableIndex(t *testing.T) {
	g := NewGraph("top", Counts{Actors: 2})
	a, ds := g.AddVertex("A", NORMAL, 0, 1)
	if ds != nil {
		t.Fatalf("unexpected diagnostics: %v", ds)
	}
	b, _ := g.AddVertex("B", NORMAL, 1, 0)
	if a.Index != 0 || b.Index != 1 {
		t.Fatalf("expected stable indices 0,1, got %d,%d", a.Index, b.Index)
	}
	if a.KernelID != -1 || b.KernelID != -1 {
		t.Fatalf("expected unbound KernelID -1, got %d,%d", a.KernelID, b.KernelID)
	}

	g.RemoveVertex(a)
	live := g.LiveVertices()
	if len(live) != 1 || live[0] != b {
		t.Fatalf("expected only B live after removing A, got %v", live)
	}
	if b.Index != 1 {
		t.Fatalf("removing A must not renumber B: got index %d", b.Index)
	}
}

func TestAddVertexRejectsEmptyName(t *testing.T) {
	g := NewGraph("top", Counts{})
	if _, ds := g.AddVertex("", NORMAL, 0, 0); ds == nil {
		t.Fatal("expected diagnostics for empty vertex name")
	}
}

func TestAddEdgeRejectsOutOfRangePorts(t *testing.T) {
	g := NewGraph("top", Counts{})
	a, _ := g.AddVertex("A", NORMAL, 0, 1)
	b, _ := g.AddVertex("B", NORMAL, 1, 0)
	rate := mustRate(t, 1)
	if _, ds := g.AddEdge(a, 5, rate, b, 0, rate); ds == nil {
		t.Fatal("expected diagnostics for out-of-range source port")
	}
	if _, ds := g.AddEdge(a, 0, rate, b, 5, rate); ds == nil {
		t.Fatal("expected diagnostics for out-of-range sink port")
	}
}

func TestAddEdgeRejectsDuplicatePortConnection(t *testing.T) {
	g := NewGraph("top", Counts{})
	a, _ := g.AddVertex("A", NORMAL, 0, 1)
	b, _ := g.AddVertex("B", NORMAL, 2, 0)
	rate := mustRate(t, 1)
	if _, ds := g.AddEdge(a, 0, rate, b, 0, rate); ds != nil {
		t.Fatalf("first connection should succeed: %v", ds)
	}
	if _, ds := g.AddEdge(a, 0, rate, b, 1, rate); ds == nil {
		t.Fatal("expected diagnostics for reusing an already-connected output port")
	}
}

func TestParamDuplicateName(t *testing.T) {
	g := NewGraph("top", Counts{})
	if _, ds := g.AddStaticParam("n", 4); ds != nil {
		t.Fatalf("unexpected diagnostics: %v", ds)
	}
	if _, ds := g.AddStaticParam("n", 5); ds == nil {
		t.Fatal("expected diagnostics for duplicate parameter name")
	}
}

func TestResolveParamByNameWalksParent(t *testing.T) {
	top := NewGraph("top", Counts{})
	p, _ := top.AddStaticParam("n", 4)

	sub := NewGraph("sub", Counts{})
	sub.Parent = top
	inherited, _ := sub.AddInheritedParam("n", p)

	found, ok := ResolveParamByName(sub, "n")
	if !ok || found != inherited {
		t.Fatalf("expected to resolve local inherited param, got %v ok=%v", found, ok)
	}

	m, _ := top.AddStaticParam("m", 7)
	found, ok = ResolveParamByName(sub, "m")
	if !ok || found != m {
		t.Fatalf("expected to resolve top's param through sub's parent, got %v ok=%v", found, ok)
	}

	found, ok = ResolveParamByName(sub, "nonexistent")
	if ok {
		t.Fatalf("expected lookup miss, got %v", found)
	}
}

func TestIsDynamicPropagatesFromSubgraph(t *testing.T) {
	top := NewGraph("top", Counts{})
	sub := NewGraph("sub", Counts{})
	owner, _ := top.AddVertex("g", GRAPH, 0, 0)
	owner.Subgraph = sub
	sub.Parent = top
	sub.OwnerVertex = owner

	if top.IsDynamic() {
		t.Fatal("expected top graph not dynamic before subgraph gets a config actor")
	}
	sub.AddVertex("cfg", CONFIG, 0, 1)
	if !top.IsDynamic() {
		t.Fatal("expected top graph dynamic once subgraph owns a config actor")
	}
}
