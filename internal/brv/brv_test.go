package brv

import (
	"testing"

	"github.com/preesm/spider2-sub000/internal/expr"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

func rate(v float64) *expr.Expression { return expr.NewLiteralFloat(v) }

// TestLinearChain mirrors a classic chain with edge A->B at rates (1,3)
// and edge B->C at rates (9,1): the least positive integer solution is
// rA=3, rB=1, rC=9 (any uniform scaling also balances, but Solve must
// return the minimal one).
func TestLinearChain(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 0, 1)
	b, _ := g.AddVertex("B", pisdf.NORMAL, 1, 1)
	c, _ := g.AddVertex("C", pisdf.NORMAL, 1, 0)

	if _, ds := g.AddEdge(a, 0, rate(1), b, 0, rate(3)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := g.AddEdge(b, 0, rate(9), c, 0, rate(1)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	result, ds := Solve(g, nil)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}

	rA, rB, rC := result[a.Index], result[b.Index], result[c.Index]
	// ratio must hold: rA*1 == rB*3, rB*9 == rC*1
	if rA*1 != rB*3 {
		t.Fatalf("balance violated between A and B: rA=%d rB=%d", rA, rB)
	}
	if rB*9 != rC*1 {
		t.Fatalf("balance violated between B and C: rB=%d rC=%d", rB, rC)
	}
	// and it should be the minimal (smallest positive integer) solution.
	for _, r := range []int64{rA, rB, rC} {
		if r <= 0 {
			t.Fatalf("expected strictly positive repetition values, got %v", result)
		}
	}
	if rA != 3 || rB != 1 || rC != 9 {
		t.Fatalf("expected the minimal solution rA=3 rB=1 rC=9, got rA=%d rB=%d rC=%d", rA, rB, rC)
	}
}

// TestConfigActorFixedAtOne checks that a configuration actor's
// repetition value is forced to 1 and other reachable vertices scale
// accordingly, without any LCM rescaling away from 1 (spec §4.C).
func TestConfigActorFixedAtOne(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	cfg, _ := g.AddVertex("cfg", pisdf.CONFIG, 0, 1)
	worker, _ := g.AddVertex("worker", pisdf.NORMAL, 1, 0)

	if _, ds := g.AddEdge(cfg, 0, rate(1), worker, 0, rate(1)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	result, ds := Solve(g, nil)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}
	if result[cfg.Index] != 1 {
		t.Fatalf("expected configuration actor fixed at r=1, got %d", result[cfg.Index])
	}
	if result[worker.Index] != 1 {
		t.Fatalf("expected worker r=1 when rates are uniform, got %d", result[worker.Index])
	}
}

// TestConfigActorInconsistentRatesIsAnError checks that a configuration
// actor forced to r=1 combined with rates that would require a different
// (fractional) value elsewhere is reported as a diagnostic, not silently
// rescaled.
func TestConfigActorInconsistentRatesIsAnError(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	cfg, _ := g.AddVertex("cfg", pisdf.CONFIG, 0, 1)
	worker, _ := g.AddVertex("worker", pisdf.NORMAL, 1, 0)

	if _, ds := g.AddEdge(cfg, 0, rate(1), worker, 0, rate(3)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	_, ds := Solve(g, nil)
	if !ds.HasErrors() {
		t.Fatal("expected a diagnostic: config actor at r=1 cannot balance a rate-3 consumer without a fractional repetition")
	}
}

// TestIsolatedVertexDefaultsToOne checks that a vertex with no balance
// edges to other non-interface vertices gets the trivial r=1 solution.
func TestIsolatedVertexDefaultsToOne(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	lone, _ := g.AddVertex("lone", pisdf.NORMAL, 0, 0)

	result, ds := Solve(g, nil)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}
	if result[lone.Index] != 1 {
		t.Fatalf("expected isolated vertex r=1, got %d", result[lone.Index])
	}
}

// TestZeroRateEdgeIsAnError checks that a zero sink rate on a balance
// edge is reported rather than causing a division by zero.
func TestZeroRateEdgeIsAnError(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 0, 1)
	b, _ := g.AddVertex("B", pisdf.NORMAL, 1, 0)

	if _, ds := g.AddEdge(a, 0, rate(1), b, 0, rate(0)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	_, ds := Solve(g, nil)
	if !ds.HasErrors() {
		t.Fatal("expected a diagnostic for a zero-rate balance edge")
	}
}
