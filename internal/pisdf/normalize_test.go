package pisdf

import "testing"

// TestBroadcastRewriteNonUniform checks that a DUPLICATE with non-uniform
// static output rates is replaced by a REPEAT -> FORK pair (spec §4.B).
func TestBroadcastRewriteNonUniform(t *testing.T) {
	g := NewGraph("top", Counts{})
	src, _ := g.AddVertex("src", NORMAL, 0, 1)
	dup, _ := g.AddVertex("dup", DUPLICATE, 1, 2)
	snkA, _ := g.AddVertex("snkA", NORMAL, 1, 0)
	snkB, _ := g.AddVertex("snkB", NORMAL, 1, 0)

	one := mustRate(t, 1)
	two := mustRate(t, 2)
	three := mustRate(t, 3)

	if _, ds := g.AddEdge(src, 0, three, dup, 0, three); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := g.AddEdge(dup, 0, one, snkA, 0, one); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := g.AddEdge(dup, 1, two, snkB, 0, two); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	ds := broadcastRewrite{}.Apply(g)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}
	if !dup.Removed() {
		t.Fatal("expected the original DUPLICATE vertex to be removed")
	}

	var repeat, fork *Vertex
	for _, v := range g.LiveVertices() {
		switch v.Subtype {
		case REPEAT:
			repeat = v
		case FORK:
			fork = v
		}
	}
	if repeat == nil || fork == nil {
		t.Fatal("expected a REPEAT and a FORK vertex after rewrite")
	}
	if len(fork.OutPorts) != 2 {
		t.Fatalf("expected fork to keep the original 2 output ports, got %d", len(fork.OutPorts))
	}

	// Applying the pass again must be a no-op: no DUPLICATE remains.
	before := len(g.LiveVertices())
	ds2 := broadcastRewrite{}.Apply(g)
	if ds2.HasErrors() {
		t.Fatalf("unexpected errors on second pass: %v", ds2)
	}
	if len(g.LiveVertices()) != before {
		t.Fatalf("second application of broadcastRewrite must be a no-op, vertex count changed %d -> %d", before, len(g.LiveVertices()))
	}
}

// TestBroadcastRewriteUniformLeftAlone checks that a true broadcast
// (uniform output rates) is left as a DUPLICATE.
func TestBroadcastRewriteUniformLeftAlone(t *testing.T) {
	g := NewGraph("top", Counts{})
	src, _ := g.AddVertex("src", NORMAL, 0, 1)
	dup, _ := g.AddVertex("dup", DUPLICATE, 1, 2)
	snkA, _ := g.AddVertex("snkA", NORMAL, 1, 0)
	snkB, _ := g.AddVertex("snkB", NORMAL, 1, 0)

	one := mustRate(t, 1)
	if _, ds := g.AddEdge(src, 0, one, dup, 0, one); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := g.AddEdge(dup, 0, one, snkA, 0, one); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := g.AddEdge(dup, 1, one, snkB, 0, one); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	broadcastRewrite{}.Apply(g)
	if dup.Removed() {
		t.Fatal("a uniform broadcast must remain a DUPLICATE, not be rewritten")
	}
}

// TestDynamicSplitConfigOnlySubgraphProducesNoRunVertex checks the spec §8
// boundary behavior: a subgraph of only configuration actors produces no
// run-phase subgraph at all.
func TestDynamicSplitConfigOnlySubgraphProducesNoRunVertex(t *testing.T) {
	g := NewGraph("top", Counts{})
	g.AddVertex("cfg", CONFIG, 0, 1)

	before := len(g.LiveVertices())
	ds := dynamicSplit{}.Apply(g)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}
	for _, v := range g.LiveVertices() {
		if v.Subtype == GRAPH {
			t.Fatal("a config-only graph must not gain a run subgraph vertex")
		}
	}
	if len(g.LiveVertices()) != before {
		t.Fatalf("vertex count should be unchanged, got %d -> %d", before, len(g.LiveVertices()))
	}
}

// TestDynamicSplitMovesNonConfigActorsAndRewiresBoundary verifies that a
// mixed config/non-config graph is split into an init half (config actor
// stays) and a wrapped run subgraph (non-config actor is cloned inside,
// with boundary edges spliced through new interfaces).
func TestDynamicSplitMovesNonConfigActorsAndRewiresBoundary(t *testing.T) {
	g := NewGraph("top", Counts{})
	cfg, _ := g.AddVertex("cfg", CONFIG, 0, 1)
	worker, _ := g.AddVertex("worker", NORMAL, 1, 1)
	sink, _ := g.AddVertex("sink", NORMAL, 1, 0)

	one := mustRate(t, 1)
	if _, ds := g.AddEdge(cfg, 0, one, worker, 0, one); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := g.AddEdge(worker, 0, one, sink, 0, one); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	ds := dynamicSplit{}.Apply(g)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}

	if !worker.Removed() {
		t.Fatal("expected the original worker vertex to be removed from g (moved into the run subgraph)")
	}
	if cfg.Removed() || sink.Removed() {
		t.Fatal("config actor and unrelated sink must remain in g")
	}

	var runVertex *Vertex
	for _, v := range g.LiveVertices() {
		if v.Subtype == GRAPH {
			runVertex = v
		}
	}
	if runVertex == nil {
		t.Fatal("expected a wrapping GRAPH vertex for the run subgraph")
	}
	if runVertex.Subgraph == nil {
		t.Fatal("expected the wrapping vertex to carry a subgraph")
	}
	if len(runVertex.Subgraph.LiveVertices()) != 3 {
		// the cloned worker plus a spliced input interface (from cfg) and
		// a spliced output interface (to sink)
		t.Fatalf("expected run subgraph to contain the cloned worker and two boundary interfaces, got %d vertices", len(runVertex.Subgraph.LiveVertices()))
	}
	if len(runVertex.InPorts) != 1 {
		t.Fatalf("expected the run vertex to gain exactly one input port for cfg's output, got %d", len(runVertex.InPorts))
	}
	if len(runVertex.OutPorts) != 1 {
		t.Fatalf("expected the run vertex to gain exactly one output port feeding sink, got %d", len(runVertex.OutPorts))
	}
}
