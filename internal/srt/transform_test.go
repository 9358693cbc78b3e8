package srt

import (
	"testing"

	"github.com/preesm/spider2-sub000/internal/expr"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

func rate(v float64) *expr.Expression { return expr.NewLiteralFloat(v) }

// TestDirectLink builds a trivial A(3)->B(3) top graph (equal rates, one
// firing each) and checks Transform produces exactly one clone per
// vertex linked by a single direct edge, no FORK/JOIN needed.
func TestDirectLink(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 0, 1)
	b, _ := g.AddVertex("B", pisdf.NORMAL, 1, 0)
	if _, ds := g.AddEdge(a, 0, rate(3), b, 0, rate(3)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	job := &Job{Ref: g}
	static, dynamic, ds := Transform(job, srdag)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}
	if len(static) != 0 || len(dynamic) != 0 {
		t.Fatalf("expected no future jobs, got static=%d dynamic=%d", len(static), len(dynamic))
	}

	var aClone, bClone *pisdf.Vertex
	for _, v := range srdag.LiveVertices() {
		switch v.Subtype {
		case pisdf.NORMAL:
			if v.Name == "A_0" {
				aClone = v
			}
			if v.Name == "B_0" {
				bClone = v
			}
		}
	}
	if aClone == nil || bClone == nil {
		t.Fatalf("expected one clone each of A and B, got vertices: %+v", srdag.LiveVertices())
	}
	if aClone.OutPorts[0] == nil || aClone.OutPorts[0].Snk != bClone {
		t.Fatalf("expected A_0 linked directly to B_0, got %+v", aClone.OutPorts[0])
	}
}

// TestForkInsertion builds A(3)->B(1) with B firing 3 times off a single
// A firing's larger production split three ways: with 3x the sink rate
// on a source producing a single big unit, the dependency walk should
// insert exactly one FORK vertex feeding all three B clones.
func TestForkInsertion(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 0, 1)
	b, _ := g.AddVertex("B", pisdf.NORMAL, 1, 0)
	if _, ds := g.AddEdge(a, 0, rate(3), b, 0, rate(1)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	job := &Job{Ref: g}
	_, _, ds := Transform(job, srdag)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}

	var forkCount, bCount int
	var forkV *pisdf.Vertex
	for _, v := range srdag.LiveVertices() {
		if v.Subtype == pisdf.FORK {
			forkCount++
			forkV = v
		}
		if v.Subtype == pisdf.NORMAL && v.Name[0] == 'B' {
			bCount++
		}
	}
	if forkCount != 1 {
		t.Fatalf("expected exactly one FORK vertex, got %d", forkCount)
	}
	if bCount != 3 {
		t.Fatalf("expected 3 clones of B, got %d", bCount)
	}
	if len(forkV.OutPorts) != 3 {
		t.Fatalf("expected FORK to have 3 output ports, got %d", len(forkV.OutPorts))
	}
	for i, e := range forkV.OutPorts {
		if e == nil {
			t.Fatalf("FORK output port %d unconnected", i)
		}
	}
}

// TestJoinInsertion builds A(1)->B(3) with B firing once consuming from
// three A firings: the dependency walk should insert exactly one JOIN
// with 3 input ports.
func TestJoinInsertion(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 0, 1)
	b, _ := g.AddVertex("B", pisdf.NORMAL, 1, 0)
	if _, ds := g.AddEdge(a, 0, rate(1), b, 0, rate(3)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	job := &Job{Ref: g}
	_, _, ds := Transform(job, srdag)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}

	var joinCount int
	var joinV *pisdf.Vertex
	for _, v := range srdag.LiveVertices() {
		if v.Subtype == pisdf.JOIN {
			joinCount++
			joinV = v
		}
	}
	if joinCount != 1 {
		t.Fatalf("expected exactly one JOIN vertex, got %d", joinCount)
	}
	if len(joinV.InPorts) != 3 {
		t.Fatalf("expected JOIN to have 3 input ports, got %d", len(joinV.InPorts))
	}
	for i, e := range joinV.InPorts {
		if e == nil {
			t.Fatalf("JOIN input port %d unconnected", i)
		}
	}
}

// TestSelfLoopWithoutDelayIsAnError exercises the construction-error path
// for a self-loop edge carrying no delay.
func TestSelfLoopWithoutDelayIsAnError(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 1, 1)
	if _, ds := g.AddEdge(a, 0, rate(1), a, 0, rate(1)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	job := &Job{Ref: g}
	_, _, ds := Transform(job, srdag)
	if !ds.HasErrors() {
		t.Fatalf("expected an error for a self-loop without a delay")
	}
}

// TestSelfLoopWithDelayLinksAcrossFirings builds a 3-firing self-loop with
// a delay of one token: firing k (k>0) should read firing k-1's output,
// and firing 0 should read from a synthesized getter (INIT) vertex.
func TestSelfLoopWithDelayLinksAcrossFirings(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 2, 2)
	src, _ := g.AddVertex("Src", pisdf.NORMAL, 0, 1)
	snk, _ := g.AddVertex("Snk", pisdf.NORMAL, 1, 0)
	if _, ds := g.AddEdge(src, 0, rate(3), a, 0, rate(1)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := g.AddEdge(a, 0, rate(1), snk, 0, rate(3)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	selfEdge, ds := g.AddEdge(a, 1, rate(1), a, 1, rate(1))
	if ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, dds := pisdf.CreateLocalDelay(selfEdge, rate(1), nil, 0, nil, 0); dds != nil {
		t.Fatalf("unexpected: %v", dds)
	}

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	job := &Job{Ref: g}
	_, _, tds := Transform(job, srdag)
	if tds.HasErrors() {
		t.Fatalf("unexpected errors: %v", tds)
	}

	var initCount int
	for _, v := range srdag.LiveVertices() {
		if v.Subtype == pisdf.INIT {
			initCount++
		}
	}
	if initCount != 1 {
		t.Fatalf("expected exactly one synthesized INIT (getter) vertex, got %d", initCount)
	}
}

// TestNullEdgeLinksAtRateZero builds an edge with both rates zero and
// checks it is linked without error at rate zero rather than dropped.
func TestNullEdgeLinksAtRateZero(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	a, _ := g.AddVertex("A", pisdf.NORMAL, 0, 1)
	b, _ := g.AddVertex("B", pisdf.NORMAL, 1, 0)
	if _, ds := g.AddEdge(a, 0, rate(0), b, 0, rate(0)); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	job := &Job{Ref: g}
	_, _, ds := Transform(job, srdag)
	if ds.HasErrors() {
		t.Fatalf("unexpected errors: %v", ds)
	}

	var aClone, bClone *pisdf.Vertex
	for _, v := range srdag.LiveVertices() {
		if v.Name == "A_0" {
			aClone = v
		}
		if v.Name == "B_0" {
			bClone = v
		}
	}
	if aClone == nil || bClone == nil {
		t.Fatalf("expected one clone each of A and B")
	}
	if aClone.OutPorts[0] == nil || aClone.OutPorts[0].Snk != bClone {
		t.Fatalf("expected null edge linked directly between the two clones")
	}
}
