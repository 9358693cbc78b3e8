package srt

import (
	"testing"

	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// TestHandleNullEdgePadsShorterSide builds a null edge where the source
// clone block has 2 firings and the sink has none, checking a void
// consumer is synthesized for each of the two source firings.
func TestHandleNullEdgePadsShorterSide(t *testing.T) {
	g := pisdf.NewGraph("top", pisdf.Counts{})
	src, _ := g.AddVertex("Src", pisdf.NORMAL, 0, 1)
	snk, _ := g.AddVertex("Snk", pisdf.NORMAL, 1, 0)
	e, ds := g.AddEdge(src, 0, rate(0), snk, 0, rate(0))
	if ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	s0, _ := srdag.AddVertex("Src_0", pisdf.NORMAL, 0, 1)
	s1, _ := srdag.AddVertex("Src_1", pisdf.NORMAL, 0, 1)
	srcBlock := cloneBlock{vertices: []*pisdf.Vertex{s0, s1}, port: -1}
	snkBlock := cloneBlock{vertices: nil, port: -1}

	hds := handleNullEdge(srdag, srcBlock, snkBlock, e)
	if hds.HasErrors() {
		t.Fatalf("unexpected errors: %v", hds)
	}

	var voidCount, edgeCount int
	for _, v := range srdag.LiveVertices() {
		if len(v.Name) >= 6 && v.Name[:6] == "void::" {
			voidCount++
		}
	}
	for _, ed := range srdag.Edges {
		if ed.Src == s0 || ed.Src == s1 {
			edgeCount++
		}
	}
	if voidCount != 2 {
		t.Fatalf("expected 2 synthesized void consumers, got %d", voidCount)
	}
	if edgeCount != 2 {
		t.Fatalf("expected both source firings linked, got %d edges", edgeCount)
	}
}
