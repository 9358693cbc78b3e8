package dot

import (
	"strings"
	"testing"

	"github.com/preesm/spider2-sub000/internal/api"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
	"github.com/preesm/spider2-sub000/internal/schedule"
)

func buildPipeline(t *testing.T) *pisdf.Graph {
	t.Helper()
	g := api.CreateGraph("top", pisdf.Counts{})
	a, ds := api.CreateVertex(g, "A", 0, 1)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	b, ds := api.CreateVertex(g, "B", 1, 0)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	e, ds := api.CreateEdge(g, a, 0, "8", b, 0, "8")
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := api.CreateLocalDelay(e, "4", nil, 0, nil, 0); ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	return g
}

func TestWriteGraphRendersVerticesEdgesAndDelay(t *testing.T) {
	g := buildPipeline(t)

	var sb strings.Builder
	if err := WriteGraph(&sb, g); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	out := sb.String()

	if !strings.HasPrefix(out, "digraph {\n") {
		t.Fatalf("output does not start with digraph header: %q", out)
	}
	for _, want := range []string{"\"top_A\"", "\"top_B\"", "cluster_top", "shape=circle", "label=\"4\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteGraphRecursesIntoSubgraphs(t *testing.T) {
	top := api.CreateGraph("top", pisdf.Counts{})
	owner, ds := api.CreateHierarchyVertex(top, "G", 0, 0)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	sub, ds := api.CreateSubgraph(owner, "G", pisdf.Counts{})
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := api.CreateVertex(sub, "inner", 0, 0); ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}

	var sb strings.Builder
	if err := WriteGraph(&sb, top); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "cluster_G") || !strings.Contains(out, "\"G_inner\"") {
		t.Fatalf("output missing nested subgraph cluster/vertex:\n%s", out)
	}
}

func TestWriteGanttRendersPerPETimeline(t *testing.T) {
	p := platform.NewPlatform()
	cluster := p.AddCluster(&platform.MemoryInterface{Size: 4096, Alignment: 8})
	pe, ds := cluster.AddPE(0, 0, "core0", platform.LRT, 0)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}

	v := &pisdf.Vertex{Name: "A"}
	f := &schedule.Firing{Vertex: v, PE: pe, Start: 0, End: 10}
	sched := &schedule.Schedule{
		Firings: []*schedule.Firing{f},
		PETasks: map[*platform.PE][]*schedule.Firing{pe: {f}},
	}

	var sb strings.Builder
	if err := WriteGantt(&sb, sched); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	out := sb.String()
	for _, want := range []string{"cluster_core0", "core0_A", "[0,10)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}
