package mapper

import (
	"testing"

	"github.com/preesm/spider2-sub000/internal/platform"
	"github.com/preesm/spider2-sub000/internal/schedule"
)

func twoPEs(t *testing.T) (*platform.PE, *platform.PE) {
	t.Helper()
	p := platform.NewPlatform()
	c := p.AddCluster(&platform.MemoryInterface{Size: 1024, Alignment: 8})
	pe0, _ := c.AddPE(0, 0, "core0", platform.LRT, 0)
	pe1, _ := c.AddPE(0, 1, "core1", platform.LRT, 1)
	return pe0, pe1
}

func TestBestFitPicksEarliestProjectedEnd(t *testing.T) {
	pe0, pe1 := twoPEs(t)
	f := &schedule.Firing{}
	candidates := []schedule.Candidate{
		{PE: pe0, AvailableAfter: 100},
		{PE: pe1, AvailableAfter: 10},
	}
	exec := func(_ *schedule.Firing, _ *platform.PE) int64 { return 5 }
	comm := func(_, _ *schedule.Firing) int64 { return 0 }

	pick, ds := BestFit{}.Map(f, candidates, exec, comm)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if pick != pe1 {
		t.Fatalf("expected BEST_FIT to choose the PE with the earlier queue tail")
	}
}

func TestBestFitWaitsOnUnfinishedDependency(t *testing.T) {
	pe0, pe1 := twoPEs(t)
	dep := &schedule.Firing{End: 1000}
	f := &schedule.Firing{Deps: []*schedule.Firing{dep}}
	candidates := []schedule.Candidate{
		{PE: pe0, AvailableAfter: 0},
		{PE: pe1, AvailableAfter: 2000}, // busy until after dep ends, and busier than pe0
	}
	exec := func(_ *schedule.Firing, _ *platform.PE) int64 { return 1 }
	comm := func(_, _ *schedule.Firing) int64 { return 50 }

	pick, ds := BestFit{}.Map(f, candidates, exec, comm)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	// pe0: start = max(0, 1000+50) = 1050, end = 1051.
	// pe1: start = max(2000, 1050) = 2000, end = 2001.
	if pick != pe0 {
		t.Fatalf("expected BEST_FIT to prefer pe0, whose dependency-bound start (1050) precedes pe1's queue tail (2000)")
	}
}

func TestBestFitRejectsEmptyCandidates(t *testing.T) {
	f := &schedule.Firing{}
	exec := func(_ *schedule.Firing, _ *platform.PE) int64 { return 1 }
	comm := func(_, _ *schedule.Firing) int64 { return 0 }
	_, ds := BestFit{}.Map(f, nil, exec, comm)
	if !ds.HasErrors() {
		t.Fatalf("expected empty candidate set to be a configuration error")
	}
}

func TestRoundRobinCyclesCandidates(t *testing.T) {
	pe0, pe1 := twoPEs(t)
	rr := &RoundRobin{}
	candidates := []schedule.Candidate{{PE: pe0}, {PE: pe1}}
	f := &schedule.Firing{}

	first, _ := rr.Map(f, candidates, nil, nil)
	second, _ := rr.Map(f, candidates, nil, nil)
	third, _ := rr.Map(f, candidates, nil, nil)

	if first != pe0 || second != pe1 || third != pe0 {
		t.Fatalf("expected round-robin cycle pe0,pe1,pe0; got %v,%v,%v", first, second, third)
	}
}

func TestRoundRobinRejectsEmptyCandidates(t *testing.T) {
	rr := &RoundRobin{}
	f := &schedule.Firing{}
	_, ds := rr.Map(f, nil, nil, nil)
	if !ds.HasErrors() {
		t.Fatalf("expected empty candidate set to be a configuration error")
	}
}
