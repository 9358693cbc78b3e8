package platform

import "testing"

func TestNewPlatformReservesKernelPrefix(t *testing.T) {
	p := NewPlatform()
	for _, name := range reservedKernelNames {
		id := ReservedID(name)
		if id < 0 {
			t.Fatalf("expected %q to be reserved", name)
		}
		if _, ok := p.Kernels.Lookup(id); !ok {
			t.Fatalf("expected reserved kernel %q to resolve", name)
		}
	}
	if _, ok := p.Kernels.Lookup(len(reservedKernelNames)); ok {
		t.Fatalf("expected no user kernel registered yet")
	}
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	p := NewPlatform()
	fn := func(_, _ []float64, _, _ [][]byte) error { return nil }
	if _, ds := p.Kernels.Register("my_kernel", fn); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if _, ds := p.Kernels.Register("my_kernel", fn); !ds.HasErrors() {
		t.Fatalf("expected duplicate kernel name to be rejected")
	}
}

func TestClusterAddPEAssignsStableIndexAndGRT(t *testing.T) {
	p := NewPlatform()
	c := p.AddCluster(&MemoryInterface{Size: 1024, Alignment: 8})
	pe0, ds := c.AddPE(0, 0, "core0", LRT, 0)
	if ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	pe1, _ := c.AddPE(0, 1, "core1", LRT, 1)
	if pe0.Index != 0 || pe1.Index != 1 {
		t.Fatalf("expected stable 0/1 indices, got %d/%d", pe0.Index, pe1.Index)
	}
	if ds := p.SetGRT(pe0); ds != nil {
		t.Fatalf("unexpected: %v", ds)
	}
	if p.GRT != pe0 {
		t.Fatalf("expected GRT == pe0")
	}
	if len(p.LRTs()) != 2 {
		t.Fatalf("expected 2 LRTs, got %d", len(p.LRTs()))
	}
}

func TestForkKernelSplitsInputAcrossOutputs(t *testing.T) {
	fn := reservedKernelFuncs["fork"]
	in := [][]byte{{1, 2, 3, 4}}
	out := [][]byte{make([]byte, 2), make([]byte, 2)}
	if err := fn(nil, nil, in, out); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if out[0][0] != 1 || out[0][1] != 2 || out[1][0] != 3 || out[1][1] != 4 {
		t.Fatalf("unexpected fork split: %v", out)
	}
}

func TestJoinKernelConcatenatesInputs(t *testing.T) {
	fn := reservedKernelFuncs["join"]
	in := [][]byte{{1, 2}, {3, 4}}
	out := [][]byte{make([]byte, 4)}
	if err := fn(nil, nil, in, out); err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	want := []byte{1, 2, 3, 4}
	for i := range want {
		if out[0][i] != want[i] {
			t.Fatalf("unexpected join result: %v", out[0])
		}
	}
}

func TestExternBufferRegistryRoundTrips(t *testing.T) {
	p := NewPlatform()
	buf := []byte{9, 9}
	idx := p.RegisterExternBuffer(buf)
	got, ok := p.ExternBuffer(idx)
	if !ok || &got[0] != &buf[0] {
		t.Fatalf("expected registered buffer to round-trip by index")
	}
	if _, ok := p.ExternBuffer(idx + 1); ok {
		t.Fatalf("expected out-of-range index to miss")
	}
}
