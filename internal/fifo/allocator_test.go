package fifo

import "testing"

func TestAllocateAlignsAndSplits(t *testing.T) {
	a := New(256, 16, FindFirst, Default)
	r, ds := a.Allocate(10)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if r.Offset%16 != 0 {
		t.Fatalf("expected aligned offset, got %d", r.Offset)
	}
	if r.Size != 10 {
		t.Fatalf("expected size 10, got %d", r.Size)
	}
	r2, ds := a.Allocate(10)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if r2.Offset == r.Offset {
		t.Fatalf("expected distinct regions")
	}
}

func TestDeallocateCoalescesAdjacentFreeBlocks(t *testing.T) {
	a := New(64, 8, FindFirst, Default)
	r1, _ := a.Allocate(16)
	r2, _ := a.Allocate(16)
	if ds := a.Deallocate(r1); ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if ds := a.Deallocate(r2); ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	// A fresh allocation spanning both freed+coalesced blocks should
	// succeed without growing a new buffer.
	if _, ds := a.Allocate(32); ds.HasErrors() {
		t.Fatalf("expected coalesced block to satisfy a 32-byte request: %v", ds)
	}
	if a.BufferCount() != 1 {
		t.Fatalf("expected no overflow buffer, got %d buffers", a.BufferCount())
	}
}

func TestDeallocateRejectsUnknownRegion(t *testing.T) {
	a := New(64, 8, FindFirst, Default)
	if ds := a.Deallocate(Region{Buffer: 0, Offset: 0, Size: 8}); !ds.HasErrors() {
		t.Fatalf("expected deallocating an unallocated region to fail")
	}
}

func TestOverflowGrowsExtraBuffer(t *testing.T) {
	a := New(16, 8, FindFirst, Default)
	if _, ds := a.Allocate(8); ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	// Static buffer now has 8 bytes left; request more than fits.
	r, ds := a.Allocate(64)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if r.Buffer == 0 {
		t.Fatalf("expected overflow allocation to land in an extra buffer")
	}
	if a.BufferCount() != 2 {
		t.Fatalf("expected exactly one extra buffer, got %d", a.BufferCount())
	}
}

func TestFindBestPicksTightestFit(t *testing.T) {
	a := New(128, 8, FindBest, Default)
	// Carve three adjacent blocks; keep the middle one (y) allocated so
	// the two freed blocks (x, z) never coalesce into one.
	x, _ := a.Allocate(64) // offset 0, size 64 -> leftover 32 if reused
	_, _ = a.Allocate(16)  // offset 64, stays allocated as a spacer
	z, _ := a.Allocate(40) // offset 80, size 40; freed, it merges with the 8-byte tail into 48 -> leftover 16 if reused
	if ds := a.Deallocate(x); ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if ds := a.Deallocate(z); ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	// A 32-byte request fits both free blocks; best-fit must choose the
	// 48-byte block at z's offset (leftover 16) over the 64-byte block
	// (leftover 32).
	r, ds := a.Allocate(32)
	if ds.HasErrors() {
		t.Fatalf("unexpected: %v", ds)
	}
	if r.Offset != z.Offset {
		t.Fatalf("expected best-fit to choose the tighter block at offset %d, got %d", z.Offset, r.Offset)
	}
}

func TestResetReclaimsEverySingleBlock(t *testing.T) {
	a := New(64, 8, FindFirst, Default)
	a.Allocate(16)
	a.Allocate(16)
	a.Reset()
	r, ds := a.Allocate(64)
	if ds.HasErrors() {
		t.Fatalf("expected full buffer reclaimed after reset: %v", ds)
	}
	if r.Offset != 0 || r.Size != 64 {
		t.Fatalf("expected a single full-span block, got %+v", r)
	}
}

func TestDefaultNoSyncFIFOIsPreSignalled(t *testing.T) {
	f := newFIFO(Region{Size: 4}, make([]byte, 4), DefaultNoSync)
	select {
	case <-f.ready:
	default:
		t.Fatalf("expected DefaultNoSync FIFO to be pre-signalled")
	}
}

func TestDefaultSyncFIFORequiresSignal(t *testing.T) {
	f := newFIFO(Region{Size: 4}, make([]byte, 4), Default)
	select {
	case <-f.ready:
		t.Fatalf("expected Default-mode FIFO to block until Signal")
	default:
	}
	f.Signal()
	select {
	case <-f.ready:
	default:
		t.Fatalf("expected FIFO ready after Signal")
	}
}
