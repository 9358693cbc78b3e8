package fifo

import "context"

// FIFO materializes one edge of the firing DAG (spec §3, "FIFO"): a byte
// region plus, under Default sync mode, an explicit ready signal a
// consumer firing waits on before reading (spec §4.G: "synchronization
// ... signaled via worker notifications"). Under DefaultNoSync the
// signal is pre-fired: the allocator's placement (same PE or a coherent
// memory domain) is trusted to already guarantee ordering.
type FIFO struct {
	Region Region
	Bytes  []byte
	Mode   SyncMode

	ready     chan struct{}
	signalled bool
}

func newFIFO(region Region, data []byte, mode SyncMode) *FIFO {
	f := &FIFO{Region: region, Bytes: data, Mode: mode, ready: make(chan struct{})}
	if mode == DefaultNoSync {
		close(f.ready)
		f.signalled = true
	}
	return f
}

// Signal marks the FIFO ready for readers (internal/runtime calls this
// once a writer firing's kernel returns, spec §4.H step 3: "signal output
// FIFOs ready"). Idempotent.
func (f *FIFO) Signal() {
	if f.signalled {
		return
	}
	f.signalled = true
	close(f.ready)
}

// Wait blocks until Signal has fired, or ctx is done.
func (f *FIFO) Wait(ctx context.Context) error {
	select {
	case <-f.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
