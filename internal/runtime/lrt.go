package runtime

import (
	"context"
	"fmt"
	"sync"

	"github.com/preesm/spider2-sub000/internal/platform"
)

// State is an LRT's position in its per-task state machine (spec §4.H:
// "Idle -> Dispatching -> Executing -> Notifying -> Idle|Terminated").
type State int

const (
	Idle State = iota
	Dispatching
	Executing
	Notifying
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dispatching:
		return "Dispatching"
	case Executing:
		return "Executing"
	case Notifying:
		return "Notifying"
	case Terminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// lrtWorker is one local runtime thread: it owns one PE, one inbound
// SPSC queue the GRT is the sole writer of, and runs kernels dispatched
// to it strictly in the order they were pushed (spec §5: "same-PE push
// order and completion order preserved").
type lrtWorker struct {
	pe    *platform.PE
	inbox chan *taskMessage

	mu    sync.Mutex
	state State
}

func newLRTWorker(pe *platform.PE) *lrtWorker {
	return &lrtWorker{pe: pe, inbox: make(chan *taskMessage), state: Idle}
}

func (w *lrtWorker) setState(s State) {
	w.mu.Lock()
	w.state = s
	w.mu.Unlock()
}

// State reports the worker's current state, useful for diagnostics/tests.
func (w *lrtWorker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// run drains w.inbox until a Terminate message arrives, ctx is
// cancelled, or the inbox is closed. Cancellation only takes effect at
// a task boundary: an in-flight kernel is never interrupted (spec §5:
// "cooperative cancellation ... after draining current task").
func (w *lrtWorker) run(ctx context.Context) error {
	for {
		select {
		case msg, ok := <-w.inbox:
			if !ok {
				w.setState(Terminated)
				return nil
			}
			if msg.kind == Terminate {
				w.setState(Terminated)
				return nil
			}
			if err := w.execute(ctx, msg); err != nil {
				return err
			}
		case <-ctx.Done():
			w.setState(Terminated)
			return ctx.Err()
		}
	}
}

func (w *lrtWorker) execute(ctx context.Context, msg *taskMessage) error {
	w.setState(Dispatching)
	for _, f := range msg.inputFIFOs {
		if err := f.Wait(ctx); err != nil {
			w.sendCompletion(msg, fmt.Errorf("waiting on input FIFO for %q: %w", msg.vertex.Name, err))
			return nil
		}
	}

	w.setState(Executing)
	var kernelErr error
	if msg.kernel != nil {
		kernelErr = msg.kernel(msg.inputParams, msg.outputParams, msg.inputBuffers, msg.outputBuffers)
	} else {
		kernelErr = fmt.Errorf("vertex %q has no bound runtime kernel", msg.vertex.Name)
	}

	w.setState(Notifying)
	for _, f := range msg.outputFIFOs {
		f.Signal()
	}
	w.sendCompletion(msg, kernelErr)
	w.setState(Idle)
	return nil
}

func (w *lrtWorker) sendCompletion(msg *taskMessage, err error) {
	msg.completions <- completion{id: msg.id, vertex: msg.vertex, pe: w.pe, outputParams: msg.outputParams, err: err}
}
