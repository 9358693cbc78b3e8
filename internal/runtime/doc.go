// Package runtime implements the GRT/LRT coordinator described in spec
// §4.H and §5: one goroutine per processing element (the LRT), one
// coordinating goroutine (the GRT), and the five-step dispatch/execute/
// complete protocol between them.
//
// Concurrency shape grounded on other_examples' go-taskflow executor
// (worker-pool dispatch loop). The GRT works in waves: it schedules the
// current single-rate DAG, sends each LRT the not-yet-executed firings
// mapped to it as one ordered list, and waits for all of their
// completions. The GRT keeps no per-firing dependency count; an LRT
// waits on a firing's input FIFOs before running its kernel.
// golang.org/x/sync/errgroup coordinates the LRT goroutines and
// surfaces the first one that errors, cancelling the rest; teacher
// go.mod direct dependency. github.com/google/uuid stamps every
// dispatched task with an id carried into its completion, never used
// for scheduling decisions. Coordinator.Run reports only that first
// errgroup error, as a single diagnostic; errors are not aggregated.
//
// Simplification (documented per the task's grounding-ledger process):
// a configuration actor's DYNAMIC parameter outputs are written both to
// the live pisdf.Param (SetValue) and directly into the producing job's
// own Snapshot, rather than propagated through every sibling firing's
// independently deep-copied snapshot. This is exact for the common case
// every spec §8 scenario exercises (each dynamic subgraph instantiated
// once per enclosing firing); a graph with multiple concurrently
// divergent firings of the same dynamic subgraph within one coordinator
// iteration is out of scope for this engine.
package runtime
