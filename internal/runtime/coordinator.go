package runtime

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hashicorp/go-hclog"

	"github.com/preesm/spider2-sub000/internal/config"
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/fifo"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
	"github.com/preesm/spider2-sub000/internal/schedule"
	"github.com/preesm/spider2-sub000/internal/srt"
)

var errIterationFailed = errors.New("runtime: iteration failed")

// configOwner records which (job, original configuration-actor vertex)
// an srdag CONFIG clone was cloned from, so a completed firing's output
// parameters can be written back to the right Param objects and the
// right job's live snapshot (spec §4.H step 4).
type configOwner struct {
	job  *srt.Job
	orig *pisdf.Vertex
}

// Coordinator is the GRT: it owns the platform, the FIFO manager, one
// persistent lrtWorker goroutine per LRT processing element, and drives
// the flatten/schedule/dispatch/collect loop once per run iteration
// (spec §4.H, §5).
type Coordinator struct {
	platform *platform.Platform
	cfg      config.RunConfig
	fifos    *fifo.Manager
	logger   hclog.Logger

	workers map[*platform.PE]*lrtWorker
	peOf    map[*pisdf.Vertex]*platform.PE

	configOwners map[*pisdf.Vertex]configOwner
}

// NewCoordinator builds a coordinator for platform p under cfg. p must
// have at least one LRT processing element.
func NewCoordinator(p *platform.Platform, cfg config.RunConfig) (*Coordinator, diag.Diagnostics) {
	cfg = cfg.WithDefaults()
	if ds := cfg.Validate(); ds.HasErrors() {
		return nil, ds
	}
	lrts := p.LRTs()
	if len(lrts) == 0 {
		return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, "",
			"platform has no LRT processing element", "at least one PE must have role LRT to execute anything")}
	}

	policy, mode := cfg.FIFOPolicyAndMode()
	c := &Coordinator{
		platform:     p,
		cfg:          cfg,
		fifos:        fifo.NewManager(mode, policy),
		logger:       cfg.Logger,
		workers:      make(map[*platform.PE]*lrtWorker, len(lrts)),
		peOf:         make(map[*pisdf.Vertex]*platform.PE),
		configOwners: make(map[*pisdf.Vertex]configOwner),
	}
	for _, pe := range lrts {
		c.workers[pe] = newLRTWorker(pe)
	}
	return c, nil
}

// Run executes top for the configured run mode/loop count, spawning one
// goroutine per LRT plus the GRT loop under a shared errgroup so any
// worker failure cancels the rest (spec §5: cooperative cancellation).
func (c *Coordinator) Run(ctx context.Context, top *pisdf.Graph, initial pisdf.Snapshot) diag.Diagnostics {
	g, gctx := errgroup.WithContext(ctx)
	for _, w := range c.workers {
		w := w
		g.Go(func() error { return w.run(gctx) })
	}

	var ds diag.Diagnostics
	loopCount := 1
	if c.cfg.RunMode == config.Loop {
		loopCount = c.cfg.LoopCount
	}

	g.Go(func() error {
		defer c.terminateWorkers()
		for iter := 0; iter < loopCount; iter++ {
			c.logger.Debug("starting iteration", "index", iter)
			iterDs := c.runIteration(gctx, top, initial)
			ds = append(ds, iterDs...)
			if iterDs.HasErrors() {
				return errIterationFailed
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errIterationFailed) && !errors.Is(err, context.Canceled) {
		ds = append(ds, diag.New(diag.Error, diag.RuntimeErr, "", "LRT worker failed", err.Error()))
	}
	return ds
}

func (c *Coordinator) terminateWorkers() {
	for _, w := range c.workers {
		w.inbox <- &taskMessage{kind: Terminate}
	}
}

// runIteration flattens top's entire hierarchy into one single-rate
// firing DAG, interleaving configuration-actor execution with further
// SRT transformation as dynamic-gated subgraphs become resolvable, then
// tears the DAG and its FIFOs down once every firing has completed
// (spec §4.D/§4.H).
func (c *Coordinator) runIteration(ctx context.Context, top *pisdf.Graph, initial pisdf.Snapshot) diag.Diagnostics {
	var ds diag.Diagnostics
	c.fifos.Reset()
	c.peOf = make(map[*pisdf.Vertex]*platform.PE)
	c.configOwners = make(map[*pisdf.Vertex]configOwner)

	srdag := pisdf.NewGraph("srdag", pisdf.Counts{})
	topJob := &srt.Job{Ref: top, Firing: 0, Params: initial}
	staticStack := []*srt.Job{topJob}
	var dynamicStack []*srt.Job
	executed := make(map[*pisdf.Vertex]bool)

	for {
		for len(staticStack) > 0 {
			job := staticStack[len(staticStack)-1]
			staticStack = staticStack[:len(staticStack)-1]

			before := len(srdag.Vertices)
			st, dyn, tds := srt.Transform(job, srdag)
			ds = append(ds, tds...)
			if tds.HasErrors() {
				continue
			}
			c.recordConfigOwners(job, srdag, before)
			staticStack = append(staticStack, st...)
			dynamicStack = append(dynamicStack, dyn...)
		}
		if ds.HasErrors() {
			return ds
		}

		pending := pendingVertices(srdag, executed)
		if len(pending) > 0 {
			waveDs := c.runWave(ctx, srdag, pending, executed)
			ds = append(ds, waveDs...)
			if ds.HasErrors() {
				return ds
			}
		}

		if len(dynamicStack) == 0 {
			break
		}

		var stillGated []*srt.Job
		progressed := false
		for _, job := range dynamicStack {
			if snap, resolved := srt.ResolveFutureJob(job); resolved {
				job.Params = snap
				staticStack = append(staticStack, job)
				progressed = true
			} else {
				stillGated = append(stillGated, job)
			}
		}
		dynamicStack = stillGated
		if !progressed {
			ds = append(ds, diag.New(diag.Error, diag.Model, "",
				"dynamic job stack made no progress",
				"a dynamic-gated subgraph's parameters never resolved this iteration"))
			return ds
		}
	}

	return ds
}

// recordConfigOwners associates each CONFIG-subtype clone newly added to
// srdag by transforming job with the (job, original vertex) pair that
// produced it, identified by the clone-naming convention Transform uses
// ("<name>_<firing index>") rather than by replicating Transform's
// internal cloning order.
func (c *Coordinator) recordConfigOwners(job *srt.Job, srdag *pisdf.Graph, before int) {
	if len(job.Ref.ConfigActors) == 0 {
		return
	}
	newVertices := srdag.Vertices[before:]
	for _, orig := range job.Ref.ConfigActors {
		prefix := orig.Name + "_"
		for _, clone := range newVertices {
			if clone.Subtype != pisdf.CONFIG || !strings.HasPrefix(clone.Name, prefix) {
				continue
			}
			if _, err := strconv.Atoi(strings.TrimPrefix(clone.Name, prefix)); err != nil {
				continue
			}
			c.configOwners[clone] = configOwner{job: job, orig: orig}
		}
	}
}

func pendingVertices(srdag *pisdf.Graph, executed map[*pisdf.Vertex]bool) []*pisdf.Vertex {
	var out []*pisdf.Vertex
	for _, v := range srdag.LiveVertices() {
		if v.Subtype.IsInterface() || executed[v] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// runWave schedules srdag's entire current vertex set (cheap, and
// idempotent for already-placed firings since BEST_FIT/GREEDY depend
// only on live queue-tail state) but dispatches only the vertices not
// yet in executed, in their scheduler-assigned per-PE order, then
// blocks for every dispatched firing's completion.
func (c *Coordinator) runWave(ctx context.Context, srdag *pisdf.Graph, pending []*pisdf.Vertex, executed map[*pisdf.Vertex]bool) diag.Diagnostics {
	lrtPEs := c.platform.LRTs()
	allowedPEs := func(v *pisdf.Vertex) []*platform.PE { return lrtPEs }

	sched, ds := schedule.Run(srdag, allowedPEs, estimateExecTime, estimateCommCost, c.cfg.Policy(), c.cfg.Mapper())
	if ds.HasErrors() {
		return ds
	}

	pendingSet := make(map[*pisdf.Vertex]bool, len(pending))
	for _, v := range pending {
		pendingSet[v] = true
	}

	for pe, tasks := range sched.PETasks {
		for _, f := range tasks {
			if pendingSet[f.Vertex] {
				c.peOf[f.Vertex] = pe
			}
		}
	}

	if err := c.allocateFIFOs(srdag, pendingSet); err != nil {
		return err
	}

	completions := make(chan completion, len(pending))
	dispatched := 0
	for pe, tasks := range sched.PETasks {
		w, ok := c.workers[pe]
		if !ok {
			continue
		}
		var toSend []*taskMessage
		for _, f := range tasks {
			if !pendingSet[f.Vertex] {
				continue
			}
			msg, mds := c.buildMessage(f.Vertex, completions)
			ds = append(ds, mds...)
			if msg == nil {
				continue
			}
			toSend = append(toSend, msg)
			dispatched++
		}
		if len(toSend) == 0 {
			continue
		}
		go func(w *lrtWorker, msgs []*taskMessage) {
			for _, m := range msgs {
				select {
				case w.inbox <- m:
				case <-ctx.Done():
					return
				}
			}
		}(w, toSend)
	}
	if ds.HasErrors() {
		return ds
	}

	for i := 0; i < dispatched; i++ {
		select {
		case comp := <-completions:
			executed[comp.vertex] = true
			if comp.err != nil {
				ds = append(ds, diag.New(diag.Error, diag.RuntimeErr, comp.vertex.Name,
					"kernel execution failed", comp.err.Error()))
				continue
			}
			c.deliverConfigOutput(comp)
		case <-ctx.Done():
			ds = append(ds, diag.New(diag.Error, diag.RuntimeErr, "", "run cancelled", ctx.Err().Error()))
			return ds
		}
	}
	return ds
}

// allocateFIFOs ensures every edge feeding a pending (about-to-execute)
// vertex has a materialized FIFO, allocated on the producer's cluster.
func (c *Coordinator) allocateFIFOs(srdag *pisdf.Graph, pendingSet map[*pisdf.Vertex]bool) diag.Diagnostics {
	var ds diag.Diagnostics
	for _, e := range srdag.Edges {
		if e.Src == nil || e.Snk == nil {
			continue
		}
		if !pendingSet[e.Src] && !pendingSet[e.Snk] {
			continue
		}
		if _, ok := c.fifos.Lookup(e); ok {
			continue
		}
		pe, ok := c.peOf[e.Src]
		if !ok {
			pe, ok = c.peOf[e.Snk]
		}
		if !ok || pe.Cluster == nil {
			ds = append(ds, diag.New(diag.Error, diag.RuntimeErr, e.Src.Name,
				"edge endpoint has no resolved processing element/cluster", ""))
			continue
		}
		size := edgeBytes(e)
		if size <= 0 {
			size = 1
		}
		if _, fds := c.fifos.Allocate(pe.Cluster, e, size); fds.HasErrors() {
			ds = append(ds, fds...)
		}
	}
	return ds
}

func (c *Coordinator) buildMessage(v *pisdf.Vertex, completions chan<- completion) (*taskMessage, diag.Diagnostics) {
	kernel, kds := resolveKernel(c.platform, v)
	if kds.HasErrors() {
		return nil, kds
	}

	var inFIFOs, outFIFOs []*fifo.FIFO
	var inBuffers, outBuffers [][]byte
	for _, e := range v.InPorts {
		if e == nil {
			continue
		}
		f, ok := c.fifos.Lookup(e)
		if !ok {
			return nil, diag.Diagnostics{diag.New(diag.Error, diag.RuntimeErr, v.Name, "missing input FIFO", "")}
		}
		inFIFOs = append(inFIFOs, f)
		inBuffers = append(inBuffers, f.Bytes)
	}
	for _, e := range v.OutPorts {
		if e == nil {
			continue
		}
		f, ok := c.fifos.Lookup(e)
		if !ok {
			return nil, diag.Diagnostics{diag.New(diag.Error, diag.RuntimeErr, v.Name, "missing output FIFO", "")}
		}
		outFIFOs = append(outFIFOs, f)
		outBuffers = append(outBuffers, f.Bytes)
	}

	inputParams := paramValues(v.InputParamPorts)
	outputParams := make([]float64, len(v.OutputParamPorts))

	return &taskMessage{
		id:            uuid.New(),
		kind:          Dispatch,
		vertex:        v,
		kernel:        kernel,
		inputParams:   inputParams,
		outputParams:  outputParams,
		inputBuffers:  inBuffers,
		outputBuffers: outBuffers,
		inputFIFOs:    inFIFOs,
		outputFIFOs:   outFIFOs,
		completions:   completions,
	}, nil
}

func paramValues(ports []*pisdf.Param) []float64 {
	if len(ports) == 0 {
		return nil
	}
	out := make([]float64, len(ports))
	for i, p := range ports {
		if p == nil {
			continue
		}
		if v, ok := p.Value(); ok {
			out[i] = v
		}
	}
	return out
}

func (c *Coordinator) deliverConfigOutput(comp completion) {
	owner, ok := c.configOwners[comp.vertex]
	if !ok {
		return
	}
	for i, p := range owner.orig.OutputParamPorts {
		if p == nil || i >= len(comp.outputParams) {
			continue
		}
		v := comp.outputParams[i]
		p.SetValue(v)
		if owner.job.Params != nil && p.Index >= 0 && p.Index < len(owner.job.Params) {
			owner.job.Params[p.Index] = v
		}
	}
}
