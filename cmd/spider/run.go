package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/preesm/spider2-sub000/internal/api"
	"github.com/preesm/spider2-sub000/internal/config"
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/dot"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
	"github.com/preesm/spider2-sub000/internal/runtime"
)

// RunCommand builds and executes a small demonstration pipeline (a
// delayed three-actor chain A -> B -> C, the same shape as the
// documented pipeline-with-delay scenario: a FORK materializes after A
// to feed both the delay's setter and B, and a JOIN gathers B's firings
// before C) on a two-PE platform, reporting diagnostics and optionally
// exporting the graph as DOT.
type RunCommand struct {
	Meta
}

func (c *RunCommand) Help() string {
	helpText := `
Usage: spider run [options]

  Builds and executes the bundled demonstration pipeline.

Options:

  -loop=N          Run N iterations instead of one (RunMode LOOP).
  -nosync           Use the DEFAULT_NOSYNC FIFO allocator.
  -mapping=NAME     bestfit (default) or roundrobin.
  -policy=NAME      list (default) or greedy.
  -dot=PATH         Write the pipeline's DOT graph to PATH.
`
	return strings.TrimSpace(helpText)
}

func (c *RunCommand) Synopsis() string {
	return "Run the bundled demonstration pipeline"
}

func (c *RunCommand) Run(args []string) int {
	var loop int
	var nosync bool
	var mappingName, policyName, dotPath string

	fs := c.defaultFlagSet("run")
	fs.IntVar(&loop, "loop", 1, "loop count")
	fs.BoolVar(&nosync, "nosync", false, "use DEFAULT_NOSYNC FIFO allocator")
	fs.StringVar(&mappingName, "mapping", "bestfit", "bestfit or roundrobin")
	fs.StringVar(&policyName, "policy", "list", "list or greedy")
	fs.StringVar(&dotPath, "dot", "", "write the pipeline DOT graph to this path")
	if err := fs.Parse(args); err != nil {
		c.Ui.Error(fmt.Sprintf("error parsing command-line flags: %s", err))
		return 1
	}

	top, ds := buildDemoPipeline()
	if ds.HasErrors() {
		c.showDiagnostics(ds)
		return 1
	}

	if dotPath != "" {
		f, err := os.Create(dotPath)
		if err != nil {
			c.Ui.Error(fmt.Sprintf("could not create %s: %s", dotPath, err))
			return 1
		}
		err = dot.WriteGraph(f, top)
		f.Close()
		if err != nil {
			c.Ui.Error(fmt.Sprintf("could not write DOT graph: %s", err))
			return 1
		}
		c.Ui.Output("wrote " + dotPath)
	}

	p, ds := buildDemoPlatform(top)
	if ds.HasErrors() {
		c.showDiagnostics(ds)
		return 1
	}

	cfg := config.RunConfig{
		RunMode:   config.Once,
		LoopCount: 1,
		Logger:    diag.NewLogger("spider"),
	}
	if loop > 1 {
		cfg.RunMode = config.Loop
		cfg.LoopCount = loop
	}
	if nosync {
		cfg.FIFOAllocator = config.DefaultNoSync
	}
	if mappingName == "roundrobin" {
		cfg.MappingPolicy = config.RoundRobin
	}
	if policyName == "greedy" {
		cfg.SchedulingPolicy = config.Greedy
	}

	coord, cds := runtime.NewCoordinator(p, cfg)
	if cds.HasErrors() {
		c.showDiagnostics(cds)
		return 1
	}

	rds := coord.Run(context.Background(), top, nil)
	c.showDiagnostics(rds)
	if rds.HasErrors() {
		return 1
	}
	c.Ui.Output(fmt.Sprintf("ran %d iteration(s) successfully", cfg.LoopCount))
	return 0
}

// buildDemoPipeline builds A -> B -> C with a local delay of 1 token on
// A->B, producing the FORK/JOIN/INIT bridge at SRT time.
func buildDemoPipeline() (*pisdf.Graph, diag.Diagnostics) {
	g := api.CreateGraph("top", pisdf.Counts{})

	a, ds := api.CreateVertex(g, "A", 0, 1)
	if ds.HasErrors() {
		return nil, ds
	}
	b, ds := api.CreateVertex(g, "B", 1, 1)
	if ds.HasErrors() {
		return nil, ds
	}
	c, ds := api.CreateVertex(g, "C", 1, 0)
	if ds.HasErrors() {
		return nil, ds
	}

	ab, ds := api.CreateEdge(g, a, 0, "4", b, 0, "2")
	if ds.HasErrors() {
		return nil, ds
	}
	if _, ds := api.CreateLocalDelay(ab, "1", nil, 0, nil, 0); ds.HasErrors() {
		return nil, ds
	}
	if _, ds := api.CreateEdge(g, b, 0, "3", c, 0, "2"); ds.HasErrors() {
		return nil, ds
	}

	return g, nil
}

func buildDemoPlatform(top *pisdf.Graph) (*platform.Platform, diag.Diagnostics) {
	p := api.CreatePlatform(1, 2)
	cluster, ds := api.CreateCluster(p, 2, &platform.MemoryInterface{Size: 1 << 16, Alignment: 8})
	if ds.HasErrors() {
		return nil, ds
	}
	pe0, ds := api.CreateProcessingElement(0, 0, cluster, "core0", platform.LRT, 0)
	if ds.HasErrors() {
		return nil, ds
	}
	if _, ds := api.CreateProcessingElement(0, 1, cluster, "core1", platform.LRT, 1); ds.HasErrors() {
		return nil, ds
	}
	if ds := api.SetGlobalRuntimePE(p, pe0); ds.HasErrors() {
		return nil, ds
	}

	copyThrough := func(_, _ []float64, in, out [][]byte) error {
		for i := range out {
			if i < len(in) {
				copy(out[i], in[i])
			}
		}
		return nil
	}
	var byName = map[string]*pisdf.Vertex{}
	for _, v := range top.Vertices {
		byName[v.Name] = v
	}
	for _, name := range []string{"A", "B", "C"} {
		v, ok := byName[name]
		if !ok {
			continue
		}
		if ds := api.CreateRuntimeKernel(p, v, "demo_"+name, copyThrough); ds.HasErrors() {
			return nil, ds
		}
	}

	return p, nil
}
