package runtime

import (
	"github.com/google/uuid"

	"github.com/preesm/spider2-sub000/internal/fifo"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// Kind is the closed set of notifications the GRT/LRT queues carry (spec
// §9: "bounded MPSC/SPSC queues with explicit notification kinds").
type Kind int

const (
	Dispatch Kind = iota
	Complete
	Param
	Terminate
)

func (k Kind) String() string {
	switch k {
	case Dispatch:
		return "Dispatch"
	case Complete:
		return "Complete"
	case Param:
		return "Param"
	case Terminate:
		return "Terminate"
	default:
		return "Unknown"
	}
}

// taskMessage is what the GRT pushes into one LRT's inbox to dispatch a
// firing (spec §4.H step 1: "kernel index, FIFO handles, byte sizes,
// input-param vector, task id").
type taskMessage struct {
	id   uuid.UUID
	kind Kind

	vertex *pisdf.Vertex
	kernel platform.KernelFunc

	inputParams  []float64
	outputParams []float64

	inputBuffers  [][]byte
	outputBuffers [][]byte

	inputFIFOs  []*fifo.FIFO
	outputFIFOs []*fifo.FIFO

	completions chan<- completion
}

// completion is what an LRT pushes back to the GRT's completion queue
// once a dispatched firing's kernel returns (spec §4.H step 3).
type completion struct {
	id     uuid.UUID
	vertex *pisdf.Vertex
	pe     *platform.PE

	outputParams []float64
	err          error
}
