package dot

import (
	"fmt"
	"io"
	"sort"

	"github.com/preesm/spider2-sub000/internal/platform"
	"github.com/preesm/spider2-sub000/internal/schedule"
)

// WriteGantt renders sched as a DOT digraph with one dotted cluster per
// PE, each firing drawn as a box labeled with its start/end time and
// wired to the next firing on the same PE — a plain-node stand-in for
// the original runtime's SVG Gantt chart (no SVG exporter exists in the example
// pack to ground one on; spec §6 only contracts the enable/disable
// flag, not the rendering itself).
func WriteGantt(w io.Writer, sched *schedule.Schedule) error {
	if _, err := io.WriteString(w, "digraph {\n\trankdir = LR;\n\tranksep = 1;\n\tnodesep = 1;\n"); err != nil {
		return err
	}

	pes := make([]*platform.PE, 0, len(sched.PETasks))
	for pe := range sched.PETasks {
		pes = append(pes, pe)
	}
	sort.Slice(pes, func(i, j int) bool { return pes[i].Name < pes[j].Name })

	for _, pe := range pes {
		if _, err := fmt.Fprintf(w, "\tsubgraph \"cluster_%s\" {\n\t\tlabel=\"%s\";\n\t\tstyle=dotted;\n", pe.Name, pe.Name); err != nil {
			return err
		}
		tasks := sched.PETasks[pe]
		var prev string
		for _, f := range tasks {
			node := fmt.Sprintf("%s_%s", pe.Name, f.Vertex.Name)
			if _, err := fmt.Fprintf(w, "\t\t\"%s\" [shape=box, label=\"%s\\n[%d,%d)\"];\n",
				node, f.Vertex.Name, f.Start, f.End); err != nil {
				return err
			}
			if prev != "" {
				if _, err := fmt.Fprintf(w, "\t\t\"%s\" -> \"%s\";\n", prev, node); err != nil {
					return err
				}
			}
			prev = node
		}
		if _, err := io.WriteString(w, "\t}\n"); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "}\n")
	return err
}
