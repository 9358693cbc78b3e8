package srt

import (
	"fmt"

	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/expr"
	"github.com/preesm/spider2-sub000/internal/pisdf"
)

// handleNullEdge implements the null-edge case of spec §4.D step 5,
// grounded on SingleRateTransformer.cpp's checkForNullEdge: an edge whose
// source and sink both evaluate to rate zero carries no tokens at all, so
// each firing on the longer side that has no counterpart on the other is
// paired with a synthetic "void::"-named zero-rate vertex rather than
// left dangling, and every firing that does have a counterpart is linked
// one-to-one at rate zero.
func handleNullEdge(srdag *pisdf.Graph, srcBlock, snkBlock cloneBlock, e *pisdf.Edge) diag.Diagnostics {
	var ds diag.Diagnostics
	zero := expr.NewLiteralFloat(0)
	srcPort := resolvePort(srcBlock, e.SrcPort)
	snkPort := resolvePort(snkBlock, e.SnkPort)

	count := len(srcBlock.vertices)
	if len(snkBlock.vertices) > count {
		count = len(snkBlock.vertices)
	}

	for i := 0; i < count; i++ {
		srcV, srcP := srcBlock.vertices, srcPort
		var source *pisdf.Vertex
		var sourcePort int
		if i < len(srcV) {
			source, sourcePort = srcV[i], srcP
		} else {
			v, vds := srdag.AddVertex(fmt.Sprintf("void::%s_%d", e.Src.Name, i), pisdf.NORMAL, 0, 1)
			ds = append(ds, vds...)
			source, sourcePort = v, 0
		}

		snkV, snkP := snkBlock.vertices, snkPort
		var sink *pisdf.Vertex
		var sinkPort int
		if i < len(snkV) {
			sink, sinkPort = snkV[i], snkP
		} else {
			v, vds := srdag.AddVertex(fmt.Sprintf("void::%s_%d", e.Snk.Name, i), pisdf.NORMAL, 1, 0)
			ds = append(ds, vds...)
			sink, sinkPort = v, 0
		}

		if source == nil || sink == nil {
			continue
		}
		if _, eds := srdag.AddEdge(source, sourcePort, zero, sink, sinkPort, zero); eds != nil {
			ds = append(ds, eds...)
		}
	}
	return ds
}
