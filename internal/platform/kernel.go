package platform

import "github.com/preesm/spider2-sub000/internal/diag"

// KernelFunc is the runtime kernel signature fixed by spec §6's
// createRuntimeKernel: "(inputParamArray, outputParamArray,
// inputBuffers[], outputBuffers[])". Buffers are raw byte regions sized
// by internal/fifo's allocation for the firing being executed.
type KernelFunc func(inputParams, outputParams []float64, inputBuffers, outputBuffers [][]byte) error

// reservedKernelNames is the fixed prefix of the kernel table reserved
// for the runtime-implemented helper subtypes (spec §4.I), in the same
// order as their pisdf.Subtype declaration.
var reservedKernelNames = []string{
	"fork", "join", "repeat", "tail", "head", "duplicate", "init", "end", "extern_in", "extern_out",
}

type kernelEntry struct {
	name string
	fn   KernelFunc
}

// KernelTable is an ordered table of registered kernels indexed by a
// stable kernel id, with the reserved prefix pre-populated with the
// runtime's own byte-shuffling implementations of FORK/JOIN/REPEAT/TAIL/
// HEAD/DUPLICATE/INIT/END/EXTERN_IN/EXTERN_OUT.
type KernelTable struct {
	entries []kernelEntry
}

func newKernelTable() *KernelTable {
	kt := &KernelTable{entries: make([]kernelEntry, len(reservedKernelNames))}
	for i, name := range reservedKernelNames {
		kt.entries[i] = kernelEntry{name: name, fn: reservedKernelFuncs[name]}
	}
	return kt
}

// Register appends a user-supplied kernel under name, returning its
// stable id. A duplicate name is a construction error. A second kernel
// binding on one vertex is rejected separately, by
// internal/api.CreateRuntimeKernel's own check of the vertex's bound
// kernel.
func (kt *KernelTable) Register(name string, fn KernelFunc) (int, diag.Diagnostics) {
	if name == "" {
		return -1, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "kernel has no name", "")}
	}
	if fn == nil {
		return -1, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "kernel function is nil", "")}
	}
	for _, e := range kt.entries {
		if e.name == name {
			return -1, diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "duplicate kernel name", "a kernel with this name is already registered")}
		}
	}
	id := len(kt.entries)
	kt.entries = append(kt.entries, kernelEntry{name: name, fn: fn})
	return id, nil
}

// Lookup resolves a kernel id to its function.
func (kt *KernelTable) Lookup(id int) (KernelFunc, bool) {
	if id < 0 || id >= len(kt.entries) {
		return nil, false
	}
	return kt.entries[id].fn, true
}

// ReservedID returns the fixed table index of one of the reserved names
// ("fork", "join", ...), or -1 if name isn't reserved.
func ReservedID(name string) int {
	for i, n := range reservedKernelNames {
		if n == name {
			return i
		}
	}
	return -1
}

// reservedKernelFuncs implements the runtime-helper subtypes directly
// over byte buffers: FORK/JOIN/DUPLICATE/REPEAT/TAIL/HEAD move bytes
// exactly as their pisdf semantics require; INIT/END synthesize/discard
// delay-boundary tokens.
var reservedKernelFuncs = map[string]KernelFunc{
	"fork": func(_, _ []float64, in, out [][]byte) error {
		if len(in) != 1 {
			return nil
		}
		src := in[0]
		off := 0
		for _, o := range out {
			n := copy(o, src[off:])
			off += n
		}
		return nil
	},
	"join": func(_, _ []float64, in, out [][]byte) error {
		if len(out) != 1 {
			return nil
		}
		dst := out[0]
		off := 0
		for _, b := range in {
			n := copy(dst[off:], b)
			off += n
		}
		return nil
	},
	"duplicate": func(_, _ []float64, in, out [][]byte) error {
		if len(in) != 1 {
			return nil
		}
		for _, o := range out {
			copy(o, in[0])
		}
		return nil
	},
	"repeat": func(_, _ []float64, in, out [][]byte) error {
		if len(in) != 1 || len(out) != 1 {
			return nil
		}
		src, dst := in[0], out[0]
		if len(src) == 0 {
			return nil
		}
		for off := 0; off < len(dst); off += len(src) {
			copy(dst[off:], src)
		}
		return nil
	},
	"tail": func(_, _ []float64, in, out [][]byte) error {
		if len(in) != 1 || len(out) != 1 {
			return nil
		}
		src, dst := in[0], out[0]
		if len(src) >= len(dst) {
			copy(dst, src[len(src)-len(dst):])
		} else {
			copy(dst, src)
		}
		return nil
	},
	"head": func(_, _ []float64, in, out [][]byte) error {
		if len(in) != 1 || len(out) != 1 {
			return nil
		}
		copy(out[0], in[0])
		return nil
	},
	"init": func(_, _ []float64, _, out [][]byte) error {
		for _, o := range out {
			for i := range o {
				o[i] = 0
			}
		}
		return nil
	},
	"end": func(_, _ []float64, _, _ [][]byte) error {
		return nil
	},
	"extern_in": func(_, _ []float64, in, out [][]byte) error {
		if len(in) == 1 && len(out) == 1 {
			copy(out[0], in[0])
		}
		return nil
	},
	"extern_out": func(_, _ []float64, in, out [][]byte) error {
		if len(in) == 1 && len(out) == 1 {
			copy(out[0], in[0])
		}
		return nil
	},
}
