package runtime

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// reservedKernelName maps the runtime-helper/boundary subtypes to their
// platform.KernelTable reserved-prefix name (spec §4.I), covering both
// the SRT-inserted helpers (FORK/JOIN/...) and the two boundary
// subtypes that also get a fixed kernel (EXTERN_IN/EXTERN_OUT).
func reservedKernelName(s pisdf.Subtype) (string, bool) {
	switch s {
	case pisdf.FORK:
		return "fork", true
	case pisdf.JOIN:
		return "join", true
	case pisdf.REPEAT:
		return "repeat", true
	case pisdf.TAIL:
		return "tail", true
	case pisdf.HEAD:
		return "head", true
	case pisdf.DUPLICATE:
		return "duplicate", true
	case pisdf.INIT:
		return "init", true
	case pisdf.END:
		return "end", true
	case pisdf.EXTERN_IN:
		return "extern_in", true
	case pisdf.EXTERN_OUT:
		return "extern_out", true
	default:
		return "", false
	}
}

// resolveKernel finds the kernel function a firing's vertex runs: either
// the user-bound kernel (v.KernelID, set by createRuntimeKernel) or the
// platform's reserved implementation for a runtime-helper/boundary
// subtype. A vertex with neither is a construction error (spec §7:
// "missing runtime kernel").
func resolveKernel(p *platform.Platform, v *pisdf.Vertex) (platform.KernelFunc, diag.Diagnostics) {
	if name, ok := reservedKernelName(v.Subtype); ok {
		id := platform.ReservedID(name)
		if fn, ok := p.Kernels.Lookup(id); ok {
			return fn, nil
		}
	}
	if v.HasKernel() {
		if fn, ok := p.Kernels.Lookup(v.KernelID); ok {
			return fn, nil
		}
	}
	return nil, diag.Diagnostics{diag.New(diag.Error, diag.Construction, v.Name,
		"no runtime kernel bound", "createRuntimeKernel must be called before the platform runs")}
}
