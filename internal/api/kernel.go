package api

import (
	"github.com/preesm/spider2-sub000/internal/diag"
	"github.com/preesm/spider2-sub000/internal/pisdf"
	"github.com/preesm/spider2-sub000/internal/platform"
)

// CreateRuntimeKernel mirrors spider::api::createRuntimeKernel(vertex,
// function): registers fn in p's kernel table and binds it to v. A
// second call on a vertex that already has a kernel bound is an explicit
// construction error (ErrDuplicateKernel), not a silent override (spec
// §9 open question).
func CreateRuntimeKernel(p *platform.Platform, v *pisdf.Vertex, name string, fn platform.KernelFunc) diag.Diagnostics {
	if p == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil platform", "")}
	}
	if v == nil {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, name, "nil vertex", "")}
	}
	if v.HasKernel() {
		return diag.Diagnostics{diag.New(diag.Error, diag.Construction, v.Name, ErrDuplicateKernel.Error(), "createRuntimeKernel must be called at most once per vertex")}
	}
	id, ds := p.Kernels.Register(name, fn)
	if ds.HasErrors() {
		return ds
	}
	v.KernelID = id
	return nil
}
