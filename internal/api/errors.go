package api

import "errors"

// ErrDuplicateKernel is the sentinel surfaced (wrapped in a
// diag.Diagnostic) when CreateRuntimeKernel is called twice on the same
// vertex (spec §9 open question: "make this an explicit error").
var ErrDuplicateKernel = errors.New("vertex already has a runtime kernel bound")
