// Package api is the host construction API enumerated in spec §6: one
// function per bullet of its "Host construction API" list, each a thin,
// validating wrapper over an internal/pisdf or internal/platform
// constructor. This is the sole entry point external code uses to build
// a platform and a PiSDF graph before handing both to
// internal/runtime.Coordinator.Run — grounded on the teacher's own
// pattern of a small public package (internal/addrs) sitting in front of
// richer internal types, and on original_source's createUserPlatform/
// pisdf-api.cpp call shapes for the functions' grouping and naming.
package api
