// Package dot provides the minimal, cosmetic-only export surface spec §6
// names: a DOT rendering of a pisdf.Graph and a DOT rendering of a
// schedule.Schedule's per-PE Gantt timeline. internal/runtime does not
// read config.RunConfig's GanttExport flag and never calls WriteGantt.
// Grounded on
// original_source/.../PiSDFDOTExporterVisitor.cpp for the digraph/
// subgraph-cluster shape, the vertex-subtype color palette, and the
// delay-as-circle-node edge convention, trimmed to plain-label nodes
// instead of that file's nested HTML port tables — the format is not a
// wire contract for anything downstream (spec §6: "cosmetic and not
// wire-compatible with any consumer").
package dot
