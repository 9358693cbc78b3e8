// Package srt implements the single-rate transformer (spec §4.D): it
// lowers one hierarchy level of a PiSDF graph into a flat single-rate DAG
// of firings, recursively, one TransfoJob at a time.
//
// Grounded on original_source's
// graphs-tools/transformation/srdag/SingleRateTransformer.cpp and
// singleRateTransformation.cpp. The job-stack / future-job production
// shape (static vs. dynamic job stacks, deep-copied dynamic parameter
// snapshots) follows the same file's makeFutureJobs, adapted to
// math/big-free Go types and copystructure for the snapshot copy spec.md
// §4.D step 7 calls for.
//
// A GRAPH-subtype vertex's ports are assumed ordered to match its
// Subgraph's Inputs/Outputs slices one-for-one (InPorts[k] <->
// Subgraph.Inputs[k], OutPorts[k] <-> Subgraph.Outputs[k]); internal/pisdf
// normalization passes (and any hand-authored hierarchy) honor this
// convention.
//
// Persistent delays (pisdf.Delay.Persistent) are realized the same way as
// local delays here: via the edge's own getter/setter, scoped to the
// single hierarchy level being transformed. A persistent delay's storage
// is not hoisted through the enclosing levels, and neither this package
// nor internal/runtime reads Delay.Persistent: its tokens do not survive
// a top-graph iteration.
package srt
