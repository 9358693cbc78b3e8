// Package pisdf implements the PiSDF data model of component 4.B: graphs,
// vertices, edges, delays, and parameters, plus the two normalization
// passes (broadcast rewrite, dynamic-subgraph splitting) that run once a
// graph is fully constructed and before the repetition-vector solver
// (internal/brv) sees it.
//
// Grounded on original_source/libspider/api/pisdf-api.cpp (the factory
// surface) and original_source/.../pisdf-helper.cpp (the broadcast/split
// rewrites), translated into a tagged-variant vertex subtype (design note
// "Visitor pattern over vertex subtypes") addressed by stable arena
// indices (design note "Cyclic model graphs") rather than the original's
// pointer-linked class hierarchy.
package pisdf
