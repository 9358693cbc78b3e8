// Package platform implements the static hardware description (spec
// §4.I): clusters, processing elements, and the two registries a runtime
// needs to dispatch work — kernels and external buffers.
//
// Grounded on spec.md §4.I and the construction sequence sketched in
// original_source/sandbox/main.cpp's createUserPlatform (createPlatform,
// createMemoryInterface, createCluster, createProcessingElement,
// setSpiderGRTPE): a platform has one or more clusters, each cluster owns
// one memory interface and one or more PEs, and exactly one PE across the
// whole platform is designated the GRT.
package platform
