// Package schedule implements spec §4.E: given a firing DAG (produced by
// internal/srt) and per-firing execution-time/communication-cost
// estimates, compute a start/end time for every firing and a totally
// ordered per-PE task list. The PE a firing lands on is chosen by
// internal/mapper; the scheduler only orders firings already mapped.
//
// The scheduler itself is grounded directly on spec.md §4.E's stated
// algorithm (no original_source analogue exists in the retrieval pack:
// libspider's scheduler sources were not part of the 31 kept files). The
// closed two-member Policy interface follows the teacher's own
// closed-transformer-set convention (internal/pisdf.Subtype's tagged
// switch, internal/srt's FORK/JOIN cases): a fixed, small interface
// implemented by exactly the policies the spec names, not a
// plugin-loaded or reflection-discovered set.
package schedule
