// Package mapper implements spec §4.F's two mapping policies, BEST_FIT
// and ROUND_ROBIN. Both satisfy internal/schedule.Mapper structurally
// (schedule defines the interface so mapper can depend on schedule
// without a cycle) and choose the processing element a ready firing
// runs on, given its allowed PEs' current queue-tail availability.
package mapper
