// Package config holds the runtime configuration enumerated in spec §6:
// run mode, loop count, runtime type, execution/scheduling/mapping/FIFO
// policies, and the ambient logger and Gantt-export flag every run is
// built with. Grounded on the teacher's convention of a single plain
// struct assembled by the host and passed down into the execution layer
// (mirrored, for this domain, by internal/runtime.Coordinator).
package config
