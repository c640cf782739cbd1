package clock

const cyclesSupported = true

// readCycles reads PMCCNTR_EL0. The kernel must have granted user-space
// access to the performance counters; without it the read faults, same
// as any other tool using the raw counter.
//
//go:noescape
func readCycles() uint64

// enableCycles sets the PMCCNTR enable bits (PMCNTENSET_EL0.C and
// PMCR_EL0.E). One-time, process-wide.
//
//go:noescape
func enableCycles()
