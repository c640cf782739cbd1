package clock

import (
	"errors"
	"sync"
	"time"
)

var ErrCycleCounterUnsupported = errors.New("cycle counter not readable on this architecture")

// Source returns a monotonically non-decreasing 64-bit count. Reading
// never blocks; the unit depends on the variant (nanoseconds or cycles).
type Source func() uint64

var epoch = time.Now()

// Wall returns the wall-clock source: nanoseconds since an arbitrary
// monotonic epoch.
func Wall() Source {
	return func() uint64 { return uint64(time.Since(epoch)) }
}

var enableOnce sync.Once

// Cycles returns the hardware cycle-counter source. The counter is
// enabled once per process, on the first call, before any measurement.
// Architectures without a directly readable counter get an error, never
// a source of zeros.
func Cycles() (Source, error) {
	if !cyclesSupported {
		return nil, ErrCycleCounterUnsupported
	}
	enableOnce.Do(enableCycles)
	return readCycles, nil
}

// CyclesSupported reports whether Cycles can succeed on this build.
func CyclesSupported() bool {
	return cyclesSupported
}
