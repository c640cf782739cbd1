package affinity

import (
	"runtime"
	"sync/atomic"
)

const (
	gatePending  = 0
	gateReleased = 1
	gateBroken   = 2
)

// SpinBarrier releases one cohort of workers as close to simultaneously
// as possible: waiters spin instead of parking, keeping scheduler wake
// latency out of the timed region that follows. Single use; build a
// fresh barrier per cohort.
type SpinBarrier struct {
	target  uint32
	arrived atomic.Uint32
	gate    atomic.Uint32
}

// NewSpinBarrier sizes a barrier for n participants, n >= 1.
func NewSpinBarrier(n int) *SpinBarrier {
	return &SpinBarrier{target: uint32(n)}
}

// Await blocks until every participant has arrived or the barrier
// breaks, and reports whether the cohort may proceed. The last arrival
// releases the rest.
func (b *SpinBarrier) Await() bool {
	if b.arrived.Add(1) == b.target {
		b.gate.CompareAndSwap(gatePending, gateReleased)
	}
	for i := 0; ; i++ {
		switch b.gate.Load() {
		case gateReleased:
			return true
		case gateBroken:
			return false
		}
		if i%1024 == 1023 {
			runtime.Gosched() // let late arrivals get a P
		}
	}
}

// Break aborts a cohort that has not been released yet: current and
// future waiters return false immediately. A release that already
// happened wins over a late Break.
func (b *SpinBarrier) Break() {
	b.gate.CompareAndSwap(gatePending, gateBroken)
}
