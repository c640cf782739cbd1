package membench

import (
	"errors"
	"fmt"
	"sort"

	"github.com/TheEdward162/thermobench/internal/affinity"
	"github.com/TheEdward162/thermobench/internal/arena"
	"github.com/TheEdward162/thermobench/internal/clock"
)

// Historical defaults and bounds.
const (
	DefaultOps = 0x2000000

	MaxWorkers = arena.MaxArenas
)

var (
	ErrWorkerCount = errors.New("thread count outside supported range")
	ErrOffsetRange = errors.New("write offset outside node padding")
	ErrZeroOps     = errors.New("operation count must be positive")
	ErrCPURange    = errors.New("CPU id outside affinity mask range")
)

// Config selects one run or, with Size zero, the full sweep.
type Config struct {
	Random    bool
	Size      uint64 // working-set bytes; 0 runs the sweep
	Workers   int
	CPUs      []int // explicit CPU ids, handed out lowest-first
	Write     bool
	Offset    int // byte offset into node padding, read-modify mode
	Ops       uint64
	UseCycles bool
	Seed      int64 // 0 derives from the wall clock
}

// DefaultConfig returns the historical defaults: one worker, sequential
// reads over the sweep, 32 Mi accesses, wall-clock timing.
func DefaultConfig() Config {
	return Config{Workers: 1, Ops: DefaultOps}
}

func (c Config) validate() error {
	if c.Workers < 1 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: %d not in 1..%d", ErrWorkerCount, c.Workers, MaxWorkers)
	}
	if c.Size != 0 {
		if c.Size > arena.ArenaBytes {
			return fmt.Errorf("%w: %d > %d bytes", arena.ErrWorkingSetTooLarge, c.Size, uint64(arena.ArenaBytes))
		}
		if c.Size < arena.NodeSize {
			return fmt.Errorf("%w: %d < %d bytes", arena.ErrWorkingSetTooSmall, c.Size, uint64(arena.NodeSize))
		}
	}
	if c.Write && (c.Offset < 0 || c.Offset >= arena.PadSize) {
		return fmt.Errorf("%w: %d not in 0..%d", ErrOffsetRange, c.Offset, arena.PadSize-1)
	}
	if c.Ops == 0 {
		return ErrZeroOps
	}
	for _, cpu := range c.CPUs {
		if cpu < 0 || cpu > affinity.MaxCPUID {
			return fmt.Errorf("%w: %d", ErrCPURange, cpu)
		}
	}
	if c.UseCycles && !clock.CyclesSupported() {
		return clock.ErrCycleCounterUnsupported
	}
	return nil
}

// assignCPUs maps worker slots to logical CPUs: explicit ids are handed
// out lowest-first without duplicates; workers beyond the explicit set
// fall back to their own slot index.
func assignCPUs(explicit []int, workers int) []int {
	pool := append([]int(nil), explicit...)
	sort.Ints(pool)
	n := 0
	for i, cpu := range pool {
		if i == 0 || cpu != pool[i-1] {
			pool[n] = cpu
			n++
		}
	}
	pool = pool[:n]

	out := make([]int, workers)
	for slot := range out {
		if slot < len(pool) {
			out[slot] = pool[slot]
		} else {
			out[slot] = slot
		}
	}
	return out
}

// sweepSizes lists the default sweep: every power of two from 1 KiB to
// 16 MiB, each followed by its 1.5x step.
func sweepSizes() []uint64 {
	sizes := make([]uint64, 0, 30)
	for order := uint(10); order <= 24; order++ {
		size := uint64(1) << order
		sizes = append(sizes, size, size+size/2)
	}
	return sizes
}
