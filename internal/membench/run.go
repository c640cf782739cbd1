package membench

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/TheEdward162/thermobench/internal/affinity"
	"github.com/TheEdward162/thermobench/internal/arena"
	"github.com/TheEdward162/thermobench/internal/chase"
	"github.com/TheEdward162/thermobench/internal/clock"
	"github.com/TheEdward162/thermobench/internal/sysinfo"
)

// ErrCohortAborted marks workers that were still waiting when another
// worker of the same configuration failed its setup.
var ErrCohortAborted = errors.New("measurement aborted by cohort failure")

// Runner drives one configuration or the full sweep over a
// process-lifetime arena set. Result rows go to out; diagnostics go to
// diag and stop after the first configuration so a long sweep does not
// drown the result stream in stderr traffic.
type Runner struct {
	cfg    Config
	arenas *arena.Set
	src    clock.Source
	out    *bufio.Writer
	diag   *log.Logger
	quiet  bool
}

// NewRunner validates cfg, selects the timing source and allocates the
// arena set. Any error here is a configuration or resource error; the
// caller is expected to treat it as fatal.
func NewRunner(cfg Config, out, diag io.Writer) (*Runner, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	src := clock.Wall()
	if cfg.UseCycles {
		var err error
		if src, err = clock.Cycles(); err != nil {
			return nil, err
		}
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	arenas, err := arena.NewSet(seed)
	if err != nil {
		return nil, fmt.Errorf("allocate arenas: %w", err)
	}
	return &Runner{
		cfg:    cfg,
		arenas: arenas,
		src:    src,
		out:    bufio.NewWriter(out),
		diag:   log.New(diag, "", 0),
	}, nil
}

// Run executes the configured single size, or the default sweep when no
// size was given. The first failing configuration aborts the run; its
// row is never emitted.
func (r *Runner) Run() error {
	r.banner()
	sizes := []uint64{r.cfg.Size}
	if r.cfg.Size == 0 {
		sizes = sweepSizes()
	}
	for _, size := range sizes {
		if err := r.runOne(size); err != nil {
			return err
		}
		r.quiet = true
	}
	return nil
}

// banner describes the host and warns about requests the detected
// topology cannot honor. Detection is advisory only: container cpusets
// lie, so the affinity syscall stays the authoritative check.
func (r *Runner) banner() {
	info, err := sysinfo.Describe()
	if err != nil {
		r.diag.Printf("host detection failed: %v", err)
		return
	}
	r.diag.Printf("%s", info)
	if r.cfg.Workers > info.LogicalCores {
		r.diag.Printf("warning: %d workers on %d logical cores", r.cfg.Workers, info.LogicalCores)
	}
	for _, cpu := range r.cfg.CPUs {
		if cpu >= info.LogicalCores {
			r.diag.Printf("warning: CPU %d not in detected topology", cpu)
		}
	}
}

func (r *Runner) runOne(size uint64) error {
	count := int(size / arena.NodeSize)
	cpus := assignCPUs(r.cfg.CPUs, r.cfg.Workers)

	// Every worker must hold a P through its timed region or the spin
	// barrier would serialize the cohort.
	if prev := runtime.GOMAXPROCS(0); prev < r.cfg.Workers+1 {
		runtime.GOMAXPROCS(r.cfg.Workers + 1)
	}
	barrier := affinity.NewSpinBarrier(r.cfg.Workers)

	results := make([]float64, r.cfg.Workers)
	errs := make([]error, r.cfg.Workers)
	var wg sync.WaitGroup
	for slot := 0; slot < r.cfg.Workers; slot++ {
		if !r.quiet {
			r.diag.Printf("Running thread %d on CPU %d", slot, cpus[slot])
		}
		wg.Add(1)
		go func(slot, cpu int) {
			defer wg.Done()
			res, err := r.worker(slot, cpu, count, barrier)
			if err != nil {
				barrier.Break()
				errs[slot] = err
				return
			}
			results[slot] = res
		}(slot, cpus[slot])
	}
	wg.Wait()
	if err := firstCause(errs); err != nil {
		return err
	}

	if _, err := r.out.WriteString(formatRow(size, results)); err != nil {
		return fmt.Errorf("write result row: %w", err)
	}
	return r.out.Flush()
}

// worker is the whole life of one measurement thread: lock, pin, fill
// the private arena, meet the cohort at the barrier, chase with the
// clock running. The goroutine exits with its OS thread still locked,
// so the thread dies with it instead of rejoining the scheduler pool
// with a single-CPU mask.
func (r *Runner) worker(slot, cpu, count int, barrier *affinity.SpinBarrier) (float64, error) {
	runtime.LockOSThread()
	if err := affinity.Pin(cpu); err != nil {
		return 0, fmt.Errorf("worker %d: %w", slot, err)
	}

	// The arena is filled only after pinning: pages fault in under the
	// bound CPU, so first-touch placement lands on its NUMA node.
	nodes, err := r.arenas.Arena(slot).Populate(count, r.cfg.Random)
	if err != nil {
		return 0, fmt.Errorf("worker %d: %w", slot, err)
	}

	if !barrier.Await() {
		return 0, fmt.Errorf("worker %d: %w", slot, ErrCohortAborted)
	}
	if !r.quiet {
		r.diag.Printf("CPU %d starts measurement", cpu)
	}

	tic := r.src()
	if r.cfg.Write {
		chase.ReadWrite(nodes, r.cfg.Ops, r.cfg.Offset)
	} else {
		chase.Read(nodes, r.cfg.Ops)
	}
	tac := r.src()

	// Divide by the requested budget, not the batch-truncated step
	// count. Historical reporting convention.
	return float64(tac-tic) / float64(r.cfg.Ops), nil
}

// firstCause picks the most informative worker error: a real setup
// failure over the cohort-abort echoes it triggered in the others.
func firstCause(errs []error) error {
	var aborted error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if errors.Is(err, ErrCohortAborted) {
			if aborted == nil {
				aborted = err
			}
			continue
		}
		return err
	}
	return aborted
}

// formatRow renders one result row: decimal working-set size, one
// %#.3g latency field per worker, tab-separated, newline-terminated.
func formatRow(size uint64, results []float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d", size)
	for _, res := range results {
		fmt.Fprintf(&b, "\t%#.3g", res)
	}
	b.WriteByte('\n')
	return b.String()
}
