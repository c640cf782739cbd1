// Command membench measures memory access latency as a function of
// working-set size, access pattern and core count. One tab-separated
// result row per configuration goes to stdout; diagnostics go to
// stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/TheEdward162/thermobench/internal/membench"
)

// cpuList collects CPU ids from repeatable -C flags.
type cpuList []int

func (l *cpuList) String() string {
	parts := make([]string, len(*l))
	for i, cpu := range *l {
		parts[i] = strconv.Itoa(cpu)
	}
	return strings.Join(parts, ",")
}

func (l *cpuList) Set(s string) error {
	cpu, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("CPU id %q: %w", s, err)
	}
	*l = append(*l, cpu)
	return nil
}

func main() {
	cfg := membench.DefaultConfig()
	var cpus cpuList

	flag.Uint64Var(&cfg.Ops, "c", cfg.Ops, "operation count budget per worker")
	flag.Var(&cpus, "C", "add a CPU id to the explicit set (repeatable)")
	flag.IntVar(&cfg.Offset, "o", 0, "write byte offset into node padding (with -w)")
	flag.BoolVar(&cfg.Random, "r", false, "random access pattern (default sequential)")
	flag.Uint64Var(&cfg.Size, "s", 0, "working-set size in bytes (default: run the sweep)")
	flag.IntVar(&cfg.Workers, "t", cfg.Workers, "number of worker threads")
	flag.BoolVar(&cfg.Write, "w", false, "read-modify traversal (default read-only)")
	flag.BoolVar(&cfg.UseCycles, "y", false, "hardware cycle counter (default wall-clock ns)")
	flag.Parse()
	cfg.CPUs = cpus

	runner, err := membench.NewRunner(cfg, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "membench: %v\n", err)
		os.Exit(1)
	}
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "membench: %v\n", err)
		os.Exit(1)
	}
}
