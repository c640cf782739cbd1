//go:build linux

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Pin binds the calling thread to a single logical CPU. The caller must
// hold runtime.LockOSThread for the binding to stick to its goroutine.
func Pin(cpu int) error {
	if cpu < 0 || cpu > MaxCPUID {
		return fmt.Errorf("pin to CPU %d: id outside affinity mask", cpu)
	}
	var set unix.CPUSet
	set.Set(cpu)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("pin to CPU %d: %w", cpu, err)
	}
	return nil
}

// Supported reports whether thread pinning works on this platform.
func Supported() bool { return true }
