//go:build !linux

package affinity

import "fmt"

// Pin fails everywhere but Linux: an unpinned measurement is
// meaningless, so there is no silent no-op fallback.
func Pin(cpu int) error {
	return fmt.Errorf("pin to CPU %d: thread pinning requires linux", cpu)
}

// Supported reports whether thread pinning works on this platform.
func Supported() bool { return false }
