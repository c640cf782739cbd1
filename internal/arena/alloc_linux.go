//go:build linux

package arena

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// allocNodes maps an anonymous region with the first node on an
// ArenaAlign boundary. The mapping is deliberately not pre-populated:
// first touch must come from the pinned worker so NUMA placement lands
// on its node. The slack around the aligned window stays mapped but
// untouched, costing address space only.
func allocNodes(count int) ([]Node, error) {
	size := count * NodeSize
	raw, err := unix.Mmap(-1, 0, size+ArenaAlign,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("mmap %d bytes: %w", size+ArenaAlign, err)
	}

	base := uintptr(unsafe.Pointer(&raw[0]))
	off := 0
	if rem := base % ArenaAlign; rem != 0 {
		off = int(ArenaAlign - rem)
	}
	aligned := raw[off : off+size]
	_ = unix.Madvise(aligned, unix.MADV_HUGEPAGE) // advisory

	return unsafe.Slice((*Node)(unsafe.Pointer(&aligned[0])), count), nil
}
