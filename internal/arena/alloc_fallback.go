//go:build !linux

package arena

import "unsafe"

// allocNodes over-allocates from the heap and slices at the alignment
// boundary. Large heap objects are at least page-aligned, so the offset
// is always a whole number of nodes. Good enough for development hosts;
// measurement runs go through the mmap allocator.
func allocNodes(count int) ([]Node, error) {
	raw := make([]Node, count+ArenaAlign/NodeSize)
	base := uintptr(unsafe.Pointer(&raw[0]))
	off := 0
	if rem := base % ArenaAlign; rem != 0 {
		off = int((ArenaAlign - rem) / NodeSize)
	}
	return raw[off : off+count], nil
}
