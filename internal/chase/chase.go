package chase

import (
	"unsafe"

	"github.com/TheEdward162/thermobench/internal/arena"
)

// BatchSize is the unroll factor of the hot loops: batches amortize loop
// control against the memory-bound work.
const BatchSize = 32

const padOffset = unsafe.Offsetof(arena.Node{}.Pad)

// sink receives every traversal's final cursor so the dependent-load
// chain stays observable and cannot be proven dead.
var sink uint32

// Steps reports how many steps a traversal executes for a requested
// budget: one full batch fewer than fit, zero when fewer than two fit.
func Steps(requested uint64) uint64 {
	batches := requested / BatchSize
	if batches <= 1 {
		return 0
	}
	return (batches - 1) * BatchSize
}

// Read chases the cycle for the requested budget (see Steps) and
// returns the final cursor. nodes must be non-empty and linked into a
// single cycle; the cursor never leaves the slice because every link
// stays inside it. Addressing is raw base+cursor*NodeSize so nothing
// but the dependent load itself sits between steps.
//
//go:noinline
func Read(nodes []arena.Node, requested uint64) uint32 {
	base := unsafe.Pointer(&nodes[0])
	cur := uint32(0)
	for n := requested / BatchSize; n > 1; n-- {
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
		cur = step(base, cur)
	}
	sink = cur
	return cur
}

// ReadWrite is Read with one byte store per step: the padding byte at
// ofs of the current node is incremented, then the link is followed.
// ofs must lie in [0, arena.PadSize).
//
//go:noinline
func ReadWrite(nodes []arena.Node, requested uint64, ofs int) uint32 {
	base := unsafe.Pointer(&nodes[0])
	off := padOffset + uintptr(ofs)
	cur := uint32(0)
	for n := requested / BatchSize; n > 1; n-- {
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
		cur = bump(base, cur, off)
	}
	sink = cur
	return cur
}

//go:inline
func step(base unsafe.Pointer, cur uint32) uint32 {
	return *(*uint32)(unsafe.Add(base, uintptr(cur)*arena.NodeSize))
}

//go:inline
func bump(base unsafe.Pointer, cur uint32, off uintptr) uint32 {
	p := unsafe.Add(base, uintptr(cur)*arena.NodeSize)
	b := (*byte)(unsafe.Add(p, off))
	*b++
	return *(*uint32)(p)
}
