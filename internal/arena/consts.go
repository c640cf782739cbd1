package arena

// Hardware and memory-layout assumptions.
const (
	CacheLineSize = 64

	NodeSize = CacheLineSize
	PadSize  = NodeSize - 4 // sizeof(Node.Next)

	ArenaAlign = 2 << 20
	ArenaBytes = 64 << 20
	ArenaNodes = ArenaBytes / NodeSize

	MaxArenas = 8
)

// Link sentinels used while a random cycle is under construction. Valid
// links stay below ArenaNodes, far under either value.
const (
	linkUnset    = ^uint32(0)
	linkReserved = ^uint32(0) - 1
)
