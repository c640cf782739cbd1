package arena

// Node is a pointer-free value type spanning exactly one cache line, so
// one chase step costs exactly one line fill. Next is an arena-relative
// index; the arena owns all node storage and the GC never scans it.
type Node struct {
	Next uint32
	Pad  [PadSize]byte
}
