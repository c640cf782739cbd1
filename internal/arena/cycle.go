package arena

import "math/rand"

// LinkSequential links nodes into the identity cycle: each node points
// at its neighbor, the last one closes the loop back to node 0. nodes
// must be non-empty.
func LinkSequential(nodes []Node) {
	last := len(nodes) - 1
	for i := 0; i < last; i++ {
		nodes[i].Next = uint32(i + 1)
	}
	nodes[last].Next = 0
}

// LinkRandom links nodes into a single randomized cycle: following Next
// from node 0 visits every node exactly once before returning to 0. A
// single node yields the self-cycle. nodes must be non-empty, rng
// non-nil.
//
// Construction is incremental: the current node is reserved, a uniform
// random candidate is drawn, and the first unset node at or after it
// (wrapping) becomes the link target. The wrap keeps the scan inside the
// slice at all times. The permutation is not perfectly uniform; the
// single-cycle property is what the traversal depends on.
func LinkRandom(nodes []Node, rng *rand.Rand) {
	count := len(nodes)
	for i := range nodes {
		nodes[i].Next = linkUnset
	}

	cur := 0
	for n := 1; n < count; n++ {
		nodes[cur].Next = linkReserved
		j := rng.Intn(count)
		for nodes[j].Next != linkUnset {
			j++
			if j == count {
				j = 0
			}
		}
		nodes[cur].Next = uint32(j)
		cur = j
	}
	nodes[cur].Next = 0
}
