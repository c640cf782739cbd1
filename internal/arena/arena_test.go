package arena

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"unsafe"
)

func TestNodeLayoutIsPointerFree(t *testing.T) {
	if got := unsafe.Sizeof(Node{}); got != NodeSize {
		t.Fatalf("unexpected node size: got=%d want=%d", got, NodeSize)
	}
	if got := unsafe.Offsetof(Node{}.Next); got != 0 {
		t.Fatalf("link field not at node base: offset=%d", got)
	}
	if pointerBearing(reflect.TypeOf(Node{})) {
		t.Fatalf("node layout contains pointer-like fields")
	}
}

func TestAllocNodesAligned(t *testing.T) {
	nodes, err := allocNodes(1024)
	if err != nil {
		t.Fatalf("alloc failed: %v", err)
	}
	if len(nodes) != 1024 {
		t.Fatalf("unexpected node count: got=%d want=1024", len(nodes))
	}
	base := uintptr(unsafe.Pointer(&nodes[0]))
	if base%ArenaAlign != 0 {
		t.Fatalf("arena base not aligned: %#x mod %#x = %#x", base, ArenaAlign, base%ArenaAlign)
	}
}

func TestPopulateBounds(t *testing.T) {
	a := &Arena{
		nodes: make([]Node, 128),
		rng:   rand.New(rand.NewSource(1)),
	}

	if _, err := a.Populate(0, false); !errors.Is(err, ErrWorkingSetTooSmall) {
		t.Fatalf("zero count: got=%v want=%v", err, ErrWorkingSetTooSmall)
	}
	if _, err := a.Populate(129, false); !errors.Is(err, ErrWorkingSetTooLarge) {
		t.Fatalf("oversized count: got=%v want=%v", err, ErrWorkingSetTooLarge)
	}

	nodes, err := a.Populate(128, false)
	if err != nil {
		t.Fatalf("full-capacity populate failed: %v", err)
	}
	if len(nodes) != 128 {
		t.Fatalf("unexpected working set length: got=%d want=128", len(nodes))
	}
}

func TestPopulateReusesAcrossPatterns(t *testing.T) {
	a := &Arena{
		nodes: make([]Node, 256),
		rng:   rand.New(rand.NewSource(3)),
	}

	for _, random := range []bool{true, false, true} {
		nodes, err := a.Populate(97, random)
		if err != nil {
			t.Fatalf("populate(random=%v) failed: %v", random, err)
		}
		walkCycle(t, nodes)
	}
}

func TestNewSetCoversEverySlot(t *testing.T) {
	set, err := NewSet(5)
	if err != nil {
		t.Fatalf("new set failed: %v", err)
	}
	for slot := 0; slot < MaxArenas; slot++ {
		a := set.Arena(slot)
		if a == nil {
			t.Fatalf("slot %d has no arena", slot)
		}
		if got := a.Capacity(); got != ArenaNodes {
			t.Fatalf("slot %d capacity: got=%d want=%d", slot, got, ArenaNodes)
		}
		base := uintptr(unsafe.Pointer(&a.nodes[0]))
		if base%ArenaAlign != 0 {
			t.Fatalf("slot %d base not aligned: %#x", slot, base)
		}
	}
}
