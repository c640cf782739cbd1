package arena

import (
	"errors"
	"fmt"
	"math/rand"
)

var (
	ErrWorkingSetTooLarge = errors.New("working set exceeds arena capacity")
	ErrWorkingSetTooSmall = errors.New("working set smaller than one cache line")
)

// Arena is one worker's private block of nodes. It is written by exactly
// one worker at a time; the Set hands out disjoint arenas so no locking
// is needed anywhere.
type Arena struct {
	nodes []Node
	rng   *rand.Rand
}

// Set owns every arena for the process lifetime: MaxArenas slots of
// ArenaBytes each, created once and re-populated for every
// configuration. Each arena carries its own random stream, derived from
// the process seed, so streams keep advancing across configurations.
type Set struct {
	arenas [MaxArenas]*Arena
}

func NewSet(seed int64) (*Set, error) {
	s := &Set{}
	for i := range s.arenas {
		nodes, err := allocNodes(ArenaNodes)
		if err != nil {
			return nil, fmt.Errorf("arena %d: %w", i, err)
		}
		s.arenas[i] = &Arena{
			nodes: nodes,
			rng:   rand.New(rand.NewSource(seed + int64(i))),
		}
	}
	return s, nil
}

func (s *Set) Arena(slot int) *Arena {
	return s.arenas[slot]
}

// Populate relinks the first count nodes into a fresh cycle and returns
// that working set. The caller must already be bound to its core: pages
// fault in on first touch, so placement follows whoever writes first.
func (a *Arena) Populate(count int, random bool) ([]Node, error) {
	if count < 1 {
		return nil, ErrWorkingSetTooSmall
	}
	if count > len(a.nodes) {
		return nil, fmt.Errorf("%w: %d nodes > %d", ErrWorkingSetTooLarge, count, len(a.nodes))
	}
	nodes := a.nodes[:count]
	if random {
		LinkRandom(nodes, a.rng)
	} else {
		LinkSequential(nodes)
	}
	return nodes, nil
}

func (a *Arena) Capacity() int {
	return len(a.nodes)
}
