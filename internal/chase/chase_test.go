package chase

import (
	"math/rand"
	"testing"
	"time"

	"github.com/TheEdward162/thermobench/internal/arena"
)

func TestStepsConvention(t *testing.T) {
	cases := []struct {
		requested uint64
		want      uint64
	}{
		{0, 0},
		{1, 0},
		{31, 0},
		{32, 0},
		{33, 0},
		{63, 0},
		{64, 32},
		{65, 32},
		{96, 64},
		{1024, 992},
	}
	for _, c := range cases {
		if got := Steps(c.requested); got != c.want {
			t.Fatalf("Steps(%d): got=%d want=%d", c.requested, got, c.want)
		}
	}
}

func TestReadLandsOnExpectedNode(t *testing.T) {
	for _, count := range []int{5, 7, 33} {
		nodes := make([]arena.Node, count)
		arena.LinkSequential(nodes)
		for _, requested := range []uint64{64, 96, 160, 4096} {
			want := uint32(Steps(requested) % uint64(count))
			if got := Read(nodes, requested); got != want {
				t.Fatalf("count=%d requested=%d: got=%d want=%d", count, requested, got, want)
			}
		}
	}
}

func TestReadBelowTwoBatchesDoesNotMove(t *testing.T) {
	nodes := make([]arena.Node, 8)
	arena.LinkSequential(nodes)
	for _, requested := range []uint64{0, 1, 32, 63} {
		if got := Read(nodes, requested); got != 0 {
			t.Fatalf("requested=%d: cursor moved to %d", requested, got)
		}
	}
}

func TestReadWriteIncrementsEveryNode(t *testing.T) {
	const (
		count     = 4
		ofs       = 7
		requested = 9 * BatchSize // 256 executed steps = 64 full passes
	)
	nodes := make([]arena.Node, count)
	arena.LinkSequential(nodes)
	links := make([]uint32, count)
	for i := range nodes {
		links[i] = nodes[i].Next
	}

	ReadWrite(nodes, requested, ofs)

	passes := byte(Steps(requested) / count)
	for i := range nodes {
		if got := nodes[i].Pad[ofs]; got != passes {
			t.Fatalf("node %d pad[%d]: got=%d want=%d", i, ofs, got, passes)
		}
		if got := nodes[i].Pad[ofs+1]; got != 0 {
			t.Fatalf("node %d pad[%d] touched: got=%d", i, ofs+1, got)
		}
		if nodes[i].Next != links[i] {
			t.Fatalf("node %d link altered: got=%d want=%d", i, nodes[i].Next, links[i])
		}
	}
}

func TestReadWriteOffsetEdges(t *testing.T) {
	for _, ofs := range []int{0, arena.PadSize - 1} {
		nodes := make([]arena.Node, 2)
		arena.LinkSequential(nodes)

		ReadWrite(nodes, 3*BatchSize, ofs) // 64 steps = 32 passes

		for i := range nodes {
			if got := nodes[i].Pad[ofs]; got != 32 {
				t.Fatalf("ofs=%d node %d: got=%d want=32", ofs, i, got)
			}
			if want := uint32((i + 1) % 2); nodes[i].Next != want {
				t.Fatalf("ofs=%d node %d link altered: got=%d want=%d", ofs, i, nodes[i].Next, want)
			}
		}
	}
}

func TestRandomLatencyGrowsPastCache(t *testing.T) {
	if testing.Short() {
		t.Skip("hardware-dependent timing")
	}
	rng := rand.New(rand.NewSource(9))
	small := make([]arena.Node, (16<<10)/arena.NodeSize)
	large := make([]arena.Node, (16<<20)/arena.NodeSize)
	arena.LinkRandom(small, rng)
	arena.LinkRandom(large, rng)

	const ops = 1 << 21
	measure := func(nodes []arena.Node) float64 {
		Read(nodes, 1<<18) // warm
		start := time.Now()
		Read(nodes, ops)
		return float64(time.Since(start)) / float64(ops)
	}

	smallAvg := measure(small)
	largeAvg := measure(large)
	if largeAvg <= smallAvg {
		t.Fatalf("expected latency growth past cache: small=%.3g ns large=%.3g ns", smallAvg, largeAvg)
	}
}

func BenchmarkReadRandomCycle(b *testing.B) {
	nodes := make([]arena.Node, (1<<20)/arena.NodeSize)
	arena.LinkRandom(nodes, rand.New(rand.NewSource(7)))

	const requested = 1 << 16
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Read(nodes, requested)
	}
	b.StopTimer()
	perOp := float64(b.Elapsed().Nanoseconds()) / float64(b.N) / float64(Steps(requested))
	b.ReportMetric(perOp, "ns/step")
}
