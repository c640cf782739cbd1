package affinity

import (
	"runtime"
	"testing"

	"golang.org/x/sys/unix"
)

func TestPinNarrowsMaskToOneCPU(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var orig unix.CPUSet
	if err := unix.SchedGetaffinity(0, &orig); err != nil {
		t.Fatalf("read current mask: %v", err)
	}
	defer unix.SchedSetaffinity(0, &orig)

	cpu := -1
	for i := 0; i <= MaxCPUID; i++ {
		if orig.IsSet(i) {
			cpu = i
			break
		}
	}
	if cpu < 0 {
		t.Fatalf("no allowed CPU in current mask")
	}

	if err := Pin(cpu); err != nil {
		t.Fatalf("pin failed: %v", err)
	}
	var got unix.CPUSet
	if err := unix.SchedGetaffinity(0, &got); err != nil {
		t.Fatalf("read mask after pin: %v", err)
	}
	if !got.IsSet(cpu) || got.Count() != 1 {
		t.Fatalf("mask not narrowed to CPU %d: count=%d", cpu, got.Count())
	}
}

func TestPinRejectsOutOfRangeID(t *testing.T) {
	if err := Pin(MaxCPUID + 1); err == nil {
		t.Fatalf("expected error for out-of-range CPU id")
	}
	if err := Pin(-1); err == nil {
		t.Fatalf("expected error for negative CPU id")
	}
}
