package sysinfo

import (
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// Info describes the host for the diagnostic banner and soft checks.
// Detection is best-effort beyond the core count: containers and VMs
// routinely hide model and memory facts.
type Info struct {
	Model        string
	LogicalCores int
	TotalMemory  uint64
}

func Describe() (Info, error) {
	logical, err := cpu.Counts(true)
	if err != nil {
		return Info{}, fmt.Errorf("count logical CPUs: %w", err)
	}
	info := Info{LogicalCores: logical}
	if details, err := cpu.Info(); err == nil && len(details) > 0 {
		info.Model = details[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}
	return info, nil
}

func (i Info) String() string {
	model := i.Model
	if model == "" {
		model = "unknown cpu"
	}
	return fmt.Sprintf("%s, %d logical cores, %.1f GiB memory",
		model, i.LogicalCores, float64(i.TotalMemory)/(1<<30))
}
