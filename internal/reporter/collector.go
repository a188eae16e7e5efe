package reporter

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
)

const bytesPerGB = 1 << 30

// Sample is one reading of the local machine.
type Sample struct {
	TotalStorageGB     float64
	FreeStorageGB      float64
	CPUUsagePercent    float64
	MemoryUsagePercent float64
}

type Collector interface {
	Collect(ctx context.Context) (Sample, error)
}

// SystemCollector reads the host through gopsutil. CPU usage is measured
// over CPUWindow, so Collect blocks for at least that long.
type SystemCollector struct {
	StoragePath string
	CPUWindow   time.Duration
}

func NewSystemCollector(storagePath string) SystemCollector {
	return SystemCollector{StoragePath: storagePath, CPUWindow: time.Second}
}

func (c SystemCollector) Collect(ctx context.Context) (Sample, error) {
	usage, err := disk.UsageWithContext(ctx, c.StoragePath)
	if err != nil {
		return Sample{}, fmt.Errorf("disk usage of %s: %w", c.StoragePath, err)
	}

	cpuPercent, err := cpu.PercentWithContext(ctx, c.CPUWindow, false)
	if err != nil {
		return Sample{}, fmt.Errorf("cpu usage: %w", err)
	}
	if len(cpuPercent) == 0 {
		cpuPercent = []float64{0}
	}

	vmStat, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("memory usage: %w", err)
	}

	return Sample{
		TotalStorageGB:     toGB(usage.Total),
		FreeStorageGB:      toGB(usage.Free),
		CPUUsagePercent:    round2(cpuPercent[0]),
		MemoryUsagePercent: round2(vmStat.UsedPercent),
	}, nil
}

func toGB(bytes uint64) float64 {
	return round2(float64(bytes) / bytesPerGB)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
