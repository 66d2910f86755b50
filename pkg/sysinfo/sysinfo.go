// Package sysinfo reports host load for the health endpoint.
package sysinfo

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

type Stats struct {
	Hostname      string  `json:"hostname"`
	UptimeSeconds uint64  `json:"uptime_seconds"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Goroutines    int     `json:"goroutines"`
}

// Collect samples the host. Probes that fail are left at zero; the error of the first failing
// probe is returned with the partial result.
func Collect(ctx context.Context) (*Stats, error) {
	stats := &Stats{Goroutines: runtime.NumGoroutine()}
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	info, err := host.InfoWithContext(ctx)
	keep(err)
	if info != nil {
		stats.Hostname = info.Hostname
		stats.UptimeSeconds = info.Uptime
	}

	percents, err := cpu.PercentWithContext(ctx, 0, false)
	keep(err)
	if len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	keep(err)
	if vm != nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	return stats, firstErr
}
