// Package hostinfo describes the machine the client runs on. Benchmark
// reports carry the description so numbers from different machines are
// not compared blindly.
package hostinfo

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

const gib = 1 << 30

// Info is a snapshot of the host.
type Info struct {
	Hostname    string  `json:"hostname,omitempty"`
	Platform    string  `json:"platform"`
	OS          string  `json:"os"`
	Arch        string  `json:"arch"`
	CPU         string  `json:"cpu"`
	Cores       int     `json:"cores"`
	MemoryTotal uint64  `json:"memory_total"`
	MemoryUsed  float64 `json:"memory_used_percent"`
	GoVersion   string  `json:"go_version"`
	Goroutines  int     `json:"goroutines"`
}

// Collect gathers a snapshot. Probes that fail leave their fields empty;
// their errors are joined into the returned error next to a usable Info.
func Collect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Cores:      runtime.NumCPU(),
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}
	var errs []error

	if h, err := host.InfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("host: %w", err))
	} else {
		info.Hostname = h.Hostname
		info.Platform = h.Platform
		if h.PlatformVersion != "" {
			info.Platform += " " + h.PlatformVersion
		}
	}

	if cpus, err := cpu.InfoWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("cpu: %w", err))
	} else if len(cpus) > 0 {
		info.CPU = cpus[0].ModelName
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		info.Cores = n
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		errs = append(errs, fmt.Errorf("mem: %w", err))
	} else {
		info.MemoryTotal = vm.Total
		info.MemoryUsed = vm.UsedPercent
	}

	if err := errors.Join(errs...); err != nil {
		return info, fmt.Errorf("hostinfo: %w", err)
	}
	return info, nil
}

// String formats the snapshot as a single benchmark stamp line.
func (i *Info) String() string {
	platform := i.Platform
	if platform == "" {
		platform = i.OS + "/" + i.Arch
	}
	cpuName := i.CPU
	if cpuName == "" {
		cpuName = "unknown CPU"
	}
	return fmt.Sprintf("%s, %s (%d cores), %.1f GB RAM", platform, cpuName, i.Cores, float64(i.MemoryTotal)/gib)
}
