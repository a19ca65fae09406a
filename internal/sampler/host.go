package sampler

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/Dicklesworthstone/sysmoni/internal/model"
)

var osNames = map[string]string{
	"linux":   "Linux",
	"darwin":  "Darwin",
	"windows": "Windows",
	"freebsd": "FreeBSD",
	"openbsd": "OpenBSD",
	"netbsd":  "NetBSD",
}

// HostSource reads the local machine through gopsutil.
type HostSource struct {
	// Process handles are kept between calls so CPU percent is the delta
	// since the previous enumeration rather than a lifetime average.
	mu    sync.Mutex
	procs map[int32]*process.Process
}

// NewHostSource returns a Source for the running host.
func NewHostSource() *HostSource {
	return &HostSource{procs: make(map[int32]*process.Process)}
}

func (h *HostSource) Platform(ctx context.Context) (model.Platform, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return model.Platform{}, err
	}
	system := osNames[runtime.GOOS]
	if system == "" {
		system = info.OS
	}
	version := kernelVersion()
	if version == "" {
		version = info.PlatformVersion
	}
	p := model.Platform{
		System:  system,
		Node:    info.Hostname,
		Release: info.KernelVersion,
		Version: version,
		Machine: info.KernelArch,
	}
	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		p.Processor = strings.TrimSpace(cpus[0].ModelName)
	}
	return p, nil
}

func (h *HostSource) CPU(ctx context.Context) (model.CPU, error) {
	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return model.CPU{}, err
	}
	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		return model.CPU{}, err
	}
	count, err := cpu.CountsWithContext(ctx, true)
	if err != nil {
		return model.CPU{}, err
	}
	c := model.CPU{PerCore: perCore, Count: count}
	if len(total) > 0 {
		c.TotalPercent = total[0]
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 && infos[0].Mhz > 0 {
		c.Freq = &model.CPUFreq{Current: infos[0].Mhz}
	}
	// Load average is unsupported on some platforms; leave it zero-filled.
	if avg, err := load.AvgWithContext(ctx); err == nil && avg != nil {
		c.LoadAvg = [3]float64{avg.Load1, avg.Load5, avg.Load15}
	}
	return c, nil
}

func (h *HostSource) Memory(ctx context.Context) (model.Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return model.Memory{}, err
	}
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return model.Memory{}, err
	}
	return model.Memory{
		Virtual: model.MemoryStat{
			Total:     vm.Total,
			Available: vm.Available,
			Used:      vm.Used,
			Free:      vm.Free,
			Percent:   vm.UsedPercent,
		},
		Swap: model.MemoryStat{
			Total:     sw.Total,
			Available: sw.Free,
			Used:      sw.Used,
			Free:      sw.Free,
			Percent:   sw.UsedPercent,
		},
	}, nil
}

func (h *HostSource) Partitions(ctx context.Context) ([]model.Partition, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, err
	}
	out := make([]model.Partition, 0, len(parts))
	for _, p := range parts {
		out = append(out, model.Partition{
			Device:     p.Device,
			Mountpoint: p.Mountpoint,
			FSType:     p.Fstype,
			Opts:       strings.Join(p.Opts, ","),
		})
	}
	return out, nil
}

func (h *HostSource) Usage(ctx context.Context, mountpoint string) (*model.Usage, error) {
	u, err := disk.UsageWithContext(ctx, mountpoint)
	if err != nil {
		return nil, err
	}
	return &model.Usage{
		Total:   u.Total,
		Used:    u.Used,
		Free:    u.Free,
		Percent: u.UsedPercent,
	}, nil
}

// DiskIO sums counters over whole block devices. Where the kernel exposes
// sysfs, partitions (sda1, nvme0n1p1) are skipped because their parent disk
// already counts their traffic.
func (h *HostSource) DiskIO(ctx context.Context) (model.DiskIO, error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return model.DiskIO{}, err
	}
	return sumDiskIO(counters, hostSys()), nil
}

func sumDiskIO(counters map[string]disk.IOCountersStat, sysRoot string) model.DiskIO {
	blockDir := filepath.Join(sysRoot, "block")
	_, statErr := os.Stat(blockDir)
	filterPartitions := statErr == nil

	var io model.DiskIO
	for name, st := range counters {
		if strings.HasPrefix(name, "loop") || strings.HasPrefix(name, "ram") {
			continue
		}
		if filterPartitions {
			if _, err := os.Stat(filepath.Join(blockDir, name)); err != nil {
				continue
			}
		}
		io.ReadCount += st.ReadCount
		io.WriteCount += st.WriteCount
		io.ReadBytes += st.ReadBytes
		io.WriteBytes += st.WriteBytes
		io.ReadTime += st.ReadTime
		io.WriteTime += st.WriteTime
	}
	return io
}

// hostSys honours HOST_SYS the same way gopsutil does.
func hostSys() string {
	if v := os.Getenv("HOST_SYS"); v != "" {
		return v
	}
	return "/sys"
}

func (h *HostSource) NetIO(ctx context.Context) (model.NetIO, error) {
	counters, err := net.IOCountersWithContext(ctx, false)
	if err != nil {
		return model.NetIO{}, err
	}
	if len(counters) == 0 {
		return model.NetIO{}, nil
	}
	c := counters[0]
	return model.NetIO{
		BytesSent:   c.BytesSent,
		BytesRecv:   c.BytesRecv,
		PacketsSent: c.PacketsSent,
		PacketsRecv: c.PacketsRecv,
		Errin:       c.Errin,
		Errout:      c.Errout,
		Dropin:      c.Dropin,
		Dropout:     c.Dropout,
	}, nil
}

// Processes lists every readable process. Entries whose name cannot be read
// (exited mid-scan or inaccessible) are dropped.
func (h *HostSource) Processes(ctx context.Context) ([]model.Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	seen := make(map[int32]*process.Process, len(procs))
	out := make([]model.Process, 0, len(procs))
	for _, p := range procs {
		if cached, ok := h.procs[p.Pid]; ok {
			p = cached
		}
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		seen[p.Pid] = p

		entry := model.Process{PID: p.Pid, Name: name}
		entry.CPUPercent, _ = p.PercentWithContext(ctx, 0)
		if memPct, err := p.MemoryPercentWithContext(ctx); err == nil {
			entry.MemoryPercent = float64(memPct)
		}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			entry.MemoryRSS = mi.RSS
		}
		entry.Username, _ = p.UsernameWithContext(ctx)
		if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
			entry.Status = st[0]
		}
		out = append(out, entry)
	}
	h.procs = seen
	return out, nil
}
