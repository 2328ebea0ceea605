package sysinfo

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
)

// Raw is one read of the host counters, before any derivation.
type Raw struct {
	MemTotal     uint64
	MemAvailable uint64
	SwapTotal    uint64
	SwapFree     uint64

	PhysicalCores int
	CPUPercent    float64

	Uptime uint64
	Load1  float64
	Load5  float64
	Load15 float64

	// Errors lists the sub-reads that failed; their fields stay zero.
	Errors []string
}

type DiskStat struct {
	Device     string
	Mountpoint string
	Fstype     string
	Total      uint64
	Free       uint64
	UsedPct    float64
}

type SensorStat struct {
	Key         string
	Temperature float64
	High        float64
	Critical    float64
}

// Inventory is the disk and sensor enumeration. It is read apart from Raw:
// statting mounts can be slow, and only the debug log consumes it.
type Inventory struct {
	Disks   []DiskStat
	Sensors []SensorStat
	Errors  []string
}

// Source is the OS collaborator. Refresh performs one read of every counter
// and never fails as a whole.
type Source interface {
	Refresh(ctx context.Context) Raw
}

// InventorySource is implemented by sources that can enumerate disks and
// sensors.
type InventorySource interface {
	Inventory(ctx context.Context) Inventory
}

// PSUtilSource reads counters through gopsutil. It holds no state between
// calls besides its settings.
type PSUtilSource struct {
	// CPUWindow is how long CPU time is sampled to compute usage. Zero makes
	// gopsutil compare against its previous call instead.
	CPUWindow time.Duration
}

func NewPSUtilSource(cpuWindow time.Duration) *PSUtilSource {
	return &PSUtilSource{CPUWindow: cpuWindow}
}

func (p *PSUtilSource) Refresh(ctx context.Context) Raw {
	var raw Raw
	fail := func(what string, err error) {
		raw.Errors = append(raw.Errors, what+": "+err.Error())
	}

	// CPU first: the sampling window sleeps, and the instantaneous reads
	// below should land as close together as possible.
	if pct, err := cpu.PercentWithContext(ctx, p.CPUWindow, false); err != nil {
		fail("cpu percent", err)
	} else if len(pct) > 0 {
		raw.CPUPercent = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		fail("memory", err)
	} else {
		raw.MemTotal = vm.Total
		raw.MemAvailable = vm.Available
	}

	if sw, err := mem.SwapMemoryWithContext(ctx); err != nil {
		fail("swap", err)
	} else {
		raw.SwapTotal = sw.Total
		raw.SwapFree = sw.Free
	}

	if avg, err := load.AvgWithContext(ctx); err != nil {
		fail("load average", err)
	} else {
		raw.Load1, raw.Load5, raw.Load15 = avg.Load1, avg.Load5, avg.Load15
	}

	if up, err := host.UptimeWithContext(ctx); err != nil {
		fail("uptime", err)
	} else {
		raw.Uptime = up
	}

	if n, err := cpu.CountsWithContext(ctx, false); err != nil {
		fail("core count", err)
	} else {
		raw.PhysicalCores = n
	}

	return raw
}

func (p *PSUtilSource) Inventory(ctx context.Context) Inventory {
	var inv Inventory
	fail := func(what string, err error) {
		inv.Errors = append(inv.Errors, what+": "+err.Error())
	}

	inv.Disks = p.disks(ctx, fail)
	inv.Sensors = p.temperatures(ctx, fail)
	return inv
}

func (p *PSUtilSource) disks(ctx context.Context, fail func(string, error)) []DiskStat {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		fail("disk partitions", err)
		return nil
	}

	out := make([]DiskStat, 0, len(parts))
	for _, part := range parts {
		ds := DiskStat{
			Device:     part.Device,
			Mountpoint: part.Mountpoint,
			Fstype:     part.Fstype,
		}
		// unreadable mounts (permissions, stale nfs) are listed without usage
		if u, err := disk.UsageWithContext(ctx, part.Mountpoint); err == nil {
			ds.Total = u.Total
			ds.Free = u.Free
			ds.UsedPct = u.UsedPercent
		}
		out = append(out, ds)
	}
	return out
}

func (p *PSUtilSource) temperatures(ctx context.Context, fail func(string, error)) []SensorStat {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if err != nil && len(temps) == 0 {
		fail("sensors", err)
		return nil
	}

	out := make([]SensorStat, 0, len(temps))
	for _, t := range temps {
		out = append(out, SensorStat{
			Key:         t.SensorKey,
			Temperature: t.Temperature,
			High:        t.High,
			Critical:    t.Critical,
		})
	}
	return out
}
