// Package sysinfo collects point-in-time host telemetry and derives the
// values both presentations of the gateway render.
package sysinfo

import (
	"context"
	"io"
	"log/slog"
)

// GiB is the divisor used for every byte-valued field.
const GiB = 1 << 30

// Unit labels. The JSON view picks one from total memory; the text table
// always prints UnitGB.
const (
	UnitGB = "GB"
	UnitMB = "MB"
)

type LoadAverage struct {
	One     float64
	Five    float64
	Fifteen float64
}

// Snapshot is built per request from a single Raw read and discarded after
// the response is written.
type Snapshot struct {
	AvailableMemory   uint64
	TotalMemory       uint64
	UsedMemory        uint64
	UsedMemoryPercent float64

	CoreCount int
	CPUUsage  float64

	TotalSwap       uint64
	UsedSwap        uint64
	UsedSwapPercent float64

	Uptime uint64
	Load   LoadAverage

	// MemoryUnit is the label for byte fields in the JSON view.
	MemoryUnit string

	Errors []string
}

// Derive turns a Raw read into a Snapshot. It is pure and never panics:
// underflowing subtractions clamp to 0 and a zero total yields 0%.
func Derive(raw Raw) Snapshot {
	usedMem := usedBytes(raw.MemTotal, raw.MemAvailable)
	usedSwap := usedBytes(raw.SwapTotal, raw.SwapFree)

	return Snapshot{
		AvailableMemory:   raw.MemAvailable,
		TotalMemory:       raw.MemTotal,
		UsedMemory:        usedMem,
		UsedMemoryPercent: percent(usedMem, raw.MemTotal),

		CoreCount: max(raw.PhysicalCores, 0),
		CPUUsage:  raw.CPUPercent,

		TotalSwap:       raw.SwapTotal,
		UsedSwap:        usedSwap,
		UsedSwapPercent: percent(usedSwap, raw.SwapTotal),

		Uptime: raw.Uptime,
		Load: LoadAverage{
			One:     raw.Load1,
			Five:    raw.Load5,
			Fifteen: raw.Load15,
		},

		MemoryUnit: MemoryUnit(raw.MemTotal),

		Errors: raw.Errors,
	}
}

func usedBytes(total, free uint64) uint64 {
	if free > total {
		return 0
	}
	return total - free
}

func percent(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}

// MemoryUnit returns UnitGB when total is strictly above one GiB.
func MemoryUnit(total uint64) string {
	if total > GiB {
		return UnitGB
	}
	return UnitMB
}

// Collector produces Snapshots. It keeps no cache: every Collect reflects the
// instant it runs, so it is safe for concurrent use as long as its Source is.
type Collector struct {
	src Source
	log *slog.Logger
}

func NewCollector(src Source, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{src: src, log: log}
}

func (c *Collector) Collect(ctx context.Context) Snapshot {
	raw := c.src.Refresh(ctx)
	for _, e := range raw.Errors {
		c.log.Debug("sysinfo partial read", "error", e)
	}
	return Derive(raw)
}

// Inventory enumerates disks and sensors when the source supports it, and
// returns an empty Inventory otherwise.
func (c *Collector) Inventory(ctx context.Context) Inventory {
	is, ok := c.src.(InventorySource)
	if !ok {
		return Inventory{}
	}
	inv := is.Inventory(ctx)
	for _, e := range inv.Errors {
		c.log.Debug("sysinfo inventory partial read", "error", e)
	}
	return inv
}
