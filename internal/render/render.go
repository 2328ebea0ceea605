// Package render turns a sysinfo.Snapshot into response bodies. Every
// function here is pure; the HTTP layer only picks one and writes it out.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/alscos/sysinfo-gateway/internal/sysinfo"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeText = "text/plain; charset=utf-8"
)

type loadAverageBody struct {
	One     string `json:"one"`
	Five    string `json:"five"`
	Fifteen string `json:"fifteen"`
}

type sysinfoBody struct {
	AvailableMemory   string          `json:"available_memory"`
	TotalMemory       string          `json:"total_memory"`
	UsedMemory        string          `json:"used_memory"`
	UsedMemoryPercent string          `json:"used_memory_percent"`
	CoreCount         int             `json:"core_count"`
	CPUUsage          string          `json:"cpu_usage"`
	TotalSwap         string          `json:"total_swap"`
	UsedSwap          string          `json:"used_swap"`
	UsedSwapPercent   string          `json:"used_swap_percent"`
	Uptime            uint64          `json:"uptime"`
	LoadAverage       loadAverageBody `json:"load_average"`
}

// JSON renders the API body. Byte fields carry the snapshot's MemoryUnit
// label; uptime stays in raw seconds.
func JSON(s sysinfo.Snapshot) ([]byte, string) {
	unit := s.MemoryUnit
	if unit == "" {
		unit = sysinfo.MemoryUnit(s.TotalMemory)
	}

	body := sysinfoBody{
		AvailableMemory:   sysinfo.FormatBytes(s.AvailableMemory, unit),
		TotalMemory:       sysinfo.FormatBytes(s.TotalMemory, unit),
		UsedMemory:        sysinfo.FormatBytes(s.UsedMemory, unit),
		UsedMemoryPercent: sysinfo.FormatPercent(s.UsedMemoryPercent),
		CoreCount:         s.CoreCount,
		CPUUsage:          sysinfo.FormatPercent(s.CPUUsage),
		TotalSwap:         sysinfo.FormatBytes(s.TotalSwap, unit),
		UsedSwap:          sysinfo.FormatBytes(s.UsedSwap, unit),
		UsedSwapPercent:   sysinfo.FormatPercent(s.UsedSwapPercent),
		Uptime:            s.Uptime,
		LoadAverage: loadAverageBody{
			One:     sysinfo.FormatFixed(s.Load.One),
			Five:    sysinfo.FormatFixed(s.Load.Five),
			Fifteen: sysinfo.FormatFixed(s.Load.Fifteen),
		},
	}

	// only strings and integers: Marshal cannot fail here
	b, _ := json.Marshal(body)
	return b, ContentTypeJSON
}

// Existing CLI consumers parse this layout; keep widths and borders as is.
const tableLayout = `
+----------------------+-----------+
|        Data          |   Value   |
+----------------------+-----------+
| Available Memory     | %8s  |
| Total Memory         | %8s  |
| Used Memory          | %8s  |
| Used Memory Percent  | %6s%%   |
| Core Count           | %8d  |
| CPU Usage            | %6s%%   |
| Total Swap           | %8s  |
| Used Swap            | %8s  |
| Used Swap Percent    | %6s%%   |
| Uptime               | %8s  |
| Load Average (1)     | %8.2f  |
| Load Average (5)     | %8.2f  |
| Load Average (15)    | %8.2f  |
+----------------------+-----------+
`

// Table renders the fixed-width view for command-line clients. Byte fields
// are always labelled GB here, whatever the JSON view picks.
func Table(s sysinfo.Snapshot) ([]byte, string) {
	out := fmt.Sprintf(tableLayout,
		sysinfo.FormatBytes(s.AvailableMemory, sysinfo.UnitGB),
		sysinfo.FormatBytes(s.TotalMemory, sysinfo.UnitGB),
		sysinfo.FormatBytes(s.UsedMemory, sysinfo.UnitGB),
		sysinfo.FormatFixed(s.UsedMemoryPercent),
		s.CoreCount,
		sysinfo.FormatFixed(s.CPUUsage),
		sysinfo.FormatBytes(s.TotalSwap, sysinfo.UnitGB),
		sysinfo.FormatBytes(s.UsedSwap, sysinfo.UnitGB),
		sysinfo.FormatFixed(s.UsedSwapPercent),
		sysinfo.FormatUptime(s.Uptime),
		s.Load.One,
		s.Load.Five,
		s.Load.Fifteen,
	)
	return []byte(out), ContentTypeText
}
