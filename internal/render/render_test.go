package render

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/alscos/sysinfo-gateway/internal/sysinfo"
)

func sampleSnapshot() sysinfo.Snapshot {
	return sysinfo.Derive(sysinfo.Raw{
		MemTotal:      8 * sysinfo.GiB,
		MemAvailable:  2 * sysinfo.GiB,
		SwapTotal:     sysinfo.GiB,
		SwapFree:      sysinfo.GiB / 2,
		PhysicalCores: 4,
		CPUPercent:    12.5,
		Uptime:        3661,
		Load1:         0.5,
		Load5:         1.25,
		Load15:        2,
	})
}

func TestJSONBody(t *testing.T) {
	body, ct := JSON(sampleSnapshot())
	if ct != "application/json" {
		t.Fatalf("content type = %q; want application/json", ct)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid json %s: %v", body, err)
	}

	want := map[string]any{
		"available_memory":    "2.00 GB",
		"total_memory":        "8.00 GB",
		"used_memory":         "6.00 GB",
		"used_memory_percent": "75.00%",
		"core_count":          float64(4),
		"cpu_usage":           "12.50%",
		"total_swap":          "1.00 GB",
		"used_swap":           "0.50 GB",
		"used_swap_percent":   "50.00%",
		"uptime":              float64(3661),
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %#v; want %#v", k, got[k], v)
		}
	}

	load, ok := got["load_average"].(map[string]any)
	if !ok {
		t.Fatalf("load_average = %#v; want object", got["load_average"])
	}
	if load["one"] != "0.50" || load["five"] != "1.25" || load["fifteen"] != "2.00" {
		t.Fatalf("load_average = %#v", load)
	}
	if len(got) != len(want)+1 {
		t.Fatalf("unexpected keys in %s", body)
	}
}

func TestJSONFieldFormats(t *testing.T) {
	unitRe := regexp.MustCompile(`^\d+\.\d{2} (GB|MB)$`)
	pctRe := regexp.MustCompile(`^\d+\.\d{2}%$`)
	fixedRe := regexp.MustCompile(`^\d+\.\d{2}$`)

	snaps := []sysinfo.Snapshot{
		sampleSnapshot(),
		sysinfo.Derive(sysinfo.Raw{}),
		sysinfo.Derive(sysinfo.Raw{MemTotal: 1073741824, MemAvailable: 123456789, Load1: 0.005}),
		sysinfo.Derive(sysinfo.Raw{MemTotal: 3, MemAvailable: 7, SwapTotal: 0, SwapFree: 10}),
	}

	for i, s := range snaps {
		body, _ := JSON(s)
		var got struct {
			AvailableMemory   string            `json:"available_memory"`
			TotalMemory       string            `json:"total_memory"`
			UsedMemory        string            `json:"used_memory"`
			UsedMemoryPercent string            `json:"used_memory_percent"`
			CPUUsage          string            `json:"cpu_usage"`
			TotalSwap         string            `json:"total_swap"`
			UsedSwap          string            `json:"used_swap"`
			UsedSwapPercent   string            `json:"used_swap_percent"`
			LoadAverage       map[string]string `json:"load_average"`
		}
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("snapshot %d: invalid json: %v", i, err)
		}

		for _, v := range []string{got.AvailableMemory, got.TotalMemory, got.UsedMemory, got.TotalSwap, got.UsedSwap} {
			if !unitRe.MatchString(v) {
				t.Fatalf("snapshot %d: %q does not match <N.NN> <unit>", i, v)
			}
		}
		for _, v := range []string{got.UsedMemoryPercent, got.CPUUsage, got.UsedSwapPercent} {
			if !pctRe.MatchString(v) {
				t.Fatalf("snapshot %d: %q does not match <N.NN>%%", i, v)
			}
		}
		for k, v := range got.LoadAverage {
			if !fixedRe.MatchString(v) {
				t.Fatalf("snapshot %d: load_average.%s = %q", i, k, v)
			}
		}
	}
}

func TestJSONUnitLabel(t *testing.T) {
	cases := []struct {
		total uint64
		want  string
	}{
		{1073741824, "1.00 MB"},
		{1073741825, "1.00 GB"},
	}

	for _, tc := range cases {
		body, _ := JSON(sysinfo.Derive(sysinfo.Raw{MemTotal: tc.total, MemAvailable: tc.total}))
		var got struct {
			TotalMemory string `json:"total_memory"`
		}
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatal(err)
		}
		if got.TotalMemory != tc.want {
			t.Fatalf("total=%d: total_memory = %q; want %q", tc.total, got.TotalMemory, tc.want)
		}
	}
}

func TestJSONZeroTotals(t *testing.T) {
	body, _ := JSON(sysinfo.Derive(sysinfo.Raw{}))
	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatal(err)
	}
	if got["used_memory_percent"] != "0.00%" || got["used_swap_percent"] != "0.00%" {
		t.Fatalf("zero totals rendered as %s", body)
	}
}

func TestTable(t *testing.T) {
	body, ct := Table(sampleSnapshot())
	if ct != "text/plain; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	want := `
+----------------------+-----------+
|        Data          |   Value   |
+----------------------+-----------+
| Available Memory     |  2.00 GB  |
| Total Memory         |  8.00 GB  |
| Used Memory          |  6.00 GB  |
| Used Memory Percent  |  75.00%   |
| Core Count           |        4  |
| CPU Usage            |  12.50%   |
| Total Swap           |  1.00 GB  |
| Used Swap            |  0.50 GB  |
| Used Swap Percent    |  50.00%   |
| Uptime               | 01:01:01  |
| Load Average (1)     |     0.50  |
| Load Average (5)     |     1.25  |
| Load Average (15)    |     2.00  |
+----------------------+-----------+
`
	if string(body) != want {
		t.Fatalf("table mismatch\n got: %q\nwant: %q", body, want)
	}
}

func TestTableAlwaysGB(t *testing.T) {
	s := sysinfo.Derive(sysinfo.Raw{MemTotal: 512 << 20, MemAvailable: 256 << 20})
	body, _ := Table(s)
	if !regexp.MustCompile(`\| Total Memory         \|  0\.50 GB  \|`).Match(body) {
		t.Fatalf("small host should still print GB:\n%s", body)
	}
}

func TestUserAgentNegotiator(t *testing.T) {
	n := UserAgentNegotiator{Token: "curl"}

	cases := []struct {
		name string
		ua   string
		set  bool
		want Presentation
	}{
		{"curl", "curl/7.79.1", true, PresentationTable},
		{"curl embedded", "my-wrapper curl/8.0", true, PresentationTable},
		{"browser", "Mozilla/5.0 (X11; Linux x86_64)", true, PresentationHTML},
		{"case sensitive", "Curl/7.79.1", true, PresentationHTML},
		{"empty", "", true, PresentationHTML},
		{"missing", "", false, PresentationHTML},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			if tc.set {
				h.Set("User-Agent", tc.ua)
			}
			if got := n.Negotiate(h); got != tc.want {
				t.Fatalf("Negotiate(%q) = %v; want %v", tc.ua, got, tc.want)
			}
		})
	}
}

func TestNegotiatorFunc(t *testing.T) {
	accept := NegotiatorFunc(func(h http.Header) Presentation {
		if h.Get("Accept") == "text/plain" {
			return PresentationTable
		}
		return PresentationHTML
	})

	h := http.Header{}
	h.Set("Accept", "text/plain")
	if got := accept.Negotiate(h); got != PresentationTable {
		t.Fatalf("Negotiate = %v; want table", got)
	}
	if got := accept.Negotiate(http.Header{}); got != PresentationHTML {
		t.Fatalf("Negotiate = %v; want html", got)
	}
}
