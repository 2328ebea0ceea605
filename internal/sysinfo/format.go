package sysinfo

import "fmt"

// FormatBytes scales b by GiB and prints it with two decimals and unit.
func FormatBytes(b uint64, unit string) string {
	return fmt.Sprintf("%.2f %s", float64(b)/GiB, unit)
}

func FormatPercent(p float64) string {
	return FormatFixed(p) + "%"
}

// FormatFixed prints f with two decimals. Go rounds the exact binary value,
// so a true decimal tie goes to even.
func FormatFixed(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// FormatUptime renders seconds as HH:MM:SS. Hours are not wrapped at 24.
func FormatUptime(seconds uint64) string {
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
