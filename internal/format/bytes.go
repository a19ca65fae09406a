// Package format renders raw metric values for display.
package format

import "fmt"

var byteUnits = []string{"", "K", "M", "G", "T", "P", "E", "Z"}

// Bytes renders n with binary (1024) steps and one decimal, e.g. "1.5KB".
func Bytes(n float64) string {
	for _, unit := range byteUnits {
		if n > -1024 && n < 1024 {
			return fmt.Sprintf("%.1f%sB", n, unit)
		}
		n /= 1024
	}
	return fmt.Sprintf("%.1fYB", n)
}

// HumanBytes is Bytes for optional counters; nil renders as "N/A".
func HumanBytes(n *uint64) string {
	if n == nil {
		return "N/A"
	}
	return Bytes(float64(*n))
}

// Rate renders an optional per-second byte rate, e.g. "1.5KB/s".
func Rate(r *float64) string {
	if r == nil {
		return "N/A"
	}
	return Bytes(*r) + "/s"
}

// Percent renders a percentage with one decimal.
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}
