// Package report renders human-readable typing analysis reports.
package report

import (
	"fmt"
	"math"
	"strings"
)

const sparkChars = " .:-=+*#%@"

// FormatDuration formats a duration in human-readable form.
func FormatDuration(seconds float64) string {
	if seconds < 60 {
		return fmt.Sprintf("%.1fs", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%.1fm", minutes)
	}
	return fmt.Sprintf("%.1fh", minutes/60)
}

// FormatKey strips the evdev prefix for display.
func FormatKey(key string) string {
	return strings.TrimPrefix(key, "KEY_")
}

// FormatDigraph formats a key pair for display.
func FormatDigraph(digraph string) string {
	parts := strings.Split(digraph, "->")
	if len(parts) == 2 {
		return fmt.Sprintf("%s -> %s", FormatKey(parts[0]), FormatKey(parts[1]))
	}
	return digraph
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
