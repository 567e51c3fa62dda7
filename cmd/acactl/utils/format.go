package utils

import (
	"fmt"
	"time"
)

// FormatDuration renders a step duration compactly: milliseconds under a
// second, one decimal under a minute, then minutes and seconds.
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	default:
		d = d.Round(time.Second)
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	}
}

// YesNo renders a boolean for table output.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
