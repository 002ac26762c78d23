// Package format contains pure formatting helpers shared by the CLI and
// TUI presentation layers.
package format

import (
	"fmt"
	"strconv"
	"time"
)

// Number renders a float64 for display. A precision of -1 produces the
// platform's default shortest representation (the same text %v would
// print); otherwise the value is rendered with exactly precision digits
// after the decimal point.
func Number(v float64, precision int) string {
	if precision < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds
// for durations less than a second, and the default string representation
// otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}
