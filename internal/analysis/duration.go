package analysis

import (
	"fmt"
	"time"
)

// FormatDuration formats a duration for the run summary line, picking the
// coarsest unit that still reads naturally:
//   - < 1 second: milliseconds ("450ms")
//   - < 1 minute: whole seconds ("45s")
//   - < 1 hour: minutes and seconds ("2m 30s")
//   - otherwise: hours, minutes and seconds ("1h 23m 45s")
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return fmt.Sprintf("-%s", FormatDuration(-d))
	}

	if d < time.Second {
		return fmt.Sprintf("%dms", d.Round(time.Millisecond).Milliseconds())
	}

	// Round before branching so 59.5s promotes into the minutes form.
	d = d.Round(time.Second)

	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}

	if d < time.Hour {
		minutes := int(d.Minutes())
		seconds := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
