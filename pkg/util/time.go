package util

import (
	"fmt"
	"time"
)

// FormatWait renders the time left until a departure the way the sidebar shows it
func FormatWait(departure time.Time, now time.Time) string {
	wait := departure.Sub(now)
	if wait < time.Minute {
		return "Nu"
	}

	hours := int(wait.Hours())
	minutes := int(wait.Minutes()) % 60

	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}

	return fmt.Sprintf("%dh%dm", hours, minutes)
}

func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
